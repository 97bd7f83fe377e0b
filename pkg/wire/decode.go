package wire

import (
	"fmt"

	"github.com/rawbytedev/corewire/internal/common"
)

// DecodeFunc reads one T from the front of src and reports how many bytes it
// consumed.
type DecodeFunc[T any] func(src []byte) (T, int, error)

// SkipFunc reports how many bytes the value at the front of src occupies
// without decoding it.
type SkipFunc func(src []byte) (int, error)

func need(src []byte, n int) error {
	if len(src) < n {
		return truncated(n, len(src))
	}
	return nil
}

func ReadU8(src []byte) (uint8, int, error) {
	if err := need(src, common.SizeU8); err != nil {
		return 0, 0, err
	}
	return src[0], common.SizeU8, nil
}

func ReadU16(src []byte) (uint16, int, error) {
	if err := need(src, common.SizeU16); err != nil {
		return 0, 0, err
	}
	return common.U16(src), common.SizeU16, nil
}

func ReadU32(src []byte) (uint32, int, error) {
	if err := need(src, common.SizeU32); err != nil {
		return 0, 0, err
	}
	return common.U32(src), common.SizeU32, nil
}

func ReadU64(src []byte) (uint64, int, error) {
	if err := need(src, common.SizeU64); err != nil {
		return 0, 0, err
	}
	return common.U64(src), common.SizeU64, nil
}

// ReadBool accepts only 0 and 1.
func ReadBool(src []byte) (bool, int, error) {
	b, n, err := ReadU8(src)
	if err != nil {
		return false, 0, err
	}
	switch b {
	case 0:
		return false, n, nil
	case 1:
		return true, n, nil
	}
	return false, 0, BadTag("bool", b)
}

func ReadPubkey(src []byte) (Pubkey, int, error) {
	var p Pubkey
	if err := need(src, PubkeySize); err != nil {
		return p, 0, err
	}
	copy(p[:], src)
	return p, PubkeySize, nil
}

// ReadBytes returns a view over the byte string at the front of src. The
// view aliases src and is only valid while src is.
func ReadBytes(src []byte) (Bytes, int, error) {
	l, n, err := ReadU32(src)
	if err != nil {
		return nil, 0, err
	}
	if !common.Fits(len(src), uint64(n), uint64(l)) {
		return nil, 0, fmt.Errorf("byte string of %d bytes: %w", l, truncated(n+int(l), len(src)))
	}
	if l == 0 {
		return nil, n, nil
	}
	end := n + int(l)
	return Bytes(src[n:end:end]), end, nil
}

// SkipBytes is the size-only counterpart of ReadBytes.
func SkipBytes(src []byte) (int, error) {
	_, n, err := ReadBytes(src)
	return n, err
}

// Typed adapters so primitives can be used as Option and Seq elements.

func DecodeU8(src []byte) (U8, int, error) {
	v, n, err := ReadU8(src)
	return U8(v), n, err
}

func DecodeU16(src []byte) (U16, int, error) {
	v, n, err := ReadU16(src)
	return U16(v), n, err
}

func DecodeU32(src []byte) (U32, int, error) {
	v, n, err := ReadU32(src)
	return U32(v), n, err
}

func DecodeU64(src []byte) (U64, int, error) {
	v, n, err := ReadU64(src)
	return U64(v), n, err
}

func DecodeBool(src []byte) (Bool, int, error) {
	v, n, err := ReadBool(src)
	return Bool(v), n, err
}

// ReadOption decodes a presence flag and, when set, one T.
func ReadOption[T Encoder](src []byte, dec func([]byte) (T, int, error)) (Option[T], int, error) {
	present, n, err := ReadBool(src)
	if err != nil {
		return Option[T]{}, 0, err
	}
	if !present {
		return Option[T]{}, n, nil
	}
	v, m, err := dec(src[n:])
	if err != nil {
		return Option[T]{}, 0, At(err, n, "optional value")
	}
	return Some(v), n + m, nil
}

// SkipOption is the size-only counterpart of ReadOption.
func SkipOption(src []byte, skip SkipFunc) (int, error) {
	present, n, err := ReadBool(src)
	if err != nil || !present {
		return n, err
	}
	m, err := skip(src[n:])
	if err != nil {
		return 0, At(err, n, "optional value")
	}
	return n + m, nil
}

// ReadCount reads a sequence length prefix. Every element in this format
// occupies at least one byte, so a count larger than the remaining input is
// rejected before anything is allocated for it.
func ReadCount(src []byte) (int, int, error) {
	c, n, err := ReadU32(src)
	if err != nil {
		return 0, 0, err
	}
	if uint64(c) > uint64(len(src)-n) {
		return 0, 0, fmt.Errorf("%w: count %d exceeds %d remaining bytes", ErrTruncatedInput, c, len(src)-n)
	}
	return int(c), n, nil
}

// ReadSeq decodes a count-prefixed run of T. An empty run decodes as nil.
func ReadSeq[T Encoder](src []byte, dec func([]byte) (T, int, error)) (Seq[T], int, error) {
	count, off, err := ReadCount(src)
	if err != nil {
		return nil, 0, err
	}
	if count == 0 {
		return nil, off, nil
	}
	out := make(Seq[T], 0, count)
	for i := 0; i < count; i++ {
		v, n, err := dec(src[off:])
		if err != nil {
			return nil, 0, At(err, off, fmt.Sprintf("element %d", i))
		}
		out = append(out, v)
		off += n
	}
	return out, off, nil
}

// SkipSeq walks a count-prefixed run using skip for each element.
func SkipSeq(src []byte, skip SkipFunc) (int, error) {
	count, off, err := ReadCount(src)
	if err != nil {
		return 0, err
	}
	for i := 0; i < count; i++ {
		n, err := skip(src[off:])
		if err != nil {
			return 0, At(err, off, fmt.Sprintf("element %d", i))
		}
		off += n
	}
	return off, nil
}

// SkipFixed returns a SkipFunc for values of constant width.
func SkipFixed(width int) SkipFunc {
	return func(src []byte) (int, error) {
		if err := need(src, width); err != nil {
			return 0, err
		}
		return width, nil
	}
}
