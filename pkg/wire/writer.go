package wire

import "github.com/rawbytedev/corewire/internal/common"

// Writer is a cursor over a caller-owned destination. The first failure is
// kept and every later write becomes a no-op, so a struct encoder can issue
// all of its field writes and check once at the end.
type Writer struct {
	buf []byte
	off int
	err error
}

func NewWriter(dst []byte) Writer { return Writer{buf: dst} }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return w.off }

func (w *Writer) Err() error { return w.err }

// Result is the (bytes written, error) pair every EncodeTo returns.
func (w *Writer) Result() (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	return w.off, nil
}

// Rest returns the unwritten tail of the destination.
func (w *Writer) Rest() []byte {
	if w.err != nil {
		return nil
	}
	return w.buf[w.off:]
}

// Advance records the outcome of encoding a nested value into Rest():
//
//	w.Advance(v.EncodeTo(w.Rest()))
func (w *Writer) Advance(n int, err error) {
	if w.err != nil {
		return
	}
	if err != nil {
		w.err = err
		return
	}
	w.off += n
}

func (w *Writer) reserve(n int) []byte {
	if w.err != nil {
		return nil
	}
	if len(w.buf)-w.off < n {
		w.err = shortBuffer(w.off+n, len(w.buf))
		return nil
	}
	b := w.buf[w.off : w.off+n]
	w.off += n
	return b
}

func (w *Writer) U8(v uint8) {
	if b := w.reserve(common.SizeU8); b != nil {
		b[0] = v
	}
}

func (w *Writer) U16(v uint16) {
	if b := w.reserve(common.SizeU16); b != nil {
		common.PutU16(b, v)
	}
}

func (w *Writer) U32(v uint32) {
	if b := w.reserve(common.SizeU32); b != nil {
		common.PutU32(b, v)
	}
}

func (w *Writer) U64(v uint64) {
	if b := w.reserve(common.SizeU64); b != nil {
		common.PutU64(b, v)
	}
}

func (w *Writer) Bool(v bool) {
	if v {
		w.U8(1)
	} else {
		w.U8(0)
	}
}

func (w *Writer) Pubkey(p Pubkey) {
	if b := w.reserve(PubkeySize); b != nil {
		copy(b, p[:])
	}
}

// Bytes writes a length-prefixed byte string.
func (w *Writer) Bytes(v []byte) {
	w.Count(len(v))
	if b := w.reserve(len(v)); b != nil {
		copy(b, v)
	}
}

// Raw writes v as is, with no length prefix.
func (w *Writer) Raw(v []byte) {
	if b := w.reserve(len(v)); b != nil {
		copy(b, v)
	}
}

// Skip moves past n bytes without writing them, leaving room for a value that
// is backfilled once it is known.
func (w *Writer) Skip(n int) { w.reserve(n) }

// Count writes a sequence or byte string length prefix.
func (w *Writer) Count(n int) {
	if w.err != nil {
		return
	}
	if err := checkLen(n); err != nil {
		w.err = err
		return
	}
	w.U32(uint32(n))
}

// Present writes an optional-value presence flag.
func (w *Writer) Present(ok bool) { w.Bool(ok) }
