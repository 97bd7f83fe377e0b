package wire

import (
	"github.com/rawbytedev/corewire/internal/common"
)

// Encoder is implemented by every value that has a wire form.
//
// EncodeTo writes the value at dst[0:] and returns the number of bytes
// written. It never writes past len(dst); a destination that is too short
// yields ErrBufferTooSmall and unspecified contents. EncodedSize reports the
// exact number of bytes EncodeTo writes.
type Encoder interface {
	EncodedSize() int
	EncodeTo(dst []byte) (int, error)
}

type (
	U8   uint8
	U16  uint16
	U32  uint32
	U64  uint64
	Bool bool
	// Bytes is a u32 length prefix followed by the raw bytes, no terminator.
	// nil is the canonical empty value: an empty string decodes as nil, and a
	// non-nil empty Bytes encodes the same as nil.
	Bytes []byte
)

func (U8) EncodedSize() int { return common.SizeU8 }

func (v U8) EncodeTo(dst []byte) (int, error) {
	if len(dst) < common.SizeU8 {
		return 0, shortBuffer(common.SizeU8, len(dst))
	}
	dst[0] = byte(v)
	return common.SizeU8, nil
}

func (U16) EncodedSize() int { return common.SizeU16 }

func (v U16) EncodeTo(dst []byte) (int, error) {
	if len(dst) < common.SizeU16 {
		return 0, shortBuffer(common.SizeU16, len(dst))
	}
	common.PutU16(dst, uint16(v))
	return common.SizeU16, nil
}

func (U32) EncodedSize() int { return common.SizeU32 }

func (v U32) EncodeTo(dst []byte) (int, error) {
	if len(dst) < common.SizeU32 {
		return 0, shortBuffer(common.SizeU32, len(dst))
	}
	common.PutU32(dst, uint32(v))
	return common.SizeU32, nil
}

func (U64) EncodedSize() int { return common.SizeU64 }

func (v U64) EncodeTo(dst []byte) (int, error) {
	if len(dst) < common.SizeU64 {
		return 0, shortBuffer(common.SizeU64, len(dst))
	}
	common.PutU64(dst, uint64(v))
	return common.SizeU64, nil
}

func (Bool) EncodedSize() int { return common.SizeBool }

// EncodeTo writes 1 for true and 0 for false.
func (v Bool) EncodeTo(dst []byte) (int, error) {
	if len(dst) < common.SizeBool {
		return 0, shortBuffer(common.SizeBool, len(dst))
	}
	if v {
		dst[0] = 1
	} else {
		dst[0] = 0
	}
	return common.SizeBool, nil
}

func (v Bytes) EncodedSize() int { return common.SizeLen + len(v) }

func (v Bytes) EncodeTo(dst []byte) (int, error) {
	if err := checkLen(len(v)); err != nil {
		return 0, err
	}
	total := common.SizeLen + len(v)
	if len(dst) < total {
		return 0, shortBuffer(total, len(dst))
	}
	common.PutU32(dst, uint32(len(v)))
	copy(dst[common.SizeLen:], v)
	return total, nil
}

// PutTag writes a single discriminant byte.
func PutTag(dst []byte, tag byte) (int, error) {
	return U8(tag).EncodeTo(dst)
}
