package common

import (
	"encoding/binary"
	"unsafe"
)

// Byte widths of the fixed-size encodings.
const (
	SizeU8     = 1
	SizeU16    = 2
	SizeU32    = 4
	SizeU64    = 8
	SizeBool   = 1
	SizePubkey = 32
	SizeLen    = SizeU32 // length and count prefixes
)

// Fits reports whether n bytes starting at off lie inside a buffer of length size.
// Written to stay overflow-safe for offsets read off the wire.
func Fits(size int, off, n uint64) bool {
	return off <= uint64(size) && n <= uint64(size)-off
}

// PutU16 writes v little-endian into b[0:2]. b must hold at least 2 bytes.
func PutU16(b []byte, v uint16) { binary.LittleEndian.PutUint16(b, v) }

// PutU32 writes v little-endian into b[0:4]. b must hold at least 4 bytes.
func PutU32(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }

// PutU64 writes v little-endian into b[0:8]. b must hold at least 8 bytes.
func PutU64(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) }

func U16(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }
func U32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }
func U64(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }

// Alias reinterprets b as a slice of n values of T without copying.
// It reports false when the reinterpretation would be unsound: T must have
// alignment 1 (so any byte address is a valid T address) and b must hold
// exactly n*sizeof(T) bytes. The result shares memory with b.
func Alias[T any](b []byte, n int) ([]T, bool) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if unsafe.Alignof(zero) != 1 || size == 0 || n < 0 {
		return nil, false
	}
	if len(b) != n*size || (n > 0 && len(b)/size != n) {
		return nil, false
	}
	if n == 0 {
		return []T{}, true
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n), true
}
