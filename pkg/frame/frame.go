// Package frame wraps an encoded record in a checksummed file container so
// fixtures and captured accounts can be stored and moved around safely.
//
//	0      2        3       4            8          len-4    len
//	| "CW" | version | flags | u32 length | payload | crc32 |
//
// length counts the whole frame including the checksum. The IEEE CRC-32
// covers every byte after the magic up to the checksum itself.
package frame

import (
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/rawbytedev/corewire/internal/common"
	"github.com/rawbytedev/corewire/pkg/wire"
)

const (
	Version = 1

	// Overhead is the size of a frame around an empty payload.
	Overhead = headerSize + common.SizeU32

	headerSize = 2 + 2*common.SizeU8 + common.SizeU32
)

// Flags describe how the payload was stored.
type Flags uint8

const (
	// Compressed marks a zstd payload.
	Compressed Flags = 1 << iota
)

var magic = [2]byte{'C', 'W'}

var (
	ErrNotFrame = errors.New("not a record frame")
	ErrChecksum = errors.New("frame checksum mismatch")
	ErrVersion  = errors.New("unsupported frame version")
)

// IsFrame reports whether buf starts with the frame magic. No record kind
// byte collides with it.
func IsFrame(buf []byte) bool {
	return len(buf) >= len(magic) && buf[0] == magic[0] && buf[1] == magic[1]
}

// Size is the framed size of a payload of n bytes.
func Size(n int) int { return Overhead + n }

// Encode writes payload into dst as a single frame.
func Encode(dst []byte, payload []byte, flags Flags) (int, error) {
	total := Size(len(payload))
	if uint64(total) > uint64(^uint32(0)) {
		return 0, fmt.Errorf("%w: payload of %d bytes", wire.ErrCapacityExceeded, len(payload))
	}
	w := wire.NewWriter(dst)
	w.U8(magic[0])
	w.U8(magic[1])
	w.U8(Version)
	w.U8(byte(flags))
	w.U32(uint32(total))
	w.Raw(payload)
	if err := w.Err(); err != nil {
		return 0, err
	}
	body := dst[len(magic) : total-common.SizeU32]
	w.U32(crc32.ChecksumIEEE(body))
	return w.Result()
}

// Append frames payload onto the end of dst and returns the extended slice.
func Append(dst []byte, payload []byte, flags Flags) ([]byte, error) {
	start := len(dst)
	dst = append(dst, make([]byte, Size(len(payload)))...)
	n, err := Encode(dst[start:], payload, flags)
	if err != nil {
		return dst[:start], err
	}
	return dst[:start+n], nil
}

// Decode validates the frame at the front of src and returns a view of its
// payload and the total frame length.
func Decode(src []byte) (payload []byte, flags Flags, n int, err error) {
	if !IsFrame(src) {
		return nil, 0, 0, ErrNotFrame
	}
	if len(src) < headerSize {
		return nil, 0, 0, wire.At(wire.ErrTruncatedInput, 0, "frame header")
	}
	if v := src[2]; v != Version {
		return nil, 0, 0, fmt.Errorf("%w: %d", ErrVersion, v)
	}
	flags = Flags(src[3])
	length := common.U32(src[4:])
	if length < Overhead || uint64(length) > uint64(len(src)) {
		return nil, 0, 0, wire.At(fmt.Errorf("%w: frame claims %d bytes, have %d",
			wire.ErrTruncatedInput, length, len(src)), 4, "frame length")
	}
	end := int(length) - common.SizeU32
	want := common.U32(src[end:])
	if got := crc32.ChecksumIEEE(src[len(magic):end]); got != want {
		return nil, 0, 0, fmt.Errorf("%w: got %08x, want %08x", ErrChecksum, got, want)
	}
	return src[headerSize:end:end], flags, int(length), nil
}
