package main

import (
	"encoding/hex"

	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"
)

// zstdMagic opens every zstd frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

func compress(raw []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil), nil
}

func decompress(raw []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(raw, nil)
}

func isCompressed(raw []byte) bool {
	return len(raw) >= len(zstdMagic) && string(raw[:len(zstdMagic)]) == string(zstdMagic)
}

// digest is the blake3 hash of an encoded record, printed so fixtures can be
// compared without diffing binaries.
func digest(record []byte) string {
	sum := blake3.Sum256(record)
	return hex.EncodeToString(sum[:])
}
