package wire

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// PubkeySize is the width of an identity on the wire.
const PubkeySize = 32

// Pubkey is an opaque 32-byte identity. The codec never interprets it.
type Pubkey [PubkeySize]byte

func (Pubkey) EncodedSize() int { return PubkeySize }

func (p Pubkey) EncodeTo(dst []byte) (int, error) {
	if len(dst) < PubkeySize {
		return 0, shortBuffer(PubkeySize, len(dst))
	}
	copy(dst, p[:])
	return PubkeySize, nil
}

// String renders the identity in base58, the form used by the external program's tooling.
func (p Pubkey) String() string { return base58.Encode(p[:]) }

// ParsePubkey decodes a base58 identity.
func ParsePubkey(s string) (Pubkey, error) {
	var p Pubkey
	raw, err := base58.Decode(s)
	if err != nil {
		return p, fmt.Errorf("parsing pubkey %q: %w", s, err)
	}
	if len(raw) != PubkeySize {
		return p, fmt.Errorf("pubkey %q is %d bytes, want %d", s, len(raw), PubkeySize)
	}
	copy(p[:], raw)
	return p, nil
}

// MustParsePubkey is ParsePubkey for compile-time constants.
func MustParsePubkey(s string) Pubkey {
	p, err := ParsePubkey(s)
	if err != nil {
		panic(err)
	}
	return p
}
