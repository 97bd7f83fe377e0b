package plugin

import (
	"fmt"
	"unsafe"

	"github.com/rawbytedev/corewire/internal/common"
	"github.com/rawbytedev/corewire/pkg/wire"
)

// CreatorSize is the packed width of a Creator on the wire and in memory.
const CreatorSize = wire.PubkeySize + common.SizeU8

// Creator is a royalty recipient. Its in-memory layout is the wire layout,
// which is what lets CreatorsView alias a buffer instead of decoding it.
type Creator struct {
	Address    wire.Pubkey
	Percentage uint8
}

// Both directions, so the build breaks if Creator ever gains padding.
var (
	_ [CreatorSize - unsafe.Sizeof(Creator{})]struct{}
	_ [unsafe.Sizeof(Creator{}) - CreatorSize]struct{}
)

func (Creator) EncodedSize() int { return CreatorSize }

func (c Creator) EncodeTo(dst []byte) (int, error) {
	w := wire.NewWriter(dst)
	w.Pubkey(c.Address)
	w.U8(c.Percentage)
	return w.Result()
}

func DecodeCreator(src []byte) (Creator, int, error) {
	var c Creator
	addr, n, err := wire.ReadPubkey(src)
	if err != nil {
		return c, 0, err
	}
	pct, m, err := wire.ReadU8(src[n:])
	if err != nil {
		return c, 0, wire.At(err, n, "creator percentage")
	}
	c.Address, c.Percentage = addr, pct
	return c, n + m, nil
}

// CreatorsView reinterprets b as a run of packed creators without copying.
// b must be an exact multiple of CreatorSize. The result aliases b.
func CreatorsView(b []byte) ([]Creator, error) {
	if len(b)%CreatorSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of %d-byte creators",
			wire.ErrStructuralMismatch, len(b), CreatorSize)
	}
	v, ok := common.Alias[Creator](b, len(b)/CreatorSize)
	if !ok {
		return nil, fmt.Errorf("%w: creator layout can not alias the buffer", wire.ErrStructuralMismatch)
	}
	return v, nil
}
