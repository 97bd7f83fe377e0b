package plugin

import (
	"fmt"

	"github.com/rawbytedev/corewire/internal/common"
	"github.com/rawbytedev/corewire/pkg/wire"
)

// kind describes one variant of a family whose payload is either empty or a
// single identity.
type kind struct {
	name    string
	payload int
}

type family struct {
	name  string
	kinds []kind
}

func (f *family) lookup(tag byte) (kind, error) {
	if int(tag) >= len(f.kinds) {
		return kind{}, wire.BadTag(f.name, tag)
	}
	return f.kinds[tag], nil
}

func (f *family) label(tag byte) string {
	if int(tag) >= len(f.kinds) {
		return fmt.Sprintf("%s(%d)", f.name, tag)
	}
	return f.kinds[tag].name
}

// size is the encoded width for tag. Unknown tags report one byte; encoding
// them fails.
func (f *family) size(tag byte) int {
	k, err := f.lookup(tag)
	if err != nil {
		return common.SizeU8
	}
	return common.SizeU8 + k.payload
}

func (f *family) encode(dst []byte, tag byte, addr wire.Pubkey) (int, error) {
	k, err := f.lookup(tag)
	if err != nil {
		return 0, err
	}
	w := wire.NewWriter(dst)
	w.U8(tag)
	if k.payload > 0 {
		w.Pubkey(addr)
	}
	return w.Result()
}

func (f *family) decode(src []byte) (byte, wire.Pubkey, int, error) {
	var addr wire.Pubkey
	tag, n, err := wire.ReadU8(src)
	if err != nil {
		return 0, addr, 0, err
	}
	k, err := f.lookup(tag)
	if err != nil {
		return 0, addr, 0, wire.At(err, 0, f.name)
	}
	if k.payload > 0 {
		addr, _, err = wire.ReadPubkey(src[n:])
		if err != nil {
			return 0, addr, 0, wire.At(err, n, f.name+" address")
		}
	}
	return tag, addr, n + k.payload, nil
}

func (f *family) skip(src []byte) (int, error) {
	tag, n, err := wire.ReadU8(src)
	if err != nil {
		return 0, err
	}
	k, err := f.lookup(tag)
	if err != nil {
		return 0, wire.At(err, 0, f.name)
	}
	if _, err := wire.SkipFixed(k.payload)(src[n:]); err != nil {
		return 0, wire.At(err, n, f.name+" address")
	}
	return n + k.payload, nil
}
