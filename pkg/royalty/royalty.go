// Package royalty reads the royalty schedule out of an encoded asset or
// collection without decoding the rest of the record.
package royalty

import (
	"fmt"

	"github.com/rawbytedev/corewire/internal/common"
	"github.com/rawbytedev/corewire/pkg/layout"
	"github.com/rawbytedev/corewire/pkg/plugin"
	"github.com/rawbytedev/corewire/pkg/wire"
)

// Schedule is a royalty fee and its recipients. Creators aliases the buffer
// it was extracted from.
type Schedule struct {
	BasisPoints uint16
	Creators    []plugin.Creator
}

// Extract returns the schedule of the first royalties plugin in the
// registry of buf, which must hold a record of the given kind. A record with
// no plugin section or no royalties plugin yields a zero schedule with an
// empty creator list.
func Extract(buf []byte, kind layout.Key) (Schedule, error) {
	at, found, err := layout.LocatePlugin(buf, kind, plugin.TypeRoyalties)
	if err != nil {
		return Schedule{}, err
	}
	if !found {
		return Schedule{Creators: []plugin.Creator{}}, nil
	}
	return readRoyalties(buf, at)
}

func ExtractAsset(buf []byte) (Schedule, error) { return Extract(buf, layout.KeyAssetV1) }

func ExtractCollection(buf []byte) (Schedule, error) { return Extract(buf, layout.KeyCollectionV1) }

// readRoyalties reads the royalties payload whose tag sits at buf[at].
func readRoyalties(buf []byte, at int) (Schedule, error) {
	tag, n, err := wire.ReadU8(buf[at:])
	if err != nil {
		return Schedule{}, wire.At(err, at, "plugin tag")
	}
	if plugin.Type(tag) != plugin.TypeRoyalties {
		return Schedule{}, &wire.DecodeError{
			Err:    fmt.Errorf("%w: registry points at %s, not royalties", wire.ErrStructuralMismatch, plugin.Type(tag)),
			Offset: at,
			What:   "plugin tag",
		}
	}
	at += n

	bps, n, err := wire.ReadU16(buf[at:])
	if err != nil {
		return Schedule{}, wire.At(err, at, "basis points")
	}
	at += n
	count, n, err := wire.ReadU32(buf[at:])
	if err != nil {
		return Schedule{}, wire.At(err, at, "creator count")
	}
	at += n

	width := uint64(count) * plugin.CreatorSize
	if !common.Fits(len(buf), uint64(at), width) {
		return Schedule{}, &wire.DecodeError{
			Err:    fmt.Errorf("%w: %d creators need %d bytes, have %d", wire.ErrTruncatedInput, count, width, len(buf)-at),
			Offset: at,
			What:   "creators",
		}
	}
	end := at + int(width)
	creators, err := plugin.CreatorsView(buf[at:end:end])
	if err != nil {
		return Schedule{}, wire.At(err, at, "creators")
	}
	return Schedule{BasisPoints: bps, Creators: creators}, nil
}
