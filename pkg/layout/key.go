package layout

import (
	"fmt"

	"github.com/rawbytedev/corewire/internal/common"
	"github.com/rawbytedev/corewire/pkg/wire"
)

// Key is the record-kind byte every top-level record starts with.
type Key uint8

const (
	KeyUninitialized Key = iota
	KeyAssetV1
	KeyHashedAssetV1
	KeyPluginHeaderV1
	KeyPluginRegistryV1
	KeyCollectionV1
)

var keyNames = [...]string{
	KeyUninitialized:    "Uninitialized",
	KeyAssetV1:          "AssetV1",
	KeyHashedAssetV1:    "HashedAssetV1",
	KeyPluginHeaderV1:   "PluginHeaderV1",
	KeyPluginRegistryV1: "PluginRegistryV1",
	KeyCollectionV1:     "CollectionV1",
}

func (k Key) Valid() bool { return int(k) < len(keyNames) }

func (k Key) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Key(%d)", uint8(k))
	}
	return keyNames[k]
}

func (Key) EncodedSize() int { return common.SizeU8 }

func (k Key) EncodeTo(dst []byte) (int, error) {
	if !k.Valid() {
		return 0, wire.BadTag("key", byte(k))
	}
	return wire.PutTag(dst, byte(k))
}

// DecodeKey reads a record-kind byte and rejects values outside the known set.
func DecodeKey(src []byte) (Key, int, error) {
	b, n, err := wire.ReadU8(src)
	if err != nil {
		return 0, 0, err
	}
	if !Key(b).Valid() {
		return 0, 0, wire.At(wire.BadTag("key", b), 0, "key")
	}
	return Key(b), n, nil
}

// expectKey reads a record-kind byte that must equal want.
func expectKey(src []byte, want Key) (int, error) {
	k, n, err := DecodeKey(src)
	if err != nil {
		return 0, err
	}
	if k != want {
		return 0, &wire.DecodeError{
			Err:  fmt.Errorf("%w: found %s, want %s", wire.ErrStructuralMismatch, k, want),
			What: "key",
		}
	}
	return n, nil
}
