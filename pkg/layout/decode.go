package layout

import (
	"fmt"

	"github.com/rawbytedev/corewire/internal/common"
	"github.com/rawbytedev/corewire/pkg/plugin"
	"github.com/rawbytedev/corewire/pkg/wire"
)

// DecodeAsset reads a whole asset record. A buffer that ends right after the
// base asset has no plugins; anything after it must be a plugin header.
// Byte strings in the result alias src.
func DecodeAsset(src []byte) (Asset, int, error) {
	base, off, err := DecodeBaseAsset(src)
	if err != nil {
		return Asset{}, 0, err
	}
	entries, end, err := readPlugins(src, off)
	if err != nil {
		return Asset{}, 0, err
	}
	return Asset{Base: base, Plugins: entries}, end, nil
}

// DecodeCollection is DecodeAsset for collection records.
func DecodeCollection(src []byte) (Collection, int, error) {
	base, off, err := DecodeBaseCollection(src)
	if err != nil {
		return Collection{}, 0, err
	}
	entries, end, err := readPlugins(src, off)
	if err != nil {
		return Collection{}, 0, err
	}
	return Collection{Base: base, Plugins: entries}, end, nil
}

// readPlugins follows the header at off to the registry and decodes every
// plugin it points at. It returns the end of the furthest structure read.
func readPlugins(src []byte, off int) ([]plugin.Entry, int, error) {
	if off == len(src) {
		return nil, off, nil
	}
	hdr, n, err := DecodePluginHeader(src[off:])
	if err != nil {
		return nil, 0, wire.At(err, off, "plugin header")
	}
	end := off + n

	at, err := checkOffset(len(src), hdr.RegistryOffset, common.SizeU8, "registry")
	if err != nil {
		return nil, 0, err
	}
	reg, n, err := DecodeRegistry(src[at:])
	if err != nil {
		return nil, 0, wire.At(err, at, "registry")
	}
	end = max(end, at+n)

	entries := make([]plugin.Entry, 0, len(reg.Records))
	for i, rec := range reg.Records {
		pos, err := checkOffset(len(src), rec.Offset, common.SizeU8, "plugin")
		if err != nil {
			return nil, 0, err
		}
		p, n, err := plugin.Decode(src[pos:])
		if err != nil {
			return nil, 0, wire.At(err, pos, fmt.Sprintf("plugin %d", i))
		}
		if p.Type() != rec.Type {
			return nil, 0, &wire.DecodeError{
				Err:    fmt.Errorf("%w: registry says %s, payload is %s", wire.ErrStructuralMismatch, rec.Type, p.Type()),
				Offset: pos,
				What:   fmt.Sprintf("plugin %d", i),
			}
		}
		entries = append(entries, plugin.Entry{Plugin: p, Authority: rec.Authority})
		end = max(end, pos+n)
	}
	return entries, end, nil
}

// SkipBase returns the width of the base record of the given kind at the
// front of src.
func SkipBase(src []byte, kind Key) (int, error) {
	switch kind {
	case KeyAssetV1:
		return SkipBaseAsset(src)
	case KeyCollectionV1:
		return SkipBaseCollection(src)
	}
	if !kind.Valid() {
		return 0, wire.BadTag("key", byte(kind))
	}
	return 0, fmt.Errorf("%w: %s records carry no plugins", wire.ErrStructuralMismatch, kind)
}

// LocatePlugin finds the first registry record of type t in the record of
// the given kind held in buf, without decoding the base record, the registry
// or any plugin. It returns the absolute offset of the plugin's tag. A
// record without a plugin section, or without a plugin of that type, is
// reported with found == false and no error.
func LocatePlugin(buf []byte, kind Key, t plugin.Type) (offset int, found bool, err error) {
	off, err := SkipBase(buf, kind)
	if err != nil {
		return 0, false, err
	}
	if off == len(buf) {
		return 0, false, nil
	}
	hdr, _, err := DecodePluginHeader(buf[off:])
	if err != nil {
		return 0, false, wire.At(err, off, "plugin header")
	}
	at, err := checkOffset(len(buf), hdr.RegistryOffset, common.SizeU8, "registry")
	if err != nil {
		return 0, false, err
	}
	n, err := expectKey(buf[at:], KeyPluginRegistryV1)
	if err != nil {
		return 0, false, wire.At(err, at, "registry")
	}
	at += n
	count, n, err := wire.ReadCount(buf[at:])
	if err != nil {
		return 0, false, wire.At(err, at, "registry count")
	}
	at += n

	for i := 0; i < count; i++ {
		typ, n, err := wire.ReadU8(buf[at:])
		if err != nil {
			return 0, false, wire.At(err, at, "plugin type")
		}
		if !plugin.Type(typ).Valid() {
			return 0, false, wire.At(wire.BadTag("plugin type", typ), at, "plugin type")
		}
		at += n
		if n, err = plugin.SkipAuthority(buf[at:]); err != nil {
			return 0, false, wire.At(err, at, "authority")
		}
		at += n
		pos, n, err := wire.ReadU64(buf[at:])
		if err != nil {
			return 0, false, wire.At(err, at, "plugin offset")
		}
		at += n
		if plugin.Type(typ) != t {
			continue
		}
		p, err := checkOffset(len(buf), pos, common.SizeU8, "plugin")
		if err != nil {
			return 0, false, err
		}
		return p, true, nil
	}
	return 0, false, nil
}
