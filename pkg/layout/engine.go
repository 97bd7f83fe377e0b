package layout

import (
	"fmt"

	"github.com/rawbytedev/corewire/pkg/plugin"
	"github.com/rawbytedev/corewire/pkg/wire"
)

// MaxPlugins is the most plugins one record can carry. The encoder indexes
// plugins in a fixed array of this size.
const MaxPlugins = 16

// Asset is a base asset together with its plugins, in registry order.
type Asset struct {
	Base    BaseAsset
	Plugins []plugin.Entry
}

func (a Asset) EncodedSize() int { return a.Base.EncodedSize() + pluginsSize(a.Plugins) }

// EncodeTo writes the base asset and, when there are plugins, the plugin
// header, the payloads and the registry. Nothing is written when the entries
// are rejected.
func (a Asset) EncodeTo(dst []byte) (int, error) {
	if err := checkEntries(a.Plugins); err != nil {
		return 0, err
	}
	n, err := a.Base.EncodeTo(dst)
	if err != nil {
		return 0, err
	}
	return writePlugins(dst, n, a.Plugins)
}

// Collection is a base collection together with its plugins.
type Collection struct {
	Base    BaseCollection
	Plugins []plugin.Entry
}

func (c Collection) EncodedSize() int { return c.Base.EncodedSize() + pluginsSize(c.Plugins) }

func (c Collection) EncodeTo(dst []byte) (int, error) {
	if err := checkEntries(c.Plugins); err != nil {
		return 0, err
	}
	n, err := c.Base.EncodeTo(dst)
	if err != nil {
		return 0, err
	}
	return writePlugins(dst, n, c.Plugins)
}

func checkEntries(entries []plugin.Entry) error {
	if len(entries) > MaxPlugins {
		return fmt.Errorf("%w: %d plugins, at most %d", wire.ErrCapacityExceeded, len(entries), MaxPlugins)
	}
	for i := range entries {
		if entries[i].Plugin == nil {
			return fmt.Errorf("%w: plugin %d is nil", wire.ErrUnrecognizedTag, i)
		}
	}
	return nil
}

func pluginsSize(entries []plugin.Entry) int {
	if len(entries) == 0 {
		return 0
	}
	reg := Registry{}.EncodedSize()
	total := PluginHeaderSize
	for i := range entries {
		total += plugin.Size(entries[i].Plugin)
		reg += RegistryRecord{Authority: entries[i].Authority}.EncodedSize()
	}
	return total + reg
}

// writePlugins lays out the plugin section after a base record that ends at
// off and returns the total length of the record.
func writePlugins(dst []byte, off int, entries []plugin.Entry) (int, error) {
	if len(entries) == 0 {
		return off, nil
	}
	if len(entries) > MaxPlugins {
		return 0, fmt.Errorf("%w: %d plugins, at most %d", wire.ErrCapacityExceeded, len(entries), MaxPlugins)
	}

	w := wire.NewWriter(dst)
	w.Skip(off)
	header := w.Len()
	w.Skip(PluginHeaderSize)

	var records [MaxPlugins]RegistryRecord
	for i := range entries {
		records[i] = RegistryRecord{
			Type:      entries[i].Plugin.Type(),
			Authority: entries[i].Authority,
			Offset:    uint64(w.Len()),
		}
		w.Advance(plugin.Encode(w.Rest(), entries[i].Plugin))
	}

	registry := w.Len()
	w.Advance(Registry{Records: records[:len(entries)]}.EncodeTo(w.Rest()))
	total, err := w.Result()
	if err != nil {
		return 0, err
	}

	if _, err := (PluginHeader{RegistryOffset: uint64(registry)}).EncodeTo(dst[header:]); err != nil {
		return 0, err
	}
	return total, nil
}
