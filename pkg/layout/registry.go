package layout

import (
	"fmt"

	"github.com/rawbytedev/corewire/internal/common"
	"github.com/rawbytedev/corewire/pkg/plugin"
	"github.com/rawbytedev/corewire/pkg/wire"
)

// PluginHeaderSize is the key byte plus the u64 registry offset.
const PluginHeaderSize = common.SizeU8 + common.SizeU64

// PluginHeader follows the base record whenever the record has plugins.
type PluginHeader struct {
	RegistryOffset uint64
}

func (PluginHeader) EncodedSize() int { return PluginHeaderSize }

func (h PluginHeader) EncodeTo(dst []byte) (int, error) {
	w := wire.NewWriter(dst)
	w.U8(byte(KeyPluginHeaderV1))
	w.U64(h.RegistryOffset)
	return w.Result()
}

func DecodePluginHeader(src []byte) (PluginHeader, int, error) {
	off, err := expectKey(src, KeyPluginHeaderV1)
	if err != nil {
		return PluginHeader{}, 0, err
	}
	v, n, err := wire.ReadU64(src[off:])
	if err != nil {
		return PluginHeader{}, 0, wire.At(err, off, "registry offset")
	}
	return PluginHeader{RegistryOffset: v}, off + n, nil
}

// RegistryRecord indexes one plugin: its type, its authority and the
// absolute offset of its tagged payload.
type RegistryRecord struct {
	Type      plugin.Type
	Authority plugin.Authority
	Offset    uint64
}

func (r RegistryRecord) EncodedSize() int {
	return common.SizeU8 + r.Authority.EncodedSize() + common.SizeU64
}

func (r RegistryRecord) EncodeTo(dst []byte) (int, error) {
	w := wire.NewWriter(dst)
	w.U8(byte(r.Type))
	w.Advance(r.Authority.EncodeTo(w.Rest()))
	w.U64(r.Offset)
	return w.Result()
}

func DecodeRegistryRecord(src []byte) (RegistryRecord, int, error) {
	t, off, err := wire.ReadU8(src)
	if err != nil {
		return RegistryRecord{}, 0, err
	}
	if !plugin.Type(t).Valid() {
		return RegistryRecord{}, 0, wire.At(wire.BadTag("plugin type", t), 0, "plugin type")
	}
	auth, n, err := plugin.DecodeAuthority(src[off:])
	if err != nil {
		return RegistryRecord{}, 0, wire.At(err, off, "authority")
	}
	off += n
	at, n, err := wire.ReadU64(src[off:])
	if err != nil {
		return RegistryRecord{}, 0, wire.At(err, off, "offset")
	}
	return RegistryRecord{Type: plugin.Type(t), Authority: auth, Offset: at}, off + n, nil
}

// LifecycleCheck pairs a lifecycle event with the check flags an external
// plugin registers for it.
type LifecycleCheck struct {
	Event uint8
	Flags uint32
}

func (LifecycleCheck) EncodedSize() int { return common.SizeU8 + common.SizeU32 }

func (c LifecycleCheck) EncodeTo(dst []byte) (int, error) {
	w := wire.NewWriter(dst)
	w.U8(c.Event)
	w.U32(c.Flags)
	return w.Result()
}

func DecodeLifecycleCheck(src []byte) (LifecycleCheck, int, error) {
	e, n, err := wire.ReadU8(src)
	if err != nil {
		return LifecycleCheck{}, 0, err
	}
	f, m, err := wire.ReadU32(src[n:])
	if err != nil {
		return LifecycleCheck{}, 0, wire.At(err, n, "flags")
	}
	return LifecycleCheck{Event: e, Flags: f}, n + m, nil
}

// ExternalRegistryRecord indexes an external plugin. The encoder never
// produces them but a registry read back from elsewhere may carry some.
type ExternalRegistryRecord struct {
	Type            uint8
	Authority       plugin.Authority
	LifecycleChecks wire.Option[wire.Seq[LifecycleCheck]]
	Offset          uint64
	DataOffset      wire.Option[wire.U64]
	DataLen         wire.Option[wire.U64]
}

func (r ExternalRegistryRecord) EncodedSize() int {
	return common.SizeU8 + r.Authority.EncodedSize() + r.LifecycleChecks.EncodedSize() +
		common.SizeU64 + r.DataOffset.EncodedSize() + r.DataLen.EncodedSize()
}

func (r ExternalRegistryRecord) EncodeTo(dst []byte) (int, error) {
	w := wire.NewWriter(dst)
	w.U8(r.Type)
	w.Advance(r.Authority.EncodeTo(w.Rest()))
	w.Advance(r.LifecycleChecks.EncodeTo(w.Rest()))
	w.U64(r.Offset)
	w.Advance(r.DataOffset.EncodeTo(w.Rest()))
	w.Advance(r.DataLen.EncodeTo(w.Rest()))
	return w.Result()
}

func readChecks(src []byte) (wire.Seq[LifecycleCheck], int, error) {
	return wire.ReadSeq(src, DecodeLifecycleCheck)
}

func DecodeExternalRegistryRecord(src []byte) (ExternalRegistryRecord, int, error) {
	var r ExternalRegistryRecord
	var off, n int
	var err error
	if r.Type, n, err = wire.ReadU8(src); err != nil {
		return ExternalRegistryRecord{}, 0, err
	}
	off += n
	if r.Authority, n, err = plugin.DecodeAuthority(src[off:]); err != nil {
		return ExternalRegistryRecord{}, 0, wire.At(err, off, "authority")
	}
	off += n
	if r.LifecycleChecks, n, err = wire.ReadOption(src[off:], readChecks); err != nil {
		return ExternalRegistryRecord{}, 0, wire.At(err, off, "lifecycle checks")
	}
	off += n
	if r.Offset, n, err = wire.ReadU64(src[off:]); err != nil {
		return ExternalRegistryRecord{}, 0, wire.At(err, off, "offset")
	}
	off += n
	if r.DataOffset, n, err = wire.ReadOption(src[off:], wire.DecodeU64); err != nil {
		return ExternalRegistryRecord{}, 0, wire.At(err, off, "data offset")
	}
	off += n
	if r.DataLen, n, err = wire.ReadOption(src[off:], wire.DecodeU64); err != nil {
		return ExternalRegistryRecord{}, 0, wire.At(err, off, "data len")
	}
	return r, off + n, nil
}

// Registry is the plugin index written after the last plugin payload.
type Registry struct {
	Records  []RegistryRecord
	External []ExternalRegistryRecord
}

func (r Registry) EncodedSize() int {
	total := common.SizeU8 + 2*common.SizeLen
	for i := range r.Records {
		total += r.Records[i].EncodedSize()
	}
	for i := range r.External {
		total += r.External[i].EncodedSize()
	}
	return total
}

func (r Registry) EncodeTo(dst []byte) (int, error) {
	w := wire.NewWriter(dst)
	w.U8(byte(KeyPluginRegistryV1))
	w.Count(len(r.Records))
	for i := range r.Records {
		w.Advance(r.Records[i].EncodeTo(w.Rest()))
	}
	w.Count(len(r.External))
	for i := range r.External {
		w.Advance(r.External[i].EncodeTo(w.Rest()))
	}
	return w.Result()
}

func DecodeRegistry(src []byte) (Registry, int, error) {
	var r Registry
	off, err := expectKey(src, KeyPluginRegistryV1)
	if err != nil {
		return r, 0, err
	}
	recs, n, err := wire.ReadSeq(src[off:], DecodeRegistryRecord)
	if err != nil {
		return Registry{}, 0, wire.At(err, off, "registry")
	}
	off += n
	ext, n, err := wire.ReadSeq(src[off:], DecodeExternalRegistryRecord)
	if err != nil {
		return Registry{}, 0, wire.At(err, off, "external registry")
	}
	r.Records, r.External = recs, ext
	return r, off + n, nil
}

// checkOffset converts an offset read off the wire into a position inside a
// buffer of length size that leaves at least need bytes.
func checkOffset(size int, at uint64, need int, what string) (int, error) {
	if !common.Fits(size, at, uint64(need)) {
		return 0, &wire.DecodeError{
			Err:    fmt.Errorf("%w: %s offset %d outside %d-byte buffer", wire.ErrTruncatedInput, what, at, size),
			Offset: size,
			What:   what,
		}
	}
	return int(at), nil
}
