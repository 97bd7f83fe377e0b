package plugin

import (
	"github.com/rawbytedev/corewire/internal/common"
	"github.com/rawbytedev/corewire/pkg/wire"
)

// Entry is a plugin attached to a record together with the authority that
// controls it. The authority is stored in the registry, not next to the
// plugin payload.
type Entry struct {
	Plugin    Plugin
	Authority Authority
}

// PluginAuthorityPair is how plugins are passed to the create instructions.
// A missing authority lets the program pick the plugin's default.
type PluginAuthorityPair struct {
	Plugin    Plugin
	Authority wire.Option[Authority]
}

func (p PluginAuthorityPair) EncodedSize() int {
	return Size(p.Plugin) + p.Authority.EncodedSize()
}

func (p PluginAuthorityPair) EncodeTo(dst []byte) (int, error) {
	w := wire.NewWriter(dst)
	w.Advance(Encode(w.Rest(), p.Plugin))
	w.Advance(p.Authority.EncodeTo(w.Rest()))
	return w.Result()
}

func DecodePluginAuthorityPair(src []byte) (PluginAuthorityPair, int, error) {
	pl, n, err := Decode(src)
	if err != nil {
		return PluginAuthorityPair{}, 0, err
	}
	auth, m, err := wire.ReadOption(src[n:], DecodeAuthority)
	if err != nil {
		return PluginAuthorityPair{}, 0, wire.At(err, n, "authority")
	}
	return PluginAuthorityPair{Plugin: pl, Authority: auth}, n + m, nil
}

// HashablePluginSchema is a plugin as it is committed to in a compression
// proof: its registry index, its authority and the plugin itself.
type HashablePluginSchema struct {
	Index     uint64
	Authority Authority
	Plugin    Plugin
}

func (h HashablePluginSchema) EncodedSize() int {
	return common.SizeU64 + h.Authority.EncodedSize() + Size(h.Plugin)
}

func (h HashablePluginSchema) EncodeTo(dst []byte) (int, error) {
	w := wire.NewWriter(dst)
	w.U64(h.Index)
	w.Advance(h.Authority.EncodeTo(w.Rest()))
	w.Advance(Encode(w.Rest(), h.Plugin))
	return w.Result()
}

func DecodeHashablePluginSchema(src []byte) (HashablePluginSchema, int, error) {
	var h HashablePluginSchema
	idx, off, err := wire.ReadU64(src)
	if err != nil {
		return h, 0, wire.At(err, 0, "index")
	}
	auth, n, err := DecodeAuthority(src[off:])
	if err != nil {
		return h, 0, wire.At(err, off, "authority")
	}
	off += n
	pl, n, err := Decode(src[off:])
	if err != nil {
		return h, 0, wire.At(err, off, "plugin")
	}
	h.Index, h.Authority, h.Plugin = idx, auth, pl
	return h, off + n, nil
}

// CompressionProof is the full state of a compressed asset, supplied when
// burning or transferring it.
type CompressionProof struct {
	Owner           wire.Pubkey
	UpdateAuthority UpdateAuthority
	Name            wire.Bytes
	URI             wire.Bytes
	Seq             uint64
	Plugins         wire.Seq[HashablePluginSchema]
}

func (c CompressionProof) EncodedSize() int {
	return wire.PubkeySize + c.UpdateAuthority.EncodedSize() + c.Name.EncodedSize() +
		c.URI.EncodedSize() + common.SizeU64 + c.Plugins.EncodedSize()
}

func (c CompressionProof) EncodeTo(dst []byte) (int, error) {
	w := wire.NewWriter(dst)
	w.Pubkey(c.Owner)
	w.Advance(c.UpdateAuthority.EncodeTo(w.Rest()))
	w.Bytes(c.Name)
	w.Bytes(c.URI)
	w.U64(c.Seq)
	w.Advance(c.Plugins.EncodeTo(w.Rest()))
	return w.Result()
}

func DecodeCompressionProof(src []byte) (CompressionProof, int, error) {
	var c CompressionProof
	var off, n int
	var err error
	if c.Owner, n, err = wire.ReadPubkey(src); err != nil {
		return CompressionProof{}, 0, wire.At(err, 0, "owner")
	}
	off += n
	if c.UpdateAuthority, n, err = DecodeUpdateAuthority(src[off:]); err != nil {
		return CompressionProof{}, 0, wire.At(err, off, "update authority")
	}
	off += n
	if c.Name, n, err = wire.ReadBytes(src[off:]); err != nil {
		return CompressionProof{}, 0, wire.At(err, off, "name")
	}
	off += n
	if c.URI, n, err = wire.ReadBytes(src[off:]); err != nil {
		return CompressionProof{}, 0, wire.At(err, off, "uri")
	}
	off += n
	if c.Seq, n, err = wire.ReadU64(src[off:]); err != nil {
		return CompressionProof{}, 0, wire.At(err, off, "seq")
	}
	off += n
	if c.Plugins, n, err = wire.ReadSeq(src[off:], DecodeHashablePluginSchema); err != nil {
		return CompressionProof{}, 0, wire.At(err, off, "plugins")
	}
	return c, off + n, nil
}
