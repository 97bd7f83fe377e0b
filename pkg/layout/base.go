package layout

import (
	"github.com/rawbytedev/corewire/internal/common"
	"github.com/rawbytedev/corewire/pkg/plugin"
	"github.com/rawbytedev/corewire/pkg/wire"
)

// BaseAsset is the fixed part of an asset record. Its key is always
// KeyAssetV1.
type BaseAsset struct {
	Owner           wire.Pubkey
	UpdateAuthority plugin.UpdateAuthority
	Name            wire.Bytes
	URI             wire.Bytes
	Seq             wire.Option[wire.U64]
}

func (b BaseAsset) EncodedSize() int {
	return common.SizeU8 + wire.PubkeySize + b.UpdateAuthority.EncodedSize() +
		b.Name.EncodedSize() + b.URI.EncodedSize() + b.Seq.EncodedSize()
}

func (b BaseAsset) EncodeTo(dst []byte) (int, error) {
	w := wire.NewWriter(dst)
	w.U8(byte(KeyAssetV1))
	w.Pubkey(b.Owner)
	w.Advance(b.UpdateAuthority.EncodeTo(w.Rest()))
	w.Bytes(b.Name)
	w.Bytes(b.URI)
	w.Advance(b.Seq.EncodeTo(w.Rest()))
	return w.Result()
}

func DecodeBaseAsset(src []byte) (BaseAsset, int, error) {
	var b BaseAsset
	off, err := expectKey(src, KeyAssetV1)
	if err != nil {
		return b, 0, err
	}
	var n int
	if b.Owner, n, err = wire.ReadPubkey(src[off:]); err != nil {
		return BaseAsset{}, 0, wire.At(err, off, "owner")
	}
	off += n
	if b.UpdateAuthority, n, err = plugin.DecodeUpdateAuthority(src[off:]); err != nil {
		return BaseAsset{}, 0, wire.At(err, off, "update authority")
	}
	off += n
	if b.Name, n, err = wire.ReadBytes(src[off:]); err != nil {
		return BaseAsset{}, 0, wire.At(err, off, "name")
	}
	off += n
	if b.URI, n, err = wire.ReadBytes(src[off:]); err != nil {
		return BaseAsset{}, 0, wire.At(err, off, "uri")
	}
	off += n
	if b.Seq, n, err = wire.ReadOption(src[off:], wire.DecodeU64); err != nil {
		return BaseAsset{}, 0, wire.At(err, off, "seq")
	}
	return b, off + n, nil
}

// field is one step of a size-only walk over a record.
type field struct {
	what string
	skip wire.SkipFunc
}

var (
	skipPubkey   = wire.SkipFixed(wire.PubkeySize)
	skipU64      = wire.SkipFixed(common.SizeU64)
	skipCounters = wire.SkipFixed(2 * common.SizeU32)

	baseAssetFields = [...]field{
		{"owner", skipPubkey},
		{"update authority", plugin.SkipUpdateAuthority},
		{"name", wire.SkipBytes},
		{"uri", wire.SkipBytes},
		{"seq", func(src []byte) (int, error) { return wire.SkipOption(src, skipU64) }},
	}
	baseCollectionFields = [...]field{
		{"update authority", skipPubkey},
		{"name", wire.SkipBytes},
		{"uri", wire.SkipBytes},
		{"counters", skipCounters},
	}
)

func skipFields(src []byte, off int, fields []field) (int, error) {
	for _, f := range fields {
		n, err := f.skip(src[off:])
		if err != nil {
			return 0, wire.At(err, off, f.what)
		}
		off += n
	}
	return off, nil
}

// SkipBaseAsset returns the width of the base asset at the front of src
// without materializing any of its fields.
func SkipBaseAsset(src []byte) (int, error) {
	off, err := expectKey(src, KeyAssetV1)
	if err != nil {
		return 0, err
	}
	return skipFields(src, off, baseAssetFields[:])
}

// BaseCollection is the fixed part of a collection record. Its key is always
// KeyCollectionV1.
type BaseCollection struct {
	UpdateAuthority wire.Pubkey
	Name            wire.Bytes
	URI             wire.Bytes
	NumMinted       uint32
	CurrentSize     uint32
}

func (b BaseCollection) EncodedSize() int {
	return common.SizeU8 + wire.PubkeySize + b.Name.EncodedSize() + b.URI.EncodedSize() +
		2*common.SizeU32
}

func (b BaseCollection) EncodeTo(dst []byte) (int, error) {
	w := wire.NewWriter(dst)
	w.U8(byte(KeyCollectionV1))
	w.Pubkey(b.UpdateAuthority)
	w.Bytes(b.Name)
	w.Bytes(b.URI)
	w.U32(b.NumMinted)
	w.U32(b.CurrentSize)
	return w.Result()
}

func DecodeBaseCollection(src []byte) (BaseCollection, int, error) {
	var b BaseCollection
	off, err := expectKey(src, KeyCollectionV1)
	if err != nil {
		return b, 0, err
	}
	var n int
	if b.UpdateAuthority, n, err = wire.ReadPubkey(src[off:]); err != nil {
		return BaseCollection{}, 0, wire.At(err, off, "update authority")
	}
	off += n
	if b.Name, n, err = wire.ReadBytes(src[off:]); err != nil {
		return BaseCollection{}, 0, wire.At(err, off, "name")
	}
	off += n
	if b.URI, n, err = wire.ReadBytes(src[off:]); err != nil {
		return BaseCollection{}, 0, wire.At(err, off, "uri")
	}
	off += n
	if b.NumMinted, n, err = wire.ReadU32(src[off:]); err != nil {
		return BaseCollection{}, 0, wire.At(err, off, "num minted")
	}
	off += n
	if b.CurrentSize, n, err = wire.ReadU32(src[off:]); err != nil {
		return BaseCollection{}, 0, wire.At(err, off, "current size")
	}
	return b, off + n, nil
}

// SkipBaseCollection returns the width of the base collection at the front of
// src without materializing any of its fields.
func SkipBaseCollection(src []byte) (int, error) {
	off, err := expectKey(src, KeyCollectionV1)
	if err != nil {
		return 0, err
	}
	return skipFields(src, off, baseCollectionFields[:])
}

// HashedAsset is a compressed asset: the key followed by the hash of its
// full state.
type HashedAsset struct {
	Hash [32]byte
}

func (HashedAsset) EncodedSize() int { return common.SizeU8 + 32 }

func (h HashedAsset) EncodeTo(dst []byte) (int, error) {
	w := wire.NewWriter(dst)
	w.U8(byte(KeyHashedAssetV1))
	w.Pubkey(wire.Pubkey(h.Hash))
	return w.Result()
}

func DecodeHashedAsset(src []byte) (HashedAsset, int, error) {
	off, err := expectKey(src, KeyHashedAssetV1)
	if err != nil {
		return HashedAsset{}, 0, err
	}
	h, n, err := wire.ReadPubkey(src[off:])
	if err != nil {
		return HashedAsset{}, 0, wire.At(err, off, "hash")
	}
	return HashedAsset{Hash: h}, off + n, nil
}
