package instruction

import (
	"fmt"

	"github.com/rawbytedev/corewire/internal/common"
	"github.com/rawbytedev/corewire/pkg/plugin"
	"github.com/rawbytedev/corewire/pkg/wire"
)

// DataState selects whether a new asset lives in an account or only in the
// ledger.
type DataState uint8

const (
	AccountState DataState = iota
	LedgerState
)

func (s DataState) String() string {
	switch s {
	case AccountState:
		return "AccountState"
	case LedgerState:
		return "LedgerState"
	}
	return fmt.Sprintf("DataState(%d)", uint8(s))
}

// Plugins is the optional plugin list of the create instructions.
type Plugins = wire.Option[wire.Seq[plugin.PluginAuthorityPair]]

// Proof is the optional compression proof of burn and transfer.
type Proof = wire.Option[plugin.CompressionProof]

type CreateAssetData struct {
	DataState DataState
	Name      wire.Bytes
	URI       wire.Bytes
	Plugins   Plugins
}

func (CreateAssetData) Discriminant() Discriminant { return CreateV1 }

func (d CreateAssetData) EncodedSize() int {
	return 2*common.SizeU8 + d.Name.EncodedSize() + d.URI.EncodedSize() + d.Plugins.EncodedSize()
}

func (d CreateAssetData) EncodeTo(dst []byte) (int, error) {
	if d.DataState > LedgerState {
		return 0, wire.BadTag("data state", byte(d.DataState))
	}
	w := wire.NewWriter(dst)
	w.U8(byte(CreateV1))
	w.U8(byte(d.DataState))
	w.Bytes(d.Name)
	w.Bytes(d.URI)
	w.Advance(d.Plugins.EncodeTo(w.Rest()))
	return w.Result()
}

type CreateCollectionData struct {
	Name    wire.Bytes
	URI     wire.Bytes
	Plugins Plugins
}

func (CreateCollectionData) Discriminant() Discriminant { return CreateCollectionV1 }

func (d CreateCollectionData) EncodedSize() int {
	return common.SizeU8 + d.Name.EncodedSize() + d.URI.EncodedSize() + d.Plugins.EncodedSize()
}

func (d CreateCollectionData) EncodeTo(dst []byte) (int, error) {
	w := wire.NewWriter(dst)
	w.U8(byte(CreateCollectionV1))
	w.Bytes(d.Name)
	w.Bytes(d.URI)
	w.Advance(d.Plugins.EncodeTo(w.Rest()))
	return w.Result()
}

// Both update-plugin payloads are the discriminant followed by one plugin.
func pluginDataSize(p plugin.Plugin) int { return common.SizeU8 + plugin.Size(p) }

func encodePluginData(dst []byte, d Discriminant, p plugin.Plugin) (int, error) {
	w := wire.NewWriter(dst)
	w.U8(byte(d))
	w.Advance(plugin.Encode(w.Rest(), p))
	return w.Result()
}

type UpdateAssetPluginData struct {
	Plugin plugin.Plugin
}

func (UpdateAssetPluginData) Discriminant() Discriminant { return UpdatePluginV1 }

func (d UpdateAssetPluginData) EncodedSize() int { return pluginDataSize(d.Plugin) }

func (d UpdateAssetPluginData) EncodeTo(dst []byte) (int, error) {
	return encodePluginData(dst, UpdatePluginV1, d.Plugin)
}

type UpdateCollectionPluginData struct {
	Plugin plugin.Plugin
}

func (UpdateCollectionPluginData) Discriminant() Discriminant { return UpdateCollectionPluginV1 }

func (d UpdateCollectionPluginData) EncodedSize() int { return pluginDataSize(d.Plugin) }

func (d UpdateCollectionPluginData) EncodeTo(dst []byte) (int, error) {
	return encodePluginData(dst, UpdateCollectionPluginV1, d.Plugin)
}

// Burn and transfer payloads are the discriminant followed by an optional
// compression proof.
func proofDataSize(p Proof) int { return common.SizeU8 + p.EncodedSize() }

func encodeProofData(dst []byte, d Discriminant, p Proof) (int, error) {
	w := wire.NewWriter(dst)
	w.U8(byte(d))
	w.Advance(p.EncodeTo(w.Rest()))
	return w.Result()
}

type BurnAssetData struct {
	CompressionProof Proof
}

func (BurnAssetData) Discriminant() Discriminant { return BurnV1 }

func (d BurnAssetData) EncodedSize() int { return proofDataSize(d.CompressionProof) }

func (d BurnAssetData) EncodeTo(dst []byte) (int, error) {
	return encodeProofData(dst, BurnV1, d.CompressionProof)
}

type BurnCollectionData struct {
	CompressionProof Proof
}

func (BurnCollectionData) Discriminant() Discriminant { return BurnCollectionV1 }

func (d BurnCollectionData) EncodedSize() int { return proofDataSize(d.CompressionProof) }

func (d BurnCollectionData) EncodeTo(dst []byte) (int, error) {
	return encodeProofData(dst, BurnCollectionV1, d.CompressionProof)
}

type TransferData struct {
	CompressionProof Proof
}

func (TransferData) Discriminant() Discriminant { return TransferV1 }

func (d TransferData) EncodedSize() int { return proofDataSize(d.CompressionProof) }

func (d TransferData) EncodeTo(dst []byte) (int, error) {
	return encodeProofData(dst, TransferV1, d.CompressionProof)
}

func readPlugins(src []byte) (Plugins, int, error) {
	return wire.ReadOption(src, func(src []byte) (wire.Seq[plugin.PluginAuthorityPair], int, error) {
		return wire.ReadSeq(src, plugin.DecodePluginAuthorityPair)
	})
}

func readProof(src []byte) (Proof, int, error) {
	return wire.ReadOption(src, plugin.DecodeCompressionProof)
}

// DecodeData reads an instruction payload back into its typed form.
func DecodeData(src []byte) (Data, int, error) {
	b, off, err := wire.ReadU8(src)
	if err != nil {
		return nil, 0, err
	}
	var (
		d Data
		n int
	)
	switch disc := Discriminant(b); disc {
	case CreateV1:
		d, n, err = decodeCreateAsset(src[off:])
	case CreateCollectionV1:
		d, n, err = decodeCreateCollection(src[off:])
	case UpdatePluginV1, UpdateCollectionPluginV1:
		var p plugin.Plugin
		p, n, err = plugin.Decode(src[off:])
		if disc == UpdatePluginV1 {
			d = UpdateAssetPluginData{Plugin: p}
		} else {
			d = UpdateCollectionPluginData{Plugin: p}
		}
	case BurnV1, BurnCollectionV1, TransferV1:
		var p Proof
		p, n, err = readProof(src[off:])
		switch disc {
		case BurnV1:
			d = BurnAssetData{CompressionProof: p}
		case BurnCollectionV1:
			d = BurnCollectionData{CompressionProof: p}
		default:
			d = TransferData{CompressionProof: p}
		}
	default:
		return nil, 0, wire.At(wire.BadTag("instruction", b), 0, "discriminant")
	}
	if err != nil {
		return nil, 0, wire.At(err, off, Discriminant(b).String())
	}
	return d, off + n, nil
}

func decodeCreateAsset(src []byte) (CreateAssetData, int, error) {
	var d CreateAssetData
	state, off, err := wire.ReadU8(src)
	if err != nil {
		return d, 0, err
	}
	if DataState(state) > LedgerState {
		return d, 0, wire.At(wire.BadTag("data state", state), 0, "data state")
	}
	d.DataState = DataState(state)
	var n int
	if d.Name, n, err = wire.ReadBytes(src[off:]); err != nil {
		return CreateAssetData{}, 0, wire.At(err, off, "name")
	}
	off += n
	if d.URI, n, err = wire.ReadBytes(src[off:]); err != nil {
		return CreateAssetData{}, 0, wire.At(err, off, "uri")
	}
	off += n
	if d.Plugins, n, err = readPlugins(src[off:]); err != nil {
		return CreateAssetData{}, 0, wire.At(err, off, "plugins")
	}
	return d, off + n, nil
}

func decodeCreateCollection(src []byte) (CreateCollectionData, int, error) {
	var d CreateCollectionData
	var off, n int
	var err error
	if d.Name, n, err = wire.ReadBytes(src); err != nil {
		return CreateCollectionData{}, 0, wire.At(err, 0, "name")
	}
	off += n
	if d.URI, n, err = wire.ReadBytes(src[off:]); err != nil {
		return CreateCollectionData{}, 0, wire.At(err, off, "uri")
	}
	off += n
	if d.Plugins, n, err = readPlugins(src[off:]); err != nil {
		return CreateCollectionData{}, 0, wire.At(err, off, "plugins")
	}
	return d, off + n, nil
}
