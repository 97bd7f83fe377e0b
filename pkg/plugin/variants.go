package plugin

import (
	"github.com/rawbytedev/corewire/internal/common"
	"github.com/rawbytedev/corewire/pkg/wire"
)

// empty is embedded by the variants that carry no payload.
type empty struct{}

func (empty) bodySize() int           { return 0 }
func (empty) encodeBody(*wire.Writer) {}

func decodeEmpty(p Plugin) func([]byte) (Plugin, int, error) {
	return func([]byte) (Plugin, int, error) { return p, 0, nil }
}

func decodeFlag(src []byte) (bool, int, error) {
	v, n, err := wire.ReadBool(src)
	if err != nil {
		return false, 0, wire.At(err, 0, "frozen")
	}
	return v, n, nil
}

type (
	BurnDelegate              struct{ empty }
	TransferDelegate          struct{ empty }
	PermanentTransferDelegate struct{ empty }
	PermanentBurnDelegate     struct{ empty }
	AddBlocker                struct{ empty }
	ImmutableMetadata         struct{ empty }
	BubblegumV2               struct{ empty }
)

func (BurnDelegate) Type() Type              { return TypeBurnDelegate }
func (TransferDelegate) Type() Type          { return TypeTransferDelegate }
func (PermanentTransferDelegate) Type() Type { return TypePermanentTransferDelegate }
func (PermanentBurnDelegate) Type() Type     { return TypePermanentBurnDelegate }
func (AddBlocker) Type() Type                { return TypeAddBlocker }
func (ImmutableMetadata) Type() Type         { return TypeImmutableMetadata }
func (BubblegumV2) Type() Type               { return TypeBubblegumV2 }

// Royalties is the creator fee schedule of an asset or collection.
type Royalties struct {
	BasisPoints uint16
	Creators    wire.Seq[Creator]
	RuleSet     RuleSet
}

func (Royalties) Type() Type { return TypeRoyalties }

func (r Royalties) bodySize() int {
	return common.SizeU16 + r.Creators.EncodedSize() + r.RuleSet.EncodedSize()
}

func (r Royalties) encodeBody(w *wire.Writer) {
	w.U16(r.BasisPoints)
	w.Advance(r.Creators.EncodeTo(w.Rest()))
	w.Advance(r.RuleSet.EncodeTo(w.Rest()))
}

func decodeRoyalties(src []byte) (Plugin, int, error) {
	var r Royalties
	bps, off, err := wire.ReadU16(src)
	if err != nil {
		return nil, 0, wire.At(err, 0, "basis points")
	}
	creators, n, err := wire.ReadSeq(src[off:], DecodeCreator)
	if err != nil {
		return nil, 0, wire.At(err, off, "creators")
	}
	off += n
	rs, n, err := DecodeRuleSet(src[off:])
	if err != nil {
		return nil, 0, wire.At(err, off, "rule set")
	}
	r.BasisPoints, r.Creators, r.RuleSet = bps, creators, rs
	return r, off + n, nil
}

type FreezeDelegate struct{ Frozen bool }

func (FreezeDelegate) Type() Type                  { return TypeFreezeDelegate }
func (FreezeDelegate) bodySize() int               { return common.SizeBool }
func (f FreezeDelegate) encodeBody(w *wire.Writer) { w.Bool(f.Frozen) }

func decodeFreezeDelegate(src []byte) (Plugin, int, error) {
	v, n, err := decodeFlag(src)
	return FreezeDelegate{Frozen: v}, n, err
}

type PermanentFreezeDelegate struct{ Frozen bool }

func (PermanentFreezeDelegate) Type() Type                  { return TypePermanentFreezeDelegate }
func (PermanentFreezeDelegate) bodySize() int               { return common.SizeBool }
func (f PermanentFreezeDelegate) encodeBody(w *wire.Writer) { w.Bool(f.Frozen) }

func decodePermanentFreezeDelegate(src []byte) (Plugin, int, error) {
	v, n, err := decodeFlag(src)
	return PermanentFreezeDelegate{Frozen: v}, n, err
}

type FreezeExecute struct{ Frozen bool }

func (FreezeExecute) Type() Type                  { return TypeFreezeExecute }
func (FreezeExecute) bodySize() int               { return common.SizeBool }
func (f FreezeExecute) encodeBody(w *wire.Writer) { w.Bool(f.Frozen) }

func decodeFreezeExecute(src []byte) (Plugin, int, error) {
	v, n, err := decodeFlag(src)
	return FreezeExecute{Frozen: v}, n, err
}

type PermanentFreezeExecute struct{ Frozen bool }

func (PermanentFreezeExecute) Type() Type                  { return TypePermanentFreezeExecute }
func (PermanentFreezeExecute) bodySize() int               { return common.SizeBool }
func (f PermanentFreezeExecute) encodeBody(w *wire.Writer) { w.Bool(f.Frozen) }

func decodePermanentFreezeExecute(src []byte) (Plugin, int, error) {
	v, n, err := decodeFlag(src)
	return PermanentFreezeExecute{Frozen: v}, n, err
}

type UpdateDelegate struct {
	AdditionalDelegates wire.Seq[wire.Pubkey]
}

func (UpdateDelegate) Type() Type      { return TypeUpdateDelegate }
func (u UpdateDelegate) bodySize() int { return u.AdditionalDelegates.EncodedSize() }

func (u UpdateDelegate) encodeBody(w *wire.Writer) {
	w.Advance(u.AdditionalDelegates.EncodeTo(w.Rest()))
}

func decodeUpdateDelegate(src []byte) (Plugin, int, error) {
	d, n, err := wire.ReadSeq(src, wire.ReadPubkey)
	if err != nil {
		return nil, 0, wire.At(err, 0, "additional delegates")
	}
	return UpdateDelegate{AdditionalDelegates: d}, n, nil
}

// Attribute is one key/value pair. Both sides are opaque bytes.
type Attribute struct {
	Key   wire.Bytes
	Value wire.Bytes
}

func (a Attribute) EncodedSize() int { return a.Key.EncodedSize() + a.Value.EncodedSize() }

func (a Attribute) EncodeTo(dst []byte) (int, error) {
	w := wire.NewWriter(dst)
	w.Bytes(a.Key)
	w.Bytes(a.Value)
	return w.Result()
}

func DecodeAttribute(src []byte) (Attribute, int, error) {
	k, n, err := wire.ReadBytes(src)
	if err != nil {
		return Attribute{}, 0, wire.At(err, 0, "attribute key")
	}
	v, m, err := wire.ReadBytes(src[n:])
	if err != nil {
		return Attribute{}, 0, wire.At(err, n, "attribute value")
	}
	return Attribute{Key: k, Value: v}, n + m, nil
}

type Attributes struct {
	List wire.Seq[Attribute]
}

func (Attributes) Type() Type                  { return TypeAttributes }
func (a Attributes) bodySize() int             { return a.List.EncodedSize() }
func (a Attributes) encodeBody(w *wire.Writer) { w.Advance(a.List.EncodeTo(w.Rest())) }

func decodeAttributes(src []byte) (Plugin, int, error) {
	l, n, err := wire.ReadSeq(src, DecodeAttribute)
	if err != nil {
		return nil, 0, err
	}
	return Attributes{List: l}, n, nil
}

type Edition struct{ Number uint32 }

func (Edition) Type() Type                  { return TypeEdition }
func (Edition) bodySize() int               { return common.SizeU32 }
func (e Edition) encodeBody(w *wire.Writer) { w.U32(e.Number) }

func decodeEdition(src []byte) (Plugin, int, error) {
	v, n, err := wire.ReadU32(src)
	if err != nil {
		return nil, 0, wire.At(err, 0, "edition number")
	}
	return Edition{Number: v}, n, nil
}

type MasterEdition struct {
	MaxSupply wire.Option[wire.U32]
	Name      wire.Option[wire.Bytes]
	URI       wire.Option[wire.Bytes]
}

func (MasterEdition) Type() Type { return TypeMasterEdition }

func (m MasterEdition) bodySize() int {
	return m.MaxSupply.EncodedSize() + m.Name.EncodedSize() + m.URI.EncodedSize()
}

func (m MasterEdition) encodeBody(w *wire.Writer) {
	w.Advance(m.MaxSupply.EncodeTo(w.Rest()))
	w.Advance(m.Name.EncodeTo(w.Rest()))
	w.Advance(m.URI.EncodeTo(w.Rest()))
}

func decodeMasterEdition(src []byte) (Plugin, int, error) {
	var m MasterEdition
	var off, n int
	var err error
	if m.MaxSupply, n, err = wire.ReadOption(src, wire.DecodeU32); err != nil {
		return nil, 0, wire.At(err, 0, "max supply")
	}
	off += n
	if m.Name, n, err = wire.ReadOption(src[off:], wire.ReadBytes); err != nil {
		return nil, 0, wire.At(err, off, "name")
	}
	off += n
	if m.URI, n, err = wire.ReadOption(src[off:], wire.ReadBytes); err != nil {
		return nil, 0, wire.At(err, off, "uri")
	}
	return m, off + n, nil
}

type VerifiedCreatorsSignature struct {
	Address  wire.Pubkey
	Verified bool
}

func (VerifiedCreatorsSignature) EncodedSize() int { return wire.PubkeySize + common.SizeBool }

func (s VerifiedCreatorsSignature) EncodeTo(dst []byte) (int, error) {
	w := wire.NewWriter(dst)
	w.Pubkey(s.Address)
	w.Bool(s.Verified)
	return w.Result()
}

func DecodeVerifiedCreatorsSignature(src []byte) (VerifiedCreatorsSignature, int, error) {
	addr, n, err := wire.ReadPubkey(src)
	if err != nil {
		return VerifiedCreatorsSignature{}, 0, err
	}
	v, m, err := wire.ReadBool(src[n:])
	if err != nil {
		return VerifiedCreatorsSignature{}, 0, wire.At(err, n, "verified")
	}
	return VerifiedCreatorsSignature{Address: addr, Verified: v}, n + m, nil
}

type VerifiedCreators struct {
	Signatures wire.Seq[VerifiedCreatorsSignature]
}

func (VerifiedCreators) Type() Type      { return TypeVerifiedCreators }
func (v VerifiedCreators) bodySize() int { return v.Signatures.EncodedSize() }

func (v VerifiedCreators) encodeBody(w *wire.Writer) {
	w.Advance(v.Signatures.EncodeTo(w.Rest()))
}

func decodeVerifiedCreators(src []byte) (Plugin, int, error) {
	s, n, err := wire.ReadSeq(src, DecodeVerifiedCreatorsSignature)
	if err != nil {
		return nil, 0, err
	}
	return VerifiedCreators{Signatures: s}, n, nil
}

type AutographSignature struct {
	Address wire.Pubkey
	Message wire.Bytes
}

func (s AutographSignature) EncodedSize() int { return wire.PubkeySize + s.Message.EncodedSize() }

func (s AutographSignature) EncodeTo(dst []byte) (int, error) {
	w := wire.NewWriter(dst)
	w.Pubkey(s.Address)
	w.Bytes(s.Message)
	return w.Result()
}

func DecodeAutographSignature(src []byte) (AutographSignature, int, error) {
	addr, n, err := wire.ReadPubkey(src)
	if err != nil {
		return AutographSignature{}, 0, err
	}
	msg, m, err := wire.ReadBytes(src[n:])
	if err != nil {
		return AutographSignature{}, 0, wire.At(err, n, "message")
	}
	return AutographSignature{Address: addr, Message: msg}, n + m, nil
}

type Autograph struct {
	Signatures wire.Seq[AutographSignature]
}

func (Autograph) Type() Type      { return TypeAutograph }
func (a Autograph) bodySize() int { return a.Signatures.EncodedSize() }

func (a Autograph) encodeBody(w *wire.Writer) {
	w.Advance(a.Signatures.EncodeTo(w.Rest()))
}

func decodeAutograph(src []byte) (Plugin, int, error) {
	s, n, err := wire.ReadSeq(src, DecodeAutographSignature)
	if err != nil {
		return nil, 0, err
	}
	return Autograph{Signatures: s}, n, nil
}
