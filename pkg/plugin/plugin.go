package plugin

import (
	"fmt"

	"github.com/rawbytedev/corewire/internal/common"
	"github.com/rawbytedev/corewire/pkg/wire"
)

// Type is the plugin discriminant. The same number is the plugin's tag and
// the plugin-type byte of its registry record.
type Type uint8

const (
	TypeRoyalties Type = iota
	TypeFreezeDelegate
	TypeBurnDelegate
	TypeTransferDelegate
	TypeUpdateDelegate
	TypePermanentFreezeDelegate
	TypeAttributes
	TypePermanentTransferDelegate
	TypePermanentBurnDelegate
	TypeEdition
	TypeMasterEdition
	TypeAddBlocker
	TypeImmutableMetadata
	TypeVerifiedCreators
	TypeAutograph
	TypeBubblegumV2
	TypeFreezeExecute
	TypePermanentFreezeExecute
)

type variant struct {
	name   string
	decode func(src []byte) (Plugin, int, error)
}

var variants = [...]variant{
	TypeRoyalties:                 {"Royalties", decodeRoyalties},
	TypeFreezeDelegate:            {"FreezeDelegate", decodeFreezeDelegate},
	TypeBurnDelegate:              {"BurnDelegate", decodeEmpty(BurnDelegate{})},
	TypeTransferDelegate:          {"TransferDelegate", decodeEmpty(TransferDelegate{})},
	TypeUpdateDelegate:            {"UpdateDelegate", decodeUpdateDelegate},
	TypePermanentFreezeDelegate:   {"PermanentFreezeDelegate", decodePermanentFreezeDelegate},
	TypeAttributes:                {"Attributes", decodeAttributes},
	TypePermanentTransferDelegate: {"PermanentTransferDelegate", decodeEmpty(PermanentTransferDelegate{})},
	TypePermanentBurnDelegate:     {"PermanentBurnDelegate", decodeEmpty(PermanentBurnDelegate{})},
	TypeEdition:                   {"Edition", decodeEdition},
	TypeMasterEdition:             {"MasterEdition", decodeMasterEdition},
	TypeAddBlocker:                {"AddBlocker", decodeEmpty(AddBlocker{})},
	TypeImmutableMetadata:         {"ImmutableMetadata", decodeEmpty(ImmutableMetadata{})},
	TypeVerifiedCreators:          {"VerifiedCreators", decodeVerifiedCreators},
	TypeAutograph:                 {"Autograph", decodeAutograph},
	TypeBubblegumV2:               {"BubblegumV2", decodeEmpty(BubblegumV2{})},
	TypeFreezeExecute:             {"FreezeExecute", decodeFreezeExecute},
	TypePermanentFreezeExecute:    {"PermanentFreezeExecute", decodePermanentFreezeExecute},
}

// NumTypes is the number of known plugin types.
const NumTypes = len(variants)

func (t Type) Valid() bool { return int(t) < NumTypes }

func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("plugin(%d)", uint8(t))
	}
	return variants[t].name
}

// Plugin is one of the variant structs in this package. The set is closed.
type Plugin interface {
	Type() Type
	bodySize() int
	encodeBody(w *wire.Writer)
}

// Size is the encoded width of p including its tag.
func Size(p Plugin) int {
	if p == nil {
		return common.SizeU8
	}
	return common.SizeU8 + p.bodySize()
}

// Encode writes p's tag and payload at dst[0:].
func Encode(dst []byte, p Plugin) (int, error) {
	if p == nil {
		return 0, fmt.Errorf("%w: nil plugin", wire.ErrUnrecognizedTag)
	}
	t := p.Type()
	if !t.Valid() {
		return 0, wire.BadTag("plugin", byte(t))
	}
	w := wire.NewWriter(dst)
	w.U8(byte(t))
	p.encodeBody(&w)
	return w.Result()
}

// Decode reads one tagged plugin from the front of src.
func Decode(src []byte) (Plugin, int, error) {
	tag, n, err := wire.ReadU8(src)
	if err != nil {
		return nil, 0, err
	}
	if !Type(tag).Valid() {
		return nil, 0, wire.At(wire.BadTag("plugin", tag), 0, "plugin")
	}
	p, m, err := variants[tag].decode(src[n:])
	if err != nil {
		return nil, 0, wire.At(err, n, variants[tag].name)
	}
	return p, n + m, nil
}

// Skip returns the width of the plugin at the front of src.
func Skip(src []byte) (int, error) {
	_, n, err := Decode(src)
	return n, err
}
