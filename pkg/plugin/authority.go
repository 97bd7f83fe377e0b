package plugin

import "github.com/rawbytedev/corewire/pkg/wire"

// AuthorityKind numbers the plugin authority family.
type AuthorityKind uint8

const (
	AuthorityNone AuthorityKind = iota
	AuthorityOwner
	AuthorityUpdateAuthority
	AuthorityAddress
)

var authorities = family{
	name: "authority",
	kinds: []kind{
		AuthorityNone:            {"None", 0},
		AuthorityOwner:           {"Owner", 0},
		AuthorityUpdateAuthority: {"UpdateAuthority", 0},
		AuthorityAddress:         {"Address", wire.PubkeySize},
	},
}

// Authority names who may act on a plugin. Address is only meaningful for
// AuthorityAddress.
type Authority struct {
	Kind    AuthorityKind
	Address wire.Pubkey
}

func NoAuthority() Authority { return Authority{Kind: AuthorityNone} }

func OwnerAuthority() Authority { return Authority{Kind: AuthorityOwner} }

func UpdateAuthorityAuthority() Authority { return Authority{Kind: AuthorityUpdateAuthority} }

func AddressAuthority(addr wire.Pubkey) Authority {
	return Authority{Kind: AuthorityAddress, Address: addr}
}

func (k AuthorityKind) String() string { return authorities.label(byte(k)) }

func (a Authority) String() string {
	if a.Kind == AuthorityAddress {
		return "Address(" + a.Address.String() + ")"
	}
	return a.Kind.String()
}

func (a Authority) EncodedSize() int { return authorities.size(byte(a.Kind)) }

func (a Authority) EncodeTo(dst []byte) (int, error) {
	return authorities.encode(dst, byte(a.Kind), a.Address)
}

func DecodeAuthority(src []byte) (Authority, int, error) {
	tag, addr, n, err := authorities.decode(src)
	if err != nil {
		return Authority{}, 0, err
	}
	return Authority{Kind: AuthorityKind(tag), Address: addr}, n, nil
}

// SkipAuthority returns the width of the authority at the front of src.
func SkipAuthority(src []byte) (int, error) { return authorities.skip(src) }

// UpdateAuthorityKind numbers the update authority family. It is a separate
// numbering from AuthorityKind.
type UpdateAuthorityKind uint8

const (
	UpdateAuthorityNone UpdateAuthorityKind = iota
	UpdateAuthorityAddress
	UpdateAuthorityCollection
)

var updateAuthorities = family{
	name: "update authority",
	kinds: []kind{
		UpdateAuthorityNone:       {"None", 0},
		UpdateAuthorityAddress:    {"Address", wire.PubkeySize},
		UpdateAuthorityCollection: {"Collection", wire.PubkeySize},
	},
}

// UpdateAuthority is the asset-level update authority: nobody, an explicit
// identity, or the collection the asset belongs to.
type UpdateAuthority struct {
	Kind    UpdateAuthorityKind
	Address wire.Pubkey
}

func UpdateAuthorityByAddress(addr wire.Pubkey) UpdateAuthority {
	return UpdateAuthority{Kind: UpdateAuthorityAddress, Address: addr}
}

func UpdateAuthorityByCollection(addr wire.Pubkey) UpdateAuthority {
	return UpdateAuthority{Kind: UpdateAuthorityCollection, Address: addr}
}

func (k UpdateAuthorityKind) String() string { return updateAuthorities.label(byte(k)) }

func (u UpdateAuthority) String() string {
	if u.Kind == UpdateAuthorityNone {
		return u.Kind.String()
	}
	return u.Kind.String() + "(" + u.Address.String() + ")"
}

func (u UpdateAuthority) EncodedSize() int { return updateAuthorities.size(byte(u.Kind)) }

func (u UpdateAuthority) EncodeTo(dst []byte) (int, error) {
	return updateAuthorities.encode(dst, byte(u.Kind), u.Address)
}

func DecodeUpdateAuthority(src []byte) (UpdateAuthority, int, error) {
	tag, addr, n, err := updateAuthorities.decode(src)
	if err != nil {
		return UpdateAuthority{}, 0, err
	}
	return UpdateAuthority{Kind: UpdateAuthorityKind(tag), Address: addr}, n, nil
}

// SkipUpdateAuthority returns the width of the update authority at the front
// of src.
func SkipUpdateAuthority(src []byte) (int, error) { return updateAuthorities.skip(src) }
