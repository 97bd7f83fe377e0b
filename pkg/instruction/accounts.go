package instruction

import "github.com/rawbytedev/corewire/pkg/wire"

// AccountMeta is one entry of an instruction's account list.
type AccountMeta struct {
	Pubkey   wire.Pubkey
	Writable bool
	Signer   bool
}

func Readonly(p wire.Pubkey) AccountMeta       { return AccountMeta{Pubkey: p} }
func Writable(p wire.Pubkey) AccountMeta       { return AccountMeta{Pubkey: p, Writable: true} }
func ReadonlySigner(p wire.Pubkey) AccountMeta { return AccountMeta{Pubkey: p, Signer: true} }
func WritableSigner(p wire.Pubkey) AccountMeta {
	return AccountMeta{Pubkey: p, Writable: true, Signer: true}
}

// Optional is an account that may be left out.
type Optional = wire.Option[wire.Pubkey]

func Some(p wire.Pubkey) Optional { return wire.Some(p) }

// or uses meta for a supplied account and the program id, read-only, for a
// missing one.
func or(o Optional, meta func(wire.Pubkey) AccountMeta) AccountMeta {
	if p, ok := o.Get(); ok {
		return meta(p)
	}
	return Readonly(ProgramID)
}

type CreateAssetAccounts struct {
	Asset           wire.Pubkey
	Collection      Optional
	Authority       Optional
	Payer           wire.Pubkey
	Owner           Optional
	UpdateAuthority Optional
	SystemProgram   wire.Pubkey
	LogWrapper      Optional
}

func (CreateAssetAccounts) Discriminant() Discriminant { return CreateV1 }

func (a CreateAssetAccounts) Metas() []AccountMeta {
	return []AccountMeta{
		Writable(a.Asset),
		or(a.Collection, Writable),
		or(a.Authority, ReadonlySigner),
		WritableSigner(a.Payer),
		or(a.Owner, Readonly),
		or(a.UpdateAuthority, Readonly),
		Readonly(a.SystemProgram),
		or(a.LogWrapper, Readonly),
	}
}

type CreateCollectionAccounts struct {
	Collection      wire.Pubkey
	UpdateAuthority Optional
	Payer           wire.Pubkey
	SystemProgram   wire.Pubkey
}

func (CreateCollectionAccounts) Discriminant() Discriminant { return CreateCollectionV1 }

func (a CreateCollectionAccounts) Metas() []AccountMeta {
	return []AccountMeta{
		WritableSigner(a.Collection),
		or(a.UpdateAuthority, Readonly),
		WritableSigner(a.Payer),
		Readonly(a.SystemProgram),
	}
}

type UpdateAssetPluginAccounts struct {
	Asset         wire.Pubkey
	Collection    Optional
	Payer         wire.Pubkey
	Authority     Optional
	SystemProgram wire.Pubkey
	LogWrapper    Optional
}

func (UpdateAssetPluginAccounts) Discriminant() Discriminant { return UpdatePluginV1 }

func (a UpdateAssetPluginAccounts) Metas() []AccountMeta {
	return []AccountMeta{
		Writable(a.Asset),
		or(a.Collection, Writable),
		WritableSigner(a.Payer),
		or(a.Authority, ReadonlySigner),
		Readonly(a.SystemProgram),
		or(a.LogWrapper, Readonly),
	}
}

type UpdateCollectionPluginAccounts struct {
	Collection    wire.Pubkey
	Payer         wire.Pubkey
	Authority     Optional
	SystemProgram wire.Pubkey
	LogWrapper    Optional
}

func (UpdateCollectionPluginAccounts) Discriminant() Discriminant { return UpdateCollectionPluginV1 }

func (a UpdateCollectionPluginAccounts) Metas() []AccountMeta {
	return []AccountMeta{
		Writable(a.Collection),
		WritableSigner(a.Payer),
		or(a.Authority, ReadonlySigner),
		Readonly(a.SystemProgram),
		or(a.LogWrapper, Readonly),
	}
}

type TransferAccounts struct {
	Asset         wire.Pubkey
	Collection    Optional
	Payer         wire.Pubkey
	Authority     Optional
	NewOwner      wire.Pubkey
	SystemProgram wire.Pubkey
	LogWrapper    Optional
}

func (TransferAccounts) Discriminant() Discriminant { return TransferV1 }

func (a TransferAccounts) Metas() []AccountMeta {
	return []AccountMeta{
		Writable(a.Asset),
		or(a.Collection, Readonly),
		WritableSigner(a.Payer),
		or(a.Authority, ReadonlySigner),
		Readonly(a.NewOwner),
		Readonly(a.SystemProgram),
		or(a.LogWrapper, Readonly),
	}
}

type BurnAssetAccounts struct {
	Asset         wire.Pubkey
	Collection    Optional
	Payer         wire.Pubkey
	Authority     Optional
	SystemProgram Optional
	LogWrapper    Optional
}

func (BurnAssetAccounts) Discriminant() Discriminant { return BurnV1 }

func (a BurnAssetAccounts) Metas() []AccountMeta {
	return []AccountMeta{
		Writable(a.Asset),
		or(a.Collection, Writable),
		WritableSigner(a.Payer),
		or(a.Authority, ReadonlySigner),
		or(a.SystemProgram, Readonly),
		or(a.LogWrapper, Readonly),
	}
}

type BurnCollectionAccounts struct {
	Collection wire.Pubkey
	Payer      wire.Pubkey
	Authority  Optional
	LogWrapper Optional
}

func (BurnCollectionAccounts) Discriminant() Discriminant { return BurnCollectionV1 }

func (a BurnCollectionAccounts) Metas() []AccountMeta {
	return []AccountMeta{
		Writable(a.Collection),
		WritableSigner(a.Payer),
		or(a.Authority, ReadonlySigner),
		or(a.LogWrapper, Readonly),
	}
}
