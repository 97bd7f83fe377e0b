package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/corewire/pkg/instruction"
	"github.com/rawbytedev/corewire/pkg/layout"
	"github.com/rawbytedev/corewire/pkg/plugin"
	"github.com/rawbytedev/corewire/pkg/wire"
)

// Fixture is the YAML form of an asset or collection record. Identities are
// base58 and every variant is named the way its String method spells it.
type Fixture struct {
	Kind            string           `yaml:"kind"`
	Owner           string           `yaml:"owner,omitempty"`
	UpdateAuthority AuthorityFixture `yaml:"update_authority"`
	Name            string           `yaml:"name"`
	URI             string           `yaml:"uri"`
	Seq             *uint64          `yaml:"seq,omitempty"`
	NumMinted       uint32           `yaml:"num_minted,omitempty"`
	CurrentSize     uint32           `yaml:"current_size,omitempty"`
	Plugins         []PluginFixture  `yaml:"plugins,omitempty"`
}

// AuthorityFixture covers both authority families. Address is empty for the
// kinds that carry none.
type AuthorityFixture struct {
	Kind    string `yaml:"kind"`
	Address string `yaml:"address,omitempty"`
}

type CreatorFixture struct {
	Address    string `yaml:"address"`
	Percentage uint8  `yaml:"percentage"`
}

type RuleSetFixture struct {
	Kind     string   `yaml:"kind"`
	Programs []string `yaml:"programs,omitempty"`
}

type AttributeFixture struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

type SignatureFixture struct {
	Address  string `yaml:"address"`
	Verified bool   `yaml:"verified,omitempty"`
	Message  string `yaml:"message,omitempty"`
}

// PluginFixture is a flat union of every plugin payload; Type picks which
// fields are read.
type PluginFixture struct {
	Type        string             `yaml:"type"`
	Authority   AuthorityFixture   `yaml:"authority"`
	Frozen      bool               `yaml:"frozen,omitempty"`
	BasisPoints uint16             `yaml:"basis_points,omitempty"`
	Creators    []CreatorFixture   `yaml:"creators,omitempty"`
	RuleSet     *RuleSetFixture    `yaml:"rule_set,omitempty"`
	Delegates   []string           `yaml:"delegates,omitempty"`
	Attributes  []AttributeFixture `yaml:"attributes,omitempty"`
	Number      uint32             `yaml:"number,omitempty"`
	MaxSupply   *uint32            `yaml:"max_supply,omitempty"`
	Name        *string            `yaml:"name,omitempty"`
	URI         *string            `yaml:"uri,omitempty"`
	Signatures  []SignatureFixture `yaml:"signatures,omitempty"`
}

func loadFixture(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f Fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &f, nil
}

// Record converts the fixture into the encoder it describes.
func (f *Fixture) Record() (wire.Encoder, error) {
	entries, err := f.entries()
	if err != nil {
		return nil, err
	}
	switch f.Kind {
	case "asset":
		owner, err := wire.ParsePubkey(f.Owner)
		if err != nil {
			return nil, fmt.Errorf("owner: %w", err)
		}
		ua, err := parseUpdateAuthority(f.UpdateAuthority)
		if err != nil {
			return nil, err
		}
		a := layout.Asset{
			Base: layout.BaseAsset{
				Owner:           owner,
				UpdateAuthority: ua,
				Name:            bytesOf(f.Name),
				URI:             bytesOf(f.URI),
			},
			Plugins: entries,
		}
		if f.Seq != nil {
			a.Base.Seq = wire.Some(wire.U64(*f.Seq))
		}
		return a, nil
	case "collection":
		ua, err := wire.ParsePubkey(f.UpdateAuthority.Address)
		if err != nil {
			return nil, fmt.Errorf("update authority: %w", err)
		}
		return layout.Collection{
			Base: layout.BaseCollection{
				UpdateAuthority: ua,
				Name:            bytesOf(f.Name),
				URI:             bytesOf(f.URI),
				NumMinted:       f.NumMinted,
				CurrentSize:     f.CurrentSize,
			},
			Plugins: entries,
		}, nil
	}
	return nil, fmt.Errorf("unknown record kind %q, want asset or collection", f.Kind)
}

// CreateData converts the fixture into the payload of the matching create
// instruction.
func (f *Fixture) CreateData() (instruction.Data, error) {
	entries, err := f.entries()
	if err != nil {
		return nil, err
	}
	var plugins instruction.Plugins
	if len(entries) > 0 {
		pairs := make(wire.Seq[plugin.PluginAuthorityPair], len(entries))
		for i, e := range entries {
			pairs[i] = plugin.PluginAuthorityPair{Plugin: e.Plugin, Authority: wire.Some(e.Authority)}
		}
		plugins = wire.Some(pairs)
	}
	switch f.Kind {
	case "asset":
		return instruction.CreateAssetData{
			DataState: instruction.AccountState,
			Name:      bytesOf(f.Name),
			URI:       bytesOf(f.URI),
			Plugins:   plugins,
		}, nil
	case "collection":
		return instruction.CreateCollectionData{Name: bytesOf(f.Name), URI: bytesOf(f.URI), Plugins: plugins}, nil
	}
	return nil, fmt.Errorf("unknown record kind %q, want asset or collection", f.Kind)
}

func (f *Fixture) entries() ([]plugin.Entry, error) {
	if len(f.Plugins) == 0 {
		return nil, nil
	}
	out := make([]plugin.Entry, len(f.Plugins))
	for i := range f.Plugins {
		e, err := f.Plugins[i].entry()
		if err != nil {
			return nil, fmt.Errorf("plugin %d: %w", i, err)
		}
		out[i] = e
	}
	return out, nil
}

// fixtureOf is the inverse of Record.
func fixtureOf(rec wire.Encoder) (*Fixture, error) {
	var f Fixture
	var entries []plugin.Entry
	switch r := rec.(type) {
	case layout.Asset:
		f.Kind = "asset"
		f.Owner = r.Base.Owner.String()
		f.UpdateAuthority = updateAuthorityFixture(r.Base.UpdateAuthority)
		f.Name, f.URI = string(r.Base.Name), string(r.Base.URI)
		if v, ok := r.Base.Seq.Get(); ok {
			seq := uint64(v)
			f.Seq = &seq
		}
		entries = r.Plugins
	case layout.Collection:
		f.Kind = "collection"
		f.UpdateAuthority = AuthorityFixture{Kind: "Address", Address: r.Base.UpdateAuthority.String()}
		f.Name, f.URI = string(r.Base.Name), string(r.Base.URI)
		f.NumMinted, f.CurrentSize = r.Base.NumMinted, r.Base.CurrentSize
		entries = r.Plugins
	default:
		return nil, fmt.Errorf("no fixture form for %T", rec)
	}
	for _, e := range entries {
		pf, err := pluginFixture(e)
		if err != nil {
			return nil, err
		}
		f.Plugins = append(f.Plugins, pf)
	}
	return &f, nil
}

func bytesOf(s string) wire.Bytes {
	if s == "" {
		return nil
	}
	return wire.Bytes(s)
}

func parseKeys(in []string) (wire.Seq[wire.Pubkey], error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(wire.Seq[wire.Pubkey], len(in))
	for i, s := range in {
		p, err := wire.ParsePubkey(s)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

func keyStrings(in []wire.Pubkey) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	for i, p := range in {
		out[i] = p.String()
	}
	return out
}

func parseAuthority(a AuthorityFixture) (plugin.Authority, error) {
	if a.Kind == "" {
		return plugin.NoAuthority(), nil
	}
	for k := plugin.AuthorityNone; k <= plugin.AuthorityAddress; k++ {
		if k.String() != a.Kind {
			continue
		}
		out := plugin.Authority{Kind: k}
		if k == plugin.AuthorityAddress {
			addr, err := wire.ParsePubkey(a.Address)
			if err != nil {
				return out, fmt.Errorf("authority: %w", err)
			}
			out.Address = addr
		}
		return out, nil
	}
	return plugin.Authority{}, fmt.Errorf("unknown authority kind %q", a.Kind)
}

func authorityFixture(a plugin.Authority) AuthorityFixture {
	f := AuthorityFixture{Kind: a.Kind.String()}
	if a.Kind == plugin.AuthorityAddress {
		f.Address = a.Address.String()
	}
	return f
}

func parseUpdateAuthority(a AuthorityFixture) (plugin.UpdateAuthority, error) {
	for k := plugin.UpdateAuthorityNone; k <= plugin.UpdateAuthorityCollection; k++ {
		if k.String() != a.Kind {
			continue
		}
		out := plugin.UpdateAuthority{Kind: k}
		if k != plugin.UpdateAuthorityNone {
			addr, err := wire.ParsePubkey(a.Address)
			if err != nil {
				return out, fmt.Errorf("update authority: %w", err)
			}
			out.Address = addr
		}
		return out, nil
	}
	return plugin.UpdateAuthority{}, fmt.Errorf("unknown update authority kind %q", a.Kind)
}

func updateAuthorityFixture(u plugin.UpdateAuthority) AuthorityFixture {
	f := AuthorityFixture{Kind: u.Kind.String()}
	if u.Kind != plugin.UpdateAuthorityNone {
		f.Address = u.Address.String()
	}
	return f
}

func parseRuleSet(r *RuleSetFixture) (plugin.RuleSet, error) {
	if r == nil {
		return plugin.RuleSet{}, nil
	}
	for k := plugin.RuleSetNone; k <= plugin.RuleSetProgramDenyList; k++ {
		if k.String() != r.Kind {
			continue
		}
		progs, err := parseKeys(r.Programs)
		if err != nil {
			return plugin.RuleSet{}, fmt.Errorf("rule set: %w", err)
		}
		if k == plugin.RuleSetNone {
			progs = nil
		}
		return plugin.RuleSet{Kind: k, Programs: progs}, nil
	}
	return plugin.RuleSet{}, fmt.Errorf("unknown rule set kind %q", r.Kind)
}

func parsePluginType(name string) (plugin.Type, error) {
	for t := plugin.Type(0); t.Valid(); t++ {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown plugin type %q", name)
}

func (p *PluginFixture) entry() (plugin.Entry, error) {
	auth, err := parseAuthority(p.Authority)
	if err != nil {
		return plugin.Entry{}, err
	}
	body, err := p.plugin()
	if err != nil {
		return plugin.Entry{}, err
	}
	return plugin.Entry{Plugin: body, Authority: auth}, nil
}

func (p *PluginFixture) plugin() (plugin.Plugin, error) {
	t, err := parsePluginType(p.Type)
	if err != nil {
		return nil, err
	}
	switch t {
	case plugin.TypeRoyalties:
		rs, err := parseRuleSet(p.RuleSet)
		if err != nil {
			return nil, err
		}
		r := plugin.Royalties{BasisPoints: p.BasisPoints, RuleSet: rs}
		for _, c := range p.Creators {
			addr, err := wire.ParsePubkey(c.Address)
			if err != nil {
				return nil, fmt.Errorf("creator: %w", err)
			}
			r.Creators = append(r.Creators, plugin.Creator{Address: addr, Percentage: c.Percentage})
		}
		return r, nil
	case plugin.TypeFreezeDelegate:
		return plugin.FreezeDelegate{Frozen: p.Frozen}, nil
	case plugin.TypeBurnDelegate:
		return plugin.BurnDelegate{}, nil
	case plugin.TypeTransferDelegate:
		return plugin.TransferDelegate{}, nil
	case plugin.TypeUpdateDelegate:
		d, err := parseKeys(p.Delegates)
		if err != nil {
			return nil, fmt.Errorf("delegates: %w", err)
		}
		return plugin.UpdateDelegate{AdditionalDelegates: d}, nil
	case plugin.TypePermanentFreezeDelegate:
		return plugin.PermanentFreezeDelegate{Frozen: p.Frozen}, nil
	case plugin.TypeAttributes:
		var a plugin.Attributes
		for _, kv := range p.Attributes {
			a.List = append(a.List, plugin.Attribute{Key: bytesOf(kv.Key), Value: bytesOf(kv.Value)})
		}
		return a, nil
	case plugin.TypePermanentTransferDelegate:
		return plugin.PermanentTransferDelegate{}, nil
	case plugin.TypePermanentBurnDelegate:
		return plugin.PermanentBurnDelegate{}, nil
	case plugin.TypeEdition:
		return plugin.Edition{Number: p.Number}, nil
	case plugin.TypeMasterEdition:
		var m plugin.MasterEdition
		if p.MaxSupply != nil {
			m.MaxSupply = wire.Some(wire.U32(*p.MaxSupply))
		}
		if p.Name != nil {
			m.Name = wire.Some(bytesOf(*p.Name))
		}
		if p.URI != nil {
			m.URI = wire.Some(bytesOf(*p.URI))
		}
		return m, nil
	case plugin.TypeAddBlocker:
		return plugin.AddBlocker{}, nil
	case plugin.TypeImmutableMetadata:
		return plugin.ImmutableMetadata{}, nil
	case plugin.TypeVerifiedCreators:
		var v plugin.VerifiedCreators
		for _, s := range p.Signatures {
			addr, err := wire.ParsePubkey(s.Address)
			if err != nil {
				return nil, fmt.Errorf("signature: %w", err)
			}
			v.Signatures = append(v.Signatures, plugin.VerifiedCreatorsSignature{Address: addr, Verified: s.Verified})
		}
		return v, nil
	case plugin.TypeAutograph:
		var a plugin.Autograph
		for _, s := range p.Signatures {
			addr, err := wire.ParsePubkey(s.Address)
			if err != nil {
				return nil, fmt.Errorf("signature: %w", err)
			}
			a.Signatures = append(a.Signatures, plugin.AutographSignature{Address: addr, Message: bytesOf(s.Message)})
		}
		return a, nil
	case plugin.TypeBubblegumV2:
		return plugin.BubblegumV2{}, nil
	case plugin.TypeFreezeExecute:
		return plugin.FreezeExecute{Frozen: p.Frozen}, nil
	case plugin.TypePermanentFreezeExecute:
		return plugin.PermanentFreezeExecute{Frozen: p.Frozen}, nil
	}
	return nil, fmt.Errorf("plugin type %s has no fixture form", t)
}

func optString(o wire.Option[wire.Bytes]) *string {
	v, ok := o.Get()
	if !ok {
		return nil
	}
	s := string(v)
	return &s
}

func pluginFixture(e plugin.Entry) (PluginFixture, error) {
	f := PluginFixture{Type: e.Plugin.Type().String(), Authority: authorityFixture(e.Authority)}
	switch p := e.Plugin.(type) {
	case plugin.Royalties:
		f.BasisPoints = p.BasisPoints
		for _, c := range p.Creators {
			f.Creators = append(f.Creators, CreatorFixture{Address: c.Address.String(), Percentage: c.Percentage})
		}
		if p.RuleSet.Kind != plugin.RuleSetNone {
			f.RuleSet = &RuleSetFixture{Kind: p.RuleSet.Kind.String(), Programs: keyStrings(p.RuleSet.Programs)}
		}
	case plugin.FreezeDelegate:
		f.Frozen = p.Frozen
	case plugin.PermanentFreezeDelegate:
		f.Frozen = p.Frozen
	case plugin.FreezeExecute:
		f.Frozen = p.Frozen
	case plugin.PermanentFreezeExecute:
		f.Frozen = p.Frozen
	case plugin.UpdateDelegate:
		f.Delegates = keyStrings(p.AdditionalDelegates)
	case plugin.Attributes:
		for _, kv := range p.List {
			f.Attributes = append(f.Attributes, AttributeFixture{Key: string(kv.Key), Value: string(kv.Value)})
		}
	case plugin.Edition:
		f.Number = p.Number
	case plugin.MasterEdition:
		if v, ok := p.MaxSupply.Get(); ok {
			n := uint32(v)
			f.MaxSupply = &n
		}
		f.Name, f.URI = optString(p.Name), optString(p.URI)
	case plugin.VerifiedCreators:
		for _, s := range p.Signatures {
			f.Signatures = append(f.Signatures, SignatureFixture{Address: s.Address.String(), Verified: s.Verified})
		}
	case plugin.Autograph:
		for _, s := range p.Signatures {
			f.Signatures = append(f.Signatures, SignatureFixture{Address: s.Address.String(), Message: string(s.Message)})
		}
	case plugin.BurnDelegate, plugin.TransferDelegate, plugin.PermanentTransferDelegate,
		plugin.PermanentBurnDelegate, plugin.AddBlocker, plugin.ImmutableMetadata, plugin.BubblegumV2:
	default:
		return PluginFixture{}, fmt.Errorf("plugin %T has no fixture form", e.Plugin)
	}
	return f, nil
}
