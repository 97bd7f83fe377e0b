package plugin

import (
	"fmt"

	"github.com/rawbytedev/corewire/internal/common"
	"github.com/rawbytedev/corewire/pkg/wire"
)

type RuleSetKind uint8

const (
	RuleSetNone RuleSetKind = iota
	RuleSetProgramAllowList
	RuleSetProgramDenyList
)

var ruleSetNames = [...]string{
	RuleSetNone:             "None",
	RuleSetProgramAllowList: "ProgramAllowList",
	RuleSetProgramDenyList:  "ProgramDenyList",
}

func (k RuleSetKind) String() string {
	if int(k) < len(ruleSetNames) {
		return ruleSetNames[k]
	}
	return fmt.Sprintf("rule set(%d)", uint8(k))
}

func (k RuleSetKind) hasPrograms() bool { return k != RuleSetNone }

// RuleSet restricts which programs may move a royalty-bearing asset.
// Programs is ignored for RuleSetNone.
type RuleSet struct {
	Kind     RuleSetKind
	Programs wire.Seq[wire.Pubkey]
}

func AllowList(programs ...wire.Pubkey) RuleSet {
	return RuleSet{Kind: RuleSetProgramAllowList, Programs: programs}
}

func DenyList(programs ...wire.Pubkey) RuleSet {
	return RuleSet{Kind: RuleSetProgramDenyList, Programs: programs}
}

func (r RuleSet) EncodedSize() int {
	if !r.Kind.hasPrograms() {
		return common.SizeU8
	}
	return common.SizeU8 + r.Programs.EncodedSize()
}

func (r RuleSet) EncodeTo(dst []byte) (int, error) {
	if int(r.Kind) >= len(ruleSetNames) {
		return 0, wire.BadTag("rule set", byte(r.Kind))
	}
	w := wire.NewWriter(dst)
	w.U8(byte(r.Kind))
	if r.Kind.hasPrograms() {
		w.Advance(r.Programs.EncodeTo(w.Rest()))
	}
	return w.Result()
}

func DecodeRuleSet(src []byte) (RuleSet, int, error) {
	tag, n, err := wire.ReadU8(src)
	if err != nil {
		return RuleSet{}, 0, err
	}
	r := RuleSet{Kind: RuleSetKind(tag)}
	if int(tag) >= len(ruleSetNames) {
		return RuleSet{}, 0, wire.At(wire.BadTag("rule set", tag), 0, "rule set")
	}
	if !r.Kind.hasPrograms() {
		return r, n, nil
	}
	progs, m, err := wire.ReadSeq(src[n:], wire.ReadPubkey)
	if err != nil {
		return RuleSet{}, 0, wire.At(err, n, "rule set programs")
	}
	r.Programs = progs
	return r, n + m, nil
}

func SkipRuleSet(src []byte) (int, error) {
	tag, n, err := wire.ReadU8(src)
	if err != nil {
		return 0, err
	}
	if int(tag) >= len(ruleSetNames) {
		return 0, wire.At(wire.BadTag("rule set", tag), 0, "rule set")
	}
	if !RuleSetKind(tag).hasPrograms() {
		return n, nil
	}
	m, err := wire.SkipSeq(src[n:], wire.SkipFixed(wire.PubkeySize))
	if err != nil {
		return 0, wire.At(err, n, "rule set programs")
	}
	return n + m, nil
}
