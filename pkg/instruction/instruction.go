// Package instruction builds the payloads and account lists of the asset
// program's instructions and hands them to an Invoker.
package instruction

import (
	"errors"
	"fmt"

	"github.com/rawbytedev/corewire/pkg/wire"
)

// ProgramID is the address of the asset program. It also stands in for every
// optional account that is left out.
var ProgramID = wire.MustParsePubkey("CoREENxT6tW1HoK8ypY1SxRMZTcVPm7R94rH4PZNhX7d")

// Discriminant is the first byte of every instruction payload.
type Discriminant uint8

const (
	CreateV1                 Discriminant = 0
	CreateCollectionV1       Discriminant = 1
	UpdatePluginV1           Discriminant = 6
	UpdateCollectionPluginV1 Discriminant = 7
	BurnV1                   Discriminant = 12
	BurnCollectionV1         Discriminant = 13
	TransferV1               Discriminant = 14
)

var discriminantNames = map[Discriminant]string{
	CreateV1:                 "CreateV1",
	CreateCollectionV1:       "CreateCollectionV1",
	UpdatePluginV1:           "UpdatePluginV1",
	UpdateCollectionPluginV1: "UpdateCollectionPluginV1",
	BurnV1:                   "BurnV1",
	BurnCollectionV1:         "BurnCollectionV1",
	TransferV1:               "TransferV1",
}

func (d Discriminant) String() string {
	if s, ok := discriminantNames[d]; ok {
		return s
	}
	return fmt.Sprintf("Discriminant(%d)", uint8(d))
}

// ErrAccountsMismatch is returned when an account list is paired with the
// payload of a different instruction.
var ErrAccountsMismatch = errors.New("accounts do not match instruction data")

// Data is an instruction payload. EncodeTo writes the discriminant first.
type Data interface {
	wire.Encoder
	Discriminant() Discriminant
}

// Accounts is the ordered account list of one instruction.
type Accounts interface {
	Discriminant() Discriminant
	Metas() []AccountMeta
}

// Instruction is a fully built call into the asset program. Data aliases the
// buffer passed to Build.
type Instruction struct {
	ProgramID wire.Pubkey
	Accounts  []AccountMeta
	Data      []byte
}

// Signer carries the seeds of one program-derived signer.
type Signer struct {
	Seeds [][]byte
}

// Invoker issues an instruction to the external program. The runtime that
// executes it is out of this module's hands.
type Invoker interface {
	Invoke(ix Instruction, signers ...Signer) error
}

// Build encodes data into buf and pairs it with the account list.
func Build(accounts Accounts, data Data, buf []byte) (Instruction, error) {
	if accounts.Discriminant() != data.Discriminant() {
		return Instruction{}, fmt.Errorf("%w: %s accounts with %s data",
			ErrAccountsMismatch, accounts.Discriminant(), data.Discriminant())
	}
	n, err := data.EncodeTo(buf)
	if err != nil {
		return Instruction{}, fmt.Errorf("encoding %s: %w", data.Discriminant(), err)
	}
	return Instruction{ProgramID: ProgramID, Accounts: accounts.Metas(), Data: buf[:n]}, nil
}

// Invoke builds the instruction into buf and hands it to inv.
func Invoke(inv Invoker, accounts Accounts, data Data, buf []byte, signers ...Signer) error {
	ix, err := Build(accounts, data, buf)
	if err != nil {
		return err
	}
	return inv.Invoke(ix, signers...)
}
