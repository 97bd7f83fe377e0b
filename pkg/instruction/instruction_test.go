package instruction

import (
	"testing"

	"github.com/rawbytedev/corewire/pkg/plugin"
	"github.com/rawbytedev/corewire/pkg/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(b byte) wire.Pubkey {
	var p wire.Pubkey
	for i := range p {
		p[i] = b
	}
	return p
}

type call struct {
	ix      Instruction
	signers []Signer
}

// recorder keeps every instruction it is asked to invoke.
type recorder struct {
	calls []call
	err   error
}

func (r *recorder) Invoke(ix Instruction, signers ...Signer) error {
	data := append([]byte(nil), ix.Data...)
	ix.Data = data
	r.calls = append(r.calls, call{ix: ix, signers: signers})
	return r.err
}

func proof() Proof {
	return wire.Some(plugin.CompressionProof{
		Owner:           key(1),
		UpdateAuthority: plugin.UpdateAuthorityByAddress(key(2)),
		Name:            wire.Bytes("n"),
		URI:             wire.Bytes("u"),
		Seq:             9,
		Plugins: wire.Seq[plugin.HashablePluginSchema]{
			{Index: 0, Authority: plugin.OwnerAuthority(), Plugin: plugin.FreezeDelegate{Frozen: true}},
		},
	})
}

func allData() []Data {
	return []Data{
		CreateAssetData{
			DataState: AccountState,
			Name:      wire.Bytes("asset"),
			URI:       wire.Bytes("https://example.invalid/a.json"),
			Plugins: wire.Some(wire.Seq[plugin.PluginAuthorityPair]{
				{Plugin: plugin.Royalties{BasisPoints: 500}, Authority: wire.Some(plugin.UpdateAuthorityAuthority())},
				{Plugin: plugin.AddBlocker{}, Authority: wire.None[plugin.Authority]()},
			}),
		},
		CreateCollectionData{Name: wire.Bytes("c"), URI: wire.Bytes("u")},
		UpdateAssetPluginData{Plugin: plugin.FreezeDelegate{Frozen: true}},
		UpdateCollectionPluginData{Plugin: plugin.Attributes{List: wire.Seq[plugin.Attribute]{{Key: wire.Bytes("a"), Value: wire.Bytes("b")}}}},
		BurnAssetData{},
		BurnCollectionData{CompressionProof: proof()},
		TransferData{CompressionProof: proof()},
	}
}

func TestPayloadStartsWithDiscriminant(t *testing.T) {
	want := []Discriminant{CreateV1, CreateCollectionV1, UpdatePluginV1, UpdateCollectionPluginV1, BurnV1, BurnCollectionV1, TransferV1}
	for i, d := range allData() {
		buf := make([]byte, d.EncodedSize())
		n, err := d.EncodeTo(buf)
		require.NoError(t, err)
		require.Equal(t, len(buf), n)
		assert.Equal(t, want[i], d.Discriminant())
		assert.Equal(t, byte(want[i]), buf[0], "%T", d)
	}
}

func TestTransferDiscriminant(t *testing.T) {
	buf := make([]byte, 2)
	n, err := TransferData{}.EncodeTo(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{14, 0}, buf[:n])
}

func TestDataRoundTrip(t *testing.T) {
	for _, in := range allData() {
		t.Run(in.Discriminant().String(), func(t *testing.T) {
			buf := make([]byte, in.EncodedSize())
			_, err := in.EncodeTo(buf)
			require.NoError(t, err)
			out, n, err := DecodeData(buf)
			require.NoError(t, err)
			assert.Equal(t, len(buf), n)
			assert.Equal(t, in, out)
		})
	}
}

func TestDecodeDataRejects(t *testing.T) {
	_, _, err := DecodeData([]byte{2})
	require.ErrorIs(t, err, wire.ErrUnrecognizedTag)
	_, _, err = DecodeData([]byte{0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	require.ErrorIs(t, err, wire.ErrUnrecognizedTag)
	_, _, err = DecodeData([]byte{12, 1})
	require.ErrorIs(t, err, wire.ErrTruncatedInput)
}

func TestCreateAssetMetas(t *testing.T) {
	a := CreateAssetAccounts{
		Asset:         key(1),
		Authority:     Some(key(2)),
		Payer:         key(3),
		SystemProgram: key(4),
	}
	assert.Equal(t, []AccountMeta{
		{Pubkey: key(1), Writable: true},
		{Pubkey: ProgramID},
		{Pubkey: key(2), Signer: true},
		{Pubkey: key(3), Writable: true, Signer: true},
		{Pubkey: ProgramID},
		{Pubkey: ProgramID},
		{Pubkey: key(4)},
		{Pubkey: ProgramID},
	}, a.Metas())

	a.Collection = Some(key(5))
	assert.Equal(t, AccountMeta{Pubkey: key(5), Writable: true}, a.Metas()[1])
}

func TestTransferMetas(t *testing.T) {
	a := TransferAccounts{
		Asset:         key(1),
		Collection:    Some(key(2)),
		Payer:         key(3),
		NewOwner:      key(4),
		SystemProgram: key(5),
	}
	assert.Equal(t, []AccountMeta{
		{Pubkey: key(1), Writable: true},
		{Pubkey: key(2)},
		{Pubkey: key(3), Writable: true, Signer: true},
		{Pubkey: ProgramID},
		{Pubkey: key(4)},
		{Pubkey: key(5)},
		{Pubkey: ProgramID},
	}, a.Metas())
}

func TestMetaCounts(t *testing.T) {
	cases := map[Discriminant]struct {
		accounts Accounts
		count    int
	}{
		CreateV1:                 {CreateAssetAccounts{}, 8},
		CreateCollectionV1:       {CreateCollectionAccounts{}, 4},
		UpdatePluginV1:           {UpdateAssetPluginAccounts{}, 6},
		UpdateCollectionPluginV1: {UpdateCollectionPluginAccounts{}, 5},
		BurnV1:                   {BurnAssetAccounts{}, 6},
		BurnCollectionV1:         {BurnCollectionAccounts{}, 4},
		TransferV1:               {TransferAccounts{}, 7},
	}
	for d, tc := range cases {
		assert.Equal(t, d, tc.accounts.Discriminant())
		assert.Len(t, tc.accounts.Metas(), tc.count, "%s", d)
	}
}

func TestInvoke(t *testing.T) {
	r := &recorder{}
	accounts := UpdateAssetPluginAccounts{Asset: key(1), Payer: key(2), SystemProgram: key(3)}
	data := UpdateAssetPluginData{Plugin: plugin.FreezeDelegate{Frozen: true}}
	signer := Signer{Seeds: [][]byte{[]byte("asset"), {7}}}

	require.NoError(t, Invoke(r, accounts, data, make([]byte, 64), signer))
	require.Len(t, r.calls, 1)
	got := r.calls[0]
	assert.Equal(t, ProgramID, got.ix.ProgramID)
	assert.Equal(t, []byte{6, 1, 1}, got.ix.Data)
	assert.Equal(t, accounts.Metas(), got.ix.Accounts)
	assert.Equal(t, []Signer{signer}, got.signers)
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(TransferAccounts{}, BurnAssetData{}, make([]byte, 8))
	require.ErrorIs(t, err, ErrAccountsMismatch)

	_, err = Build(TransferAccounts{}, TransferData{CompressionProof: proof()}, make([]byte, 8))
	require.ErrorIs(t, err, wire.ErrBufferTooSmall)

	r := &recorder{}
	err = Invoke(r, BurnAssetAccounts{}, BurnAssetData{}, nil)
	require.ErrorIs(t, err, wire.ErrBufferTooSmall)
	assert.Empty(t, r.calls)
}

func TestProgramID(t *testing.T) {
	assert.Equal(t, "CoREENxT6tW1HoK8ypY1SxRMZTcVPm7R94rH4PZNhX7d", ProgramID.String())
}
