package plugin

import (
	"testing"

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

// samples holds one value of every variant, in tag order.
func samples() []Plugin {
	return []Plugin{
		Royalties{
			BasisPoints: 500,
			Creators:    wire.Seq[Creator]{{Address: key(1), Percentage: 70}, {Address: key(2), Percentage: 30}},
			RuleSet:     DenyList(key(9)),
		},
		FreezeDelegate{Frozen: true},
		BurnDelegate{},
		TransferDelegate{},
		UpdateDelegate{AdditionalDelegates: wire.Seq[wire.Pubkey]{key(3)}},
		PermanentFreezeDelegate{Frozen: false},
		Attributes{List: wire.Seq[Attribute]{{Key: wire.Bytes("rarity"), Value: wire.Bytes("gold")}}},
		PermanentTransferDelegate{},
		PermanentBurnDelegate{},
		Edition{Number: 7},
		MasterEdition{MaxSupply: wire.Some(wire.U32(100)), Name: wire.Some(wire.Bytes("m")), URI: wire.None[wire.Bytes]()},
		AddBlocker{},
		ImmutableMetadata{},
		VerifiedCreators{Signatures: wire.Seq[VerifiedCreatorsSignature]{{Address: key(4), Verified: true}}},
		Autograph{Signatures: wire.Seq[AutographSignature]{{Address: key(5), Message: wire.Bytes("gm")}}},
		BubblegumV2{},
		FreezeExecute{Frozen: true},
		PermanentFreezeExecute{Frozen: true},
	}
}

func encodePlugin(t *testing.T, p Plugin) []byte {
	t.Helper()
	buf := make([]byte, Size(p))
	n, err := Encode(buf, p)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	return buf
}

func TestPluginTagsAreDense(t *testing.T) {
	all := samples()
	require.Len(t, all, NumTypes)
	for i, p := range all {
		assert.Equal(t, Type(i), p.Type(), "%T", p)
		assert.Equal(t, byte(i), encodePlugin(t, p)[0], "%T", p)
	}
}

func TestPluginRoundTrip(t *testing.T) {
	for _, in := range samples() {
		t.Run(in.Type().String(), func(t *testing.T) {
			buf := encodePlugin(t, in)
			out, n, err := Decode(buf)
			require.NoError(t, err)
			assert.Equal(t, len(buf), n)
			assert.Equal(t, in, out)

			skipped, err := Skip(buf)
			require.NoError(t, err)
			assert.Equal(t, n, skipped)
		})
	}
}

func TestPluginTruncatedNeverPanics(t *testing.T) {
	for _, in := range samples() {
		buf := encodePlugin(t, in)
		for cut := 0; cut < len(buf); cut++ {
			_, _, err := Decode(buf[:cut])
			require.ErrorIs(t, err, wire.ErrTruncatedInput, "%s cut at %d", in.Type(), cut)
		}
	}
}

func TestPluginBufferTooSmall(t *testing.T) {
	for _, in := range samples() {
		buf := make([]byte, Size(in)-1)
		_, err := Encode(buf, in)
		require.ErrorIs(t, err, wire.ErrBufferTooSmall, "%s", in.Type())
	}
}

func TestDecodeUnknownPlugin(t *testing.T) {
	_, _, err := Decode([]byte{byte(NumTypes)})
	require.ErrorIs(t, err, wire.ErrUnrecognizedTag)
	_, _, err = Decode([]byte{255})
	require.ErrorIs(t, err, wire.ErrUnrecognizedTag)

	_, err = Encode(make([]byte, 8), nil)
	require.ErrorIs(t, err, wire.ErrUnrecognizedTag)
}

func TestRoyaltiesLayout(t *testing.T) {
	buf := encodePlugin(t, Royalties{
		BasisPoints: 0x01F4,
		Creators:    wire.Seq[Creator]{{Address: key(0xAA), Percentage: 100}},
	})
	addr := key(0xAA)
	want := []byte{0, 0xF4, 0x01, 1, 0, 0, 0}
	want = append(want, addr[:]...)
	want = append(want, 100, 0)
	assert.Equal(t, want, buf)
}

func TestAuthorityFamily(t *testing.T) {
	cases := []struct {
		in   Authority
		size int
	}{
		{NoAuthority(), 1},
		{OwnerAuthority(), 1},
		{UpdateAuthorityAuthority(), 1},
		{AddressAuthority(key(7)), 33},
	}
	for _, tc := range cases {
		t.Run(tc.in.Kind.String(), func(t *testing.T) {
			buf := make([]byte, tc.in.EncodedSize())
			require.Len(t, buf, tc.size)
			n, err := tc.in.EncodeTo(buf)
			require.NoError(t, err)
			require.Equal(t, tc.size, n)
			assert.Equal(t, byte(tc.in.Kind), buf[0])

			out, m, err := DecodeAuthority(buf)
			require.NoError(t, err)
			assert.Equal(t, tc.in, out)
			assert.Equal(t, n, m)

			skipped, err := SkipAuthority(buf)
			require.NoError(t, err)
			assert.Equal(t, n, skipped)
		})
	}

	_, err := SkipAuthority([]byte{4})
	require.ErrorIs(t, err, wire.ErrUnrecognizedTag)
	_, err = SkipAuthority([]byte{3, 1, 2})
	require.ErrorIs(t, err, wire.ErrTruncatedInput)
	_, err = Authority{Kind: 9}.EncodeTo(make([]byte, 40))
	require.ErrorIs(t, err, wire.ErrUnrecognizedTag)
}

func TestUpdateAuthorityTagAtFront(t *testing.T) {
	for _, in := range []UpdateAuthority{{}, UpdateAuthorityByAddress(key(1)), UpdateAuthorityByCollection(key(2))} {
		buf := make([]byte, in.EncodedSize())
		n, err := in.EncodeTo(buf)
		require.NoError(t, err)
		require.Equal(t, byte(in.Kind), buf[0])
		if in.Kind != UpdateAuthorityNone {
			require.Equal(t, in.Address[:], buf[1:])
		}

		out, m, err := DecodeUpdateAuthority(buf)
		require.NoError(t, err)
		assert.Equal(t, in, out)
		skipped, err := SkipUpdateAuthority(buf)
		require.NoError(t, err)
		assert.Equal(t, n, m)
		assert.Equal(t, n, skipped)
	}

	_, _, err := DecodeUpdateAuthority([]byte{3})
	require.ErrorIs(t, err, wire.ErrUnrecognizedTag)
}

func TestFamiliesNumberIndependently(t *testing.T) {
	// tag 2 is a bare kind for authorities but carries an identity for
	// update authorities
	buf := append([]byte{2}, make([]byte, wire.PubkeySize)...)
	a, err := SkipAuthority(buf)
	require.NoError(t, err)
	u, err := SkipUpdateAuthority(buf)
	require.NoError(t, err)
	assert.Equal(t, 1, a)
	assert.Equal(t, 33, u)
}

func TestRuleSet(t *testing.T) {
	for _, in := range []RuleSet{{}, AllowList(key(1), key(2)), DenyList(key(3))} {
		buf := make([]byte, in.EncodedSize())
		n, err := in.EncodeTo(buf)
		require.NoError(t, err)
		out, m, err := DecodeRuleSet(buf)
		require.NoError(t, err)
		assert.Equal(t, in, out)
		skipped, err := SkipRuleSet(buf)
		require.NoError(t, err)
		assert.Equal(t, n, m)
		assert.Equal(t, n, skipped)
	}
	_, _, err := DecodeRuleSet([]byte{3})
	require.ErrorIs(t, err, wire.ErrUnrecognizedTag)
}

func TestCreatorsViewAliases(t *testing.T) {
	buf := make([]byte, 2*CreatorSize)
	for i, c := range []Creator{{Address: key(1), Percentage: 70}, {Address: key(2), Percentage: 30}} {
		_, err := c.EncodeTo(buf[i*CreatorSize:])
		require.NoError(t, err)
	}
	view, err := CreatorsView(buf)
	require.NoError(t, err)
	require.Len(t, view, 2)
	assert.Equal(t, key(2), view[1].Address)
	assert.Equal(t, uint8(30), view[1].Percentage)

	buf[CreatorSize-1] = 55
	assert.Equal(t, uint8(55), view[0].Percentage)

	empty, err := CreatorsView(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = CreatorsView(buf[:CreatorSize+1])
	require.ErrorIs(t, err, wire.ErrStructuralMismatch)
}

func TestPluginAuthorityPair(t *testing.T) {
	for _, in := range []PluginAuthorityPair{
		{Plugin: FreezeDelegate{Frozen: true}, Authority: wire.Some(OwnerAuthority())},
		{Plugin: Edition{Number: 1}, Authority: wire.None[Authority]()},
	} {
		buf := make([]byte, in.EncodedSize())
		_, err := in.EncodeTo(buf)
		require.NoError(t, err)
		out, n, err := DecodePluginAuthorityPair(buf)
		require.NoError(t, err)
		assert.Equal(t, len(buf), n)
		assert.Equal(t, in, out)
	}
}

func TestCompressionProofRoundTrip(t *testing.T) {
	in := CompressionProof{
		Owner:           key(1),
		UpdateAuthority: UpdateAuthorityByCollection(key(2)),
		Name:            wire.Bytes("asset"),
		URI:             wire.Bytes("https://example.invalid/a.json"),
		Seq:             42,
		Plugins: wire.Seq[HashablePluginSchema]{
			{Index: 0, Authority: UpdateAuthorityAuthority(), Plugin: Royalties{BasisPoints: 250}},
			{Index: 1, Authority: OwnerAuthority(), Plugin: FreezeDelegate{}},
		},
	}
	buf := make([]byte, in.EncodedSize())
	n, err := in.EncodeTo(buf)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)

	out, m, err := DecodeCompressionProof(buf)
	require.NoError(t, err)
	assert.Equal(t, n, m)
	assert.Equal(t, in, out)
}

func TestNestedErrorOffset(t *testing.T) {
	// royalties with one creator whose percentage byte is missing
	buf := []byte{0, 0, 0, 1, 0, 0, 0}
	buf = append(buf, make([]byte, wire.PubkeySize)...)
	_, _, err := Decode(buf)
	require.ErrorIs(t, err, wire.ErrTruncatedInput)
	var de *wire.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, len(buf), de.Offset)
}

func BenchmarkEncodeRoyalties(b *testing.B) {
	p := samples()[0]
	buf := make([]byte, Size(p))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Encode(buf, p)
	}
}
