package royalty

import (
	"testing"

	"github.com/rawbytedev/corewire/pkg/layout"
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

var creators = wire.Seq[plugin.Creator]{
	{Address: key(0xC0), Percentage: 70},
	{Address: key(0xC1), Percentage: 30},
}

func asset(entries ...plugin.Entry) layout.Asset {
	return layout.Asset{
		Base: layout.BaseAsset{
			Owner:           key(1),
			UpdateAuthority: plugin.UpdateAuthorityByCollection(key(2)),
			Name:            wire.Bytes("royal"),
			URI:             wire.Bytes("https://example.invalid/r.json"),
		},
		Plugins: entries,
	}
}

func encode(t testing.TB, e wire.Encoder) []byte {
	t.Helper()
	buf := make([]byte, e.EncodedSize())
	_, err := e.EncodeTo(buf)
	require.NoError(t, err)
	return buf
}

func TestExtractAsset(t *testing.T) {
	buf := encode(t, asset(
		plugin.Entry{Plugin: plugin.FreezeDelegate{Frozen: true}, Authority: plugin.AddressAuthority(key(7))},
		plugin.Entry{Plugin: plugin.Royalties{BasisPoints: 500, Creators: creators, RuleSet: plugin.AllowList(key(8))},
			Authority: plugin.UpdateAuthorityAuthority()},
	))
	s, err := ExtractAsset(buf)
	require.NoError(t, err)
	assert.Equal(t, uint16(500), s.BasisPoints)
	assert.Equal(t, []plugin.Creator(creators), s.Creators)
}

func TestExtractCollection(t *testing.T) {
	c := layout.Collection{
		Base: layout.BaseCollection{UpdateAuthority: key(3), Name: wire.Bytes("c"), NumMinted: 1, CurrentSize: 1},
		Plugins: []plugin.Entry{
			{Plugin: plugin.Royalties{BasisPoints: 250, Creators: creators[:1]}, Authority: plugin.UpdateAuthorityAuthority()},
		},
	}
	buf := encode(t, c)
	s, err := ExtractCollection(buf)
	require.NoError(t, err)
	assert.Equal(t, uint16(250), s.BasisPoints)
	assert.Equal(t, []plugin.Creator(creators[:1]), s.Creators)

	_, err = ExtractAsset(buf)
	require.ErrorIs(t, err, wire.ErrStructuralMismatch)
}

func TestCreatorsAliasBuffer(t *testing.T) {
	buf := encode(t, asset(plugin.Entry{Plugin: plugin.Royalties{BasisPoints: 1, Creators: creators}}))
	s, err := ExtractAsset(buf)
	require.NoError(t, err)
	require.Len(t, s.Creators, 2)

	s.Creators[1].Percentage = 99
	again, err := ExtractAsset(buf)
	require.NoError(t, err)
	assert.Equal(t, uint8(99), again.Creators[1].Percentage)
}

func TestNoRoyalties(t *testing.T) {
	for name, buf := range map[string][]byte{
		"no plugins":   encode(t, asset()),
		"other plugin": encode(t, asset(plugin.Entry{Plugin: plugin.BurnDelegate{}, Authority: plugin.OwnerAuthority()})),
	} {
		t.Run(name, func(t *testing.T) {
			s, err := ExtractAsset(buf)
			require.NoError(t, err)
			assert.Zero(t, s.BasisPoints)
			assert.NotNil(t, s.Creators)
			assert.Empty(t, s.Creators)
		})
	}
}

func TestFirstRoyaltiesWins(t *testing.T) {
	buf := encode(t, asset(
		plugin.Entry{Plugin: plugin.Royalties{BasisPoints: 100}},
		plugin.Entry{Plugin: plugin.Royalties{BasisPoints: 200, Creators: creators}},
	))
	s, err := ExtractAsset(buf)
	require.NoError(t, err)
	assert.Equal(t, uint16(100), s.BasisPoints)
	assert.Empty(t, s.Creators)
}

func TestUnknownRecordKind(t *testing.T) {
	buf := encode(t, asset())
	buf[0] = 255
	_, err := ExtractAsset(buf)
	require.ErrorIs(t, err, wire.ErrUnrecognizedTag)
}

func TestRegistryPointsAtWrongPlugin(t *testing.T) {
	a := asset(
		plugin.Entry{Plugin: plugin.Edition{Number: 1}},
		plugin.Entry{Plugin: plugin.Royalties{BasisPoints: 5}},
	)
	buf := encode(t, a)
	hdr, _, err := layout.DecodePluginHeader(buf[a.Base.EncodedSize():])
	require.NoError(t, err)
	reg, _, err := layout.DecodeRegistry(buf[hdr.RegistryOffset:])
	require.NoError(t, err)

	// relabel the edition record as royalties; its payload still says edition
	buf[hdr.RegistryOffset+5] = byte(plugin.TypeRoyalties)
	require.Equal(t, byte(plugin.TypeEdition), buf[reg.Records[0].Offset])
	_, err = ExtractAsset(buf)
	require.ErrorIs(t, err, wire.ErrStructuralMismatch)
}

func TestUnknownPluginTypeInRegistry(t *testing.T) {
	a := asset(
		plugin.Entry{Plugin: plugin.Edition{Number: 1}},
		plugin.Entry{Plugin: plugin.Royalties{BasisPoints: 5, Creators: creators}},
	)
	buf := encode(t, a)
	hdr, _, err := layout.DecodePluginHeader(buf[a.Base.EncodedSize():])
	require.NoError(t, err)

	buf[hdr.RegistryOffset+5] = 200
	_, err = ExtractAsset(buf)
	require.ErrorIs(t, err, wire.ErrUnrecognizedTag)
}

func TestCreatorCountOutOfRange(t *testing.T) {
	a := asset(plugin.Entry{Plugin: plugin.Royalties{BasisPoints: 5, Creators: creators}})
	buf := encode(t, a)
	at, found, err := layout.LocatePlugin(buf, layout.KeyAssetV1, plugin.TypeRoyalties)
	require.NoError(t, err)
	require.True(t, found)

	// tag, basis points, then the u32 creator count
	count := buf[at+3 : at+7]
	copy(count, []byte{0xff, 0xff, 0xff, 0xff})
	_, err = ExtractAsset(buf)
	require.ErrorIs(t, err, wire.ErrTruncatedInput)
}

func TestTruncatedNeverPanics(t *testing.T) {
	a := asset(plugin.Entry{Plugin: plugin.Royalties{BasisPoints: 5, Creators: creators}, Authority: plugin.OwnerAuthority()})
	buf := encode(t, a)
	baseLen := a.Base.EncodedSize()
	for cut := 0; cut < len(buf); cut++ {
		s, err := ExtractAsset(buf[:cut])
		switch {
		case cut == baseLen:
			require.NoError(t, err)
			assert.Zero(t, s.BasisPoints)
		case cut >= len(buf)-4:
			// the trailing external registry count is never read
			require.NoError(t, err)
			assert.Equal(t, uint16(5), s.BasisPoints)
		default:
			require.Error(t, err, "cut at %d", cut)
		}
	}
}

func FuzzExtract(f *testing.F) {
	f.Add(encode(f, asset(plugin.Entry{Plugin: plugin.Royalties{BasisPoints: 5, Creators: creators}})))
	f.Add(encode(f, asset()))
	f.Add([]byte{1})
	f.Fuzz(func(t *testing.T, data []byte) {
		s, err := ExtractAsset(data)
		if err != nil {
			return
		}
		for _, c := range s.Creators {
			_ = c.Percentage
		}
	})
}

func BenchmarkExtractAsset(b *testing.B) {
	buf := encode(b, asset(
		plugin.Entry{Plugin: plugin.FreezeDelegate{}, Authority: plugin.OwnerAuthority()},
		plugin.Entry{Plugin: plugin.Royalties{BasisPoints: 500, Creators: creators}},
	))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = ExtractAsset(buf)
	}
}
