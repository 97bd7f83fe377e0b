package frame

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/corewire/pkg/wire"
)

func TestFrameRoundTrip(t *testing.T) {
	condition := func(payload []byte, compressed bool) bool {
		var flags Flags
		if compressed {
			flags = Compressed
		}
		buf, err := Append(nil, payload, flags)
		require.NoError(t, err)
		require.Len(t, buf, Size(len(payload)))
		require.True(t, IsFrame(buf))

		got, gotFlags, n, err := Decode(buf)
		require.NoError(t, err)
		return n == len(buf) && gotFlags == flags && string(got) == string(payload)
	}
	require.NoError(t, quick.Check(condition, &quick.Config{}))
}

func TestFrameLayout(t *testing.T) {
	buf, err := Append(nil, []byte{0xAA}, Compressed)
	require.NoError(t, err)
	require.Len(t, buf, Overhead+1)
	assert.Equal(t, []byte{'C', 'W', Version, byte(Compressed), 13, 0, 0, 0, 0xAA}, buf[:9])
}

func TestFrameTrailingBytes(t *testing.T) {
	buf, err := Append(nil, []byte("record"), 0)
	require.NoError(t, err)
	n := len(buf)
	buf = append(buf, "trailer"...)

	payload, _, got, err := Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, n, got)
	assert.Equal(t, "record", string(payload))
}

func TestFrameRejects(t *testing.T) {
	good, err := Append(nil, []byte("payload"), 0)
	require.NoError(t, err)

	corrupt := append([]byte(nil), good...)
	corrupt[Overhead-2] ^= 0xff
	_, _, _, err = Decode(corrupt)
	require.ErrorIs(t, err, ErrChecksum)

	version := append([]byte(nil), good...)
	version[2] = 9
	_, _, _, err = Decode(version)
	require.ErrorIs(t, err, ErrVersion)

	_, _, _, err = Decode([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrNotFrame)

	for cut := 2; cut < len(good); cut++ {
		_, _, _, err = Decode(good[:cut])
		require.ErrorIs(t, err, wire.ErrTruncatedInput, "cut %d", cut)
	}
}

func TestEncodeBufferTooSmall(t *testing.T) {
	payload := []byte("payload")
	for size := 0; size < Size(len(payload)); size++ {
		_, err := Encode(make([]byte, size), payload, 0)
		require.ErrorIs(t, err, wire.ErrBufferTooSmall, "size %d", size)
	}
}

func FuzzDecode(f *testing.F) {
	good, _ := Append(nil, []byte("seed"), Compressed)
	f.Add(good)
	f.Add([]byte{'C', 'W', 1, 0, 0xff, 0xff, 0xff, 0xff})
	f.Fuzz(func(t *testing.T, data []byte) {
		payload, _, n, err := Decode(data)
		if err != nil {
			return
		}
		require.LessOrEqual(t, n, len(data))
		require.Equal(t, n, Size(len(payload)))
	})
}
