package compress

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/daig/spacetime-opticon/format"
	"github.com/stretchr/testify/require"
)

// quantizedPayload builds a payload resembling a serialized portable
// attribute: runs of similar little-endian uint32 grid coordinates.
func quantizedPayload(n int) []byte {
	rng := rand.New(rand.NewSource(42))
	out := make([]byte, 0, n*4)
	v := uint32(512)
	for range n {
		v += uint32(rng.Intn(7))
		out = append(out, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	}

	return out
}

func TestNewCodec_AllTypes(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := NewCodec(ct)
		require.NoError(t, err, ct.String())
		require.NotNil(t, codec)
	}

	_, err := NewCodec(format.CompressionType(0xFF))
	require.Error(t, err)
}

func TestCodecs_RoundTrip(t *testing.T) {
	payload := quantizedPayload(4096)

	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := NewCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.True(t, bytes.Equal(payload, decompressed))
		})
	}
}

func TestCodecs_EmptyInput(t *testing.T) {
	for _, codec := range []Codec{
		NewNoOpCompressor(),
		NewZstdCompressor(),
		NewS2Compressor(),
		NewLZ4Compressor(),
	} {
		compressed, err := codec.Compress(nil)
		require.NoError(t, err)

		decompressed, err := codec.Decompress(compressed)
		require.NoError(t, err)
		require.Empty(t, decompressed)
	}
}

func TestCodecs_CompressReducesQuantizedPayload(t *testing.T) {
	payload := quantizedPayload(8192)

	for _, ct := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := NewCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(payload)
		require.NoError(t, err)
		require.Less(t, len(compressed), len(payload), ct.String())
	}
}

func TestZstd_RejectsCorruptedInput(t *testing.T) {
	codec := NewZstdCompressor()

	_, err := codec.Decompress([]byte{0x01, 0x02, 0x03, 0x04})
	require.Error(t, err)
}
