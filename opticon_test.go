package opticon

import (
	"math"
	"testing"

	"github.com/daig/spacetime-opticon/codec"
	"github.com/daig/spacetime-opticon/format"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	cloud := NewPointCloud()
	require.NoError(t, cloud.SetNumPoints(4))

	posID, err := cloud.AddAttribute(format.AttributePosition, format.DataTypeFloat32, 3, false)
	require.NoError(t, err)
	require.NoError(t, cloud.SetFloatAttributeData(posID, []float32{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
		1, 1, 1,
	}))

	normalID, err := cloud.AddAttribute(format.AttributeNormal, format.DataTypeFloat32, 3, true)
	require.NoError(t, err)
	s := float32(1 / math.Sqrt(3))
	require.NoError(t, cloud.SetFloatAttributeData(normalID, []float32{
		0, 0, 1,
		1, 0, 0,
		0, -1, 0,
		s, s, s,
	}))

	blob, err := Encode(cloud,
		codec.WithCompression(format.CompressionZstd),
		codec.WithAttributeQuantization(format.AttributePosition, 16),
	)
	require.NoError(t, err)
	require.NotEmpty(t, blob)

	decoded, err := Decode(blob)
	require.NoError(t, err)
	require.Equal(t, 4, decoded.NumPoints())
	require.Equal(t, 2, decoded.NumAttributes())

	want, err := cloud.PositionData()
	require.NoError(t, err)
	got, err := decoded.PositionData()
	require.NoError(t, err)
	for i := range want {
		require.InDelta(t, want[i], got[i], 1e-4, "lane %d", i)
	}

	wantMin, wantMax, err := cloud.BoundingBox()
	require.NoError(t, err)
	gotMin, gotMax, err := decoded.BoundingBox()
	require.NoError(t, err)
	require.InDelta(t, wantMin.X, gotMin.X, 1e-4)
	require.InDelta(t, wantMax.Z, gotMax.Z, 1e-4)
}

func TestDecode_RejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not a cloud blob"))
	require.Error(t, err)

	_, err = Decode(nil)
	require.Error(t, err)
}
