package pointcloud

import (
	"testing"

	"github.com/daig/spacetime-opticon/errs"
	"github.com/daig/spacetime-opticon/format"
	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/require"
)

func TestNewPointAttribute(t *testing.T) {
	att, err := NewPointAttribute(format.AttributePosition, format.DataTypeFloat32, 3, false)
	require.NoError(t, err)
	require.Equal(t, format.AttributePosition, att.AttributeType())
	require.Equal(t, format.DataTypeFloat32, att.DataType())
	require.Equal(t, 3, att.NumComponents())
	require.False(t, att.Normalized())
	require.Zero(t, att.NumPoints())
	require.Equal(t, 12, att.Stride())

	t.Run("invalid data type", func(t *testing.T) {
		_, err := NewPointAttribute(format.AttributePosition, format.DataType(0xFF), 3, false)
		require.ErrorIs(t, err, errs.ErrInvalidDataType)
	})

	t.Run("invalid component count", func(t *testing.T) {
		for _, comps := range []int{0, -1, 9} {
			_, err := NewPointAttribute(format.AttributePosition, format.DataTypeFloat32, comps, false)
			require.ErrorIs(t, err, errs.ErrComponentCountMismatch, "comps=%d", comps)
		}
	})
}

func TestPointAttribute_SetNumPoints(t *testing.T) {
	att, err := NewPointAttribute(format.AttributeColor, format.DataTypeUint8, 4, true)
	require.NoError(t, err)

	require.NoError(t, att.SetNumPoints(10))
	require.Equal(t, 10, att.NumPoints())
	require.Len(t, att.Data(), 40)

	require.ErrorIs(t, att.SetNumPoints(-1), errs.ErrInvalidPointCount)
}

func TestPointAttribute_FloatValueRoundTrip(t *testing.T) {
	att, err := NewPointAttribute(format.AttributeTexCoord, format.DataTypeFloat32, 2, false)
	require.NoError(t, err)
	require.NoError(t, att.SetNumPoints(3))

	require.NoError(t, att.SetFloatValue(1, []float32{0.25, -4}))

	out := make([]float32, 2)
	require.NoError(t, att.FloatValue(1, out))
	require.Equal(t, []float32{0.25, -4}, out)

	// Neighboring values are untouched.
	require.NoError(t, att.FloatValue(0, out))
	require.Equal(t, []float32{0, 0}, out)

	t.Run("index out of range", func(t *testing.T) {
		require.ErrorIs(t, att.FloatValue(3, out), errs.ErrPointIndexOutOfRange)
		require.ErrorIs(t, att.SetFloatValue(-1, out), errs.ErrPointIndexOutOfRange)
	})

	t.Run("wrong component count", func(t *testing.T) {
		require.ErrorIs(t, att.FloatValue(0, make([]float32, 3)), errs.ErrComponentCountMismatch)
	})

	t.Run("wrong data type", func(t *testing.T) {
		require.ErrorIs(t, att.Uint32Value(0, make([]uint32, 2)), errs.ErrDataTypeMismatch)
	})
}

func TestPointAttribute_Uint32ValueRoundTrip(t *testing.T) {
	att, err := NewPointAttribute(format.AttributeGeneric, format.DataTypeUint32, 2, false)
	require.NoError(t, err)
	require.NoError(t, att.SetNumPoints(2))

	require.NoError(t, att.SetUint32Value(0, []uint32{512, 1023}))

	out := make([]uint32, 2)
	require.NoError(t, att.Uint32Value(0, out))
	require.Equal(t, []uint32{512, 1023}, out)
}

func TestPointAttribute_Vector3(t *testing.T) {
	att, err := NewPointAttribute(format.AttributeNormal, format.DataTypeFloat32, 3, true)
	require.NoError(t, err)
	require.NoError(t, att.SetNumPoints(1))

	want := r3.Vector{X: 0.5, Y: -0.25, Z: 0.125}
	require.NoError(t, att.SetVector3(0, want))

	got, err := att.Vector3(0)
	require.NoError(t, err)
	require.Equal(t, want, got)

	t.Run("wrong component count", func(t *testing.T) {
		flat, err := NewPointAttribute(format.AttributeTexCoord, format.DataTypeFloat32, 2, false)
		require.NoError(t, err)
		require.NoError(t, flat.SetNumPoints(1))

		_, err = flat.Vector3(0)
		require.ErrorIs(t, err, errs.ErrComponentCountMismatch)
		require.ErrorIs(t, flat.SetVector3(0, want), errs.ErrComponentCountMismatch)
	})
}

func TestPointAttribute_BulkData(t *testing.T) {
	att, err := NewPointAttribute(format.AttributePosition, format.DataTypeFloat32, 3, false)
	require.NoError(t, err)
	require.NoError(t, att.SetNumPoints(2))

	values := []float32{1, 2, 3, 4, 5, 6}
	require.NoError(t, att.SetFloatData(values))

	got, err := att.FloatData()
	require.NoError(t, err)
	require.Equal(t, values, got)

	// FloatData returns a copy, not a view.
	got[0] = 99
	again, err := att.FloatData()
	require.NoError(t, err)
	require.EqualValues(t, 1, again[0])

	t.Run("length mismatch", func(t *testing.T) {
		require.ErrorIs(t, att.SetFloatData(values[:4]), errs.ErrInvalidDataSize)
	})

	t.Run("type mismatch", func(t *testing.T) {
		require.ErrorIs(t, att.SetUint32Data(make([]uint32, 6)), errs.ErrDataTypeMismatch)
		_, err := att.Uint32Data()
		require.ErrorIs(t, err, errs.ErrDataTypeMismatch)
	})
}

func TestPointAttribute_SetData(t *testing.T) {
	att, err := NewPointAttribute(format.AttributeColor, format.DataTypeUint8, 3, true)
	require.NoError(t, err)
	require.NoError(t, att.SetNumPoints(2))

	require.NoError(t, att.SetData([]byte{1, 2, 3, 4, 5, 6}))
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6}, att.Data())

	require.ErrorIs(t, att.SetData([]byte{1, 2}), errs.ErrInvalidDataSize)
}
