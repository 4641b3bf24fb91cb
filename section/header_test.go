package section

import (
	"testing"

	"github.com/daig/spacetime-opticon/errs"
	"github.com/daig/spacetime-opticon/format"
	"github.com/stretchr/testify/require"
)

func TestCloudHeader_RoundTrip(t *testing.T) {
	h := NewCloudHeader(format.MethodSequential, format.CompressionZstd)
	h.PointCount = 123456
	h.AttributeCount = 3

	data := h.Bytes()
	require.Len(t, data, HeaderSize)

	parsed, err := ParseCloudHeader(data)
	require.NoError(t, err)
	require.Equal(t, *h, parsed)
}

func TestCloudHeader_RoundTrip_BigEndian(t *testing.T) {
	h := NewCloudHeader(format.MethodSequential, format.CompressionNone)
	h.Flag.WithBigEndian()
	h.PointCount = 0x01020304
	h.AttributeCount = 1

	data := h.Bytes()
	// The point count bytes follow the flagged byte order.
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, data[4:8])

	parsed, err := ParseCloudHeader(data)
	require.NoError(t, err)
	require.True(t, parsed.Flag.IsBigEndian())
	require.EqualValues(t, 0x01020304, parsed.PointCount)
}

func TestCloudHeader_Parse_Rejects(t *testing.T) {
	valid := func() []byte {
		h := NewCloudHeader(format.MethodSequential, format.CompressionS2)
		h.PointCount = 10
		h.AttributeCount = 1

		return h.Bytes()
	}

	t.Run("short buffer", func(t *testing.T) {
		_, err := ParseCloudHeader(valid()[:HeaderSize-1])
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("bad magic", func(t *testing.T) {
		data := valid()
		data[1] = 0x00
		_, err := ParseCloudHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
	})

	t.Run("bad method", func(t *testing.T) {
		data := valid()
		data[2] = 0x7F
		_, err := ParseCloudHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidEncodingMethod)
	})

	t.Run("bad compression", func(t *testing.T) {
		data := valid()
		data[3] = 0x7F
		_, err := ParseCloudHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidCompressionType)
	})

	t.Run("dirty reserved bytes", func(t *testing.T) {
		data := valid()
		data[10] = 0x01
		_, err := ParseCloudHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})
}
