package section

import (
	"testing"

	"github.com/daig/spacetime-opticon/endian"
	"github.com/daig/spacetime-opticon/errs"
	"github.com/daig/spacetime-opticon/format"
	"github.com/daig/spacetime-opticon/stream"
	"github.com/stretchr/testify/require"
)

func encodeAttributeHeader(t *testing.T, h AttributeHeader) []byte {
	t.Helper()

	buf := stream.NewEncoderBuffer(endian.GetLittleEndianEngine())
	defer buf.Finish()
	h.Encode(buf)
	require.Equal(t, AttributeHeaderSize, buf.Len())

	return append([]byte(nil), buf.Bytes()...)
}

func TestAttributeHeader_RoundTrip(t *testing.T) {
	headers := []AttributeHeader{
		{
			AttributeType: format.AttributeNormal,
			DataType:      format.DataTypeFloat32,
			NumComponents: 3,
			Normalized:    true,
			TransformType: format.TransformOctahedron,
			RawSize:       800,
			PortableSize:  312,
		},
		{
			AttributeType: format.AttributePosition,
			DataType:      format.DataTypeFloat32,
			NumComponents: 3,
			TransformType: format.TransformQuantization,
			RawSize:       1200,
			PortableSize:  1200,
		},
		{
			AttributeType: format.AttributeColor,
			DataType:      format.DataTypeUint8,
			NumComponents: 4,
			Normalized:    true,
			TransformType: format.TransformNone,
			RawSize:       400,
			PortableSize:  96,
		},
	}

	for _, want := range headers {
		data := encodeAttributeHeader(t, want)

		got, err := DecodeAttributeHeader(stream.NewDecoderBuffer(data, endian.GetLittleEndianEngine()))
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestDecodeAttributeHeader_Rejects(t *testing.T) {
	base := AttributeHeader{
		AttributeType: format.AttributeGeneric,
		DataType:      format.DataTypeUint32,
		NumComponents: 2,
		TransformType: format.TransformNone,
		RawSize:       16,
		PortableSize:  16,
	}

	decode := func(mutate func(data []byte)) error {
		data := encodeAttributeHeader(t, base)
		mutate(data)
		_, err := DecodeAttributeHeader(stream.NewDecoderBuffer(data, endian.GetLittleEndianEngine()))

		return err
	}

	t.Run("bad attribute type", func(t *testing.T) {
		err := decode(func(data []byte) { data[0] = 0x7F })
		require.ErrorIs(t, err, errs.ErrInvalidAttributeType)
	})

	t.Run("bad data type", func(t *testing.T) {
		err := decode(func(data []byte) { data[1] = 0x7F })
		require.ErrorIs(t, err, errs.ErrInvalidDataType)
	})

	t.Run("bad component count", func(t *testing.T) {
		err := decode(func(data []byte) { data[2] = 0 })
		require.ErrorIs(t, err, errs.ErrComponentCountMismatch)

		err = decode(func(data []byte) { data[2] = 9 })
		require.ErrorIs(t, err, errs.ErrComponentCountMismatch)
	})

	t.Run("bad normalized flag", func(t *testing.T) {
		err := decode(func(data []byte) { data[3] = 2 })
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("bad transform type", func(t *testing.T) {
		err := decode(func(data []byte) { data[4] = 0x7F })
		require.ErrorIs(t, err, errs.ErrInvalidTransformType)
	})

	t.Run("truncated", func(t *testing.T) {
		data := encodeAttributeHeader(t, base)
		for n := 0; n < len(data); n++ {
			_, err := DecodeAttributeHeader(stream.NewDecoderBuffer(data[:n], endian.GetLittleEndianEngine()))
			require.ErrorIs(t, err, errs.ErrUnexpectedEndOfBuffer, "prefix length %d", n)
		}
	})
}
