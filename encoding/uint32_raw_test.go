package encoding

import (
	"testing"

	"github.com/daig/spacetime-opticon/endian"
	"github.com/stretchr/testify/require"
)

func TestUint32RawEncoder_NewEncoder(t *testing.T) {
	encoder := NewUint32RawEncoder(endian.GetLittleEndianEngine())
	defer encoder.Finish()

	require.NotNil(t, encoder)
	require.Equal(t, 0, encoder.Len())
	require.Equal(t, 0, encoder.Size())
	require.Empty(t, encoder.Bytes())
}

func TestUint32RawEncoder_Write_SingleValue(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	encoder := NewUint32RawEncoder(engine)
	defer encoder.Finish()

	encoder.Write(1023)

	require.Equal(t, 1, encoder.Len())
	require.Equal(t, 4, encoder.Size())

	decoder := NewUint32RawDecoder(engine)
	val, ok := decoder.At(encoder.Bytes(), 0, 1)
	require.True(t, ok)
	require.Equal(t, uint32(1023), val)
}

func TestUint32RawEncoder_WriteSlice_RoundTrip(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	encoder := NewUint32RawEncoder(engine)
	defer encoder.Finish()

	values := []uint32{0, 1, 511, 512, 1023, 0xFFFFFFFF}
	encoder.WriteSlice(values)

	require.Equal(t, len(values), encoder.Len())
	require.Equal(t, len(values)*4, encoder.Size())

	decoder := NewUint32RawDecoder(engine)
	decoded := make([]uint32, 0, len(values))
	for v := range decoder.All(encoder.Bytes(), len(values)) {
		decoded = append(decoded, v)
	}
	require.Equal(t, values, decoded)

	sliced, ok := decoder.DecodeSlice(encoder.Bytes(), len(values))
	require.True(t, ok)
	require.Equal(t, values, sliced)
}

func TestUint32RawEncoder_WriteSlice_Empty(t *testing.T) {
	encoder := NewUint32RawEncoder(endian.GetLittleEndianEngine())
	defer encoder.Finish()

	encoder.WriteSlice(nil)
	require.Equal(t, 0, encoder.Len())
	require.Equal(t, 0, encoder.Size())
}

func TestUint32RawEncoder_BigEndian(t *testing.T) {
	engine := endian.GetBigEndianEngine()
	encoder := NewUint32RawEncoder(engine)
	defer encoder.Finish()

	encoder.Write(0x01020304)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, encoder.Bytes())

	decoder := NewUint32RawDecoder(engine)
	val, ok := decoder.At(encoder.Bytes(), 0, 1)
	require.True(t, ok)
	require.Equal(t, uint32(0x01020304), val)
}

func TestUint32RawEncoder_PanicsAfterFinish(t *testing.T) {
	encoder := NewUint32RawEncoder(endian.GetLittleEndianEngine())
	encoder.Finish()

	require.Panics(t, func() { encoder.Write(1) })
	require.Panics(t, func() { encoder.Bytes() })
	require.Panics(t, func() { encoder.Size() })
}

func TestUint32RawDecoder_Bounds(t *testing.T) {
	decoder := NewUint32RawDecoder(endian.GetLittleEndianEngine())

	_, ok := decoder.At(nil, 0, 0)
	require.False(t, ok)

	_, ok = decoder.At([]byte{1, 2, 3, 4}, -1, 1)
	require.False(t, ok)

	_, ok = decoder.At([]byte{1, 2, 3, 4}, 1, 2)
	require.False(t, ok)

	_, ok = decoder.DecodeSlice([]byte{1, 2}, 1)
	require.False(t, ok)

	// Truncated data yields nothing from All.
	count := 0
	for range decoder.All([]byte{1, 2}, 1) {
		count++
	}
	require.Equal(t, 0, count)
}
