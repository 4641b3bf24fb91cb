package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestCheckEndianness(t *testing.T) {
	result := CheckEndianness()

	// Verify the result matches the actual system endianness.
	var probe uint16 = 0x0102
	probeBytes := (*[2]byte)(unsafe.Pointer(&probe))

	switch probeBytes[0] {
	case 0x01:
		require.Equal(t, binary.BigEndian, result)
	case 0x02:
		require.Equal(t, binary.LittleEndian, result)
	default:
		require.Failf(t, "unexpected byte value", "got: %v", probeBytes[0])
	}
}

func TestIsNativeEndiannessInverse(t *testing.T) {
	littleEndian := IsNativeLittleEndian()
	bigEndian := IsNativeBigEndian()

	require.NotEqual(t, littleEndian, bigEndian)
	require.True(t, littleEndian || bigEndian)
}

func TestCompareNativeEndian(t *testing.T) {
	if IsNativeLittleEndian() {
		require.True(t, CompareNativeEndian(GetLittleEndianEngine()))
		require.False(t, CompareNativeEndian(GetBigEndianEngine()))
	} else {
		require.False(t, CompareNativeEndian(GetLittleEndianEngine()))
		require.True(t, CompareNativeEndian(GetBigEndianEngine()))
	}
}

func TestGetLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()

	require.Implements(t, (*EndianEngine)(nil), engine)
	require.Equal(t, binary.LittleEndian, engine)

	var value uint16 = 0x0102
	b := make([]byte, 2)
	engine.PutUint16(b, value)
	require.Equal(t, byte(0x02), b[0], "little endian should put LSB first")
	require.Equal(t, byte(0x01), b[1])
	require.Equal(t, value, engine.Uint16(b))
}

func TestGetBigEndianEngine(t *testing.T) {
	engine := GetBigEndianEngine()

	require.Implements(t, (*EndianEngine)(nil), engine)
	require.Equal(t, binary.BigEndian, engine)

	var value uint16 = 0x0102
	b := make([]byte, 2)
	engine.PutUint16(b, value)
	require.Equal(t, byte(0x01), b[0], "big endian should put MSB first")
	require.Equal(t, byte(0x02), b[1])
	require.Equal(t, value, engine.Uint16(b))
}

func TestEndianEngine_AppendRoundTrip(t *testing.T) {
	for _, engine := range []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()} {
		buf := engine.AppendUint32(nil, 0xDEADBEEF)
		buf = engine.AppendUint64(buf, 0x0123456789ABCDEF)

		require.Len(t, buf, 12)
		require.Equal(t, uint32(0xDEADBEEF), engine.Uint32(buf[0:4]))
		require.Equal(t, uint64(0x0123456789ABCDEF), engine.Uint64(buf[4:12]))
	}
}
