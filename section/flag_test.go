package section

import (
	"testing"

	"github.com/daig/spacetime-opticon/endian"
	"github.com/daig/spacetime-opticon/errs"
	"github.com/stretchr/testify/require"
)

func TestNewCloudFlag(t *testing.T) {
	f := NewCloudFlag()
	require.True(t, f.IsLittleEndian())
	require.False(t, f.IsBigEndian())
	require.EqualValues(t, MagicCloudNumber, f.GetMagicNumber())
	require.EqualValues(t, FormatVersion1, f.Version())
	require.NoError(t, f.Validate())
}

func TestCloudFlag_Endianness(t *testing.T) {
	f := NewCloudFlag()

	f.WithBigEndian()
	require.True(t, f.IsBigEndian())
	require.Equal(t, endian.GetBigEndianEngine(), f.GetEndianEngine())
	require.NoError(t, f.Validate())

	f.WithLittleEndian()
	require.True(t, f.IsLittleEndian())
	require.Equal(t, endian.GetLittleEndianEngine(), f.GetEndianEngine())
	require.NoError(t, f.Validate())
}

func TestCloudFlag_Validate(t *testing.T) {
	t.Run("bad magic", func(t *testing.T) {
		f := CloudFlag{Options: 0x1230 | (FormatVersion1 << VersionShift)}
		require.ErrorIs(t, f.Validate(), errs.ErrInvalidMagicNumber)
	})

	t.Run("bad version", func(t *testing.T) {
		f := CloudFlag{Options: MagicCloudNumber | (0x2 << VersionShift)}
		require.ErrorIs(t, f.Validate(), errs.ErrUnsupportedVersion)
	})

	t.Run("reserved bit set", func(t *testing.T) {
		f := NewCloudFlag()
		f.Options |= ReservedBitMask
		require.ErrorIs(t, f.Validate(), errs.ErrInvalidHeaderFlags)
	})
}
