package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChecksum_Deterministic(t *testing.T) {
	data := []byte("octahedral payload bytes")

	require.Equal(t, Checksum(data), Checksum(data))
	require.NotEqual(t, Checksum(data), Checksum(data[1:]))
}

func TestDigest_MatchesChecksum(t *testing.T) {
	a := []byte{1, 2, 3, 4}
	b := []byte{5, 6, 7, 8}

	d := NewDigest()
	d.Write(a)
	d.Write(b)

	require.Equal(t, Checksum(append(append([]byte{}, a...), b...)), d.Sum64())
}

func TestDigest_Empty(t *testing.T) {
	require.Equal(t, Checksum(nil), NewDigest().Sum64())
}
