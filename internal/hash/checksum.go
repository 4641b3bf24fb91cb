// Package hash provides payload integrity digests for cloud blobs.
package hash

import "github.com/cespare/xxhash/v2"

// Checksum computes the xxHash64 digest of the given payload bytes.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Digest incrementally hashes payload sections as they are encoded or decoded,
// so the full uncompressed payload never needs to be concatenated.
type Digest struct {
	d *xxhash.Digest
}

// NewDigest creates an empty payload digest.
func NewDigest() *Digest {
	return &Digest{d: xxhash.New()}
}

// Write adds a payload section to the digest.
func (p *Digest) Write(data []byte) {
	// xxhash.Digest.Write never returns an error.
	_, _ = p.d.Write(data)
}

// Sum64 returns the digest of everything written so far.
func (p *Digest) Sum64() uint64 {
	return p.d.Sum64()
}
