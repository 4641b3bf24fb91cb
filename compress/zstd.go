package compress

// ZstdCompressor provides Zstandard compression for attribute payloads.
//
// Zstd trades speed for ratio, making it the default for the lowest speed
// settings where blob size matters most. The implementation is selected at
// build time: the cgo build uses the native libzstd binding, non-cgo builds
// fall back to the pure Go implementation. Both produce interoperable
// streams.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
