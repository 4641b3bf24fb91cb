package compress

// NoOpCompressor bypasses compression entirely.
//
// It serves high speed settings where the entropy of quantized payloads does
// not justify the codec overhead, and baseline measurements.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input slice as-is without copying.
//
// The returned slice shares memory with the input; callers must not modify
// the input afterwards if they use the result.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is without copying.
//
// The returned slice shares memory with the input; callers must not modify
// the input afterwards if they use the result.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
