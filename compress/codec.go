// Package compress provides the payload compression codecs for cloud blobs.
//
// Attribute payloads are compressed independently after transform and
// serialization; the compression type is recorded in the blob header so
// decoders pick the matching codec. Quantized integer lanes compress well
// with general-purpose codecs since neighboring points produce similar grid
// coordinates.
package compress

import (
	"fmt"

	"github.com/daig/spacetime-opticon/format"
)

// Compressor compresses a serialized attribute payload.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a stored attribute payload.
//
// Implementations must return an error for corrupted input or input produced
// by a different algorithm; a truncated payload must never decompress
// silently.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// NewCodec returns the codec for the given compression type tag.
func NewCodec(t format.CompressionType) (Codec, error) {
	switch t {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("compression type 0x%x is not supported", uint8(t))
	}
}
