package codec

import (
	"fmt"

	"github.com/daig/spacetime-opticon/errs"
	"github.com/daig/spacetime-opticon/format"
	"github.com/daig/spacetime-opticon/internal/options"
)

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*Encoder]

// WithLittleEndian sets little-endian byte order for payloads and headers.
// This is the default.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.flag.WithLittleEndian()
	})
}

// WithBigEndian sets big-endian byte order for payloads and headers.
func WithBigEndian() EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.flag.WithBigEndian()
	})
}

// WithEncodingMethod selects the point encoding method. Only sequential
// encoding is currently implemented; selecting another method fails at
// Encode.
func WithEncodingMethod(method format.EncodingMethod) EncoderOption {
	return options.New(func(e *Encoder) error {
		switch method {
		case format.MethodSequential, format.MethodKDTree:
			e.method = method
			return nil
		default:
			return fmt.Errorf("method 0x%x: %w", uint8(method), errs.ErrInvalidEncodingMethod)
		}
	})
}

// WithCompression pins the payload compression codec, overriding the choice
// derived from the speed options.
func WithCompression(compression format.CompressionType) EncoderOption {
	return options.New(func(e *Encoder) error {
		switch compression {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			e.compression = compression
			e.compressionSet = true
			return nil
		default:
			return fmt.Errorf("compression 0x%x: %w", uint8(compression), errs.ErrInvalidCompressionType)
		}
	})
}

// WithSpeedOptions sets the encoding and decoding speed trade-off, each in
// [0, 10]: 0 is slowest with the best compression, 10 is fastest. Unless
// WithCompression overrides it, the payload codec follows the slower of the
// two speeds.
func WithSpeedOptions(encodingSpeed, decodingSpeed int) EncoderOption {
	return options.New(func(e *Encoder) error {
		if encodingSpeed < 0 || encodingSpeed > 10 || decodingSpeed < 0 || decodingSpeed > 10 {
			return fmt.Errorf("speed options (%d, %d) outside [0, 10]", encodingSpeed, decodingSpeed)
		}

		e.encodingSpeed = encodingSpeed
		e.decodingSpeed = decodingSpeed

		return nil
	})
}

// WithAttributeQuantization sets the quantization precision for every
// attribute of the given type. Bits must be in [0, 31]; 0 disables
// quantization so those attributes are stored losslessly.
func WithAttributeQuantization(attrType format.AttributeType, bits int) EncoderOption {
	return options.New(func(e *Encoder) error {
		if bits < 0 || bits > MaxQuantizationBits {
			return fmt.Errorf("quantization bits %d: %w", bits, errs.ErrInvalidQuantizationBits)
		}

		e.quantization[attrType] = bits

		return nil
	})
}
