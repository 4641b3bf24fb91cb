package section

import (
	"github.com/daig/spacetime-opticon/errs"
	"github.com/daig/spacetime-opticon/format"
)

// CloudHeader is the fixed-size header at the start of a cloud blob.
//
// Layout:
//
//	offset 0-1   flag word (always little-endian)
//	offset 2     encoding method
//	offset 3     payload compression type
//	offset 4-7   point count (endianness per flag)
//	offset 8     attribute count
//	offset 9-11  reserved, zero
type CloudHeader struct {
	Flag           CloudFlag
	Method         format.EncodingMethod
	Compression    format.CompressionType
	PointCount     uint32
	AttributeCount uint8
}

// NewCloudHeader creates a v1 header with the given encoding method and
// compression. Point and attribute counts are filled in when the encoder
// finishes.
func NewCloudHeader(method format.EncodingMethod, compression format.CompressionType) *CloudHeader {
	return &CloudHeader{
		Flag:        NewCloudFlag(),
		Method:      method,
		Compression: compression,
	}
}

// Bytes serializes the header into a fixed-size byte slice.
func (h *CloudHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)

	// The flag word is stored little-endian regardless of payload order.
	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = byte(h.Method)
	b[3] = byte(h.Compression)

	engine := h.Flag.GetEndianEngine()
	engine.PutUint32(b[4:8], h.PointCount)
	b[8] = h.AttributeCount

	return b
}

// Parse parses the header from a byte slice of exactly HeaderSize bytes and
// validates every field.
func (h *CloudHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	h.Flag.Options = uint16(data[0]) | uint16(data[1])<<8
	if err := h.Flag.Validate(); err != nil {
		return err
	}

	h.Method = format.EncodingMethod(data[2])
	switch h.Method {
	case format.MethodSequential, format.MethodKDTree:
	default:
		return errs.ErrInvalidEncodingMethod
	}

	h.Compression = format.CompressionType(data[3])
	switch h.Compression {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
	default:
		return errs.ErrInvalidCompressionType
	}

	engine := h.Flag.GetEndianEngine()
	h.PointCount = engine.Uint32(data[4:8])
	h.AttributeCount = data[8]

	if data[9] != 0 || data[10] != 0 || data[11] != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	return nil
}

// ParseCloudHeader parses a CloudHeader from the start of data.
func ParseCloudHeader(data []byte) (CloudHeader, error) {
	if len(data) < HeaderSize {
		return CloudHeader{}, errs.ErrInvalidHeaderSize
	}

	h := CloudHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return CloudHeader{}, err
	}

	return h, nil
}
