// Package errs defines the sentinel errors shared across the codec packages.
//
// Errors are compared with errors.Is; call sites add context with fmt.Errorf
// and the %w verb.
package errs

import "errors"

var (
	// ErrInvalidHeaderSize indicates the blob is too short to contain a header.
	ErrInvalidHeaderSize = errors.New("invalid header size")
	// ErrInvalidMagicNumber indicates the header magic number does not match the cloud blob format.
	ErrInvalidMagicNumber = errors.New("invalid magic number")
	// ErrInvalidHeaderFlags indicates reserved or inconsistent bits in the header flag word.
	ErrInvalidHeaderFlags = errors.New("invalid header flags")
	// ErrUnsupportedVersion indicates the blob was written by an unknown format version.
	ErrUnsupportedVersion = errors.New("unsupported format version")
	// ErrInvalidEncodingMethod indicates an unknown or unsupported point encoding method tag.
	ErrInvalidEncodingMethod = errors.New("invalid encoding method")
	// ErrInvalidCompressionType indicates an unknown compression type tag.
	ErrInvalidCompressionType = errors.New("invalid compression type")

	// ErrInvalidAttributeType indicates an unknown attribute type tag.
	ErrInvalidAttributeType = errors.New("invalid attribute type")
	// ErrInvalidDataType indicates an unknown component data type tag.
	ErrInvalidDataType = errors.New("invalid data type")
	// ErrInvalidTransformType indicates an unknown attribute transform type tag.
	ErrInvalidTransformType = errors.New("invalid transform type")
	// ErrInvalidQuantizationBits indicates a quantization bit count outside (0, 31].
	ErrInvalidQuantizationBits = errors.New("invalid quantization bits")
	// ErrInvalidQuantizationRange indicates a non-positive or non-finite quantization range.
	ErrInvalidQuantizationRange = errors.New("invalid quantization range")

	// ErrTransformNotInitialized indicates a transform pass was attempted before
	// SetParameters or DecodeParameters succeeded.
	ErrTransformNotInitialized = errors.New("transform parameters not initialized")
	// ErrComponentCountMismatch indicates the attribute component count is
	// incompatible with the transform or target shape.
	ErrComponentCountMismatch = errors.New("component count mismatch")
	// ErrDataTypeMismatch indicates the attribute component data type is
	// incompatible with the requested operation.
	ErrDataTypeMismatch = errors.New("data type mismatch")
	// ErrPointCountMismatch indicates source and target attributes disagree on
	// the number of points.
	ErrPointCountMismatch = errors.New("point count mismatch")
	// ErrNoTransformData indicates the attribute carries no stored transform metadata.
	ErrNoTransformData = errors.New("attribute has no transform data")

	// ErrPointIndexOutOfRange indicates a point index outside [0, numPoints).
	ErrPointIndexOutOfRange = errors.New("point index out of range")
	// ErrInvalidPointCount indicates a zero or negative point count.
	ErrInvalidPointCount = errors.New("invalid point count")
	// ErrInvalidDataSize indicates a raw data buffer whose size does not match
	// the attribute shape.
	ErrInvalidDataSize = errors.New("invalid attribute data size")
	// ErrAttributeNotFound indicates no attribute of the requested type exists.
	ErrAttributeNotFound = errors.New("attribute not found")
	// ErrNoAttributes indicates the point cloud contains no attributes to encode.
	ErrNoAttributes = errors.New("point cloud has no attributes")
	// ErrAttributeCountExceeded indicates more attributes than a blob can index.
	ErrAttributeCountExceeded = errors.New("attribute count exceeded")

	// ErrUnexpectedEndOfBuffer indicates a read past the end of the decoder buffer.
	ErrUnexpectedEndOfBuffer = errors.New("unexpected end of buffer")
	// ErrChecksumMismatch indicates the payload digest does not match the stored digest.
	ErrChecksumMismatch = errors.New("payload checksum mismatch")
	// ErrPayloadSizeMismatch indicates a decompressed payload size that disagrees
	// with the attribute header.
	ErrPayloadSizeMismatch = errors.New("payload size mismatch")
)
