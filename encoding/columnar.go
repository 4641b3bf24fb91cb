// Package encoding provides the columnar payload encoders and decoders used to
// serialize portable attribute values into cloud blob payloads.
//
// A payload is a flat lane of fixed-width components: the portable form of an
// octahedral normal attribute is a uint32 lane of two components per point,
// while an untransformed float attribute is a float32 lane. Encoders append
// into pooled buffers; decoders are stateless values that iterate the encoded
// bytes in place.
package encoding

import "iter"

// ColumnarEncoder serializes a lane of fixed-width values.
type ColumnarEncoder[T comparable] interface {
	// Bytes returns the encoded byte slice.
	// The returned slice is valid until the next call to Write or WriteSlice.
	// The caller must not modify the returned slice.
	Bytes() []byte

	// Len returns the number of values encoded so far.
	Len() int

	// Size returns the number of bytes written to the internal buffer.
	Size() int

	// Finish finalizes the encoding process and returns buffer resources to
	// the pool. After calling Finish the encoder is no longer usable; any
	// subsequent call panics due to a nil buffer. Use defer to ensure the
	// buffer is returned even on error paths, and copy Bytes() out first.
	Finish()

	// Write encodes a single value.
	Write(value T)

	// WriteSlice encodes a slice of values with a single buffer pre-allocation.
	// Prefer it over repeated Write calls for bulk encoding.
	WriteSlice(values []T)
}

// ColumnarDecoder deserializes a lane of fixed-width values.
type ColumnarDecoder[T comparable] interface {
	// All returns an iterator yielding count decoded values from data.
	//
	// The data should be the byte slice produced by the corresponding encoder.
	// If data is too short for count values the iterator yields nothing; the
	// caller detects the mismatch by counting.
	All(data []byte, count int) iter.Seq[T]

	// At retrieves the value at the given zero-based index.
	//
	// The count parameter bounds the valid index range. Returns false if the
	// index is out of bounds or the data is too short.
	At(data []byte, index int, count int) (T, bool)
}
