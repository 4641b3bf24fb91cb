package encoding

import (
	"iter"
	"math"

	"github.com/daig/spacetime-opticon/endian"
	"github.com/daig/spacetime-opticon/internal/pool"
)

// Float32RawEncoder encodes float32 lane values in their IEEE 754 binary
// representation using the configured endianness.
//
// Untransformed float attributes (quantization disabled for an attribute
// type) are serialized through this encoder.
type Float32RawEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

var _ ColumnarEncoder[float32] = (*Float32RawEncoder)(nil)

// NewFloat32RawEncoder creates a new float32 lane encoder using the specified
// endian engine.
func NewFloat32RawEncoder(engine endian.EndianEngine) *Float32RawEncoder {
	return &Float32RawEncoder{
		engine: engine,
		buf:    pool.GetPayloadBuffer(),
	}
}

// Write encodes a single float32 value with amortized buffer growth.
//
// Panics if Finish() has been called (nil buffer).
func (e *Float32RawEncoder) Write(value float32) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count++
	e.buf.Grow(4)
	e.buf.B = e.engine.AppendUint32(e.buf.B, math.Float32bits(value))
}

// WriteSlice encodes a slice of float32 values with a single buffer
// pre-allocation of 4 bytes per value.
//
// Panics if Finish() has been called (nil buffer).
func (e *Float32RawEncoder) WriteSlice(values []float32) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	valLen := len(values)
	e.count += valLen

	if valLen == 0 {
		return
	}

	e.buf.Grow(valLen * 4)

	startIdx := e.buf.Len()
	e.buf.ExtendOrGrow(valLen * 4)

	for i, v := range values {
		offset := startIdx + i*4
		e.engine.PutUint32(e.buf.Slice(offset, offset+4), math.Float32bits(v))
	}
}

// Bytes returns the encoded byte slice containing all written values.
//
// The returned slice references the internal buffer and is valid until the
// next write or Finish; the caller must not modify it.
func (e *Float32RawEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of encoded float32 values.
func (e *Float32RawEncoder) Len() int {
	return e.count
}

// Size returns the size in bytes of the encoded values.
func (e *Float32RawEncoder) Size() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access size after Finish()")
	}

	return e.buf.Len()
}

// Finish returns the backing buffer to the pool. The encoder is unusable
// afterwards; create a new one to encode more data.
func (e *Float32RawEncoder) Finish() {
	if e.buf != nil {
		pool.PutPayloadBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// Float32RawDecoder decodes float32 lane values produced by Float32RawEncoder.
//
// The decoder is immutable and stateless; it is returned by value so reuse
// costs nothing.
type Float32RawDecoder struct {
	engine endian.EndianEngine
}

var _ ColumnarDecoder[float32] = Float32RawDecoder{}

// NewFloat32RawDecoder creates a new float32 lane decoder using the specified
// endian engine. The engine must match the encoder's engine.
func NewFloat32RawDecoder(engine endian.EndianEngine) Float32RawDecoder {
	return Float32RawDecoder{engine: engine}
}

// All returns an iterator yielding count float32 values decoded from data.
func (d Float32RawDecoder) All(data []byte, count int) iter.Seq[float32] {
	return func(yield func(float32) bool) {
		if len(data) < count*4 || count == 0 {
			return
		}

		for i := range count {
			start := i * 4
			bits := d.engine.Uint32(data[start : start+4])
			if !yield(math.Float32frombits(bits)) {
				return
			}
		}
	}
}

// At retrieves the float32 value at the specified index, returning false if
// the index is out of bounds or the data is too short.
func (d Float32RawDecoder) At(data []byte, index int, count int) (float32, bool) {
	if len(data) == 0 || index < 0 || index >= count {
		return 0, false
	}

	start := index * 4
	if start+4 > len(data) {
		return 0, false
	}

	return math.Float32frombits(d.engine.Uint32(data[start : start+4])), true
}

// DecodeSlice decodes count float32 values from data into a newly allocated
// slice. It returns false when data is too short.
func (d Float32RawDecoder) DecodeSlice(data []byte, count int) ([]float32, bool) {
	if count < 0 || len(data) < count*4 {
		return nil, false
	}

	out := make([]float32, count)
	for i := range count {
		out[i] = math.Float32frombits(d.engine.Uint32(data[i*4 : i*4+4]))
	}

	return out, true
}
