package encoding

import (
	"iter"

	"github.com/daig/spacetime-opticon/endian"
	"github.com/daig/spacetime-opticon/internal/pool"
)

// Uint32RawEncoder encodes uint32 lane values in their native 4-byte binary
// representation using the configured endianness.
//
// Quantized octahedral coordinates and linearly quantized components are both
// stored as uint32 lanes, so this encoder covers every transformed payload.
type Uint32RawEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

var _ ColumnarEncoder[uint32] = (*Uint32RawEncoder)(nil)

// NewUint32RawEncoder creates a new uint32 lane encoder using the specified
// endian engine.
func NewUint32RawEncoder(engine endian.EndianEngine) *Uint32RawEncoder {
	return &Uint32RawEncoder{
		engine: engine,
		buf:    pool.GetPayloadBuffer(),
	}
}

// Write encodes a single uint32 value with amortized buffer growth.
//
// Panics if Finish() has been called (nil buffer).
func (e *Uint32RawEncoder) Write(value uint32) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count++
	e.buf.Grow(4)
	e.buf.B = e.engine.AppendUint32(e.buf.B, value)
}

// WriteSlice encodes a slice of uint32 values with a single buffer
// pre-allocation of 4 bytes per value.
//
// Panics if Finish() has been called (nil buffer).
func (e *Uint32RawEncoder) WriteSlice(values []uint32) {
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
		e.engine.PutUint32(e.buf.Slice(offset, offset+4), v)
	}
}

// Bytes returns the encoded byte slice containing all written values.
//
// The returned slice references the internal buffer and is valid until the
// next write or Finish; the caller must not modify it.
func (e *Uint32RawEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of encoded uint32 values.
func (e *Uint32RawEncoder) Len() int {
	return e.count
}

// Size returns the size in bytes of the encoded values.
func (e *Uint32RawEncoder) Size() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access size after Finish()")
	}

	return e.buf.Len()
}

// Finish returns the backing buffer to the pool. The encoder is unusable
// afterwards; create a new one to encode more data.
func (e *Uint32RawEncoder) Finish() {
	if e.buf != nil {
		pool.PutPayloadBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// Uint32RawDecoder decodes uint32 lane values produced by Uint32RawEncoder.
//
// The decoder is immutable and stateless; it is returned by value so reuse
// costs nothing.
type Uint32RawDecoder struct {
	engine endian.EndianEngine
}

var _ ColumnarDecoder[uint32] = Uint32RawDecoder{}

// NewUint32RawDecoder creates a new uint32 lane decoder using the specified
// endian engine. The engine must match the encoder's engine.
func NewUint32RawDecoder(engine endian.EndianEngine) Uint32RawDecoder {
	return Uint32RawDecoder{engine: engine}
}

// All returns an iterator yielding count uint32 values decoded from data.
func (d Uint32RawDecoder) All(data []byte, count int) iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		if len(data) < count*4 || count == 0 {
			return
		}

		for i := range count {
			start := i * 4
			if !yield(d.engine.Uint32(data[start : start+4])) {
				return
			}
		}
	}
}

// At retrieves the uint32 value at the specified index, returning false if the
// index is out of bounds or the data is too short.
func (d Uint32RawDecoder) At(data []byte, index int, count int) (uint32, bool) {
	if len(data) == 0 || index < 0 || index >= count {
		return 0, false
	}

	start := index * 4
	if start+4 > len(data) {
		return 0, false
	}

	return d.engine.Uint32(data[start : start+4]), true
}

// DecodeSlice decodes count uint32 values from data into a newly allocated
// slice. It returns false when data is too short.
func (d Uint32RawDecoder) DecodeSlice(data []byte, count int) ([]uint32, bool) {
	if count < 0 || len(data) < count*4 {
		return nil, false
	}

	out := make([]uint32, count)
	for i := range count {
		out[i] = d.engine.Uint32(data[i*4 : i*4+4])
	}

	return out, true
}
