// Package stream provides the byte stream adapters used to serialize and
// deserialize cloud blob headers and transform parameter blocks.
//
// EncoderBuffer appends fixed-width fields to a pooled buffer; DecoderBuffer
// reads them back with explicit errors on truncation. Both operate through an
// endian.EndianEngine so the same code path serves little- and big-endian
// blobs.
package stream

import (
	"math"

	"github.com/daig/spacetime-opticon/endian"
	"github.com/daig/spacetime-opticon/internal/pool"
)

// EncoderBuffer accumulates fixed-width fields into a pooled byte buffer.
//
// It never fails: all writes append and grow as needed. Call Finish to return
// the backing buffer to the pool once the encoded bytes have been copied out.
type EncoderBuffer struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
}

// NewEncoderBuffer creates an encoder buffer using the specified endian engine.
func NewEncoderBuffer(engine endian.EndianEngine) *EncoderBuffer {
	return &EncoderBuffer{
		buf:    pool.GetPayloadBuffer(),
		engine: engine,
	}
}

// Engine returns the endian engine the buffer writes with.
func (b *EncoderBuffer) Engine() endian.EndianEngine {
	return b.engine
}

// WriteUint8 appends a single byte.
func (b *EncoderBuffer) WriteUint8(v uint8) {
	b.buf.MustWrite([]byte{v})
}

// WriteUint16 appends a 16-bit unsigned field.
func (b *EncoderBuffer) WriteUint16(v uint16) {
	b.buf.B = b.engine.AppendUint16(b.buf.B, v)
}

// WriteUint32 appends a 32-bit unsigned field.
func (b *EncoderBuffer) WriteUint32(v uint32) {
	b.buf.B = b.engine.AppendUint32(b.buf.B, v)
}

// WriteUint64 appends a 64-bit unsigned field.
func (b *EncoderBuffer) WriteUint64(v uint64) {
	b.buf.B = b.engine.AppendUint64(b.buf.B, v)
}

// WriteFloat32 appends a 32-bit float field in IEEE 754 binary layout.
func (b *EncoderBuffer) WriteFloat32(v float32) {
	b.buf.B = b.engine.AppendUint32(b.buf.B, math.Float32bits(v))
}

// WriteBytes appends raw bytes without a length prefix.
func (b *EncoderBuffer) WriteBytes(data []byte) {
	b.buf.MustWrite(data)
}

// Bytes returns the accumulated bytes.
//
// The returned slice is valid until the next write or Finish; callers that
// retain it must copy.
func (b *EncoderBuffer) Bytes() []byte {
	return b.buf.Bytes()
}

// Len returns the number of bytes written so far.
func (b *EncoderBuffer) Len() int {
	return b.buf.Len()
}

// Reset clears the buffer for reuse without returning it to the pool.
func (b *EncoderBuffer) Reset() {
	b.buf.Reset()
}

// Finish returns the backing buffer to the pool. The EncoderBuffer must not be
// used afterwards.
func (b *EncoderBuffer) Finish() {
	if b.buf != nil {
		pool.PutPayloadBuffer(b.buf)
		b.buf = nil
	}
}
