package stream

import (
	"math"

	"github.com/daig/spacetime-opticon/endian"
	"github.com/daig/spacetime-opticon/errs"
)

// DecoderBuffer reads fixed-width fields from a byte slice with an advancing
// cursor.
//
// Every read reports truncation as errs.ErrUnexpectedEndOfBuffer instead of
// panicking or returning zero values silently; a malformed blob must surface
// as an error, never as garbage data. The buffer does not copy the input
// slice, so the caller must keep it alive while decoding.
type DecoderBuffer struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

// NewDecoderBuffer creates a decoder buffer over data using the specified
// endian engine.
func NewDecoderBuffer(data []byte, engine endian.EndianEngine) *DecoderBuffer {
	return &DecoderBuffer{
		data:   data,
		engine: engine,
	}
}

// Engine returns the endian engine the buffer reads with.
func (b *DecoderBuffer) Engine() endian.EndianEngine {
	return b.engine
}

// Remaining returns the number of unread bytes.
func (b *DecoderBuffer) Remaining() int {
	return len(b.data) - b.pos
}

// Pos returns the current read offset from the start of the buffer.
func (b *DecoderBuffer) Pos() int {
	return b.pos
}

// ReadUint8 reads a single byte.
func (b *DecoderBuffer) ReadUint8() (uint8, error) {
	if b.Remaining() < 1 {
		return 0, errs.ErrUnexpectedEndOfBuffer
	}

	v := b.data[b.pos]
	b.pos++

	return v, nil
}

// ReadUint16 reads a 16-bit unsigned field.
func (b *DecoderBuffer) ReadUint16() (uint16, error) {
	if b.Remaining() < 2 {
		return 0, errs.ErrUnexpectedEndOfBuffer
	}

	v := b.engine.Uint16(b.data[b.pos : b.pos+2])
	b.pos += 2

	return v, nil
}

// ReadUint32 reads a 32-bit unsigned field.
func (b *DecoderBuffer) ReadUint32() (uint32, error) {
	if b.Remaining() < 4 {
		return 0, errs.ErrUnexpectedEndOfBuffer
	}

	v := b.engine.Uint32(b.data[b.pos : b.pos+4])
	b.pos += 4

	return v, nil
}

// ReadUint64 reads a 64-bit unsigned field.
func (b *DecoderBuffer) ReadUint64() (uint64, error) {
	if b.Remaining() < 8 {
		return 0, errs.ErrUnexpectedEndOfBuffer
	}

	v := b.engine.Uint64(b.data[b.pos : b.pos+8])
	b.pos += 8

	return v, nil
}

// ReadFloat32 reads a 32-bit float field from its IEEE 754 binary layout.
func (b *DecoderBuffer) ReadFloat32() (float32, error) {
	bits, err := b.ReadUint32()
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(bits), nil
}

// ReadBytes reads n raw bytes.
//
// The returned slice aliases the underlying buffer; callers that retain it
// past the life of the input must copy.
func (b *DecoderBuffer) ReadBytes(n int) ([]byte, error) {
	if n < 0 || b.Remaining() < n {
		return nil, errs.ErrUnexpectedEndOfBuffer
	}

	v := b.data[b.pos : b.pos+n]
	b.pos += n

	return v, nil
}
