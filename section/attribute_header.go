package section

import (
	"fmt"

	"github.com/daig/spacetime-opticon/errs"
	"github.com/daig/spacetime-opticon/format"
	"github.com/daig/spacetime-opticon/stream"
)

// AttributeHeader describes one attribute in the blob: its semantic type,
// original shape, the transform applied to it and the payload sizes.
//
// The fixed fields are followed in the stream by the transform's parameter
// block, whose width depends on the transform type; the transform itself
// encodes and decodes that block.
type AttributeHeader struct {
	AttributeType format.AttributeType
	DataType      format.DataType
	NumComponents uint8
	Normalized    bool
	TransformType format.TransformType
	RawSize       uint32 // uncompressed payload bytes
	PortableSize  uint32 // compressed payload bytes as stored
}

// Encode appends the fixed header fields to buf.
func (h *AttributeHeader) Encode(buf *stream.EncoderBuffer) {
	buf.WriteUint8(uint8(h.AttributeType))
	buf.WriteUint8(uint8(h.DataType))
	buf.WriteUint8(h.NumComponents)
	if h.Normalized {
		buf.WriteUint8(1)
	} else {
		buf.WriteUint8(0)
	}
	buf.WriteUint8(uint8(h.TransformType))
	buf.WriteUint32(h.RawSize)
	buf.WriteUint32(h.PortableSize)
}

// DecodeAttributeHeader reads and validates the fixed header fields from buf.
// The transform parameter block that follows is left for the transform to
// decode.
func DecodeAttributeHeader(buf *stream.DecoderBuffer) (AttributeHeader, error) {
	var h AttributeHeader

	fields := []struct {
		name string
		dst  *uint8
	}{
		{"attribute type", (*uint8)(&h.AttributeType)},
		{"data type", (*uint8)(&h.DataType)},
		{"component count", &h.NumComponents},
	}
	for _, f := range fields {
		v, err := buf.ReadUint8()
		if err != nil {
			return AttributeHeader{}, fmt.Errorf("read %s: %w", f.name, err)
		}
		*f.dst = v
	}

	normalized, err := buf.ReadUint8()
	if err != nil {
		return AttributeHeader{}, fmt.Errorf("read normalized flag: %w", err)
	}
	if normalized > 1 {
		return AttributeHeader{}, errs.ErrInvalidHeaderFlags
	}
	h.Normalized = normalized == 1

	transformType, err := buf.ReadUint8()
	if err != nil {
		return AttributeHeader{}, fmt.Errorf("read transform type: %w", err)
	}
	h.TransformType = format.TransformType(transformType)

	if h.RawSize, err = buf.ReadUint32(); err != nil {
		return AttributeHeader{}, fmt.Errorf("read raw size: %w", err)
	}
	if h.PortableSize, err = buf.ReadUint32(); err != nil {
		return AttributeHeader{}, fmt.Errorf("read portable size: %w", err)
	}

	if err := h.Validate(); err != nil {
		return AttributeHeader{}, err
	}

	return h, nil
}

// Validate rejects unknown enum tags and impossible shapes.
func (h *AttributeHeader) Validate() error {
	switch h.AttributeType {
	case format.AttributePosition, format.AttributeNormal, format.AttributeColor,
		format.AttributeTexCoord, format.AttributeGeneric:
	default:
		return errs.ErrInvalidAttributeType
	}

	if h.DataType.Size() == 0 {
		return errs.ErrInvalidDataType
	}

	if h.NumComponents < 1 || h.NumComponents > 8 {
		return errs.ErrComponentCountMismatch
	}

	switch h.TransformType {
	case format.TransformNone, format.TransformOctahedron, format.TransformQuantization:
	default:
		return errs.ErrInvalidTransformType
	}

	return nil
}
