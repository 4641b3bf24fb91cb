// Package transform implements the attribute transforms that convert
// per-point attribute values into compact, quantization-friendly portable
// form before entropy coding, and exactly invert that mapping on decode.
//
// A transform is stateless with respect to point data: it holds only its
// parameters and is constructed fresh per attribute. Forward and inverse
// passes over a point-id sequence have no data dependency between points, so
// callers may split the id range across goroutines as long as the target
// attribute is pre-sized and every point index is written by exactly one task.
//
// The transform family:
//
//   - OctahedronTransform: unit 3-vectors → two quantized octahedral
//     coordinates. Lossy within a bounded angular error.
//   - QuantizationTransform: bounded float components → linearly quantized
//     integers with per-component minimum and a shared range.
//   - NoneTransform: identity pass-through for losslessly stored attributes.
package transform

import (
	"github.com/daig/spacetime-opticon/errs"
	"github.com/daig/spacetime-opticon/format"
	"github.com/daig/spacetime-opticon/pointcloud"
	"github.com/daig/spacetime-opticon/stream"
)

// AttributeTransform converts a point attribute to its portable form and back.
//
// Implementations must be configured through SetParameters, InitFromAttribute
// or DecodeParameters before a forward or inverse pass; passes on an
// unconfigured transform fail with errs.ErrTransformNotInitialized.
type AttributeTransform interface {
	// Type returns the transform type tag serialized into attribute headers.
	Type() format.TransformType

	// InitFromAttribute populates the transform's parameters from metadata
	// stored on an already-transformed attribute. It fails when the attribute
	// carries no metadata or metadata of a different transform type.
	InitFromAttribute(att *pointcloud.PointAttribute) error

	// TransformedDataType returns the component data type of the portable
	// attribute this transform produces for the given source attribute.
	TransformedDataType(att *pointcloud.PointAttribute) format.DataType

	// TransformedNumComponents returns the component count of the portable
	// attribute this transform produces for the given source attribute.
	TransformedNumComponents(att *pointcloud.PointAttribute) int

	// TransformAttribute runs the forward pass over pointIDs, writing exactly
	// TransformedNumComponents values per id into target. The target must be
	// pre-sized to len(pointIDs) points with the transformed shape. On error
	// the target contents are unspecified and must be discarded.
	TransformAttribute(att *pointcloud.PointAttribute, pointIDs []uint32, target *pointcloud.PointAttribute) error

	// InverseTransformAttribute reconstructs original-space values for every
	// point of the portable attribute att into target. On error the target
	// contents are unspecified and must be discarded.
	InverseTransformAttribute(att *pointcloud.PointAttribute, target *pointcloud.PointAttribute) error

	// EncodeParameters serializes the parameter block into the stream.
	EncodeParameters(buf *stream.EncoderBuffer) error

	// DecodeParameters deserializes and validates the parameter block from the
	// stream. att is the attribute the parameters will apply to; out-of-range
	// values or an incompatible attribute shape fail the decode, and the
	// caller must treat the stream as corrupt.
	DecodeParameters(att *pointcloud.PointAttribute, buf *stream.DecoderBuffer) error

	// StoreTransformData copies the transform's parameters into metadata on
	// att, the counterpart of InitFromAttribute.
	StoreTransformData(att *pointcloud.PointAttribute) error

	// IsInitialized reports whether parameters have been set by either the
	// configuration or the decoding path.
	IsInitialized() bool
}

// New creates an unconfigured transform of the given type.
func New(t format.TransformType) (AttributeTransform, error) {
	switch t {
	case format.TransformNone:
		return NewNoneTransform(), nil
	case format.TransformOctahedron:
		return NewOctahedronTransform(), nil
	case format.TransformQuantization:
		return NewQuantizationTransform(), nil
	default:
		return nil, errs.ErrInvalidTransformType
	}
}

// NoneTransform is the identity member of the transform family: the portable
// attribute is a value-for-value copy of the source and no parameters are
// serialized.
type NoneTransform struct{}

var _ AttributeTransform = NoneTransform{}

// NewNoneTransform creates an identity transform. It needs no configuration.
func NewNoneTransform() NoneTransform {
	return NoneTransform{}
}

// Type returns format.TransformNone.
func (NoneTransform) Type() format.TransformType { return format.TransformNone }

// InitFromAttribute accepts any attribute; the identity transform has no
// parameters to recover.
func (NoneTransform) InitFromAttribute(att *pointcloud.PointAttribute) error { return nil }

// TransformedDataType returns the source data type unchanged.
func (NoneTransform) TransformedDataType(att *pointcloud.PointAttribute) format.DataType {
	return att.DataType()
}

// TransformedNumComponents returns the source component count unchanged.
func (NoneTransform) TransformedNumComponents(att *pointcloud.PointAttribute) int {
	return att.NumComponents()
}

// TransformAttribute copies the selected values into target unchanged.
func (NoneTransform) TransformAttribute(att *pointcloud.PointAttribute, pointIDs []uint32, target *pointcloud.PointAttribute) error {
	if target.DataType() != att.DataType() || target.NumComponents() != att.NumComponents() {
		return errs.ErrDataTypeMismatch
	}
	if target.NumPoints() != len(pointIDs) {
		return errs.ErrPointCountMismatch
	}

	stride := att.Stride()
	src := att.Data()
	dst := target.Data()
	for i, pid := range pointIDs {
		if int(pid) >= att.NumPoints() {
			return errs.ErrPointIndexOutOfRange
		}
		copy(dst[i*stride:(i+1)*stride], src[int(pid)*stride:])
	}

	return nil
}

// InverseTransformAttribute copies the portable values into target unchanged.
func (NoneTransform) InverseTransformAttribute(att *pointcloud.PointAttribute, target *pointcloud.PointAttribute) error {
	if target.DataType() != att.DataType() || target.NumComponents() != att.NumComponents() {
		return errs.ErrDataTypeMismatch
	}
	if target.NumPoints() != att.NumPoints() {
		return errs.ErrPointCountMismatch
	}

	copy(target.Data(), att.Data())

	return nil
}

// StoreTransformData marks att as untransformed.
func (NoneTransform) StoreTransformData(att *pointcloud.PointAttribute) error {
	att.SetTransformData(&pointcloud.TransformData{
		Type:             format.TransformNone,
		QuantizationBits: -1,
	})

	return nil
}

// EncodeParameters writes nothing; the identity transform has no parameters.
func (NoneTransform) EncodeParameters(buf *stream.EncoderBuffer) error { return nil }

// DecodeParameters reads nothing.
func (NoneTransform) DecodeParameters(att *pointcloud.PointAttribute, buf *stream.DecoderBuffer) error {
	return nil
}

// IsInitialized always reports true.
func (NoneTransform) IsInitialized() bool { return true }
