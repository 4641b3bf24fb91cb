package transform

import (
	"fmt"
	"math"

	"github.com/daig/spacetime-opticon/errs"
	"github.com/daig/spacetime-opticon/format"
	"github.com/daig/spacetime-opticon/pointcloud"
	"github.com/daig/spacetime-opticon/stream"
)

// QuantizationTransform linearly quantizes bounded float components onto an
// integer grid of 2^bits − 1 steps.
//
// Every component c of a value is mapped to
//
//	q = floor((c − min[c]) / range · (2^bits − 1) + 0.5)
//
// where min holds the per-component minima and range is the largest
// per-component extent, shared across components so the grid is uniform.
// Values are clamped to the grid, so inputs outside [min, min+range] quantize
// to the grid edges rather than overflowing.
type QuantizationTransform struct {
	quantizationBits int32
	minValues        []float32
	rangeValue       float32
}

var _ AttributeTransform = (*QuantizationTransform)(nil)

// NewQuantizationTransform creates an unconfigured linear quantization
// transform. Call SetParameters, ComputeParameters, InitFromAttribute or
// DecodeParameters before use.
func NewQuantizationTransform() *QuantizationTransform {
	return &QuantizationTransform{quantizationBits: uninitializedBits}
}

// Type returns format.TransformQuantization.
func (t *QuantizationTransform) Type() format.TransformType { return format.TransformQuantization }

// IsInitialized reports whether precision and value bounds are configured.
func (t *QuantizationTransform) IsInitialized() bool {
	return t.quantizationBits != uninitializedBits && len(t.minValues) > 0
}

// QuantizationBits returns the configured precision, or -1 if unconfigured.
func (t *QuantizationTransform) QuantizationBits() int32 { return t.quantizationBits }

// MinValues returns the per-component minima. The slice is the transform's
// own; callers must not modify it.
func (t *QuantizationTransform) MinValues() []float32 { return t.minValues }

// Range returns the shared quantization range.
func (t *QuantizationTransform) Range() float32 { return t.rangeValue }

// SetParameters configures the transform explicitly. Bits must be in (0, 31],
// minValues must hold one minimum per component, and rangeValue must be a
// positive finite number.
func (t *QuantizationTransform) SetParameters(quantizationBits int, minValues []float32, rangeValue float32) error {
	if quantizationBits <= 0 || quantizationBits > MaxQuantizationBits {
		return fmt.Errorf("quantization bits %d: %w", quantizationBits, errs.ErrInvalidQuantizationBits)
	}
	if len(minValues) == 0 {
		return errs.ErrComponentCountMismatch
	}
	if !validRange(rangeValue) {
		return fmt.Errorf("range %v: %w", rangeValue, errs.ErrInvalidQuantizationRange)
	}

	t.quantizationBits = int32(quantizationBits)
	t.minValues = append([]float32(nil), minValues...)
	t.rangeValue = rangeValue

	return nil
}

// ComputeParameters derives the value bounds from the attribute's data and
// configures the transform with them. A constant attribute (zero extent)
// gets a range of 1 so it still round-trips.
func (t *QuantizationTransform) ComputeParameters(att *pointcloud.PointAttribute, quantizationBits int) error {
	if att.DataType() != format.DataTypeFloat32 {
		return errs.ErrDataTypeMismatch
	}
	if att.NumPoints() == 0 {
		return errs.ErrInvalidPointCount
	}

	data, err := att.FloatData()
	if err != nil {
		return err
	}

	comps := att.NumComponents()
	minValues := make([]float32, comps)
	maxValues := make([]float32, comps)
	copy(minValues, data[:comps])
	copy(maxValues, data[:comps])

	for i := comps; i < len(data); i += comps {
		for c := range comps {
			v := data[i+c]
			if v < minValues[c] {
				minValues[c] = v
			}
			if v > maxValues[c] {
				maxValues[c] = v
			}
		}
	}

	var rangeValue float32
	for c := range comps {
		if extent := maxValues[c] - minValues[c]; extent > rangeValue {
			rangeValue = extent
		}
	}
	if rangeValue == 0 {
		rangeValue = 1
	}

	return t.SetParameters(quantizationBits, minValues, rangeValue)
}

// InitFromAttribute recovers parameters from transform metadata stored on att.
func (t *QuantizationTransform) InitFromAttribute(att *pointcloud.PointAttribute) error {
	td := att.TransformData()
	if td == nil {
		return errs.ErrNoTransformData
	}
	if td.Type != format.TransformQuantization {
		return fmt.Errorf("stored transform is %s: %w", td.Type, errs.ErrInvalidTransformType)
	}

	return t.SetParameters(int(td.QuantizationBits), td.MinValues, td.Range)
}

// StoreTransformData copies the parameters into metadata on att.
func (t *QuantizationTransform) StoreTransformData(att *pointcloud.PointAttribute) error {
	if !t.IsInitialized() {
		return errs.ErrTransformNotInitialized
	}

	att.SetTransformData(&pointcloud.TransformData{
		Type:             format.TransformQuantization,
		QuantizationBits: t.quantizationBits,
		MinValues:        append([]float32(nil), t.minValues...),
		Range:            t.rangeValue,
	})

	return nil
}

// TransformedDataType returns the portable component type, always uint32.
func (t *QuantizationTransform) TransformedDataType(att *pointcloud.PointAttribute) format.DataType {
	return format.DataTypeUint32
}

// TransformedNumComponents returns the source component count; linear
// quantization preserves the attribute shape.
func (t *QuantizationTransform) TransformedNumComponents(att *pointcloud.PointAttribute) int {
	return att.NumComponents()
}

// TransformAttribute runs the forward pass, quantizing every component of the
// selected points into target.
func (t *QuantizationTransform) TransformAttribute(att *pointcloud.PointAttribute, pointIDs []uint32, target *pointcloud.PointAttribute) error {
	if !t.IsInitialized() {
		return errs.ErrTransformNotInitialized
	}
	if att.DataType() != format.DataTypeFloat32 {
		return errs.ErrDataTypeMismatch
	}
	comps := att.NumComponents()
	if len(t.minValues) != comps {
		return fmt.Errorf("parameters for %d components, attribute has %d: %w", len(t.minValues), comps, errs.ErrComponentCountMismatch)
	}
	if target.NumComponents() != comps || target.DataType() != format.DataTypeUint32 {
		return fmt.Errorf("portable attribute must have %d uint32 components: %w", comps, errs.ErrComponentCountMismatch)
	}
	if target.NumPoints() != len(pointIDs) {
		return errs.ErrPointCountMismatch
	}

	maxQuantized := float64(uint32(1)<<uint32(t.quantizationBits) - 1)
	scale := maxQuantized / float64(t.rangeValue)

	value := make([]float32, comps)
	quantized := make([]uint32, comps)
	for i, pid := range pointIDs {
		if err := att.FloatValue(int(pid), value); err != nil {
			return err
		}

		for c := range comps {
			q := math.Floor(float64(value[c]-t.minValues[c])*scale + 0.5)
			if q < 0 {
				q = 0
			} else if q > maxQuantized {
				q = maxQuantized
			}
			quantized[c] = uint32(q)
		}

		if err := target.SetUint32Value(i, quantized); err != nil {
			return err
		}
	}

	return nil
}

// InverseTransformAttribute dequantizes every value of the portable attribute
// att into target.
func (t *QuantizationTransform) InverseTransformAttribute(att *pointcloud.PointAttribute, target *pointcloud.PointAttribute) error {
	if !t.IsInitialized() {
		return errs.ErrTransformNotInitialized
	}
	comps := att.NumComponents()
	if att.DataType() != format.DataTypeUint32 {
		return errs.ErrDataTypeMismatch
	}
	if len(t.minValues) != comps {
		return fmt.Errorf("parameters for %d components, attribute has %d: %w", len(t.minValues), comps, errs.ErrComponentCountMismatch)
	}
	if target.NumComponents() != comps || target.DataType() != format.DataTypeFloat32 {
		return fmt.Errorf("target attribute must have %d float components: %w", comps, errs.ErrComponentCountMismatch)
	}
	if target.NumPoints() != att.NumPoints() {
		return errs.ErrPointCountMismatch
	}

	maxQuantized := float64(uint32(1)<<uint32(t.quantizationBits) - 1)
	scale := float64(t.rangeValue) / maxQuantized

	quantized := make([]uint32, comps)
	value := make([]float32, comps)
	for i := range att.NumPoints() {
		if err := att.Uint32Value(i, quantized); err != nil {
			return err
		}

		for c := range comps {
			value[c] = float32(float64(quantized[c])*scale) + t.minValues[c]
		}

		if err := target.SetFloatValue(i, value); err != nil {
			return err
		}
	}

	return nil
}

// EncodeParameters writes the bits byte followed by the per-component minima
// and the shared range as float32 fields.
func (t *QuantizationTransform) EncodeParameters(buf *stream.EncoderBuffer) error {
	if !t.IsInitialized() {
		return errs.ErrTransformNotInitialized
	}

	buf.WriteUint8(uint8(t.quantizationBits))
	for _, m := range t.minValues {
		buf.WriteFloat32(m)
	}
	buf.WriteFloat32(t.rangeValue)

	return nil
}

// DecodeParameters reads and validates the parameter block. The component
// count of att determines how many minima are read; invalid bits or a
// non-positive range rejects the stream as corrupt.
func (t *QuantizationTransform) DecodeParameters(att *pointcloud.PointAttribute, buf *stream.DecoderBuffer) error {
	bits, err := buf.ReadUint8()
	if err != nil {
		return fmt.Errorf("read quantization bits: %w", err)
	}
	if bits == 0 || bits > MaxQuantizationBits {
		return fmt.Errorf("quantization bits %d: %w", bits, errs.ErrInvalidQuantizationBits)
	}

	comps := att.NumComponents()
	minValues := make([]float32, comps)
	for c := range comps {
		if minValues[c], err = buf.ReadFloat32(); err != nil {
			return fmt.Errorf("read min value %d: %w", c, err)
		}
	}

	rangeValue, err := buf.ReadFloat32()
	if err != nil {
		return fmt.Errorf("read range: %w", err)
	}
	if !validRange(rangeValue) {
		return fmt.Errorf("range %v: %w", rangeValue, errs.ErrInvalidQuantizationRange)
	}

	t.quantizationBits = int32(bits)
	t.minValues = minValues
	t.rangeValue = rangeValue

	return nil
}

func validRange(r float32) bool {
	return r > 0 && !math.IsInf(float64(r), 0) && !math.IsNaN(float64(r))
}
