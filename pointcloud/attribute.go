// Package pointcloud provides the point cloud container and its per-point
// attribute buffers.
//
// A PointCloud owns a set of PointAttributes. Each attribute is an ordered
// mapping from point index to a fixed-size tuple of numeric components; the
// component data type and count are metadata on the attribute, not per value.
// Attribute transforms read a source attribute and write into a separately
// allocated portable or target attribute, never mutating the source shape.
package pointcloud

import (
	"fmt"
	"unsafe"

	"github.com/daig/spacetime-opticon/errs"
	"github.com/daig/spacetime-opticon/format"
	"github.com/golang/geo/r3"
)

// TransformData records which transform produced an attribute and with what
// settings, so a transform can later be reconstructed from the attribute alone.
//
// QuantizationBits of -1 means unset. MinValues and Range are only populated
// for the linear quantization transform.
type TransformData struct {
	Type             format.TransformType
	QuantizationBits int32
	MinValues        []float32
	Range            float32
}

// PointAttribute is a typed, per-point array of numeric components.
//
// Raw storage is owned by the attribute and laid out as numPoints consecutive
// values of NumComponents components each, in host byte order.
type PointAttribute struct {
	attrType      format.AttributeType
	dataType      format.DataType
	numComponents int
	normalized    bool
	numPoints     int
	data          []byte

	transformData *TransformData
}

// NewPointAttribute creates an attribute with the given shape and no points.
// Call SetNumPoints (directly or through the owning cloud) to allocate storage.
func NewPointAttribute(attrType format.AttributeType, dataType format.DataType, numComponents int, normalized bool) (*PointAttribute, error) {
	if dataType.Size() == 0 {
		return nil, fmt.Errorf("attribute %s: %w", attrType, errs.ErrInvalidDataType)
	}
	if numComponents < 1 || numComponents > 8 {
		return nil, fmt.Errorf("attribute %s with %d components: %w", attrType, numComponents, errs.ErrComponentCountMismatch)
	}

	return &PointAttribute{
		attrType:      attrType,
		dataType:      dataType,
		numComponents: numComponents,
		normalized:    normalized,
	}, nil
}

// AttributeType returns the semantic channel this attribute stores.
func (a *PointAttribute) AttributeType() format.AttributeType { return a.attrType }

// DataType returns the component data type.
func (a *PointAttribute) DataType() format.DataType { return a.dataType }

// NumComponents returns the number of components per value.
func (a *PointAttribute) NumComponents() int { return a.numComponents }

// Normalized reports whether integer components represent normalized [0, 1] values.
func (a *PointAttribute) Normalized() bool { return a.normalized }

// NumPoints returns the number of values the attribute holds.
func (a *PointAttribute) NumPoints() int { return a.numPoints }

// Stride returns the byte size of one value.
func (a *PointAttribute) Stride() int { return a.numComponents * a.dataType.Size() }

// SetNumPoints resizes the attribute to hold n values, discarding existing data.
func (a *PointAttribute) SetNumPoints(n int) error {
	if n < 0 {
		return errs.ErrInvalidPointCount
	}

	a.numPoints = n
	a.data = make([]byte, n*a.Stride())

	return nil
}

// Data returns the raw component storage. The slice aliases the attribute's
// buffer; treat it as read-only.
func (a *PointAttribute) Data() []byte { return a.data }

// SetData replaces the raw component storage. The length must match the
// attribute shape exactly.
func (a *PointAttribute) SetData(data []byte) error {
	if len(data) != a.numPoints*a.Stride() {
		return fmt.Errorf("got %d bytes, want %d: %w", len(data), a.numPoints*a.Stride(), errs.ErrInvalidDataSize)
	}

	a.data = data

	return nil
}

// TransformData returns the stored transform metadata, or nil if none.
func (a *PointAttribute) TransformData() *TransformData { return a.transformData }

// SetTransformData attaches transform metadata to the attribute.
func (a *PointAttribute) SetTransformData(td *TransformData) { a.transformData = td }

// floatView reinterprets the raw storage as a float32 slice.
// Valid only for DataTypeFloat32 attributes with allocated storage.
func (a *PointAttribute) floatView() []float32 {
	if len(a.data) == 0 {
		return nil
	}

	return unsafe.Slice((*float32)(unsafe.Pointer(&a.data[0])), len(a.data)/4)
}

// uint32View reinterprets the raw storage as a uint32 slice.
// Valid only for DataTypeUint32 attributes with allocated storage.
func (a *PointAttribute) uint32View() []uint32 {
	if len(a.data) == 0 {
		return nil
	}

	return unsafe.Slice((*uint32)(unsafe.Pointer(&a.data[0])), len(a.data)/4)
}

func (a *PointAttribute) checkAccess(pointIndex int, want format.DataType) error {
	if a.dataType != want {
		return fmt.Errorf("attribute is %s, not %s: %w", a.dataType, want, errs.ErrDataTypeMismatch)
	}
	if pointIndex < 0 || pointIndex >= a.numPoints {
		return fmt.Errorf("point %d of %d: %w", pointIndex, a.numPoints, errs.ErrPointIndexOutOfRange)
	}

	return nil
}

// FloatValue copies the value at pointIndex into out, which must hold exactly
// NumComponents elements.
func (a *PointAttribute) FloatValue(pointIndex int, out []float32) error {
	if err := a.checkAccess(pointIndex, format.DataTypeFloat32); err != nil {
		return err
	}
	if len(out) != a.numComponents {
		return errs.ErrComponentCountMismatch
	}

	copy(out, a.floatView()[pointIndex*a.numComponents:])

	return nil
}

// SetFloatValue stores vals as the value at pointIndex. vals must hold exactly
// NumComponents elements.
func (a *PointAttribute) SetFloatValue(pointIndex int, vals []float32) error {
	if err := a.checkAccess(pointIndex, format.DataTypeFloat32); err != nil {
		return err
	}
	if len(vals) != a.numComponents {
		return errs.ErrComponentCountMismatch
	}

	copy(a.floatView()[pointIndex*a.numComponents:], vals)

	return nil
}

// Uint32Value copies the value at pointIndex into out, which must hold exactly
// NumComponents elements.
func (a *PointAttribute) Uint32Value(pointIndex int, out []uint32) error {
	if err := a.checkAccess(pointIndex, format.DataTypeUint32); err != nil {
		return err
	}
	if len(out) != a.numComponents {
		return errs.ErrComponentCountMismatch
	}

	copy(out, a.uint32View()[pointIndex*a.numComponents:])

	return nil
}

// SetUint32Value stores vals as the value at pointIndex. vals must hold
// exactly NumComponents elements.
func (a *PointAttribute) SetUint32Value(pointIndex int, vals []uint32) error {
	if err := a.checkAccess(pointIndex, format.DataTypeUint32); err != nil {
		return err
	}
	if len(vals) != a.numComponents {
		return errs.ErrComponentCountMismatch
	}

	copy(a.uint32View()[pointIndex*a.numComponents:], vals)

	return nil
}

// Vector3 returns the value at pointIndex as a 3-vector. The attribute must
// have exactly 3 float32 components.
func (a *PointAttribute) Vector3(pointIndex int) (r3.Vector, error) {
	if a.numComponents != 3 {
		return r3.Vector{}, errs.ErrComponentCountMismatch
	}

	var buf [3]float32
	if err := a.FloatValue(pointIndex, buf[:]); err != nil {
		return r3.Vector{}, err
	}

	return r3.Vector{X: float64(buf[0]), Y: float64(buf[1]), Z: float64(buf[2])}, nil
}

// SetVector3 stores v as the value at pointIndex. The attribute must have
// exactly 3 float32 components.
func (a *PointAttribute) SetVector3(pointIndex int, v r3.Vector) error {
	if a.numComponents != 3 {
		return errs.ErrComponentCountMismatch
	}

	buf := [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}

	return a.SetFloatValue(pointIndex, buf[:])
}

// FloatData returns a copy of all component values as a flat float32 slice in
// point order.
func (a *PointAttribute) FloatData() ([]float32, error) {
	if a.dataType != format.DataTypeFloat32 {
		return nil, errs.ErrDataTypeMismatch
	}

	out := make([]float32, a.numPoints*a.numComponents)
	copy(out, a.floatView())

	return out, nil
}

// SetFloatData bulk-loads all component values from a flat float32 slice in
// point order. The slice length must equal NumPoints × NumComponents.
func (a *PointAttribute) SetFloatData(values []float32) error {
	if a.dataType != format.DataTypeFloat32 {
		return errs.ErrDataTypeMismatch
	}
	if len(values) != a.numPoints*a.numComponents {
		return fmt.Errorf("got %d values, want %d: %w", len(values), a.numPoints*a.numComponents, errs.ErrInvalidDataSize)
	}

	copy(a.floatView(), values)

	return nil
}

// Uint32Data returns a copy of all component values as a flat uint32 slice in
// point order.
func (a *PointAttribute) Uint32Data() ([]uint32, error) {
	if a.dataType != format.DataTypeUint32 {
		return nil, errs.ErrDataTypeMismatch
	}

	out := make([]uint32, a.numPoints*a.numComponents)
	copy(out, a.uint32View())

	return out, nil
}

// SetUint32Data bulk-loads all component values from a flat uint32 slice in
// point order. The slice length must equal NumPoints × NumComponents.
func (a *PointAttribute) SetUint32Data(values []uint32) error {
	if a.dataType != format.DataTypeUint32 {
		return errs.ErrDataTypeMismatch
	}
	if len(values) != a.numPoints*a.numComponents {
		return fmt.Errorf("got %d values, want %d: %w", len(values), a.numPoints*a.numComponents, errs.ErrInvalidDataSize)
	}

	copy(a.uint32View(), values)

	return nil
}
