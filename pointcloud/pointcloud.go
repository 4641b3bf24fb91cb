package pointcloud

import (
	"fmt"

	"github.com/daig/spacetime-opticon/errs"
	"github.com/daig/spacetime-opticon/format"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/floats"
)

// PointCloud is a container of per-point attribute channels sharing a common
// point count.
type PointCloud struct {
	numPoints  int
	attributes []*PointAttribute
}

// New creates an empty point cloud.
func New() *PointCloud {
	return &PointCloud{}
}

// NumPoints returns the number of points in the cloud.
func (pc *PointCloud) NumPoints() int { return pc.numPoints }

// SetNumPoints resizes the cloud to n points. Storage of every attached
// attribute is reallocated and cleared.
func (pc *PointCloud) SetNumPoints(n int) error {
	if n < 0 {
		return errs.ErrInvalidPointCount
	}

	pc.numPoints = n
	for _, att := range pc.attributes {
		if err := att.SetNumPoints(n); err != nil {
			return err
		}
	}

	return nil
}

// NumAttributes returns the number of attached attributes.
func (pc *PointCloud) NumAttributes() int { return len(pc.attributes) }

// AddAttribute creates an attribute with the given shape, sizes it to the
// cloud's point count and attaches it. It returns the attribute id used with
// Attribute.
func (pc *PointCloud) AddAttribute(attrType format.AttributeType, dataType format.DataType, numComponents int, normalized bool) (int, error) {
	att, err := NewPointAttribute(attrType, dataType, numComponents, normalized)
	if err != nil {
		return -1, err
	}
	if err := att.SetNumPoints(pc.numPoints); err != nil {
		return -1, err
	}

	pc.attributes = append(pc.attributes, att)

	return len(pc.attributes) - 1, nil
}

// AttachAttribute attaches an existing attribute. Its point count must match
// the cloud's.
func (pc *PointCloud) AttachAttribute(att *PointAttribute) (int, error) {
	if att.NumPoints() != pc.numPoints {
		return -1, fmt.Errorf("attribute has %d points, cloud has %d: %w", att.NumPoints(), pc.numPoints, errs.ErrPointCountMismatch)
	}

	pc.attributes = append(pc.attributes, att)

	return len(pc.attributes) - 1, nil
}

// Attribute returns the attribute with the given id, or nil if out of range.
func (pc *PointCloud) Attribute(id int) *PointAttribute {
	if id < 0 || id >= len(pc.attributes) {
		return nil
	}

	return pc.attributes[id]
}

// NamedAttribute returns the first attribute of the given type.
func (pc *PointCloud) NamedAttribute(attrType format.AttributeType) (*PointAttribute, error) {
	for _, att := range pc.attributes {
		if att.AttributeType() == attrType {
			return att, nil
		}
	}

	return nil, fmt.Errorf("no %s attribute: %w", attrType, errs.ErrAttributeNotFound)
}

// SetFloatAttributeData bulk-loads float component data into the attribute
// with the given id.
func (pc *PointCloud) SetFloatAttributeData(id int, values []float32) error {
	att := pc.Attribute(id)
	if att == nil {
		return errs.ErrAttributeNotFound
	}

	return att.SetFloatData(values)
}

// PositionData returns a copy of the position attribute's component data as a
// flat [x1 y1 z1 x2 y2 z2 ...] slice.
func (pc *PointCloud) PositionData() ([]float32, error) {
	att, err := pc.NamedAttribute(format.AttributePosition)
	if err != nil {
		return nil, err
	}

	return att.FloatData()
}

// BoundingBox computes the axis-aligned bounding box of the position
// attribute. It fails when the cloud has no points or no 3-component float
// position attribute.
func (pc *PointCloud) BoundingBox() (minCorner, maxCorner r3.Vector, err error) {
	att, err := pc.NamedAttribute(format.AttributePosition)
	if err != nil {
		return r3.Vector{}, r3.Vector{}, err
	}
	if att.NumComponents() != 3 || att.DataType() != format.DataTypeFloat32 {
		return r3.Vector{}, r3.Vector{}, errs.ErrComponentCountMismatch
	}
	if att.NumPoints() == 0 {
		return r3.Vector{}, r3.Vector{}, errs.ErrInvalidPointCount
	}

	data, err := att.FloatData()
	if err != nil {
		return r3.Vector{}, r3.Vector{}, err
	}

	// De-interleave into per-axis lanes for the reductions.
	n := att.NumPoints()
	axes := [3][]float64{
		make([]float64, n),
		make([]float64, n),
		make([]float64, n),
	}
	for i := range n {
		axes[0][i] = float64(data[i*3])
		axes[1][i] = float64(data[i*3+1])
		axes[2][i] = float64(data[i*3+2])
	}

	minCorner = r3.Vector{X: floats.Min(axes[0]), Y: floats.Min(axes[1]), Z: floats.Min(axes[2])}
	maxCorner = r3.Vector{X: floats.Max(axes[0]), Y: floats.Max(axes[1]), Z: floats.Max(axes[2])}

	return minCorner, maxCorner, nil
}
