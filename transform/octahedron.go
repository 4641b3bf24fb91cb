package transform

import (
	"fmt"
	"math"

	"github.com/daig/spacetime-opticon/errs"
	"github.com/daig/spacetime-opticon/format"
	"github.com/daig/spacetime-opticon/pointcloud"
	"github.com/daig/spacetime-opticon/stream"
	"github.com/golang/geo/r3"
)

// MaxQuantizationBits is the largest supported quantization precision. The
// quantized grid must fit a 32-bit unsigned component, so 31 bits is the cap.
const MaxQuantizationBits = 31

const uninitializedBits = -1

// OctahedronTransform compresses 3-component unit vectors (typically surface
// normals) into two quantized integer components.
//
// Unit vectors occupy a 2-sphere, not full 3-space: the forward pass projects
// a vector onto the unit octahedron by L1 normalization, folds the lower
// hemisphere into the upper square, and quantizes the resulting coordinates
// onto a grid of 2^bits − 1 steps per axis. The inverse pass dequantizes,
// unfolds, reconstructs the third component from the octahedral identity
// |ox| + |oy| + |z| = 1 and renormalizes to unit length.
//
// Inputs are not renormalized: the round-trip error bound only holds for unit
// vectors, and callers own normalization. A zero vector is mapped to the
// octahedral center (0, 0), which decodes to (0, 0, 1).
type OctahedronTransform struct {
	quantizationBits int32
}

var _ AttributeTransform = (*OctahedronTransform)(nil)

// NewOctahedronTransform creates an unconfigured octahedral transform. Call
// SetParameters, InitFromAttribute or DecodeParameters before use.
func NewOctahedronTransform() *OctahedronTransform {
	return &OctahedronTransform{quantizationBits: uninitializedBits}
}

// Type returns format.TransformOctahedron.
func (t *OctahedronTransform) Type() format.TransformType { return format.TransformOctahedron }

// IsInitialized reports whether quantization bits have been configured.
func (t *OctahedronTransform) IsInitialized() bool { return t.quantizationBits != uninitializedBits }

// QuantizationBits returns the configured precision, or -1 if unconfigured.
func (t *OctahedronTransform) QuantizationBits() int32 { return t.quantizationBits }

// SetParameters configures the quantization precision. Valid range is (0, 31].
func (t *OctahedronTransform) SetParameters(quantizationBits int) error {
	if quantizationBits <= 0 || quantizationBits > MaxQuantizationBits {
		return fmt.Errorf("quantization bits %d: %w", quantizationBits, errs.ErrInvalidQuantizationBits)
	}

	t.quantizationBits = int32(quantizationBits)

	return nil
}

// InitFromAttribute recovers the quantization precision from transform
// metadata stored on att.
func (t *OctahedronTransform) InitFromAttribute(att *pointcloud.PointAttribute) error {
	td := att.TransformData()
	if td == nil {
		return errs.ErrNoTransformData
	}
	if td.Type != format.TransformOctahedron {
		return fmt.Errorf("stored transform is %s: %w", td.Type, errs.ErrInvalidTransformType)
	}

	return t.SetParameters(int(td.QuantizationBits))
}

// StoreTransformData copies the quantization precision into metadata on att.
func (t *OctahedronTransform) StoreTransformData(att *pointcloud.PointAttribute) error {
	if !t.IsInitialized() {
		return errs.ErrTransformNotInitialized
	}

	att.SetTransformData(&pointcloud.TransformData{
		Type:             format.TransformOctahedron,
		QuantizationBits: t.quantizationBits,
	})

	return nil
}

// TransformedDataType returns the portable component type, always uint32.
func (t *OctahedronTransform) TransformedDataType(att *pointcloud.PointAttribute) format.DataType {
	return format.DataTypeUint32
}

// TransformedNumComponents returns the portable component count, always 2
// regardless of the 3-component source layout.
func (t *OctahedronTransform) TransformedNumComponents(att *pointcloud.PointAttribute) int {
	return 2
}

// TransformAttribute runs the forward pass: for every id in pointIDs the
// source vector is projected, folded and quantized into two uint32 components
// of target.
func (t *OctahedronTransform) TransformAttribute(att *pointcloud.PointAttribute, pointIDs []uint32, target *pointcloud.PointAttribute) error {
	if !t.IsInitialized() {
		return errs.ErrTransformNotInitialized
	}
	if att.NumComponents() != 3 || att.DataType() != format.DataTypeFloat32 {
		return fmt.Errorf("octahedral transform needs 3 float components, got %d %s: %w",
			att.NumComponents(), att.DataType(), errs.ErrComponentCountMismatch)
	}
	if target.NumComponents() != 2 || target.DataType() != format.DataTypeUint32 {
		return fmt.Errorf("portable attribute must have 2 uint32 components: %w", errs.ErrComponentCountMismatch)
	}
	if target.NumPoints() != len(pointIDs) {
		return fmt.Errorf("target holds %d points for %d ids: %w", target.NumPoints(), len(pointIDs), errs.ErrPointCountMismatch)
	}

	maxValue := float64(uint32(1)<<uint32(t.quantizationBits) - 1)

	var quantized [2]uint32
	for i, pid := range pointIDs {
		v, err := att.Vector3(int(pid))
		if err != nil {
			return err
		}

		ox, oy := projectToOctahedron(v)
		quantized[0] = quantizeOctCoord(ox, maxValue)
		quantized[1] = quantizeOctCoord(oy, maxValue)

		if err := target.SetUint32Value(i, quantized[:]); err != nil {
			return err
		}
	}

	return nil
}

// InverseTransformAttribute reconstructs unit vectors from the portable
// attribute att into target for every point.
func (t *OctahedronTransform) InverseTransformAttribute(att *pointcloud.PointAttribute, target *pointcloud.PointAttribute) error {
	if !t.IsInitialized() {
		return errs.ErrTransformNotInitialized
	}
	if att.NumComponents() != 2 || att.DataType() != format.DataTypeUint32 {
		return fmt.Errorf("portable attribute must have 2 uint32 components: %w", errs.ErrComponentCountMismatch)
	}
	if target.NumComponents() != 3 || target.DataType() != format.DataTypeFloat32 {
		return fmt.Errorf("target attribute must have 3 float components: %w", errs.ErrComponentCountMismatch)
	}
	if target.NumPoints() != att.NumPoints() {
		return fmt.Errorf("target holds %d points for %d portable values: %w", target.NumPoints(), att.NumPoints(), errs.ErrPointCountMismatch)
	}

	maxValue := float64(uint32(1)<<uint32(t.quantizationBits) - 1)

	var quantized [2]uint32
	for i := range att.NumPoints() {
		if err := att.Uint32Value(i, quantized[:]); err != nil {
			return err
		}

		v := octahedronToUnitVector(quantized[0], quantized[1], maxValue)
		if err := target.SetVector3(i, v); err != nil {
			return err
		}
	}

	return nil
}

// EncodeParameters writes the quantization precision as a single byte.
func (t *OctahedronTransform) EncodeParameters(buf *stream.EncoderBuffer) error {
	if !t.IsInitialized() {
		return errs.ErrTransformNotInitialized
	}

	buf.WriteUint8(uint8(t.quantizationBits))

	return nil
}

// DecodeParameters reads and validates the quantization precision. The owning
// attribute must have exactly 3 components; a bit count outside (0, 31]
// rejects the stream as corrupt.
func (t *OctahedronTransform) DecodeParameters(att *pointcloud.PointAttribute, buf *stream.DecoderBuffer) error {
	if att.NumComponents() != 3 {
		return fmt.Errorf("octahedral parameters on a %d-component attribute: %w", att.NumComponents(), errs.ErrComponentCountMismatch)
	}

	bits, err := buf.ReadUint8()
	if err != nil {
		return fmt.Errorf("read quantization bits: %w", err)
	}
	if bits == 0 || bits > MaxQuantizationBits {
		return fmt.Errorf("quantization bits %d: %w", bits, errs.ErrInvalidQuantizationBits)
	}

	t.quantizationBits = int32(bits)

	return nil
}

// projectToOctahedron maps a vector onto the octahedral square [-1, 1]^2.
//
// The vector is L1-normalized and the lower hemisphere (z < 0) is folded into
// the square's corners. A zero vector maps to the center (0, 0).
func projectToOctahedron(v r3.Vector) (ox, oy float64) {
	s := math.Abs(v.X) + math.Abs(v.Y) + math.Abs(v.Z)
	if s == 0 {
		return 0, 0
	}

	ox = v.X / s
	oy = v.Y / s
	if v.Z < 0 {
		ox, oy = foldOctahedron(ox, oy)
	}

	return ox, oy
}

// foldOctahedron reflects a lower-hemisphere point into the outer corners of
// the octahedral square. The mapping is an involution: applying it to folded
// coordinates recovers the originals, which is exactly how the inverse pass
// unfolds.
func foldOctahedron(ox, oy float64) (fx, fy float64) {
	fx = signNotNegative(ox) * (1 - math.Abs(oy))
	fy = signNotNegative(oy) * (1 - math.Abs(ox))

	return fx, fy
}

// octahedronToUnitVector dequantizes (qx, qy), unfolds the lower hemisphere
// and renormalizes the reconstructed vector to unit length.
func octahedronToUnitVector(qx, qy uint32, maxValue float64) r3.Vector {
	ox := float64(qx)/maxValue*2 - 1
	oy := float64(qy)/maxValue*2 - 1

	z := 1 - math.Abs(ox) - math.Abs(oy)
	if z < 0 {
		// The point was folded: unfold and keep z on the lower hemisphere.
		ox, oy = foldOctahedron(ox, oy)
		z = -(1 - math.Abs(ox) - math.Abs(oy))
	}

	v := r3.Vector{X: ox, Y: oy, Z: z}
	if norm := v.Norm(); norm > 0 {
		v = v.Mul(1 / norm)
	}

	return v
}

// quantizeOctCoord maps an octahedral coordinate in [-1, 1] onto the integer
// grid [0, maxValue], clamping values pushed out of range by rounding.
func quantizeOctCoord(o, maxValue float64) uint32 {
	q := math.Round((o + 1) / 2 * maxValue)
	if q < 0 {
		q = 0
	} else if q > maxValue {
		q = maxValue
	}

	return uint32(q)
}

// signNotNegative is the fold's sign convention: sign(0) is +1. Encoder and
// decoder must agree on this or normals at the fold seam come back mirrored.
func signNotNegative(v float64) float64 {
	if v < 0 {
		return -1
	}

	return 1
}
