// Package codec provides the encoder and decoder facades that turn a point
// cloud into a self-contained compressed blob and back.
//
// The encoder selects a transform per attribute, forward-transforms attribute
// values into portable form, serializes them into columnar payloads,
// compresses each payload and assembles the blob: a fixed header, one
// attribute header with its transform parameter block per attribute, the
// compressed payloads and a trailing integrity digest. The decoder inverts
// each step and fails on the first malformed field; there is no partial
// success for a single attribute.
package codec

import (
	"fmt"

	"github.com/daig/spacetime-opticon/compress"
	"github.com/daig/spacetime-opticon/encoding"
	"github.com/daig/spacetime-opticon/endian"
	"github.com/daig/spacetime-opticon/errs"
	"github.com/daig/spacetime-opticon/format"
	"github.com/daig/spacetime-opticon/internal/hash"
	"github.com/daig/spacetime-opticon/internal/options"
	"github.com/daig/spacetime-opticon/pointcloud"
	"github.com/daig/spacetime-opticon/section"
	"github.com/daig/spacetime-opticon/stream"
	"github.com/daig/spacetime-opticon/transform"
	"golang.org/x/sync/errgroup"
)

// MaxQuantizationBits mirrors transform.MaxQuantizationBits for callers
// configuring the encoder.
const MaxQuantizationBits = transform.MaxQuantizationBits

// Default quantization precision per attribute type, applied unless
// WithAttributeQuantization overrides it.
var defaultQuantization = map[format.AttributeType]int{
	format.AttributePosition: 14,
	format.AttributeNormal:   10,
	format.AttributeColor:    8,
	format.AttributeTexCoord: 12,
	format.AttributeGeneric:  8,
}

// Encoder encodes a point cloud into a compressed blob.
//
// An Encoder is configured once, used for a single Encode pass and not safe
// for concurrent use.
type Encoder struct {
	cloud *pointcloud.PointCloud

	flag           section.CloudFlag
	method         format.EncodingMethod
	compression    format.CompressionType
	compressionSet bool
	quantization   map[format.AttributeType]int
	encodingSpeed  int
	decodingSpeed  int
}

// NewEncoder creates an encoder for the given point cloud with custom options.
func NewEncoder(cloud *pointcloud.PointCloud, opts ...EncoderOption) (*Encoder, error) {
	e := &Encoder{
		cloud:         cloud,
		flag:          section.NewCloudFlag(),
		method:        format.MethodSequential,
		quantization:  make(map[format.AttributeType]int),
		encodingSpeed: 5,
		decodingSpeed: 5,
	}

	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	return e, nil
}

// effectiveCompression resolves the payload codec: an explicit WithCompression
// choice wins, otherwise the slower of the two speed settings decides.
func (e *Encoder) effectiveCompression() format.CompressionType {
	if e.compressionSet {
		return e.compression
	}

	speed := min(e.encodingSpeed, e.decodingSpeed)
	switch {
	case speed <= 3:
		return format.CompressionZstd
	case speed <= 7:
		return format.CompressionS2
	default:
		return format.CompressionNone
	}
}

// quantizationBits returns the configured precision for an attribute type.
func (e *Encoder) quantizationBits(attrType format.AttributeType) int {
	if bits, ok := e.quantization[attrType]; ok {
		return bits
	}
	if bits, ok := defaultQuantization[attrType]; ok {
		return bits
	}

	return defaultQuantization[format.AttributeGeneric]
}

// transformForAttribute builds and configures the transform encoding att.
//
// Normals with 3 float components get the octahedral transform; other float
// attributes get linear quantization; attributes with quantization disabled
// (0 bits) or non-float storage pass through untransformed.
func (e *Encoder) transformForAttribute(att *pointcloud.PointAttribute) (transform.AttributeTransform, error) {
	if att.DataType() != format.DataTypeFloat32 {
		return transform.NewNoneTransform(), nil
	}

	bits := e.quantizationBits(att.AttributeType())
	if bits == 0 {
		return transform.NewNoneTransform(), nil
	}

	if att.AttributeType() == format.AttributeNormal && att.NumComponents() == 3 {
		t := transform.NewOctahedronTransform()
		if err := t.SetParameters(bits); err != nil {
			return nil, err
		}

		return t, nil
	}

	t := transform.NewQuantizationTransform()
	if err := t.ComputeParameters(att, bits); err != nil {
		return nil, err
	}

	return t, nil
}

// encodedAttribute holds one attribute's outputs until blob assembly.
type encodedAttribute struct {
	header     section.AttributeHeader
	tr         transform.AttributeTransform
	raw        []byte // serialized portable payload before compression
	compressed []byte
}

// Encode runs the full encode pass and returns the assembled blob.
//
// Attributes are transformed and compressed concurrently; the blob lists them
// in their cloud order regardless.
func (e *Encoder) Encode() ([]byte, error) {
	if e.cloud == nil || e.cloud.NumPoints() == 0 {
		return nil, errs.ErrInvalidPointCount
	}
	numAttrs := e.cloud.NumAttributes()
	if numAttrs == 0 {
		return nil, errs.ErrNoAttributes
	}
	if numAttrs > section.MaxAttributeCount {
		return nil, errs.ErrAttributeCountExceeded
	}
	if e.method != format.MethodSequential {
		return nil, fmt.Errorf("%s encoding is not implemented: %w", e.method, errs.ErrInvalidEncodingMethod)
	}

	compression := e.effectiveCompression()
	codec, err := compress.NewCodec(compression)
	if err != nil {
		return nil, err
	}

	engine := e.flag.GetEndianEngine()
	pointIDs := sequentialPointIDs(e.cloud.NumPoints())

	encoded := make([]encodedAttribute, numAttrs)
	var group errgroup.Group
	for i := range numAttrs {
		group.Go(func() error {
			result, err := e.encodeAttribute(e.cloud.Attribute(i), pointIDs, codec)
			if err != nil {
				return fmt.Errorf("attribute %d: %w", i, err)
			}
			encoded[i] = result

			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	header := section.NewCloudHeader(e.method, compression)
	header.Flag = e.flag
	header.PointCount = uint32(e.cloud.NumPoints())
	header.AttributeCount = uint8(numAttrs)

	buf := stream.NewEncoderBuffer(engine)
	defer buf.Finish()

	buf.WriteBytes(header.Bytes())

	for i := range encoded {
		encoded[i].header.Encode(buf)
		if err := encoded[i].tr.EncodeParameters(buf); err != nil {
			return nil, fmt.Errorf("attribute %d parameters: %w", i, err)
		}
	}

	digest := hash.NewDigest()
	for i := range encoded {
		buf.WriteBytes(encoded[i].compressed)
		digest.Write(encoded[i].raw)
	}
	buf.WriteUint64(digest.Sum64())

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// encodeAttribute forward-transforms one attribute and compresses its
// serialized portable payload.
func (e *Encoder) encodeAttribute(att *pointcloud.PointAttribute, pointIDs []uint32, codec compress.Codec) (encodedAttribute, error) {
	tr, err := e.transformForAttribute(att)
	if err != nil {
		return encodedAttribute{}, err
	}

	portable, err := pointcloud.NewPointAttribute(att.AttributeType(), tr.TransformedDataType(att), tr.TransformedNumComponents(att), false)
	if err != nil {
		return encodedAttribute{}, err
	}
	if err := portable.SetNumPoints(len(pointIDs)); err != nil {
		return encodedAttribute{}, err
	}

	if err := tr.TransformAttribute(att, pointIDs, portable); err != nil {
		return encodedAttribute{}, err
	}
	if err := tr.StoreTransformData(portable); err != nil {
		return encodedAttribute{}, err
	}

	raw, err := serializePortable(portable, e.flag.GetEndianEngine())
	if err != nil {
		return encodedAttribute{}, err
	}

	compressed, err := codec.Compress(raw)
	if err != nil {
		return encodedAttribute{}, fmt.Errorf("compress payload: %w", err)
	}

	return encodedAttribute{
		header: section.AttributeHeader{
			AttributeType: att.AttributeType(),
			DataType:      att.DataType(),
			NumComponents: uint8(att.NumComponents()),
			Normalized:    att.Normalized(),
			TransformType: tr.Type(),
			RawSize:       uint32(len(raw)),
			PortableSize:  uint32(len(compressed)),
		},
		tr:         tr,
		raw:        raw,
		compressed: compressed,
	}, nil
}

// serializePortable flattens a portable attribute into a columnar payload in
// the blob's byte order.
func serializePortable(portable *pointcloud.PointAttribute, engine endian.EndianEngine) ([]byte, error) {
	switch portable.DataType() {
	case format.DataTypeUint32:
		values, err := portable.Uint32Data()
		if err != nil {
			return nil, err
		}
		enc := encoding.NewUint32RawEncoder(engine)
		defer enc.Finish()
		enc.WriteSlice(values)

		out := make([]byte, enc.Size())
		copy(out, enc.Bytes())

		return out, nil
	case format.DataTypeFloat32:
		values, err := portable.FloatData()
		if err != nil {
			return nil, err
		}
		enc := encoding.NewFloat32RawEncoder(engine)
		defer enc.Finish()
		enc.WriteSlice(values)

		out := make([]byte, enc.Size())
		copy(out, enc.Bytes())

		return out, nil
	case format.DataTypeUint8:
		out := make([]byte, len(portable.Data()))
		copy(out, portable.Data())

		return out, nil
	default:
		return nil, errs.ErrInvalidDataType
	}
}

// sequentialPointIDs returns the identity id sequence [0, n).
func sequentialPointIDs(n int) []uint32 {
	ids := make([]uint32, n)
	for i := range ids {
		ids[i] = uint32(i)
	}

	return ids
}
