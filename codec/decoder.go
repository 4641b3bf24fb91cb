package codec

import (
	"fmt"

	"github.com/daig/spacetime-opticon/compress"
	"github.com/daig/spacetime-opticon/encoding"
	"github.com/daig/spacetime-opticon/endian"
	"github.com/daig/spacetime-opticon/errs"
	"github.com/daig/spacetime-opticon/format"
	"github.com/daig/spacetime-opticon/internal/hash"
	"github.com/daig/spacetime-opticon/pointcloud"
	"github.com/daig/spacetime-opticon/section"
	"github.com/daig/spacetime-opticon/stream"
	"github.com/daig/spacetime-opticon/transform"
	"golang.org/x/sync/errgroup"
)

// Decoder decodes a compressed blob back into a point cloud.
//
// Any malformed field fails the whole decode: a corrupt attribute transform
// invalidates the point cloud, so there is no per-attribute recovery.
type Decoder struct {
	data []byte
}

// NewDecoder creates a decoder over the given blob bytes. The slice is not
// copied and must stay alive until Decode returns.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// decodedAttribute carries one attribute's state between the header, payload
// and inverse-transform phases.
type decodedAttribute struct {
	header   section.AttributeHeader
	tr       transform.AttributeTransform
	target   *pointcloud.PointAttribute
	portable *pointcloud.PointAttribute
}

// Decode parses and validates the blob, decompresses the payloads, verifies
// the integrity digest and inverse-transforms every attribute into a freshly
// built point cloud.
func (d *Decoder) Decode() (*pointcloud.PointCloud, error) {
	header, err := section.ParseCloudHeader(d.data)
	if err != nil {
		return nil, err
	}
	if header.Method != format.MethodSequential {
		return nil, fmt.Errorf("%s decoding is not supported: %w", header.Method, errs.ErrInvalidEncodingMethod)
	}

	codec, err := compress.NewCodec(header.Compression)
	if err != nil {
		return nil, err
	}

	engine := header.Flag.GetEndianEngine()
	buf := stream.NewDecoderBuffer(d.data[section.HeaderSize:], engine)

	numPoints := int(header.PointCount)
	if numPoints == 0 {
		return nil, errs.ErrInvalidPointCount
	}
	numAttrs := int(header.AttributeCount)
	if numAttrs == 0 {
		return nil, errs.ErrNoAttributes
	}

	cloud := pointcloud.New()
	if err := cloud.SetNumPoints(numPoints); err != nil {
		return nil, err
	}

	// Phase 1: attribute headers and transform parameter blocks, in order.
	// Parameters must be decoded before any inverse pass runs.
	attrs := make([]decodedAttribute, numAttrs)
	for i := range attrs {
		if attrs[i], err = decodeAttributeHeader(buf, numPoints); err != nil {
			return nil, fmt.Errorf("attribute %d: %w", i, err)
		}
	}

	// Phase 2: payloads in header order, verifying the digest before any
	// reconstructed value is trusted.
	digest := hash.NewDigest()
	for i := range attrs {
		if err := decodeAttributePayload(buf, &attrs[i], codec, digest, engine); err != nil {
			return nil, fmt.Errorf("attribute %d payload: %w", i, err)
		}
	}

	stored, err := buf.ReadUint64()
	if err != nil {
		return nil, fmt.Errorf("read digest: %w", err)
	}
	if stored != digest.Sum64() {
		return nil, errs.ErrChecksumMismatch
	}
	if buf.Remaining() != 0 {
		return nil, errs.ErrPayloadSizeMismatch
	}

	// Phase 3: inverse transforms, independent per attribute.
	var group errgroup.Group
	for i := range attrs {
		group.Go(func() error {
			att := &attrs[i]
			if err := att.tr.InverseTransformAttribute(att.portable, att.target); err != nil {
				return fmt.Errorf("attribute %d inverse transform: %w", i, err)
			}

			return att.tr.StoreTransformData(att.target)
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	for i := range attrs {
		if _, err := cloud.AttachAttribute(attrs[i].target); err != nil {
			return nil, err
		}
	}

	return cloud, nil
}

// decodeAttributeHeader reads one attribute header plus its transform
// parameter block and allocates the reconstruction target.
func decodeAttributeHeader(buf *stream.DecoderBuffer, numPoints int) (decodedAttribute, error) {
	header, err := section.DecodeAttributeHeader(buf)
	if err != nil {
		return decodedAttribute{}, err
	}

	target, err := pointcloud.NewPointAttribute(header.AttributeType, header.DataType, int(header.NumComponents), header.Normalized)
	if err != nil {
		return decodedAttribute{}, err
	}
	if err := target.SetNumPoints(numPoints); err != nil {
		return decodedAttribute{}, err
	}

	tr, err := transform.New(header.TransformType)
	if err != nil {
		return decodedAttribute{}, err
	}
	if err := tr.DecodeParameters(target, buf); err != nil {
		return decodedAttribute{}, err
	}

	return decodedAttribute{
		header: header,
		tr:     tr,
		target: target,
	}, nil
}

// decodeAttributePayload reads and decompresses one payload, folds it into
// the digest and deserializes it into the portable attribute.
func decodeAttributePayload(buf *stream.DecoderBuffer, att *decodedAttribute, codec compress.Codec, digest *hash.Digest, engine endian.EndianEngine) error {
	compressed, err := buf.ReadBytes(int(att.header.PortableSize))
	if err != nil {
		return err
	}

	raw, err := codec.Decompress(compressed)
	if err != nil {
		return fmt.Errorf("decompress: %w", err)
	}
	if len(raw) != int(att.header.RawSize) {
		return errs.ErrPayloadSizeMismatch
	}
	digest.Write(raw)

	portable, err := pointcloud.NewPointAttribute(
		att.header.AttributeType,
		att.tr.TransformedDataType(att.target),
		att.tr.TransformedNumComponents(att.target),
		false,
	)
	if err != nil {
		return err
	}
	if err := portable.SetNumPoints(att.target.NumPoints()); err != nil {
		return err
	}
	if len(raw) != portable.NumPoints()*portable.Stride() {
		return errs.ErrPayloadSizeMismatch
	}

	if err := deserializePortable(portable, raw, engine); err != nil {
		return err
	}
	att.portable = portable

	return nil
}

// deserializePortable fills a portable attribute from a columnar payload in
// the blob's byte order.
func deserializePortable(portable *pointcloud.PointAttribute, raw []byte, engine endian.EndianEngine) error {
	count := portable.NumPoints() * portable.NumComponents()

	switch portable.DataType() {
	case format.DataTypeUint32:
		values, ok := encoding.NewUint32RawDecoder(engine).DecodeSlice(raw, count)
		if !ok {
			return errs.ErrPayloadSizeMismatch
		}

		return portable.SetUint32Data(values)
	case format.DataTypeFloat32:
		values, ok := encoding.NewFloat32RawDecoder(engine).DecodeSlice(raw, count)
		if !ok {
			return errs.ErrPayloadSizeMismatch
		}

		return portable.SetFloatData(values)
	case format.DataTypeUint8:
		data := make([]byte, len(raw))
		copy(data, raw)

		return portable.SetData(data)
	default:
		return errs.ErrInvalidDataType
	}
}
