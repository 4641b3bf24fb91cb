// Package opticon provides a compact binary format for storing point cloud
// attribute data.
//
// Opticon targets scanned and sampled 3D point sets with per-point attribute
// channels (positions, normals, colors, texture coordinates), trading a
// bounded reconstruction error for a large size reduction through per-channel
// attribute transforms and payload compression.
//
// # Core Features
//
//   -32-bit unit vector compression: normals become two quantized octahedral
//     coordinates with a bounded angular error
//   - Linear quantization for bounded float channels with per-component minima
//     and a shared range
//   - Lossless pass-through for integer channels and channels with
//     quantization disabled
//   - Optional payload compression (None, Zstd, S2, LZ4)
//   - Columnar payload layout with a trailing xxHash64 integrity digest
//   - Selectable byte order recorded in the blob header
//
// # Basic Usage
//
// Building and encoding a point cloud:
//
//	import "github.com/daig/spacetime-opticon"
//
//	cloud := pointcloud.New()
//	cloud.SetNumPoints(len(points))
//
//	posID, _ := cloud.AddAttribute(format.AttributePosition, format.DataTypeFloat32, 3, false)
//	cloud.SetFloatAttributeData(posID, positions)
//
//	normalID, _ := cloud.AddAttribute(format.AttributeNormal, format.DataTypeFloat32, 3, true)
//	cloud.SetFloatAttributeData(normalID, normals)
//
//	blob, err := opticon.Encode(cloud,
//	    codec.WithAttributeQuantization(format.AttributePosition, 14),
//	    codec.WithCompression(format.CompressionZstd),
//	)
//
// Decoding:
//
//	decoded, err := opticon.Decode(blob)
//	positions, _ := decoded.PositionData()
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the codec
// package, simplifying the most common use cases. For fine-grained control
// over transforms and payload serialization, use the codec, transform and
// pointcloud packages directly.
package opticon

import (
	"github.com/daig/spacetime-opticon/codec"
	"github.com/daig/spacetime-opticon/pointcloud"
)

// Encode encodes a point cloud into a self-contained compressed blob.
//
// Without options the encoder uses little-endian byte order, sequential point
// encoding, the default quantization precision per attribute type and a
// payload codec derived from the default speed settings.
//
// Available options:
//   - codec.WithLittleEndian() / codec.WithBigEndian()
//   - codec.WithEncodingMethod(format.MethodSequential|MethodKDTree)
//   - codec.WithCompression(format.CompressionNone|Zstd|S2|LZ4)
//   - codec.WithSpeedOptions(encodingSpeed, decodingSpeed)
//   - codec.WithAttributeQuantization(attrType, bits)
//
// Example:
//
//	blob, err := opticon.Encode(cloud,
//	    codec.WithAttributeQuantization(format.AttributeNormal, 10),
//	)
func Encode(cloud *pointcloud.PointCloud, opts ...codec.EncoderOption) ([]byte, error) {
	enc, err := codec.NewEncoder(cloud, opts...)
	if err != nil {
		return nil, err
	}

	return enc.Encode()
}

// Decode reconstructs a point cloud from a blob produced by Encode.
//
// The decoder reads the blob's own header for byte order, compression and
// per-attribute transform parameters; no out-of-band configuration is needed.
// A malformed or corrupted blob fails the whole decode.
func Decode(data []byte) (*pointcloud.PointCloud, error) {
	return codec.NewDecoder(data).Decode()
}

// NewPointCloud creates an empty point cloud. It is a convenience alias for
// pointcloud.New.
func NewPointCloud() *pointcloud.PointCloud {
	return pointcloud.New()
}
