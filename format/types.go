package format

type (
	AttributeType   uint8
	DataType        uint8
	TransformType   uint8
	EncodingMethod  uint8
	CompressionType uint8
)

const (
	AttributePosition AttributeType = 0x1 // AttributePosition represents a 3D position channel.
	AttributeNormal   AttributeType = 0x2 // AttributeNormal represents a unit normal vector channel.
	AttributeColor    AttributeType = 0x3 // AttributeColor represents a color channel.
	AttributeTexCoord AttributeType = 0x4 // AttributeTexCoord represents a texture coordinate channel.
	AttributeGeneric  AttributeType = 0x5 // AttributeGeneric represents an application-defined channel.

	DataTypeFloat32 DataType = 0x1 // DataTypeFloat32 represents IEEE 754 single-precision components.
	DataTypeUint32  DataType = 0x2 // DataTypeUint32 represents unsigned 32-bit integer components.
	DataTypeUint8   DataType = 0x3 // DataTypeUint8 represents unsigned 8-bit integer components.

	TransformNone         TransformType = 0x1 // TransformNone passes attribute values through unchanged.
	TransformOctahedron   TransformType = 0x2 // TransformOctahedron maps unit vectors to quantized octahedral coordinates.
	TransformQuantization TransformType = 0x3 // TransformQuantization linearly quantizes bounded float components.

	MethodSequential EncodingMethod = 0x1 // MethodSequential encodes points in their stored order.
	MethodKDTree     EncodingMethod = 0x2 // MethodKDTree encodes points in kd-tree spatial order.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (a AttributeType) String() string {
	switch a {
	case AttributePosition:
		return "Position"
	case AttributeNormal:
		return "Normal"
	case AttributeColor:
		return "Color"
	case AttributeTexCoord:
		return "TexCoord"
	case AttributeGeneric:
		return "Generic"
	default:
		return "Unknown"
	}
}

func (d DataType) String() string {
	switch d {
	case DataTypeFloat32:
		return "Float32"
	case DataTypeUint32:
		return "Uint32"
	case DataTypeUint8:
		return "Uint8"
	default:
		return "Unknown"
	}
}

// Size returns the size of a single component in bytes, or 0 for unknown types.
func (d DataType) Size() int {
	switch d {
	case DataTypeFloat32, DataTypeUint32:
		return 4
	case DataTypeUint8:
		return 1
	default:
		return 0
	}
}

func (t TransformType) String() string {
	switch t {
	case TransformNone:
		return "None"
	case TransformOctahedron:
		return "Octahedron"
	case TransformQuantization:
		return "Quantization"
	default:
		return "Unknown"
	}
}

func (m EncodingMethod) String() string {
	switch m {
	case MethodSequential:
		return "Sequential"
	case MethodKDTree:
		return "KDTree"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
