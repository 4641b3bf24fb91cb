// Package section defines the fixed header sections of a cloud blob: the
// blob-level header with its packed flag word, and the per-attribute headers
// that carry each attribute's shape and transform parameter block.
package section

const (
	// Bit masks for the header flag word.
	ReservedBitMask = 0x0001 // reserved bit 0, must be zero
	EndiannessMask  = 0x0002 // endianness bit (bit 1): 0 little, 1 big
	VersionMask     = 0x000C // format version (bits 2-3)
	MagicNumberMask = 0xFFF0 // magic number (bits 4-15)

	// MagicCloudV1Opt is the flag word for cloud blob format v1: magic number
	// plus version bits, little-endian.
	MagicCloudV1Opt = MagicCloudNumber | (FormatVersion1 << VersionShift)

	MagicCloudNumber = 0xA7C0 // magic number identifying a cloud blob
	FormatVersion1   = 0x1    // current format version
	VersionShift     = 2
)

const (
	// HeaderSize is the fixed blob header size in bytes.
	HeaderSize = 12

	// AttributeHeaderSize is the fixed portion of a per-attribute header in
	// bytes; the transform parameter block that follows is variable-width.
	AttributeHeaderSize = 13

	// MaxAttributeCount is the largest number of attributes a blob can index.
	MaxAttributeCount = 255
)
