package section

import (
	"github.com/daig/spacetime-opticon/endian"
	"github.com/daig/spacetime-opticon/errs"
)

// CloudFlag is the packed flag word at the start of the blob header.
//
// Bit 0 is reserved and must be zero. Bit 1 is the endianness flag, 0 meaning
// little-endian payloads. Bits 2-3 carry the format version. Bits 4-15 hold
// the magic number identifying the cloud blob format.
//
// The flag word itself is always stored little-endian so a decoder can read
// it before knowing the blob's byte order.
type CloudFlag struct {
	Options uint16
}

// NewCloudFlag creates a flag word for format v1 with little-endian payloads.
func NewCloudFlag() CloudFlag {
	return CloudFlag{Options: MagicCloudV1Opt}
}

// IsLittleEndian reports whether payloads are little-endian.
func (f CloudFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian reports whether payloads are big-endian.
func (f CloudFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *CloudFlag) WithLittleEndian() {
	f.Options &^= uint16(EndiannessMask)
}

// WithBigEndian sets big-endian byte order.
func (f *CloudFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetEndianEngine returns the engine matching the endianness flag.
func (f CloudFlag) GetEndianEngine() endian.EndianEngine {
	if f.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// GetMagicNumber returns the magic number bits of the flag word.
func (f CloudFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// Version returns the format version bits of the flag word.
func (f CloudFlag) Version() uint8 {
	return uint8((f.Options & VersionMask) >> VersionShift)
}

// Validate checks the magic number, version and reserved bits.
func (f CloudFlag) Validate() error {
	if f.GetMagicNumber() != MagicCloudNumber {
		return errs.ErrInvalidMagicNumber
	}
	if f.Version() != FormatVersion1 {
		return errs.ErrUnsupportedVersion
	}
	if f.Options&ReservedBitMask != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	return nil
}
