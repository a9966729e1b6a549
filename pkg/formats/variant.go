package formats

import (
	"encoding/binary"
	"fmt"
)

// Variant identifies one of the incompatible on-disk scenario layouts.
// It is selected once per file from the magic number and fixes every
// subsequent offset interpretation for the lifetime of the decode.
type Variant uint8

// Known scenario layouts.
const (
	VariantUnknown Variant = iota
	VariantLegacy
	VariantStalingrad
	VariantCrusader
)

// Magic numbers, little-endian uint16 at offset 0.
const (
	MagicLegacy     uint16 = 0x0a4d
	MagicStalingrad uint16 = 0x0f4a
	MagicCrusader   uint16 = 0x0dac
)

// Minimum file lengths per variant: header + config + first text block
// (Crusader), header through the pointer table (Stalingrad), or header
// plus the full terrain grid (Legacy).
const (
	crusaderMinLen   = 0x100
	stalingradMinLen = 0x60
	legacyMinLen     = legacyGridOffset + DefaultGridWidth*DefaultGridHeight
)

// String returns a human-readable variant name.
func (v Variant) String() string {
	switch v {
	case VariantLegacy:
		return "Legacy"
	case VariantStalingrad:
		return "Stalingrad"
	case VariantCrusader:
		return "Crusader"
	default:
		return "Unknown"
	}
}

// minLen returns the smallest file length the variant's fixed offsets
// require before any field access is legal.
func (v Variant) minLen() int {
	switch v {
	case VariantLegacy:
		return legacyMinLen
	case VariantStalingrad:
		return stalingradMinLen
	case VariantCrusader:
		return crusaderMinLen
	default:
		return 2
	}
}

// Detect reads the magic number and maps it to a Variant. Any magic
// outside the known set is a hard failure; guessing a layout risks a
// silently wrong decode, so there is no fallback.
func Detect(data []byte) (Variant, uint16, error) {
	if len(data) < 2 {
		return VariantUnknown, 0, fmt.Errorf("%w: %d bytes, need at least 2", ErrTruncatedFile, len(data))
	}
	magic := binary.LittleEndian.Uint16(data[0:2])
	switch magic {
	case MagicLegacy:
		return VariantLegacy, magic, nil
	case MagicStalingrad:
		return VariantStalingrad, magic, nil
	case MagicCrusader:
		return VariantCrusader, magic, nil
	default:
		return VariantUnknown, magic, fmt.Errorf("%w: magic 0x%04x", ErrUnrecognizedFormat, magic)
	}
}
