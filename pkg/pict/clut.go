package pict

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrPaletteMissing reports an image decode attempted without its
// palette resource.
var ErrPaletteMissing = errors.New("palette resource missing")

// RGB is one resolved palette entry.
type RGB struct {
	R, G, B uint8
}

// Palette is an ordered indexed-color table of up to 256 entries.
type Palette []RGB

// clut layout: seed u32, flags u16, size u16 (entry count minus one),
// then 8-byte entries of (value u16, red u16, green u16, blue u16),
// all big-endian with 16 bits per channel.
const (
	clutHeaderLen = 8
	clutEntryLen  = 8
)

// ParseColorTable decodes a color-table resource. Channel values are
// 16-bit in the source and are scaled to 8-bit by taking the high byte;
// averaging would shift colors that the original renderer never showed.
func ParseColorTable(data []byte) (Palette, error) {
	if len(data) == 0 {
		return nil, ErrPaletteMissing
	}
	if len(data) < clutHeaderLen {
		return nil, fmt.Errorf("%w: color table header is %d bytes", ErrCorruptImage, len(data))
	}

	count := int(binary.BigEndian.Uint16(data[6:])) + 1
	if count > 256 {
		return nil, fmt.Errorf("%w: color table declares %d entries", ErrCorruptImage, count)
	}
	if clutHeaderLen+count*clutEntryLen > len(data) {
		return nil, fmt.Errorf("%w: color table truncated at entry %d",
			ErrCorruptImage, (len(data)-clutHeaderLen)/clutEntryLen)
	}

	p := make(Palette, count)
	for i := 0; i < count; i++ {
		e := data[clutHeaderLen+i*clutEntryLen:]
		p[i] = RGB{
			R: e[2], // high byte of the 16-bit channel
			G: e[4],
			B: e[6],
		}
	}
	return p, nil
}
