// Package pict decodes the legacy compressed indexed bitmaps embedded
// in the game's resource archives: a picture record holding run-length
// packed 8-bit pixel rows, resolved against a separate color-table
// resource. Only this bitmap class of the legacy picture specification
// is implemented.
package pict

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// Image decoding errors.
var (
	ErrCorruptImage           = errors.New("corrupt picture record")
	ErrStrideMismatch         = errors.New("row stride disagrees with declared width")
	ErrUnsupportedPixelFormat = errors.New("unsupported pixel format")
)

// pixelDataMarker is the opcode introducing the packed 8-bit pixel
// rows inside a picture record.
var pixelDataMarker = []byte{0x00, 0x98}

const (
	frameBoundsOffset = 2
	opcodeScanStart   = 10
	maxFrameEdge      = 4096
)

// IndexedImage is a decoded bitmap: width*height palette indices plus
// the palette that resolves them.
type IndexedImage struct {
	Width   int
	Height  int
	Pix     []uint8 // one palette index per pixel, row by row
	Palette Palette
}

// At returns the palette index at (x, y); out-of-range probes return 0.
func (img *IndexedImage) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		return 0
	}
	return img.Pix[y*img.Width+x]
}

// DecodeBitmap decodes one picture resource against its color-table
// resource.
//
// The frame bounds are mixed-endian on disk: top and left are
// big-endian, bottom and right little-endian. The reads below honor
// that literally; normalizing to one endianness would mask real format
// bugs, so it is deliberately not done.
func DecodeBitmap(pictData, clutData []byte) (*IndexedImage, error) {
	palette, err := ParseColorTable(clutData)
	if err != nil {
		return nil, err
	}

	if len(pictData) < opcodeScanStart {
		return nil, fmt.Errorf("%w: record is %d bytes", ErrCorruptImage, len(pictData))
	}

	top := int(binary.BigEndian.Uint16(pictData[frameBoundsOffset:]))
	left := int(binary.BigEndian.Uint16(pictData[frameBoundsOffset+2:]))
	bottom := int(binary.LittleEndian.Uint16(pictData[frameBoundsOffset+4:]))
	right := int(binary.LittleEndian.Uint16(pictData[frameBoundsOffset+6:]))

	width := right - left
	height := bottom - top
	if width <= 0 || height <= 0 || width > maxFrameEdge || height > maxFrameEdge {
		return nil, fmt.Errorf("%w: frame bounds (%d,%d)-(%d,%d)", ErrCorruptImage, top, left, bottom, right)
	}

	rel := bytes.Index(pictData[opcodeScanStart:], pixelDataMarker)
	if rel < 0 {
		return nil, fmt.Errorf("%w: no pixel data opcode", ErrCorruptImage)
	}
	pos := opcodeScanStart + rel + len(pixelDataMarker)
	if pos+4 > len(pictData) {
		return nil, fmt.Errorf("%w: pixel map header truncated", ErrCorruptImage)
	}

	rowBytes := int(binary.BigEndian.Uint16(pictData[pos:]) & 0x7fff)
	pixelSize := int(binary.BigEndian.Uint16(pictData[pos+2:]))
	pos += 4

	if pixelSize != 8 {
		return nil, fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedPixelFormat, pixelSize)
	}
	// At 8 bits per pixel the stride and the declared width must agree;
	// a mismatch would decode to banded, shifted rows.
	if rowBytes != width {
		return nil, fmt.Errorf("%w: rowBytes %d, width %d", ErrStrideMismatch, rowBytes, width)
	}

	img := &IndexedImage{
		Width:   width,
		Height:  height,
		Pix:     make([]uint8, 0, width*height),
		Palette: palette,
	}

	for row := 0; row < height; row++ {
		var packedLen int
		if rowBytes > 250 {
			if pos+2 > len(pictData) {
				return nil, fmt.Errorf("%w: row %d length prefix", ErrTruncatedStream, row)
			}
			packedLen = int(binary.BigEndian.Uint16(pictData[pos:]))
			pos += 2
		} else {
			if pos >= len(pictData) {
				return nil, fmt.Errorf("%w: row %d length prefix", ErrTruncatedStream, row)
			}
			packedLen = int(pictData[pos])
			pos++
		}
		if pos+packedLen > len(pictData) {
			return nil, fmt.Errorf("%w: row %d needs %d packed bytes, %d remain",
				ErrTruncatedStream, row, packedLen, len(pictData)-pos)
		}

		line, err := Unpack(pictData[pos : pos+packedLen])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		if len(line) != rowBytes {
			return nil, fmt.Errorf("%w: row %d unpacked to %d bytes, stride is %d",
				ErrStrideMismatch, row, len(line), rowBytes)
		}
		img.Pix = append(img.Pix, line...)
		pos += packedLen
	}

	return img, nil
}
