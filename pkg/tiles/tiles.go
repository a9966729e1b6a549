// Package tiles cuts a decoded terrain sprite sheet into discrete
// fixed-size hex tiles and converts them to RGBA. Slicing is
// deterministic: the same sheet and parameters always produce the same
// tiles, which is what makes the tile cache content-addressable.
package tiles

import (
	"errors"
	"fmt"

	"github.com/hexforge/victory/pkg/pict"
)

// ErrOutOfBounds reports a tile cell that would read past the sheet
// edge. Wrong stride or offset calibration shows up here first, as
// visible seams come from exactly this kind of overflow being patched.
var ErrOutOfBounds = errors.New("tile cell outside sheet bounds")

// Params is the slicing calibration for one sprite sheet. TileW/TileH
// describe the outer tile cell (the external 34x38 contract used for
// bounds checks and the cache key); the copied content is the inner
// (TileW-2)x(TileH-2) sub-rectangle at (+1,+1), which keeps neighboring
// cells' edge pixels out of the tile.
type Params struct {
	StrideX          int `yaml:"stride_x" json:"stride_x"`
	StrideY          int `yaml:"stride_y" json:"stride_y"`
	OffsetX          int `yaml:"offset_x" json:"offset_x"`
	TileW            int `yaml:"tile_width" json:"tile_width"`
	TileH            int `yaml:"tile_height" json:"tile_height"`
	TransparentIndex int `yaml:"transparent_index" json:"transparent_index"`
}

// DefaultParams is the calibration for the stock 448x570 terrain sheet.
func DefaultParams() Params {
	return Params{
		StrideX:          34,
		StrideY:          38,
		OffsetX:          12,
		TileW:            34,
		TileH:            38,
		TransparentIndex: 0,
	}
}

// ContentW returns the width of the copied inner content.
func (p Params) ContentW() int { return p.TileW - 2 }

// ContentH returns the height of the copied inner content.
func (p Params) ContentH() int { return p.TileH - 2 }

// Origin returns the sheet coordinates of a tile cell.
func (p Params) Origin(row, col int) (x, y int) {
	return col*p.StrideX + p.OffsetX, row * p.StrideY
}

// Placement locates one terrain id's tile on the sheet.
type Placement struct {
	Row int
	Col int
}

// TerrainPlacements maps each terrain id (0-16) to its cell on the
// stock sheet. Recovered by calibration against known scenarios; a
// wrong entry produces a recognizably foreign tile, not a crash.
var TerrainPlacements = [17]Placement{
	{0, 0},  // 0: deep water
	{0, 1},  // 1: shallow water
	{0, 2},  // 2: beach
	{1, 0},  // 3: clear
	{1, 1},  // 4: rough
	{1, 2},  // 5: hills
	{1, 3},  // 6: mountains
	{2, 0},  // 7: forest
	{2, 1},  // 8: light woods
	{2, 2},  // 9: swamp
	{3, 0},  // 10: town
	{3, 1},  // 11: city
	{3, 2},  // 12: fortification
	{4, 0},  // 13: fields
	{4, 1},  // 14: bocage
	{5, 0},  // 15: river
	{13, 3}, // 16: impassable
}

// Tile is one sliced hex tile, RGBA with 4 bytes per pixel.
type Tile struct {
	Terrain uint8
	Width   int
	Height  int
	Pixels  []byte
}

// SliceCell copies the inner content of the cell at (row, col) out of
// the sheet as RGBA. The full outer cell must sit strictly inside the
// sheet: a cell reaching the sheet's last pixel row or column overlaps
// the trailing guard strip, which is not tile data.
func SliceCell(sheet *pict.IndexedImage, p Params, row, col int) ([]byte, error) {
	if row < 0 || col < 0 {
		return nil, fmt.Errorf("%w: cell (%d,%d)", ErrOutOfBounds, row, col)
	}
	x, y := p.Origin(row, col)
	if x+p.TileW >= sheet.Width || y+p.TileH >= sheet.Height {
		return nil, fmt.Errorf("%w: cell (%d,%d) at (%d,%d), sheet %dx%d",
			ErrOutOfBounds, row, col, x, y, sheet.Width, sheet.Height)
	}

	w, h := p.ContentW(), p.ContentH()
	out := make([]byte, w*h*4)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			idx := sheet.At(x+1+c, y+1+r)
			o := (r*w + c) * 4
			if int(idx) == p.TransparentIndex {
				continue // leave fully transparent
			}
			if int(idx) >= len(sheet.Palette) {
				return nil, fmt.Errorf("palette index %d outside %d-entry table", idx, len(sheet.Palette))
			}
			rgb := sheet.Palette[idx]
			out[o] = rgb.R
			out[o+1] = rgb.G
			out[o+2] = rgb.B
			out[o+3] = 0xFF
		}
	}
	return out, nil
}

// Slice cuts every mapped terrain tile out of the sheet.
func Slice(sheet *pict.IndexedImage, p Params) (map[uint8]Tile, error) {
	out := make(map[uint8]Tile, len(TerrainPlacements))
	for id, place := range TerrainPlacements {
		pixels, err := SliceCell(sheet, p, place.Row, place.Col)
		if err != nil {
			return nil, fmt.Errorf("terrain %d: %w", id, err)
		}
		out[uint8(id)] = Tile{
			Terrain: uint8(id),
			Width:   p.ContentW(),
			Height:  p.ContentH(),
			Pixels:  pixels,
		}
	}
	return out, nil
}
