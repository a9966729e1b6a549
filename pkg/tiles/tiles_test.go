package tiles

import (
	"errors"
	"testing"

	"github.com/hexforge/victory/pkg/pict"
)

// testSheet builds a stock-sized 448x570 sheet filled with one palette
// index, with index 0 reserved for transparency.
func testSheet(fill uint8) *pict.IndexedImage {
	const w, h = 448, 570
	pix := make([]byte, w*h)
	for i := range pix {
		pix[i] = fill
	}
	return &pict.IndexedImage{
		Width:  w,
		Height: h,
		Pix:    pix,
		Palette: pict.Palette{
			{R: 0, G: 0, B: 0},
			{R: 10, G: 20, B: 30},
			{R: 200, G: 100, B: 50},
		},
	}
}

func TestOrigin(t *testing.T) {
	p := DefaultParams()
	tests := []struct {
		row, col int
		x, y     int
	}{
		{0, 0, 12, 0},
		{0, 11, 386, 0},
		{5, 0, 12, 190},
		{13, 3, 114, 494},
	}
	for _, tt := range tests {
		x, y := p.Origin(tt.row, tt.col)
		if x != tt.x || y != tt.y {
			t.Errorf("Origin(%d,%d) = (%d,%d), want (%d,%d)", tt.row, tt.col, x, y, tt.x, tt.y)
		}
	}
}

func TestSliceCell(t *testing.T) {
	p := DefaultParams()
	pixels, err := SliceCell(testSheet(2), p, 3, 1)
	if err != nil {
		t.Fatalf("slice failed: %v", err)
	}
	if want := p.ContentW() * p.ContentH() * 4; len(pixels) != want {
		t.Fatalf("pixel buffer = %d bytes, want %d", len(pixels), want)
	}
	if pixels[0] != 200 || pixels[1] != 100 || pixels[2] != 50 || pixels[3] != 0xFF {
		t.Errorf("first pixel = % x, want palette entry 2 opaque", pixels[:4])
	}
}

func TestSliceCell_TransparentIndex(t *testing.T) {
	sheet := testSheet(0)
	pixels, err := SliceCell(sheet, DefaultParams(), 0, 0)
	if err != nil {
		t.Fatalf("slice failed: %v", err)
	}
	for i, b := range pixels {
		if b != 0 {
			t.Fatalf("byte %d = %d; transparent cells must stay zeroed", i, b)
		}
	}
}

// The bottom sheet rows and the rightmost column strip are guard
// pixels, not tile cells. Row 13 is the last usable row on a 570-high
// sheet and column 11 the last usable column at 448 wide.
func TestSliceCell_Bounds(t *testing.T) {
	sheet := testSheet(1)
	p := DefaultParams()

	if _, err := SliceCell(sheet, p, 13, 3); err != nil {
		t.Errorf("row 13 must fit: %v", err)
	}
	if _, err := SliceCell(sheet, p, 14, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("row 14: want ErrOutOfBounds, got %v", err)
	}
	if _, err := SliceCell(sheet, p, 0, 12); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("col 12: want ErrOutOfBounds, got %v", err)
	}
	if _, err := SliceCell(sheet, p, -1, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("negative row: want ErrOutOfBounds, got %v", err)
	}
}

func TestSliceCell_PaletteRange(t *testing.T) {
	sheet := testSheet(7) // only 3 palette entries
	if _, err := SliceCell(sheet, DefaultParams(), 0, 0); err == nil {
		t.Error("index outside the palette must fail")
	}
}

func TestSlice(t *testing.T) {
	set, err := Slice(testSheet(1), DefaultParams())
	if err != nil {
		t.Fatalf("slice failed: %v", err)
	}
	if len(set) != len(TerrainPlacements) {
		t.Fatalf("got %d tiles, want %d", len(set), len(TerrainPlacements))
	}
	for id := uint8(0); id < uint8(len(TerrainPlacements)); id++ {
		tile, ok := set[id]
		if !ok {
			t.Fatalf("terrain %d missing", id)
		}
		if tile.Width != 32 || tile.Height != 36 {
			t.Errorf("terrain %d: %dx%d, want 32x36", id, tile.Width, tile.Height)
		}
		if len(tile.Pixels) != 32*36*4 {
			t.Errorf("terrain %d: %d pixel bytes", id, len(tile.Pixels))
		}
	}
}
