package formats

import "encoding/binary"

// Legacy layout: a two-byte magic, a version word, and a 125x100
// one-byte-per-hex terrain grid at a fixed absolute offset. There is no
// config block and no mission text in this layout.
const legacyGridOffset = 0x0200

func parseLegacy(data []byte) (*Scenario, error) {
	s := &Scenario{Variant: VariantLegacy}
	s.Header.Magic = MagicLegacy
	s.Header.Version = binary.LittleEndian.Uint16(data[0x02:])

	grid, err := DecodeTerrainGrid(data, legacyGridOffset, DefaultGridWidth, DefaultGridHeight)
	if err != nil {
		return nil, err
	}
	s.Terrain = grid
	return s, nil
}
