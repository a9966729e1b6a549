package formats

import (
	"encoding/binary"
	"fmt"
)

// Crusader layout: header 0x00-0x5F, config block 0x60-0x7F, 128-byte
// zero-padded text blocks at 0x80 + k*0x80, binary unit/AI data beyond.
const (
	crusaderCountsOffset     = 0x04
	crusaderPersistentOffset = 0x10
	crusaderReservedOffset   = 0x18
	crusaderConfigOffset     = 0x60
	crusaderTailOffset       = 0x70
	crusaderTextOffset       = 0x80
	crusaderTextBlockSize    = 0x80

	// The text-block count lives in the header; anything past this bound
	// is a dispatch mismatch, not a long briefing.
	maxCrusaderTextBlocks = 64
)

// The two persistent header constants observed in every Crusader file.
// They are format tags: large enough to look like file offsets, but
// constant across the whole corpus.
var crusaderPersistent = [2]uint32{0x000c8000, 0x00124f80}

func parseCrusader(data []byte) (*Scenario, error) {
	s := &Scenario{Variant: VariantCrusader}
	s.Header.Magic = MagicCrusader
	s.Header.Version = binary.LittleEndian.Uint16(data[0x02:])

	s.Header.UnitRecordCount = binary.LittleEndian.Uint32(data[crusaderCountsOffset:])
	s.Header.OrderRecordCount = binary.LittleEndian.Uint32(data[crusaderCountsOffset+4:])
	s.Header.TextBlockCount = binary.LittleEndian.Uint32(data[crusaderCountsOffset+8:])
	s.Header.Persistent[0] = binary.LittleEndian.Uint32(data[crusaderPersistentOffset:])
	s.Header.Persistent[1] = binary.LittleEndian.Uint32(data[crusaderPersistentOffset+4:])

	if s.Header.TextBlockCount > maxCrusaderTextBlocks {
		return nil, fmt.Errorf("%w: text block count %d > %d",
			ErrCounterRange, s.Header.TextBlockCount, maxCrusaderTextBlocks)
	}
	if s.Header.Persistent != crusaderPersistent {
		s.Warnings = append(s.Warnings, fmt.Sprintf(
			"persistent constants 0x%08x/0x%08x differ from the documented 0x%08x/0x%08x",
			s.Header.Persistent[0], s.Header.Persistent[1],
			crusaderPersistent[0], crusaderPersistent[1]))
	}
	for off := crusaderReservedOffset; off < crusaderConfigOffset; off++ {
		if data[off] != 0 {
			s.Warnings = append(s.Warnings, fmt.Sprintf(
				"reserved header byte at 0x%02x is 0x%02x", off, data[off]))
			break
		}
	}

	if err := parseCrusaderConfig(data, &s.Config); err != nil {
		return nil, err
	}
	for i, b := range s.Config.Reserved {
		if b != 0 {
			s.Warnings = append(s.Warnings, fmt.Sprintf(
				"reserved config byte at 0x%02x is 0x%02x", crusaderTailOffset+2+i, b))
			break
		}
	}

	s.Text = extractFixedText(data, crusaderTextOffset, crusaderTextBlockSize, int(s.Header.TextBlockCount))
	return s, nil
}

// parseCrusaderConfig decodes the eight 16-bit counters at 0x60-0x6F and
// the typed/reserved tail at 0x70-0x7F.
func parseCrusaderConfig(data []byte, cfg *ConfigBlock) error {
	for i := range counterBounds {
		v := binary.LittleEndian.Uint16(data[crusaderConfigOffset+2*i:])
		if v > counterBounds[i].max {
			return fmt.Errorf("%w: %s is %d, documented bound %d",
				ErrCounterRange, counterBounds[i].name, v, counterBounds[i].max)
		}
		cfg.setCounter(i, v)
	}

	cfg.TurnCount = data[crusaderTailOffset]
	cfg.ParamCount = data[crusaderTailOffset+1]
	if cfg.TurnCount > maxTurnCount {
		return fmt.Errorf("%w: turn count is %d, documented bound %d",
			ErrCounterRange, cfg.TurnCount, maxTurnCount)
	}
	if cfg.ParamCount > maxParamCount {
		return fmt.Errorf("%w: parameter count is %d, documented bound %d",
			ErrCounterRange, cfg.ParamCount, maxParamCount)
	}
	copy(cfg.Reserved[:], data[crusaderTailOffset+2:crusaderTailOffset+16])
	return nil
}
