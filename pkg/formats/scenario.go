package formats

import (
	"errors"
	"fmt"
	"os"
)

// Scenario decoding errors.
var (
	ErrUnrecognizedFormat = errors.New("unrecognized scenario format")
	ErrTruncatedFile      = errors.New("truncated scenario file")
	ErrCounterRange       = errors.New("counter outside documented range")
)

// Header holds the variant-dependent scalar fields of a scenario file.
// Fields that a layout does not carry are left at their zero value.
type Header struct {
	Magic   uint16
	Version uint16

	// Crusader record counts at 0x04-0x0F.
	UnitRecordCount  uint32
	OrderRecordCount uint32
	TextBlockCount   uint32

	// Persistent holds the two large format-tag constants at 0x10/0x14
	// (Crusader). They are identical across all files of the variant and
	// must never be dereferenced as file offsets.
	Persistent [2]uint32

	// Counters holds the twelve packed float counters at 0x04-0x33
	// (Stalingrad), in file order.
	Counters []float32

	// TextPointers holds the eight indirection pointers at 0x40-0x5F
	// (Stalingrad), as absolute file offsets. A zero pointer means the
	// slot carries no text.
	TextPointers []uint32
}

// ConfigBlock is the normalized configuration-counter region
// (0x60-0x7F in the Crusader layout, derived from the packed float
// counters in the Stalingrad layout). The counters are opaque,
// range-checked integers; their gameplay semantics are unconfirmed.
type ConfigBlock struct {
	UnitCount          uint16
	SideCount          uint16
	ObjectiveCount     uint16
	LocationCount      uint16
	TerrainTypeCount   uint16
	WeatherParam       uint16
	ReinforcementCount uint16
	VictoryCount       uint16

	TurnCount  uint8
	ParamCount uint8

	Reserved [14]byte
}

// counterBounds documents the empirically observed upper bound for each
// of the eight configuration counters, in file order. Values beyond a
// bound are treated as format-detection mismatches, not data.
var counterBounds = [8]struct {
	name string
	max  uint16
}{
	{"unit count", 1024},
	{"side count", 4},
	{"objective count", 64},
	{"location count", 255},
	{"terrain type count", 17},
	{"weather parameter", 15},
	{"reinforcement count", 255},
	{"victory condition count", 32},
}

// Observed bounds for the single-byte tail counters.
const (
	maxTurnCount  = 99
	maxParamCount = 16
)

// counter assigns the i'th file-order counter into its ConfigBlock slot.
func (c *ConfigBlock) setCounter(i int, v uint16) {
	switch i {
	case 0:
		c.UnitCount = v
	case 1:
		c.SideCount = v
	case 2:
		c.ObjectiveCount = v
	case 3:
		c.LocationCount = v
	case 4:
		c.TerrainTypeCount = v
	case 5:
		c.WeatherParam = v
	case 6:
		c.ReinforcementCount = v
	case 7:
		c.VictoryCount = v
	}
}

// Scenario is the normalized in-memory representation of one scenario
// file. Terrain is populated only for layouts that embed a grid at a
// documented offset (Legacy); Warnings carries soft findings such as
// unexpected reserved bytes, which are surfaced but never fatal.
type Scenario struct {
	Variant  Variant
	Header   Header
	Config   ConfigBlock
	Text     []string
	Terrain  *TerrainGrid
	Warnings []string
}

// ParseScenario detects the layout of data and decodes it into a
// Scenario. The input is never mutated; concurrent calls on distinct
// buffers are safe.
func ParseScenario(data []byte) (*Scenario, error) {
	variant, _, err := Detect(data)
	if err != nil {
		return nil, err
	}
	if len(data) < variant.minLen() {
		return nil, fmt.Errorf("%w: %s layout needs %d bytes, have %d",
			ErrTruncatedFile, variant, variant.minLen(), len(data))
	}

	switch variant {
	case VariantCrusader:
		return parseCrusader(data)
	case VariantStalingrad:
		return parseStalingrad(data)
	case VariantLegacy:
		return parseLegacy(data)
	}
	return nil, fmt.Errorf("%w: variant %d", ErrUnrecognizedFormat, variant)
}

// ParseScenarioFile decodes a scenario file from disk.
func ParseScenarioFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	return ParseScenario(data)
}
