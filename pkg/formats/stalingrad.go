package formats

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Stalingrad layout: twelve packed float32 counters at 0x04-0x33,
// reserved bytes to 0x3F, eight indirection pointers at 0x40-0x5F.
// Text location is data-dependent, read through the pointers.
const (
	stalingradCountersOffset = 0x04
	stalingradCounterSlots   = 12
	stalingradReservedOffset = 0x34
	stalingradPointerOffset  = 0x40
	stalingradPointerSlots   = 8
)

func parseStalingrad(data []byte) (*Scenario, error) {
	s := &Scenario{Variant: VariantStalingrad}
	s.Header.Magic = MagicStalingrad
	s.Header.Version = binary.LittleEndian.Uint16(data[0x02:])

	s.Header.Counters = make([]float32, stalingradCounterSlots)
	for i := range s.Header.Counters {
		bits := binary.LittleEndian.Uint32(data[stalingradCountersOffset+4*i:])
		s.Header.Counters[i] = math.Float32frombits(bits)
	}
	if err := configFromFloats(s.Header.Counters, &s.Config); err != nil {
		return nil, err
	}

	for off := stalingradReservedOffset; off < stalingradPointerOffset; off++ {
		if data[off] != 0 {
			s.Warnings = append(s.Warnings, fmt.Sprintf(
				"reserved header byte at 0x%02x is 0x%02x", off, data[off]))
			break
		}
	}

	s.Header.TextPointers = make([]uint32, stalingradPointerSlots)
	for i := range s.Header.TextPointers {
		s.Header.TextPointers[i] = binary.LittleEndian.Uint32(data[stalingradPointerOffset+4*i:])
	}
	text, err := extractPointerText(data, s.Header.TextPointers)
	if err != nil {
		return nil, err
	}
	s.Text = text
	return s, nil
}

// configFromFloats normalizes the packed float counters into the common
// ConfigBlock. Slots 0-7 are the eight counters, slot 8 the turn count,
// slot 9 the parameter count; slots 10-11 are reserved.
func configFromFloats(counters []float32, cfg *ConfigBlock) error {
	for i, f := range counters {
		v, err := counterValue(i, f)
		if err != nil {
			return err
		}
		switch {
		case i < 8:
			if v > uint32(counterBounds[i].max) {
				return fmt.Errorf("%w: %s is %d, documented bound %d",
					ErrCounterRange, counterBounds[i].name, v, counterBounds[i].max)
			}
			cfg.setCounter(i, uint16(v))
		case i == 8:
			if v > maxTurnCount {
				return fmt.Errorf("%w: turn count is %d, documented bound %d",
					ErrCounterRange, v, maxTurnCount)
			}
			cfg.TurnCount = uint8(v)
		case i == 9:
			if v > maxParamCount {
				return fmt.Errorf("%w: parameter count is %d, documented bound %d",
					ErrCounterRange, v, maxParamCount)
			}
			cfg.ParamCount = uint8(v)
		default:
			if v != 0 {
				return fmt.Errorf("%w: reserved counter slot %d is %d", ErrCounterRange, i, v)
			}
		}
	}
	return nil
}

// counterValue rejects a packed counter that cannot be an integer count:
// a non-finite, negative, or fractional float here means the file was
// mis-dispatched, not that the scenario is unusual.
func counterValue(slot int, f float32) (uint32, error) {
	f64 := float64(f)
	if math.IsNaN(f64) || math.IsInf(f64, 0) || f64 < 0 || f64 != math.Trunc(f64) {
		return 0, fmt.Errorf("%w: counter slot %d is %v, not a whole number",
			ErrCounterRange, slot, f)
	}
	return uint32(f64), nil
}
