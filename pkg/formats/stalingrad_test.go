package formats

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

// buildStalingrad creates a synthetic Stalingrad scenario. Text runs
// are laid out at the offsets the pointer slots name.
func buildStalingrad(text map[int]string) []byte {
	data := make([]byte, 0x400)
	binary.LittleEndian.PutUint16(data[0x00:], MagicStalingrad)

	counters := []float32{40, 2, 5, 10, 17, 3, 4, 2, 20, 4, 0, 0}
	for i, f := range counters {
		binary.LittleEndian.PutUint32(data[stalingradCountersOffset+4*i:], math.Float32bits(f))
	}

	offsets := []uint32{0x200, 0x240, 0x280, 0x2c0, 0x300, 0x340, 0x380, 0x3c0}
	for slot, s := range text {
		binary.LittleEndian.PutUint32(data[stalingradPointerOffset+4*slot:], offsets[slot])
		copy(data[offsets[slot]:], s)
	}
	return data
}

func TestParseScenario_Stalingrad(t *testing.T) {
	data := buildStalingrad(map[int]string{
		0: "Sixth Army attacks the factory district.",
		2: "Reinforcements cross the Volga at night.",
	})

	s, err := ParseScenario(data)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if s.Variant != VariantStalingrad {
		t.Fatalf("variant = %s", s.Variant)
	}
	if len(s.Header.Counters) != 12 || s.Header.Counters[0] != 40 {
		t.Errorf("counters = %v", s.Header.Counters)
	}
	if s.Config.UnitCount != 40 || s.Config.SideCount != 2 || s.Config.TurnCount != 20 || s.Config.ParamCount != 4 {
		t.Errorf("config = %+v", s.Config)
	}
	if len(s.Text) != 8 {
		t.Fatalf("text slots = %d, want 8", len(s.Text))
	}
	if s.Text[0] != "Sixth Army attacks the factory district." {
		t.Errorf("text[0] = %q", s.Text[0])
	}
	if s.Text[1] != "" || s.Text[3] != "" {
		t.Errorf("zero pointers must yield empty strings: %q", s.Text)
	}
	if s.Text[2] != "Reinforcements cross the Volga at night." {
		t.Errorf("text[2] = %q", s.Text[2])
	}
}

// A run with no terminator is bounded by the next known pointer.
func TestParseScenario_StalingradTextBoundedByNextPointer(t *testing.T) {
	data := buildStalingrad(map[int]string{1: "ignored"})
	// Slot 0 points at a run that fills the gap to slot 1's offset with
	// no zero terminator.
	binary.LittleEndian.PutUint32(data[stalingradPointerOffset:], 0x200)
	for i := 0x200; i < 0x240; i++ {
		data[i] = 'A'
	}

	s, err := ParseScenario(data)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(s.Text[0]) != 0x40 {
		t.Errorf("text[0] length = %d, want %d", len(s.Text[0]), 0x40)
	}
}

func TestParseScenario_StalingradFractionalCounter(t *testing.T) {
	data := buildStalingrad(nil)
	binary.LittleEndian.PutUint32(data[stalingradCountersOffset:], math.Float32bits(2.5))
	if _, err := ParseScenario(data); !errors.Is(err, ErrCounterRange) {
		t.Errorf("want ErrCounterRange, got %v", err)
	}
}

func TestParseScenario_StalingradNaNCounter(t *testing.T) {
	data := buildStalingrad(nil)
	binary.LittleEndian.PutUint32(data[stalingradCountersOffset+4:], math.Float32bits(float32(math.NaN())))
	if _, err := ParseScenario(data); !errors.Is(err, ErrCounterRange) {
		t.Errorf("want ErrCounterRange, got %v", err)
	}
}

func TestParseScenario_StalingradPointerPastEOF(t *testing.T) {
	data := buildStalingrad(nil)
	binary.LittleEndian.PutUint32(data[stalingradPointerOffset:], 0x10000)
	if _, err := ParseScenario(data); !errors.Is(err, ErrTruncatedFile) {
		t.Errorf("want ErrTruncatedFile, got %v", err)
	}
}

func TestParseScenario_StalingradTruncated(t *testing.T) {
	data := buildStalingrad(nil)
	if _, err := ParseScenario(data[:stalingradMinLen-1]); !errors.Is(err, ErrTruncatedFile) {
		t.Errorf("want ErrTruncatedFile, got %v", err)
	}
}
