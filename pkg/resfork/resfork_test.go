package resfork

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

type testResource struct {
	typ     string
	id      uint16
	payload []byte
}

// buildFork assembles a synthetic resource fork: header, data section,
// then the map with its type and reference lists.
func buildFork(resources []testResource) []byte {
	// Data section, remembering each resource's relative offset.
	var data bytes.Buffer
	offsets := make([]uint32, len(resources))
	for i, r := range resources {
		offsets[i] = uint32(data.Len())
		binary.Write(&data, binary.BigEndian, uint32(len(r.payload)))
		data.Write(r.payload)
	}

	// Group reference entries by type, preserving first-seen order.
	var typeOrder []string
	byType := make(map[string][]int)
	for i, r := range resources {
		if _, ok := byType[r.typ]; !ok {
			typeOrder = append(typeOrder, r.typ)
		}
		byType[r.typ] = append(byType[r.typ], i)
	}

	var rmap bytes.Buffer
	rmap.Write(make([]byte, 24))                       // header copy, handle, file ref, attrs
	binary.Write(&rmap, binary.BigEndian, uint16(28))  // type list offset
	binary.Write(&rmap, binary.BigEndian, uint16(0))   // name list offset (unused)

	// Type list with reference-list offsets relative to the type list.
	binary.Write(&rmap, binary.BigEndian, uint16(len(typeOrder)-1))
	refListStart := 2 + len(typeOrder)*8
	refOffset := refListStart
	for _, typ := range typeOrder {
		rmap.WriteString(typ)
		binary.Write(&rmap, binary.BigEndian, uint16(len(byType[typ])-1))
		binary.Write(&rmap, binary.BigEndian, uint16(refOffset))
		refOffset += len(byType[typ]) * 12
	}
	for _, typ := range typeOrder {
		for _, i := range byType[typ] {
			binary.Write(&rmap, binary.BigEndian, resources[i].id)
			binary.Write(&rmap, binary.BigEndian, uint16(0xFFFF)) // no name
			rmap.WriteByte(0)                                     // attributes
			off := offsets[i]
			rmap.Write([]byte{byte(off >> 16), byte(off >> 8), byte(off)})
			binary.Write(&rmap, binary.BigEndian, uint32(0)) // handle
		}
	}

	var out bytes.Buffer
	dataOffset := uint32(16)
	mapOffset := dataOffset + uint32(data.Len())
	binary.Write(&out, binary.BigEndian, dataOffset)
	binary.Write(&out, binary.BigEndian, mapOffset)
	binary.Write(&out, binary.BigEndian, uint32(data.Len()))
	binary.Write(&out, binary.BigEndian, uint32(rmap.Len()))
	out.Write(data.Bytes())
	out.Write(rmap.Bytes())
	return out.Bytes()
}

func testFork() []byte {
	return buildFork([]testResource{
		{"PICT", 128, []byte{0xDE, 0xAD, 0xBE, 0xEF}},
		{"PICT", 129, []byte{0x01}},
		{"clut", 8, bytes.Repeat([]byte{0xAA}, 32)},
	})
}

func TestParse_Lookup(t *testing.T) {
	fork, err := Parse(testFork())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if fork.Len() != 3 {
		t.Errorf("Len = %d, want 3", fork.Len())
	}

	got, err := fork.Resource("PICT", 128)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if !bytes.Equal(got, []byte{0xDE, 0xAD, 0xBE, 0xEF}) {
		t.Errorf("payload = % x", got)
	}

	types := fork.Types()
	if len(types) != 2 || types[0] != "PICT" || types[1] != "clut" {
		t.Errorf("types = %v", types)
	}
	ids := fork.IDs("PICT")
	if len(ids) != 2 || ids[0] != 128 || ids[1] != 129 {
		t.Errorf("ids = %v", ids)
	}
}

// Returned bytes are copies; mutating them must not corrupt later reads.
func TestResource_ReturnsCopy(t *testing.T) {
	fork, err := Parse(testFork())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	first, _ := fork.Resource("PICT", 128)
	first[0] = 0x00
	second, _ := fork.Resource("PICT", 128)
	if second[0] != 0xDE {
		t.Error("resource bytes were not copied")
	}
}

func TestResource_NotFound(t *testing.T) {
	fork, err := Parse(testFork())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if _, err := fork.Resource("PICT", 999); !errors.Is(err, ErrResourceNotFound) {
		t.Errorf("want ErrResourceNotFound, got %v", err)
	}
	if _, err := fork.Resource("snd ", 128); !errors.Is(err, ErrResourceNotFound) {
		t.Errorf("want ErrResourceNotFound, got %v", err)
	}
}

func TestParse_CorruptMap(t *testing.T) {
	data := testFork()

	// Map offset past the end of the file.
	bad := append([]byte(nil), data...)
	binary.BigEndian.PutUint32(bad[4:], uint32(len(bad)+100))
	if _, err := Parse(bad); !errors.Is(err, ErrCorruptArchive) {
		t.Errorf("bad map offset: want ErrCorruptArchive, got %v", err)
	}

	// Undersized file.
	if _, err := Parse(data[:8]); !errors.Is(err, ErrCorruptArchive) {
		t.Errorf("short file: want ErrCorruptArchive, got %v", err)
	}
}

// An entry whose data block lies outside the fork is caught when the
// resource is materialized, not papered over.
func TestResource_DataPastEOF(t *testing.T) {
	bad := testFork()
	binary.BigEndian.PutUint32(bad[0:], uint32(len(bad)-2)) // data section offset

	fork, err := Parse(bad)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if _, err := fork.Resource("PICT", 128); !errors.Is(err, ErrCorruptArchive) {
		t.Errorf("want ErrCorruptArchive, got %v", err)
	}
}
