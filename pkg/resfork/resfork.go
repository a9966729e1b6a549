// Package resfork reads resource-fork containers: typed, numbered
// binary resources indexed by a resource map near the end of the file.
// The package recovers (type, id) -> bytes and performs no
// interpretation of resource contents.
package resfork

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"sort"
)

// Archive errors.
var (
	ErrCorruptArchive   = errors.New("corrupt resource archive")
	ErrResourceNotFound = errors.New("resource not found")
)

// All multi-byte container fields are big-endian.
const (
	headerLen    = 16
	mapHeaderLen = 28 // header copy + handle + file ref + attributes
	typeEntryLen = 8
	refEntryLen  = 12
)

type resKey struct {
	typ string
	id  uint16
}

type resEntry struct {
	dataOffset uint32 // relative to the fork's data section
}

// Fork is a parsed resource fork. It borrows the underlying buffer for
// its lifetime and materializes resource bytes lazily on lookup.
type Fork struct {
	data       []byte
	dataOffset uint32
	entries    map[resKey]resEntry
	order      []resKey
}

// Parse reads the fork header and walks the resource map: the type
// list, then the reference list of each type. The map structure is
// validated strictly; a malformed map is a hard failure.
func Parse(data []byte) (*Fork, error) {
	if len(data) < headerLen {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrCorruptArchive, len(data), headerLen)
	}

	dataOffset := binary.BigEndian.Uint32(data[0:])
	mapOffset := binary.BigEndian.Uint32(data[4:])
	mapLen := binary.BigEndian.Uint32(data[12:])

	// The data section is validated lazily, entry by entry, when a
	// resource is materialized; only the map must be sound up front.
	if int64(mapOffset)+int64(mapLen) > int64(len(data)) || mapLen < mapHeaderLen+2 {
		return nil, fmt.Errorf("%w: resource map 0x%x+0x%x out of bounds", ErrCorruptArchive, mapOffset, mapLen)
	}

	rmap := data[mapOffset : mapOffset+mapLen]
	typeListOffset := binary.BigEndian.Uint16(rmap[24:])
	if int(typeListOffset)+2 > len(rmap) {
		return nil, fmt.Errorf("%w: type list offset 0x%x out of bounds", ErrCorruptArchive, typeListOffset)
	}

	f := &Fork{
		data:       data,
		dataOffset: dataOffset,
		entries:    make(map[resKey]resEntry),
	}

	typeList := rmap[typeListOffset:]
	typeCount := int(binary.BigEndian.Uint16(typeList)) + 1
	if 2+typeCount*typeEntryLen > len(typeList) {
		return nil, fmt.Errorf("%w: type list truncated (%d types)", ErrCorruptArchive, typeCount)
	}

	for t := 0; t < typeCount; t++ {
		entry := typeList[2+t*typeEntryLen:]
		typ := string(entry[0:4])
		refCount := int(binary.BigEndian.Uint16(entry[4:])) + 1
		refOffset := int(binary.BigEndian.Uint16(entry[6:])) // relative to the type list

		if refOffset+refCount*refEntryLen > len(typeList) {
			return nil, fmt.Errorf("%w: reference list for %q truncated", ErrCorruptArchive, typ)
		}
		for r := 0; r < refCount; r++ {
			ref := typeList[refOffset+r*refEntryLen:]
			id := binary.BigEndian.Uint16(ref[0:])
			// Byte 4 holds the resource attributes; the data offset is
			// the following 3 bytes.
			off := uint32(ref[5])<<16 | uint32(ref[6])<<8 | uint32(ref[7])
			key := resKey{typ: typ, id: id}
			if _, dup := f.entries[key]; dup {
				return nil, fmt.Errorf("%w: duplicate resource %s %d", ErrCorruptArchive, typ, id)
			}
			f.entries[key] = resEntry{dataOffset: off}
			f.order = append(f.order, key)
		}
	}

	return f, nil
}

// ParseFile reads and parses a resource fork from disk.
func ParseFile(path string) (*Fork, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading archive: %w", err)
	}
	return Parse(data)
}

// Len returns the number of resources in the fork.
func (f *Fork) Len() int {
	return len(f.entries)
}

// Types returns the distinct type codes present, sorted.
func (f *Fork) Types() []string {
	seen := make(map[string]bool)
	var types []string
	for _, k := range f.order {
		if !seen[k.typ] {
			seen[k.typ] = true
			types = append(types, k.typ)
		}
	}
	sort.Strings(types)
	return types
}

// IDs returns the resource ids of one type, sorted.
func (f *Fork) IDs(typ string) []uint16 {
	var ids []uint16
	for _, k := range f.order {
		if k.typ == typ {
			ids = append(ids, k.id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Resource returns a copy of the named resource's bytes. A lookup miss
// is ErrResourceNotFound; an entry whose data block lies outside the
// fork is ErrCorruptArchive.
func (f *Fork) Resource(typ string, id uint16) ([]byte, error) {
	entry, ok := f.entries[resKey{typ: typ, id: id}]
	if !ok {
		return nil, fmt.Errorf("%w: %s %d", ErrResourceNotFound, typ, id)
	}

	off := int64(f.dataOffset) + int64(entry.dataOffset)
	if off+4 > int64(len(f.data)) {
		return nil, fmt.Errorf("%w: %s %d data block at 0x%x past end of file", ErrCorruptArchive, typ, id, off)
	}
	length := binary.BigEndian.Uint32(f.data[off:])
	if off+4+int64(length) > int64(len(f.data)) {
		return nil, fmt.Errorf("%w: %s %d claims %d bytes at 0x%x", ErrCorruptArchive, typ, id, length, off)
	}

	out := make([]byte, length)
	copy(out, f.data[off+4:off+4+int64(length)])
	return out, nil
}
