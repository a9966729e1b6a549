package formats

import (
	"bytes"
	"fmt"
	"sort"
)

// extractFixedText walks fixed-size zero-padded text blocks starting at
// base, advancing by blockSize, until count blocks are read or the file
// runs out. An all-zero block is an empty string, not an error.
func extractFixedText(data []byte, base, blockSize, count int) []string {
	var out []string
	for k := 0; k < count; k++ {
		off := base + k*blockSize
		if off+blockSize > len(data) {
			break
		}
		out = append(out, trimZeroPadded(data[off:off+blockSize]))
	}
	return out
}

// extractPointerText resolves each indirection pointer as an absolute
// file offset and reads a zero-terminated run from it, bounded by the
// next known pointer or the end of the file, whichever comes first.
// Block alignment is never assumed. A zero pointer yields an empty
// string in its slot so the narrative keeps its order.
func extractPointerText(data []byte, pointers []uint32) ([]string, error) {
	known := make([]int, 0, len(pointers))
	for _, p := range pointers {
		if p != 0 {
			known = append(known, int(p))
		}
	}
	sort.Ints(known)

	out := make([]string, len(pointers))
	for i, p := range pointers {
		if p == 0 {
			continue
		}
		off := int(p)
		if off >= len(data) {
			return nil, fmt.Errorf("%w: text pointer %d is 0x%x, file has %d bytes",
				ErrTruncatedFile, i, off, len(data))
		}
		bound := len(data)
		for _, k := range known {
			if k > off && k < bound {
				bound = k
			}
		}
		run := data[off:bound]
		if z := bytes.IndexByte(run, 0); z >= 0 {
			run = run[:z]
		}
		out[i] = string(run)
	}
	return out, nil
}

// trimZeroPadded strips the zero padding from a fixed-size text block.
// Trailing zero bytes are padding by contract, never content.
func trimZeroPadded(b []byte) string {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return string(b[:end])
}
