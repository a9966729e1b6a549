package pict

import (
	"errors"
	"fmt"
)

// ErrTruncatedStream reports a run-length stream that ends inside a run
// or a literal block. Dropped bytes are never silently tolerated.
var ErrTruncatedStream = errors.New("truncated run-length stream")

// Unpack decompresses a PackBits-style stream. Each control byte c is
// followed either by c+1 verbatim bytes (c <= 127), or by one byte to
// be repeated 257-c times (c >= 129); 128 is a no-op.
func Unpack(src []byte) ([]byte, error) {
	var dst []byte
	for i := 0; i < len(src); {
		c := src[i]
		i++
		switch {
		case c <= 127:
			n := int(c) + 1
			if i+n > len(src) {
				return nil, fmt.Errorf("%w: literal block of %d bytes, %d remain", ErrTruncatedStream, n, len(src)-i)
			}
			dst = append(dst, src[i:i+n]...)
			i += n
		case c == 128:
			// no-op control byte
		default:
			if i >= len(src) {
				return nil, fmt.Errorf("%w: run control 0x%02x with no fill byte", ErrTruncatedStream, c)
			}
			n := 257 - int(c)
			b := src[i]
			i++
			for j := 0; j < n; j++ {
				dst = append(dst, b)
			}
		}
	}
	return dst, nil
}

// Pack compresses src with a greedy longest-run-first strategy. Runs of
// three or more identical bytes become repeat controls; everything else
// is emitted in literal blocks. The encode direction exists to support
// round-trip tests of the codec, not for production writing.
func Pack(src []byte) []byte {
	var dst []byte
	i := 0
	for i < len(src) {
		run := runLength(src[i:])
		if run >= 3 {
			if run > 128 {
				run = 128
			}
			dst = append(dst, byte(257-run), src[i])
			i += run
			continue
		}

		// Gather literals until the next worthwhile run, 128 at most.
		start := i
		for i < len(src) && i-start < 128 {
			if runLength(src[i:]) >= 3 {
				break
			}
			i++
		}
		dst = append(dst, byte(i-start-1))
		dst = append(dst, src[start:i]...)
	}
	return dst
}

func runLength(b []byte) int {
	n := 1
	for n < len(b) && b[n] == b[0] {
		n++
	}
	return n
}
