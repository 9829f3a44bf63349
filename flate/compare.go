package flate

import (
	"encoding/binary"
	"math/bits"
)

// The compare258 family returns the length of the common prefix of a and
// b, up to maxMatch bytes. All of them agree exactly; they differ only in
// how many bytes they examine per step.

func compareLimit(a, b []byte) int {
	n := maxMatch
	if len(a) < n {
		n = len(a)
	}
	if len(b) < n {
		n = len(b)
	}
	return n
}

func compareTail(a, b []byte, i, n int) int {
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

func compare258C(a, b []byte) int {
	return compareTail(a, b, 0, compareLimit(a, b))
}

func compare258Unaligned16(a, b []byte) int {
	n := compareLimit(a, b)
	i := 0
	for ; i+2 <= n; i += 2 {
		if binary.LittleEndian.Uint16(a[i:]) != binary.LittleEndian.Uint16(b[i:]) {
			if a[i] != b[i] {
				return i
			}
			return i + 1
		}
	}
	return compareTail(a, b, i, n)
}

func compare258Unaligned32(a, b []byte) int {
	n := compareLimit(a, b)
	i := 0
	for ; i+4 <= n; i += 4 {
		if diff := binary.LittleEndian.Uint32(a[i:]) ^ binary.LittleEndian.Uint32(b[i:]); diff != 0 {
			return i + bits.TrailingZeros32(diff)>>3
		}
	}
	return compareTail(a, b, i, n)
}

func compare258Unaligned64(a, b []byte) int {
	n := compareLimit(a, b)
	i := 0
	for ; i+8 <= n; i += 8 {
		if diff := binary.LittleEndian.Uint64(a[i:]) ^ binary.LittleEndian.Uint64(b[i:]); diff != 0 {
			return i + bits.TrailingZeros64(diff)>>3
		}
	}
	return compareTail(a, b, i, n)
}

// compareWords compares lanes 64-bit words per step, like a vector
// compare followed by a movemask.
func compareWords(a, b []byte, lanes int) int {
	n := compareLimit(a, b)
	step := 8 * lanes
	i := 0
	for ; i+step <= n; i += step {
		for l := 0; l < lanes; l++ {
			off := i + 8*l
			if diff := binary.LittleEndian.Uint64(a[off:]) ^ binary.LittleEndian.Uint64(b[off:]); diff != 0 {
				return off + bits.TrailingZeros64(diff)>>3
			}
		}
	}
	for ; i+8 <= n; i += 8 {
		if diff := binary.LittleEndian.Uint64(a[i:]) ^ binary.LittleEndian.Uint64(b[i:]); diff != 0 {
			return i + bits.TrailingZeros64(diff)>>3
		}
	}
	return compareTail(a, b, i, n)
}

func compare258SSE(a, b []byte) int {
	return compareWords(a, b, 2)
}

func compare258AVX2(a, b []byte) int {
	return compareWords(a, b, 4)
}
