package lz4

import (
	"encoding/binary"

	"github.com/andybalholm/press"
)

const (
	minMatch = 4
	// maxOffset is the largest distance an LZ4 sequence can encode.
	maxOffset = 65535
	// A block must end with at least lastLiterals literal bytes, and its
	// last match must start at least mfLimit bytes before the end.
	lastLiterals = 5
	mfLimit      = 12
)

// A BlockEncoder implements the press.Encoder interface, writing in the LZ4
// block format. Matches shorter than 4 bytes or farther than 64 KB are
// written as literals.
type BlockEncoder struct{}

func (BlockEncoder) Header(dst []byte) []byte { return dst }

func (BlockEncoder) Reset() {}

func (BlockEncoder) Encode(dst []byte, src []byte, matches []press.Match, lastBlock bool) []byte {
	trailing := 0
	for len(matches) > 0 {
		m := matches[len(matches)-1]
		if usable(m) && trailing >= lastLiterals && trailing+m.Length >= mfLimit {
			break
		}
		matches = matches[:len(matches)-1]
		trailing += m.Unmatched + m.Length
	}

	pos := 0
	literals := 0 // pending literal bytes, starting at pos
	for _, m := range matches {
		if !usable(m) {
			literals += m.Unmatched + m.Length
			continue
		}
		literals += m.Unmatched
		dst = appendSequence(dst, src[pos:pos+literals], m.Length, m.Distance)
		pos += literals + m.Length
		literals = 0
	}

	return appendSequence(dst, src[pos:], 0, 0)
}

func usable(m press.Match) bool {
	return m.Length >= minMatch && m.Distance > 0 && m.Distance <= maxOffset
}

// appendSequence writes one sequence. A length of 0 writes the final,
// literals-only sequence.
func appendSequence(dst, lit []byte, length, offset int) []byte {
	token := byte(0)
	if len(lit) > 14 {
		token |= 0xf0
	} else {
		token |= byte(len(lit) << 4)
	}
	if length > 18 {
		token |= 0x0f
	} else if length > 0 {
		token |= byte(length - minMatch)
	}
	dst = append(dst, token)

	if len(lit) > 14 {
		dst = appendInt(dst, len(lit)-15)
	}
	dst = append(dst, lit...)
	if length == 0 {
		return dst
	}

	dst = binary.LittleEndian.AppendUint16(dst, uint16(offset))
	if length > 18 {
		dst = appendInt(dst, length-19)
	}
	return dst
}

// appendInt appends n to dst in LZ4's variable-length integer format.
func appendInt(dst []byte, n int) []byte {
	for n >= 255 {
		dst = append(dst, 255)
		n -= 255
	}
	dst = append(dst, byte(n))
	return dst
}
