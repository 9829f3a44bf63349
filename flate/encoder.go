package flate

import (
	"github.com/andybalholm/press"
)

const maxDistance = 1 << 15

// Encoder is a press.Encoder that writes raw DEFLATE using the fixed
// Huffman codes. Each block is closed with an empty stored block, so every
// call to Encode leaves the output on a byte boundary.
type Encoder struct {
	bw bitWriter
}

func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) Header(dst []byte) []byte {
	return dst
}

func (e *Encoder) Reset() {
	e.bw.reset()
}

func (e *Encoder) Encode(dst []byte, src []byte, matches []press.Match, lastBlock bool) []byte {
	bw := &e.bw
	bw.pending = dst
	bw.startFixedBlock(lastBlock)

	pos := 0
	for _, m := range matches {
		for _, c := range src[pos : pos+m.Unmatched] {
			bw.writeLiteral(c)
		}
		pos += m.Unmatched
		e.writeMatch(src[pos:pos+m.Length], m.Length, m.Distance)
		pos += m.Length
	}
	for _, c := range src[pos:] {
		bw.writeLiteral(c)
	}

	bw.endBlock(lastBlock)
	if !lastBlock {
		bw.writeSyncMarker()
	}
	dst = bw.pending
	bw.pending = nil
	return dst
}

// writeMatch splits matches longer than DEFLATE allows and falls back to
// literals for the ones it cannot express.
func (e *Encoder) writeMatch(data []byte, length, dist int) {
	if dist < 1 || dist > maxDistance || length < minMatch {
		for _, c := range data {
			e.bw.writeLiteral(c)
		}
		return
	}
	for length > 0 {
		n := length
		if n > maxMatch {
			n = maxMatch
			if length-n < minMatch {
				n = length - minMatch
			}
		}
		e.bw.writeMatch(n, dist)
		length -= n
	}
}
