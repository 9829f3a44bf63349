package snappy

import (
	"github.com/andybalholm/press"
	"github.com/andybalholm/press/flate"
)

// maxOffset is the largest offset a tagCopy2 element can hold.
const maxOffset = 1<<16 - 1

// MatchFinder is the DEFLATE hash-chain match finder restricted to what a
// snappy chunk can express. It is reset before every block, since chunks
// are decoded independently.
type MatchFinder struct {
	// Level is the flate level whose search parameters are used.
	// The default is 1.
	Level int

	mf press.MatchFinder
}

func (m *MatchFinder) Reset() {
	if m.mf != nil {
		m.mf.Reset()
	}
}

// FindMatches looks for matches in src, appends them to dst, and returns dst.
// src must not be longer than 65536 bytes.
func (m *MatchFinder) FindMatches(dst []press.Match, src []byte) []press.Match {
	if len(src) > maxBlockSize {
		panic("block too long")
	}
	if m.mf == nil {
		m.mf = flate.NewMatchFinder(m.Level)
	}
	m.mf.Reset()
	start := len(dst)
	dst = m.mf.FindMatches(dst, src)
	return append(dst[:start], clipMatches(dst[start:])...)
}

// clipMatches turns matches that reach before the start of the block, or
// farther than a copy element allows, into literals. It works in place.
func clipMatches(matches []press.Match) []press.Match {
	out := matches[:0]
	pos := 0
	pending := 0 // literals carried over from dropped matches
	for _, m := range matches {
		pos += m.Unmatched
		if m.Length > 0 && (m.Distance <= 0 || m.Distance > pos || m.Distance > maxOffset) {
			pending += m.Unmatched + m.Length
			pos += m.Length
			continue
		}
		m.Unmatched += pending
		pending = 0
		out = append(out, m)
		pos += m.Length
	}
	if pending > 0 {
		out = append(out, press.Match{Unmatched: pending})
	}
	return out
}
