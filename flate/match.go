package flate

import "encoding/binary"

func load16Bytes(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}

// longestMatch walks the chain starting at cur and returns the length of
// the longest match for the string at s.strStart, recording its position
// in s.matchStart. Lengths not above s.prevLength are discarded, in which
// case the result is s.prevLength (or 1) and matchStart is unchanged. The
// result never exceeds s.lookahead.
func longestMatch(s *state, cur int, compare func(a, b []byte) int, load16 func([]byte) uint16) int {
	strStart := s.strStart
	window := s.window
	scan := window[strStart:]

	bestLen := s.prevLength
	if bestLen == 0 {
		bestLen = 1
	}
	chain := s.cfg.MaxChain
	if bestLen >= s.cfg.GoodMatch {
		chain >>= 2
	}
	if chain == 0 {
		chain = 1
	}

	nice := s.cfg.NiceMatch
	if nice > s.lookahead {
		nice = s.lookahead
	}

	limit := 0
	if strStart > s.maxDist {
		limit = strStart - s.maxDist
	}

	if debugDeflate {
		if strStart > s.windowSize-minLookahead {
			panic("flate: need lookahead")
		}
		s.checkChain(cur)
	}

	stopEarly := s.cfg.Level < s.cfg.TriggerLevel
	scanStart := load16(scan)
	scanEnd := load16(scan[bestLen-1:])

	for ; cur > limit && cur < strStart; chain-- {
		if chain == 0 {
			break
		}
		match := window[cur:]
		if load16(match[bestLen-1:]) == scanEnd && load16(match) == scanStart {
			n := compare(scan, match)
			if debugDeflate && strStart+n > s.windowSize+windowPadding {
				panic("flate: wild scan")
			}
			if n > bestLen {
				s.matchStart = cur
				bestLen = n
				if n >= nice {
					break
				}
				scanEnd = load16(scan[bestLen-1:])
			} else if stopEarly {
				break
			}
		}
		next := int(s.prev[cur&s.wMask])
		if debugDeflate && next >= cur {
			panic("flate: chain does not point backwards")
		}
		cur = next
	}

	if bestLen > s.lookahead {
		return s.lookahead
	}
	return bestLen
}

func longestMatchC(s *state, cur int) int {
	return longestMatch(s, cur, compare258C, load16Bytes)
}

func longestMatchUnaligned(s *state, cur int) int {
	return longestMatch(s, cur, compare258Unaligned64, binary.LittleEndian.Uint16)
}

func longestMatchSSE(s *state, cur int) int {
	return longestMatch(s, cur, compare258SSE, binary.LittleEndian.Uint16)
}

func longestMatchAVX2(s *state, cur int) int {
	return longestMatch(s, cur, compare258AVX2, binary.LittleEndian.Uint16)
}
