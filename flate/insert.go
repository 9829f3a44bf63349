package flate

import "encoding/binary"

const prime4bytes = 2654435761

func (s *state) hash(val uint32) uint32 {
	return (val * prime4bytes) >> (32 - s.hashBits)
}

func load32Bytes(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// quickInsert links str into its hash chain and returns the previous chain
// head, or 0 if the chain was empty.
func quickInsert(s *state, str int, load func([]byte) uint32) int {
	h := s.hash(load(s.window[str:]) & s.levelMask)
	hm := h & s.hashMask
	s.insH = h
	ret := s.head[hm]
	s.prev[str&s.wMask] = ret
	s.head[hm] = uint16(str)
	return int(ret)
}

// insertRun links every position in [str, str+count) into its chain and
// returns the chain head that preceded the last one. With count == 0 it
// only reports prev[str] and leaves the tables alone.
func insertRun(s *state, str, count int, load func([]byte) uint32) int {
	if count == 0 {
		return int(s.prev[str&s.wMask])
	}
	h := s.insH
	ret := 0
	last := str + count - 1
	for idx := str; idx <= last; idx++ {
		h = s.hash(load(s.window[idx:]) & s.levelMask)
		hm := h & s.hashMask
		head := int(s.head[hm])
		if head != idx {
			s.prev[idx&s.wMask] = uint16(head)
			s.head[hm] = uint16(idx)
			if idx == last {
				ret = head
			}
		} else if idx == last {
			ret = idx
		}
	}
	s.insH = h
	return ret
}

func quickInsertC(s *state, str int) int {
	return quickInsert(s, str, load32Bytes)
}

func quickInsertUnaligned(s *state, str int) int {
	return quickInsert(s, str, binary.LittleEndian.Uint32)
}

func insertStringC(s *state, str, count int) int {
	return insertRun(s, str, count, load32Bytes)
}

func insertStringUnaligned(s *state, str, count int) int {
	return insertRun(s, str, count, binary.LittleEndian.Uint32)
}
