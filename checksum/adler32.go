// Package checksum implements the Adler-32 and CRC-32 variants that can be
// installed in the compressor's dispatch table. Every variant of a checksum
// returns exactly the same value as the generic one.
package checksum

const (
	adlerBase = 65521 // largest prime smaller than 65536
	// adlerNMax is the largest n such that
	// 255n(n+1)/2 + (n+1)(adlerBase-1) <= 2^32-1.
	adlerNMax = 5552
)

// AdlerFunc updates a running Adler-32 checksum with p.
// A nil p returns 1, the initial Adler-32 value.
type AdlerFunc func(adler uint32, p []byte) uint32

// Adler32Generic is the byte-at-a-time Adler-32.
func Adler32Generic(adler uint32, p []byte) uint32 {
	if p == nil {
		return 1
	}
	s1, s2 := adler&0xffff, adler>>16
	for len(p) > 0 {
		n := len(p)
		if n > adlerNMax {
			n = adlerNMax
		}
		for _, b := range p[:n] {
			s1 += uint32(b)
			s2 += s1
		}
		s1 %= adlerBase
		s2 %= adlerBase
		p = p[n:]
	}
	return s2<<16 | s1
}

// Adler32SSSE3 processes 16-byte blocks the way the SSSE3 kernel does:
// each block adds 16*s1 plus the byte sum weighted 16..1 to s2.
func Adler32SSSE3(adler uint32, p []byte) uint32 {
	return adlerLanes(adler, p, 16)
}

// Adler32AVX2 is Adler32SSSE3 with 32-byte blocks.
func Adler32AVX2(adler uint32, p []byte) uint32 {
	return adlerLanes(adler, p, 32)
}

func adlerLanes(adler uint32, p []byte, lanes int) uint32 {
	if p == nil {
		return 1
	}
	s1, s2 := adler&0xffff, adler>>16

	// Short inputs are not worth setting up the block loop.
	if len(p) < lanes {
		return adlerTail(s1, s2, p)
	}

	// Largest multiple of lanes that still cannot overflow.
	nmax := adlerNMax - adlerNMax%lanes
	for len(p) >= lanes {
		n := len(p)
		if n > nmax {
			n = nmax
		}
		n -= n % lanes
		for q := p[:n]; len(q) >= lanes; q = q[lanes:] {
			var sum, weighted uint32
			for i, b := range q[:lanes] {
				sum += uint32(b)
				weighted += uint32(lanes-i) * uint32(b)
			}
			s2 += uint32(lanes)*s1 + weighted
			s1 += sum
		}
		s1 %= adlerBase
		s2 %= adlerBase
		p = p[n:]
	}
	if len(p) == 0 {
		return s2<<16 | s1
	}
	return adlerTail(s1, s2, p)
}

func adlerTail(s1, s2 uint32, p []byte) uint32 {
	if len(p) == 0 {
		return s2<<16 | s1
	}
	for _, b := range p {
		s1 += uint32(b)
		s2 += s1
	}
	return (s2%adlerBase)<<16 | s1%adlerBase
}
