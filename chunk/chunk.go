// Package chunk copies back-references in fixed-size chunks.
//
// A back-reference copy writes n bytes at buf[out:] taken from dist bytes
// earlier, and must behave as if it ran one byte at a time from left to
// right: when dist < n the bytes it has just written become the source of
// later bytes, so the dist-byte pattern repeats. The functions here get the
// same result while moving whole chunks whenever the pattern allows it.
//
// One implementation serves every chunk width. The widths differ only in
// their load, store and broadcast primitives, and the compressor's dispatch
// table picks the widest one the CPU handles well.
package chunk

import "encoding/binary"

const debugChunk = false

// chunker is the set of primitives one chunk width provides.
type chunker[C any] interface {
	*C
	width() int
	load(src []byte)
	store(dst []byte)
	// broadcast fills the chunk with copies of src[:dist] and reports
	// whether dist is a pattern length it can broadcast (1, 2, 4 or 8).
	broadcast(src []byte, dist int) bool
}

// An Engine is the bundle of copy functions for one chunk width.
type Engine struct {
	// Width is the chunk size in bytes.
	Width int

	// Copy copies len(src) bytes to dst, which must be at least as long.
	// dst and src must not overlap.
	Copy func(dst, src []byte) int

	// Memset writes n bytes at buf[out:], each copied from dist bytes
	// earlier, and returns out+n. It may scribble on up to Width bytes past
	// out+n, so len(buf) must be at least out+n+Width. When fewer than three
	// chunks remain in buf it copies byte by byte instead.
	Memset func(buf []byte, out, dist, n int) int

	// MemsetSafe is Memset with an explicit bound: it never writes at or
	// past buf[limit], though like Memset it may overwrite bytes in
	// buf[out+n:limit]. n is clipped to limit-out. The return value is the
	// new output position.
	MemsetSafe func(buf []byte, out, dist, n, limit int) int
}

func newEngine[C any, P chunker[C]]() Engine {
	var c C
	return Engine{
		Width:      P(&c).width(),
		Copy:       copyChunks[C, P],
		Memset:     memset[C, P],
		MemsetSafe: memsetSafe[C, P],
	}
}

var (
	// Engine64 uses 8-byte chunks held in a general purpose register.
	Engine64 = newEngine[chunk64]()
	// Engine128 uses 16-byte chunks, the width of SSE2 and NEON registers.
	Engine128 = newEngine[chunk128]()
	// Engine256 uses 32-byte chunks, the width of AVX2 registers.
	Engine256 = newEngine[chunk256]()
)

// copyChunks copies the len(src)%width head with the builtin copy and the
// rest a chunk at a time. It never touches dst beyond len(src).
func copyChunks[C any, P chunker[C]](dst, src []byte) int {
	var c C
	p := P(&c)
	sz := p.width()
	n := len(src)
	dst = dst[:n]

	align := n % sz
	if align != 0 {
		copy(dst[:align], src[:align])
	}
	for i := align; i < n; i += sz {
		p.load(src[i:])
		p.store(dst[i:])
	}
	return n
}

func memset[C any, P chunker[C]](buf []byte, out, dist, n int) int {
	if debugChunk && dist <= 0 {
		panic("chunk: distance must be positive")
	}
	var c C
	p := P(&c)
	sz := p.width()
	from := out - dist

	left := len(buf) - out
	if n > left {
		n = left
	}
	if left < 3*sz {
		return copyBytes(buf, out, from, n)
	}

	if n < sz {
		if dist >= n {
			copy(buf[out:out+n], buf[from:from+n])
			return out + n
		}
		return copyBytes(buf, out, from, n)
	}

	switch {
	case dist == sz:
		p.load(buf[from:])
	case dist < sz && p.broadcast(buf[from:], dist):
	case dist < sz:
		out, dist, n = unroll(p, buf, out, dist, n)
		return copyStrides(p, buf, out, dist, n)
	default:
		return copyStrides(p, buf, out, dist, n)
	}

	// The chunk now holds a whole number of periods of the pattern.
	rem := n % sz
	for end := out + n - rem; out < end; out += sz {
		p.store(buf[out:])
	}
	if rem != 0 {
		copy(buf[out:out+rem], buf[from:from+rem])
		out += rem
	}
	return out
}

// unroll doubles the already written region until the distance is at least
// one chunk (or covers the rest of the copy). Each step stores a full chunk,
// of which only the first dist bytes are meaningful; the rest is rewritten
// later.
func unroll[C any, P chunker[C]](p P, buf []byte, out, dist, n int) (int, int, int) {
	from := out - dist
	sz := p.width()
	for dist < n && dist < sz {
		p.load(buf[from:])
		p.store(buf[out:])
		out += dist
		n -= dist
		dist += dist
	}
	return out, dist, n
}

// copyStrides finishes a copy whose distance is at least one chunk (or at
// least the remaining length) by repeatedly copying dist-byte slices, none
// of which overlap their source.
func copyStrides[C any, P chunker[C]](p P, buf []byte, out, dist, n int) int {
	for n > 0 {
		k := n
		if k > dist {
			k = dist
		}
		copyChunks[C, P](buf[out:out+k], buf[out-dist:out-dist+k])
		out += k
		n -= k
	}
	return out
}

func memsetSafe[C any, P chunker[C]](buf []byte, out, dist, n, limit int) int {
	var c C
	sz := P(&c).width()
	if limit > len(buf) {
		limit = len(buf)
	}
	left := limit - out
	if n > left {
		n = left
	}
	if n <= 0 {
		return out
	}
	if left < 3*sz {
		return copyBytes(buf, out, out-dist, n)
	}

	// Memset may write a chunk past its logical end. Give it the prefix
	// that keeps that overrun inside the bound and finish byte by byte.
	fast := n
	if slack := left - n; slack < sz {
		fast = n - (sz - slack)
	}
	if fast > 0 {
		out = memset[C, P](buf[:limit], out, dist, fast)
		n -= fast
	}
	return copyBytes(buf, out, out-dist, n)
}

func copyBytes(buf []byte, out, from, n int) int {
	dst := buf[out : out+n]
	src := buf[from : from+n]
	for i := range dst {
		dst[i] = src[i]
	}
	return out + n
}

// pattern64 replicates src[:dist] across a 64-bit word.
func pattern64(src []byte, dist int) (uint64, bool) {
	switch dist {
	case 1:
		return uint64(src[0]) * 0x0101010101010101, true
	case 2:
		return uint64(binary.LittleEndian.Uint16(src)) * 0x0001000100010001, true
	case 4:
		return uint64(binary.LittleEndian.Uint32(src)) * 0x0000000100000001, true
	case 8:
		return binary.LittleEndian.Uint64(src), true
	}
	return 0, false
}
