package chunk

import "encoding/binary"

type chunk64 struct{ w uint64 }

func (c *chunk64) width() int { return 8 }

func (c *chunk64) load(src []byte) { c.w = binary.LittleEndian.Uint64(src) }

func (c *chunk64) store(dst []byte) { binary.LittleEndian.PutUint64(dst, c.w) }

func (c *chunk64) broadcast(src []byte, dist int) bool {
	w, ok := pattern64(src, dist)
	c.w = w
	return ok
}

type chunk128 struct{ lo, hi uint64 }

func (c *chunk128) width() int { return 16 }

func (c *chunk128) load(src []byte) {
	_ = src[15]
	c.lo = binary.LittleEndian.Uint64(src)
	c.hi = binary.LittleEndian.Uint64(src[8:])
}

func (c *chunk128) store(dst []byte) {
	_ = dst[15]
	binary.LittleEndian.PutUint64(dst, c.lo)
	binary.LittleEndian.PutUint64(dst[8:], c.hi)
}

func (c *chunk128) broadcast(src []byte, dist int) bool {
	w, ok := pattern64(src, dist)
	c.lo, c.hi = w, w
	return ok
}

type chunk256 struct{ w [4]uint64 }

func (c *chunk256) width() int { return 32 }

func (c *chunk256) load(src []byte) {
	_ = src[31]
	for i := range c.w {
		c.w[i] = binary.LittleEndian.Uint64(src[8*i:])
	}
}

func (c *chunk256) store(dst []byte) {
	_ = dst[31]
	for i, w := range c.w {
		binary.LittleEndian.PutUint64(dst[8*i:], w)
	}
}

func (c *chunk256) broadcast(src []byte, dist int) bool {
	w, ok := pattern64(src, dist)
	c.w = [4]uint64{w, w, w, w}
	return ok
}
