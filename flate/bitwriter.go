package flate

import (
	"encoding/binary"
	"math/bits"
)

// bitWriter packs DEFLATE codes LSB first into a 64-bit accumulator and
// spills them to pending four bytes at a time.
type bitWriter struct {
	pending []byte
	bits    uint64
	nbits   uint
}

// writeBits appends the low n bits of v. n must not exceed 32.
func (w *bitWriter) writeBits(v uint64, n uint) {
	w.bits |= v << w.nbits
	w.nbits += n
	if w.nbits >= 32 {
		w.pending = binary.LittleEndian.AppendUint32(w.pending, uint32(w.bits))
		w.bits >>= 32
		w.nbits -= 32
	}
}

// align pads the stream with zero bits up to the next byte boundary and
// moves everything into pending.
func (w *bitWriter) align() {
	for w.nbits > 0 {
		w.pending = append(w.pending, byte(w.bits))
		w.bits >>= 8
		if w.nbits < 8 {
			w.nbits = 0
		} else {
			w.nbits -= 8
		}
	}
	w.bits = 0
}

func (w *bitWriter) reset() {
	w.pending = w.pending[:0]
	w.bits = 0
	w.nbits = 0
}

func (w *bitWriter) startFixedBlock(last bool) {
	var v uint64 = 1 << 1 // BTYPE 01
	if last {
		v |= 1
	}
	w.writeBits(v, 3)
}

func (w *bitWriter) endBlock(last bool) {
	w.writeBits(uint64(fixedLit[endBlockMarker].code), uint(fixedLit[endBlockMarker].len))
	if last {
		w.align()
	}
}

// writeSyncMarker emits an empty stored block, which byte-aligns the
// stream so everything written so far can be decoded.
func (w *bitWriter) writeSyncMarker() {
	w.writeBits(0, 3)
	w.align()
	w.pending = append(w.pending, 0x00, 0x00, 0xff, 0xff)
}

func (w *bitWriter) writeLiteral(c byte) {
	h := fixedLit[c]
	w.writeBits(uint64(h.code), uint(h.len))
}

// writeMatch emits a length/distance pair using the fixed codes.
// 3 <= length <= 258 and 1 <= dist <= 32768.
func (w *bitWriter) writeMatch(length, dist int) {
	lc := lengthCodes[length-minMatch]
	h := fixedLit[257+int(lc)]
	extra := uint64(length-minMatch-int(lengthBase[lc])) << h.len
	w.writeBits(uint64(h.code)|extra, uint(h.len)+uint(lengthExtra[lc]))

	dc, dbits, dextra := distCode(dist)
	w.writeBits(uint64(fixedDist[dc])|uint64(dextra)<<5, 5+dbits)
}

const endBlockMarker = 256

type hcode struct {
	code uint16 // bit reversed, ready to be written LSB first
	len  uint8
}

var (
	fixedLit    [288]hcode
	fixedDist   [30]uint16
	lengthCodes [maxMatch - minMatch + 1]uint8
)

// lengthBase holds the first length of each length code, minus minMatch.
var lengthBase = [29]uint8{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 10,
	12, 14, 16, 20, 24, 28, 32, 40, 48, 56,
	64, 80, 96, 112, 128, 160, 192, 224, 255,
}

var lengthExtra = [29]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1,
	1, 1, 2, 2, 2, 2, 3, 3, 3, 3,
	4, 4, 4, 4, 5, 5, 5, 5, 0,
}

func init() {
	// RFC 1951, section 3.2.6.
	for i := 0; i < 288; i++ {
		var code, n int
		switch {
		case i < 144:
			code, n = 0x30+i, 8
		case i < 256:
			code, n = 0x190+i-144, 9
		case i < 280:
			code, n = i-256, 7
		default:
			code, n = 0xc0+i-280, 8
		}
		fixedLit[i] = hcode{code: reverse(code, n), len: uint8(n)}
	}
	for i := range fixedDist {
		fixedDist[i] = reverse(i, 5)
	}
	for lc := 0; lc < 28; lc++ {
		for j := 0; j < 1<<lengthExtra[lc]; j++ {
			lengthCodes[int(lengthBase[lc])+j] = uint8(lc)
		}
	}
	lengthCodes[maxMatch-minMatch] = 28
}

func reverse(code, n int) uint16 {
	return bits.Reverse16(uint16(code)) >> (16 - uint(n))
}

// distCode returns the distance code for dist together with the number of
// extra bits and their value.
func distCode(dist int) (code int, extraBits uint, extra uint32) {
	d := uint32(dist - 1)
	if d < 4 {
		return int(d), 0, 0
	}
	n := uint(bits.Len32(d)) - 1
	code = int(2*n) + int(d>>(n-1))&1
	extraBits = n - 1
	extra = d & (1<<extraBits - 1)
	return code, extraBits, extra
}
