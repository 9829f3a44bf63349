package flate

import (
	"encoding/binary"
	"io"
)

// NewZlibWriter returns a Compressor that writes zlib data (RFC 1950) to
// w. Levels outside 1–9 will be replaced by the closest level available.
func NewZlibWriter(w io.Writer, level int) Compressor {
	if level == DefaultCompression {
		level = 6
	}
	return &framedWriter{
		c:       NewWriter(w, level),
		dest:    w,
		header:  func(dst []byte) []byte { return zlibHeader(dst, level) },
		trailer: zlibTrailer,
		update:  DefaultFuncs().Adler32,
		initSum: 1,
		sum:     1,
	}
}

func zlibHeader(dst []byte, level int) []byte {
	const cmf = 0x78 // deflate, 32K window
	var flevel byte
	switch {
	case level <= 1:
		flevel = 0
	case level <= 5:
		flevel = 1
	case level == 6:
		flevel = 2
	default:
		flevel = 3
	}
	flg := flevel << 6
	flg += byte(31 - (uint16(cmf)<<8|uint16(flg))%31)
	return append(dst, cmf, flg)
}

func zlibTrailer(dst []byte, adler, _ uint32) []byte {
	return binary.BigEndian.AppendUint32(dst, adler)
}
