package lz4

import (
	"encoding/binary"

	"github.com/andybalholm/press/flate"
	"github.com/nuclio/errors"
)

var (
	// ErrCorrupt reports that the input is not a valid LZ4 block.
	ErrCorrupt = errors.New("Corrupt input")
	// ErrOffset reports a match with offset 0, or one that reaches back
	// before the start of the history.
	ErrOffset = errors.New("Invalid match offset")
	// ErrOverrun reports a block that decodes to more than MaxBlockSize bytes.
	ErrOverrun = errors.New("Decoded block exceeds maximum size")
)

// DecodeBlock decodes the LZ4 block src and appends the result to dst.
// The existing contents of dst serve as history, so blocks of a linked
// frame can be decoded by passing the output of the previous ones.
func DecodeBlock(dst, src []byte) ([]byte, error) {
	ch := flate.DefaultFuncs().Chunk

	start := len(dst)
	out := dst[:cap(dst)]
	d := start

	// reserve makes room for n more bytes at d.
	reserve := func(n int) error {
		if d+n-start > MaxBlockSize {
			return errors.Wrapf(ErrOverrun, "%d bytes at %d", n, d-start)
		}
		if d+n <= len(out) {
			return nil
		}
		size := 2 * len(out)
		if size < d+n+ch.Width {
			size = d + n + ch.Width
		}
		grown := make([]byte, size)
		copy(grown, out[:d])
		out = grown
		return nil
	}

	s := 0
	for {
		if s >= len(src) {
			return nil, ErrCorrupt
		}
		token := src[s]
		s++

		lit := int(token >> 4)
		if lit == 15 {
			n, err := readInt(src, &s)
			if err != nil {
				return nil, err
			}
			lit += n
		}
		if lit > len(src)-s {
			return nil, ErrCorrupt
		}
		if err := reserve(lit); err != nil {
			return nil, err
		}
		d += ch.Copy(out[d:d+lit], src[s:s+lit])
		s += lit

		if s == len(src) {
			// The last sequence has no match.
			return out[:d], nil
		}

		if s+2 > len(src) {
			return nil, ErrCorrupt
		}
		offset := int(binary.LittleEndian.Uint16(src[s:]))
		s += 2
		if offset == 0 || offset > d {
			return nil, errors.Wrapf(ErrOffset, "Offset %d at %d", offset, d-start)
		}

		length := int(token&0x0f) + minMatch
		if length == 15+minMatch {
			n, err := readInt(src, &s)
			if err != nil {
				return nil, err
			}
			length += n
		}
		if err := reserve(length); err != nil {
			return nil, err
		}
		if d+length+ch.Width <= len(out) {
			d = ch.Memset(out, d, offset, length)
		} else {
			d = ch.MemsetSafe(out, d, offset, length, len(out))
		}
	}
}

// readInt reads an LZ4 variable-length integer continuation at *s.
func readInt(src []byte, s *int) (int, error) {
	n := 0
	for {
		if *s >= len(src) {
			return 0, ErrCorrupt
		}
		b := src[*s]
		*s++
		n += int(b)
		if b != 255 {
			return n, nil
		}
		if n > MaxBlockSize {
			return 0, ErrCorrupt
		}
	}
}
