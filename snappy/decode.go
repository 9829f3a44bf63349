package snappy

import (
	"encoding/binary"

	"github.com/andybalholm/press/flate"
	"github.com/nuclio/errors"
)

// maxBlockSize is the largest block the framing format allows.
const maxBlockSize = 65536

var (
	// ErrCorrupt reports that the input is not valid snappy data.
	ErrCorrupt = errors.New("Corrupt input")
	// ErrOffset reports a copy that reaches back before the start of the
	// output, or has offset 0.
	ErrOffset = errors.New("Invalid copy offset")
	// ErrOverrun reports a block whose elements produce more bytes than
	// its header declares.
	ErrOverrun = errors.New("Decoded data overruns declared length")
)

// DecodedLen returns the length of the decoded block and the number of
// bytes that the length header occupied.
func DecodedLen(src []byte) (int, int, error) {
	v, n := binary.Uvarint(src)
	if n <= 0 || v > 0xffffffff {
		return 0, 0, ErrCorrupt
	}
	return int(v), n, nil
}

// Decode returns the decoded form of the snappy block src. It uses dst if
// it is large enough.
func Decode(dst, src []byte) ([]byte, error) {
	dLen, s, err := DecodedLen(src)
	if err != nil {
		return nil, err
	}
	if dLen <= cap(dst) {
		dst = dst[:dLen]
	} else {
		dst = make([]byte, dLen)
	}
	if err := decode(dst, src[s:]); err != nil {
		return nil, err
	}
	return dst, nil
}

func decode(dst, src []byte) error {
	ch := flate.DefaultFuncs().Chunk

	var d, s, length, offset int
	for s < len(src) {
		switch src[s] & 0x03 {
		case tagLiteral:
			x := uint32(src[s] >> 2)
			switch {
			case x < 60:
				s++
			case x == 60:
				s += 2
				if s > len(src) {
					return ErrCorrupt
				}
				x = uint32(src[s-1])
			case x == 61:
				s += 3
				if s > len(src) {
					return ErrCorrupt
				}
				x = uint32(binary.LittleEndian.Uint16(src[s-2:]))
			case x == 62:
				s += 4
				if s > len(src) {
					return ErrCorrupt
				}
				x = uint32(src[s-3]) | uint32(src[s-2])<<8 | uint32(src[s-1])<<16
			default:
				s += 5
				if s > len(src) {
					return ErrCorrupt
				}
				x = binary.LittleEndian.Uint32(src[s-4:])
			}
			length = int(x) + 1
			if length <= 0 {
				return ErrCorrupt
			}
			if length > len(dst)-d {
				return errors.Wrapf(ErrOverrun, "Literal of %d bytes at %d", length, d)
			}
			if length > len(src)-s {
				return ErrCorrupt
			}
			ch.Copy(dst[d:d+length], src[s:s+length])
			d += length
			s += length
			continue

		case tagCopy1:
			s += 2
			if s > len(src) {
				return ErrCorrupt
			}
			length = 4 + int(src[s-2])>>2&0x7
			offset = int(uint32(src[s-2])&0xe0<<3 | uint32(src[s-1]))

		case tagCopy2:
			s += 3
			if s > len(src) {
				return ErrCorrupt
			}
			length = 1 + int(src[s-3])>>2
			offset = int(binary.LittleEndian.Uint16(src[s-2:]))

		case tagCopy4:
			s += 5
			if s > len(src) {
				return ErrCorrupt
			}
			length = 1 + int(src[s-5])>>2
			offset = int(binary.LittleEndian.Uint32(src[s-4:]))
		}

		if offset <= 0 || d < offset {
			return errors.Wrapf(ErrOffset, "Offset %d at %d", offset, d)
		}
		if length > len(dst)-d {
			return errors.Wrapf(ErrOverrun, "Copy of %d bytes at %d", length, d)
		}
		if d+length+ch.Width <= len(dst) {
			d = ch.Memset(dst, d, offset, length)
		} else {
			d = ch.MemsetSafe(dst, d, offset, length, len(dst))
		}
	}
	if d != len(dst) {
		return ErrCorrupt
	}
	return nil
}
