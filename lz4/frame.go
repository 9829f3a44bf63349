package lz4

import (
	"encoding/binary"
	"hash"
	"io"

	"github.com/andybalholm/press"
	"github.com/andybalholm/press/flate"
	"github.com/pierrec/xxHash/xxHash32"
)

const (
	frameMagic = 0x184D2204
	// MaxBlockSize is the block size declared in the frame header.
	MaxBlockSize = 4 << 20

	uncompressedBit = 0x80000000
)

// A FrameEncoder implements the press.Encoder interface,
// writing in the LZ4 frame format. Blocks are linked, so matches may refer
// to the previous 64 KB of the stream.
type FrameEncoder struct {
	hasher      hash.Hash32
	blockBuffer []byte
}

// Header appends the magic number and the frame descriptor.
func (f *FrameEncoder) Header(dst []byte) []byte {
	f.hasher = xxHash32.New(0)
	dst = binary.LittleEndian.AppendUint32(dst, frameMagic)
	// Linked blocks, content checksum enabled, and 4-MB blocks.
	return append(dst, 0x44, 0x70, 0x1d)
}

func (f *FrameEncoder) Reset() {
	f.hasher = nil
}

func (f *FrameEncoder) Encode(dst []byte, src []byte, matches []press.Match, lastBlock bool) []byte {
	if len(src) > MaxBlockSize {
		panic("block too large")
	}
	if f.hasher == nil {
		dst = f.Header(dst)
	}

	if len(src) > 0 {
		var be BlockEncoder
		f.blockBuffer = be.Encode(f.blockBuffer[:0], src, matches, lastBlock)
		if len(f.blockBuffer) < len(src) {
			dst = binary.LittleEndian.AppendUint32(dst, uint32(len(f.blockBuffer)))
			dst = append(dst, f.blockBuffer...)
		} else {
			dst = binary.LittleEndian.AppendUint32(dst, uint32(len(src))|uncompressedBit)
			dst = append(dst, src...)
		}
		f.hasher.Write(src)
	}

	if lastBlock {
		dst = append(dst, 0, 0, 0, 0)
		dst = binary.LittleEndian.AppendUint32(dst, f.hasher.Sum32())
	}

	return dst
}

// NewWriter returns a press.Writer that writes an LZ4 frame to dst, using
// the DEFLATE hash-chain match finder for level.
func NewWriter(dst io.Writer, level int) *press.Writer {
	return &press.Writer{
		Dest:        dst,
		MatchFinder: flate.NewMatchFinder(level),
		Encoder:     &FrameEncoder{},
		BlockSize:   press.DefaultBlockSize,
	}
}
