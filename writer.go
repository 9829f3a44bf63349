package press

import (
	"io"

	"github.com/nuclio/errors"
	"github.com/nuclio/logger"
)

// DefaultBlockSize is the block size used when Writer.BlockSize is zero.
const DefaultBlockSize = 1 << 16

// ErrClosed is returned by writes to a closed Writer.
var ErrClosed = errors.New("Write to closed writer")

// A Writer buffers data and hands it block by block to a MatchFinder and
// an Encoder, writing the result to Dest.
type Writer struct {
	Dest        io.Writer
	MatchFinder MatchFinder
	Encoder     Encoder

	// BlockSize is the number of bytes buffered before a block is
	// compressed. The default is DefaultBlockSize.
	BlockSize int

	// Logger, if set, receives a debug line for every encoded block.
	Logger logger.Logger

	buf         []byte
	outBuf      []byte
	matches     []Match
	wroteHeader bool
	closed      bool
	err         error
}

func (w *Writer) blockSize() int {
	if w.BlockSize <= 0 {
		return DefaultBlockSize
	}
	return w.BlockSize
}

// Write buffers p, compressing a block every time the buffer fills up.
func (w *Writer) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	if w.closed {
		return 0, ErrClosed
	}
	if w.buf == nil {
		w.buf = make([]byte, 0, w.blockSize())
	}

	for len(p) > 0 {
		if len(w.buf) == cap(w.buf) {
			// Only compress a full block once more data shows up, so that
			// Close can still mark the final block as the last one.
			if err := w.encodeBlock(false); err != nil {
				return n, err
			}
		}
		c := copy(w.buf[len(w.buf):cap(w.buf)], p)
		w.buf = w.buf[:len(w.buf)+c]
		p = p[c:]
		n += c
	}
	return n, nil
}

// Flush compresses and writes any buffered data.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if w.closed || len(w.buf) == 0 {
		return nil
	}
	return w.encodeBlock(false)
}

// Close compresses the remaining data as the final block. It does not
// close Dest.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	if w.closed {
		return nil
	}
	if err := w.encodeBlock(true); err != nil {
		return err
	}
	w.closed = true
	return nil
}

// Reset discards the Writer's state and makes it write to dest, as if it
// had just been created.
func (w *Writer) Reset(dest io.Writer) {
	w.Dest = dest
	w.buf = w.buf[:0]
	w.outBuf = w.outBuf[:0]
	w.matches = w.matches[:0]
	w.wroteHeader = false
	w.closed = false
	w.err = nil
	w.MatchFinder.Reset()
	w.Encoder.Reset()
}

func (w *Writer) encodeBlock(last bool) error {
	w.outBuf = w.outBuf[:0]
	if !w.wroteHeader {
		w.outBuf = w.Encoder.Header(w.outBuf)
		w.wroteHeader = true
	}

	w.matches = w.MatchFinder.FindMatches(w.matches[:0], w.buf)
	w.outBuf = w.Encoder.Encode(w.outBuf, w.buf, w.matches, last)

	if w.Logger != nil {
		w.Logger.DebugWith("Encoded block",
			"size", len(w.buf),
			"matches", len(w.matches),
			"compressed", len(w.outBuf),
			"last", last)
	}

	w.buf = w.buf[:0]
	if _, err := w.Dest.Write(w.outBuf); err != nil {
		w.err = errors.Wrap(err, "Failed to write compressed block")
		return w.err
	}
	return nil
}
