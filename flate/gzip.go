package flate

import (
	"encoding/binary"
	"io"
	"time"

	"github.com/andybalholm/press"
	"github.com/nuclio/errors"
)

// framedWriter wraps a Compressor with a container header, a running
// checksum of the uncompressed data and a trailer.
type framedWriter struct {
	c       Compressor
	dest    io.Writer
	header  func(dst []byte) []byte
	trailer func(dst []byte, sum, length uint32) []byte
	update  func(sum uint32, p []byte) uint32
	initSum uint32

	sum         uint32
	length      uint32
	wroteHeader bool
	closed      bool
}

func (f *framedWriter) writeHeader() error {
	if f.wroteHeader {
		return nil
	}
	f.wroteHeader = true
	if _, err := f.dest.Write(f.header(nil)); err != nil {
		return errors.Wrap(err, "Failed to write header")
	}
	return nil
}

func (f *framedWriter) Write(p []byte) (int, error) {
	if f.closed {
		return 0, press.ErrClosed
	}
	if err := f.writeHeader(); err != nil {
		return 0, err
	}
	n, err := f.c.Write(p)
	if n > 0 {
		f.sum = f.update(f.sum, p[:n])
		f.length += uint32(n)
	}
	return n, err
}

func (f *framedWriter) Flush() error {
	if f.closed {
		return nil
	}
	if err := f.writeHeader(); err != nil {
		return err
	}
	return f.c.Flush()
}

// Close finishes the compressed stream and writes the trailer. It does not
// close the destination.
func (f *framedWriter) Close() error {
	if f.closed {
		return nil
	}
	if err := f.writeHeader(); err != nil {
		return err
	}
	if err := f.c.Close(); err != nil {
		return err
	}
	f.closed = true
	if _, err := f.dest.Write(f.trailer(nil, f.sum, f.length)); err != nil {
		return errors.Wrap(err, "Failed to write trailer")
	}
	return nil
}

func (f *framedWriter) Reset(w io.Writer) {
	f.c.Reset(w)
	f.dest = w
	f.sum = f.initSum
	f.length = 0
	f.wroteHeader = false
	f.closed = false
}

// NewGZIPWriter returns a Compressor that writes gzip data to w. Levels
// 1–9 are available; levels outside this range will be replaced by the
// closest level available.
func NewGZIPWriter(w io.Writer, level int) Compressor {
	return &framedWriter{
		c:       NewWriter(w, level),
		dest:    w,
		header:  gzipHeader,
		trailer: gzipTrailer,
		update:  DefaultFuncs().CRC32,
	}
}

func gzipHeader(dst []byte) []byte {
	dst = append(dst,
		0x1f, 0x8b, // magic number
		8, // CM = flate
		0, // FLG
	)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(time.Now().Unix()))
	dst = append(dst,
		0,   // XFL
		255, // OS (unspecified)
	)
	return dst
}

func gzipTrailer(dst []byte, crc, length uint32) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, crc)
	return binary.LittleEndian.AppendUint32(dst, length)
}
