package flate

import (
	"io"

	"github.com/andybalholm/press"
	"github.com/nuclio/errors"
	"github.com/nuclio/logger"
)

// A Compressor is a streaming DEFLATE compressor.
type Compressor interface {
	io.WriteCloser

	// Flush writes everything written so far in a form the decoder can
	// already reproduce.
	Flush() error

	// Reset discards the compressor's state and makes it write to w.
	Reset(w io.Writer)
}

// NewWriter returns a Compressor writing raw DEFLATE data to w at the
// given level. Level 1 uses the quick strategy; levels 2–9 use the
// hash-chain match finders. Levels outside this range will be replaced
// with the closest level available, and DefaultCompression selects 6.
func NewWriter(w io.Writer, level int) Compressor {
	if level != DefaultCompression {
		if level < BestSpeed {
			level = BestSpeed
		}
		if level > BestCompression {
			level = BestCompression
		}
	}
	c, err := NewWriterConfig(w, ConfigForLevel(level), DefaultFuncs(), nil)
	if err != nil {
		panic(err) // the level table only holds valid configurations
	}
	return c
}

// NewWriterConfig is like NewWriter with every tuning knob explicit. A nil
// funcs selects DefaultFuncs. A nil l disables logging.
func NewWriterConfig(w io.Writer, cfg Config, funcs *Funcs, l logger.Logger) (Compressor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "Failed to validate compressor configuration")
	}
	if funcs == nil {
		funcs = DefaultFuncs()
	}
	if l != nil {
		l.DebugWith("Creating compressor", "level", cfg.Level, "funcs", funcs.String())
	}

	if cfg.strategy() == strategyQuick {
		return newQuickWriter(w, cfg, funcs, l), nil
	}
	return &press.Writer{
		Dest:        w,
		MatchFinder: newChainFinder(cfg, funcs),
		Encoder:     NewEncoder(),
		BlockSize:   1 << 16,
		Logger:      l,
	}, nil
}

// Writer runs the quick strategy, emitting fixed-code blocks as input
// arrives.
type Writer struct {
	quick
	dest   io.Writer
	logger logger.Logger
	closed bool
	err    error
}

func newQuickWriter(w io.Writer, cfg Config, funcs *Funcs, l logger.Logger) *Writer {
	qw := &Writer{
		dest:   w,
		logger: l,
	}
	qw.s = newState(cfg, funcs)
	qw.bw.pending = make([]byte, 0, pendingSize)
	qw.out = make([]byte, 0, outputSize)
	return qw
}

// drain writes the output buffer to the destination.
func (w *Writer) drain() error {
	if len(w.out) == 0 {
		return nil
	}
	_, err := w.dest.Write(w.out)
	w.out = w.out[:0]
	if err != nil {
		w.err = errors.Wrap(err, "Failed to write compressed data")
	}
	return w.err
}

// drainPending writes out everything the bit writer holds in pending.
func (w *Writer) drainPending() error {
	for len(w.bw.pending) > 0 {
		w.flushPending()
		if err := w.drain(); err != nil {
			return err
		}
	}
	return nil
}

// run calls the strategy until it has nothing more to do for flush,
// draining the output buffer in between. The compressed stream does not
// depend on the size of the output buffer.
func (w *Writer) run(flush flushMode) (blockState, error) {
	for {
		st := w.deflateQuick(flush)
		if err := w.drain(); err != nil {
			return st, err
		}
		switch {
		case st == finishStarted || st == finishDone:
			return finishDone, w.drainPending()
		case st == blockDone:
			return st, nil
		case flush == noFlush && len(w.s.input) == 0 && !w.blockOpen:
			return st, w.drainPending()
		}
	}
}

func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	if w.closed {
		return 0, press.ErrClosed
	}
	w.s.input = p
	_, err := w.run(noFlush)
	n := len(p) - len(w.s.input)
	w.s.input = nil
	return n, err
}

// Flush closes the current block and appends an empty stored block, so
// the output so far ends on a byte boundary.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if w.closed {
		return nil
	}
	if _, err := w.run(syncFlush); err != nil {
		return err
	}
	w.bw.writeSyncMarker()
	if err := w.drainPending(); err != nil {
		return err
	}
	if w.logger != nil {
		w.logger.DebugWith("Flushed", "position", w.s.strStart)
	}
	return nil
}

// Close writes the final block. It does not close the destination.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	if w.closed {
		return nil
	}
	if _, err := w.run(finishFlush); err != nil {
		return err
	}
	w.closed = true
	return nil
}

func (w *Writer) Reset(dest io.Writer) {
	w.dest = dest
	w.s.reset()
	w.bw.reset()
	w.out = w.out[:0]
	w.blockOpen = false
	w.closed = false
	w.err = nil
}
