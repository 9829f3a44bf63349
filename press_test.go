package press_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/andybalholm/press"
	"github.com/andybalholm/press/flate"
	"github.com/google/go-cmp/cmp"
	nuclioerrors "github.com/nuclio/errors"
	nucliozap "github.com/nuclio/zap"
)

// recorder is an Encoder that notes the size of every block it is given.
type recorder struct {
	blocks  []int
	last    []bool
	headers int
}

func (r *recorder) Header(dst []byte) []byte {
	r.headers++
	return append(dst, 'H')
}

func (r *recorder) Encode(dst []byte, src []byte, matches []press.Match, lastBlock bool) []byte {
	r.blocks = append(r.blocks, len(src))
	r.last = append(r.last, lastBlock)
	return append(dst, src...)
}

func (r *recorder) Reset() {
	r.blocks = nil
	r.last = nil
	r.headers = 0
}

type noMatches struct{ resets int }

func (*noMatches) FindMatches(dst []press.Match, src []byte) []press.Match {
	return append(dst, press.Match{Unmatched: len(src)})
}

func (n *noMatches) Reset() { n.resets++ }

func TestWriterBlocks(t *testing.T) {
	rec := &recorder{}
	b := new(bytes.Buffer)
	w := &press.Writer{
		Dest:        b,
		MatchFinder: &noMatches{},
		Encoder:     rec,
		BlockSize:   10,
	}
	w.Write([]byte("0123456789"))
	w.Write([]byte("abcde"))
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	w.Write([]byte("0123456789"))
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]int{10, 5, 10}, rec.blocks); diff != "" {
		t.Errorf("block sizes (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{false, false, true}, rec.last); diff != "" {
		t.Errorf("last flags (-want +got):\n%s", diff)
	}
	if rec.headers != 1 {
		t.Errorf("header written %d times", rec.headers)
	}
	if got, want := b.String(), "H0123456789abcde0123456789"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestWriterClosed(t *testing.T) {
	mf := &noMatches{}
	w := &press.Writer{
		Dest:        new(bytes.Buffer),
		MatchFinder: mf,
		Encoder:     &recorder{},
	}
	w.Close()
	if _, err := w.Write([]byte("x")); nuclioerrors.RootCause(err) != press.ErrClosed {
		t.Fatalf("Write after Close: got %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	b := new(bytes.Buffer)
	w.Reset(b)
	if mf.resets != 1 {
		t.Errorf("MatchFinder reset %d times", mf.resets)
	}
	if _, err := w.Write([]byte("x")); err != nil {
		t.Fatal(err)
	}
	w.Close()
	if b.String() != "Hx" {
		t.Errorf("output after Reset = %q", b.String())
	}
}

type failingWriter struct{}

var errFull = errors.New("disk full")

func (failingWriter) Write(p []byte) (int, error) { return 0, errFull }

func TestWriterDestError(t *testing.T) {
	w := &press.Writer{
		Dest:        failingWriter{},
		MatchFinder: &noMatches{},
		Encoder:     &recorder{},
	}
	w.Write([]byte("data"))
	err := w.Close()
	if nuclioerrors.RootCause(err) != errFull {
		t.Fatalf("Close: got %v, want %v", err, errFull)
	}
	if _, err := w.Write([]byte("more")); nuclioerrors.RootCause(err) != errFull {
		t.Fatalf("Write after failure: got %v", err)
	}
}

func TestWriterLogging(t *testing.T) {
	l, err := nucliozap.NewNuclioZapTest("test")
	if err != nil {
		t.Fatal(err)
	}
	w := &press.Writer{
		Dest:        new(bytes.Buffer),
		MatchFinder: &noMatches{},
		Encoder:     &recorder{},
		BlockSize:   4,
		Logger:      l,
	}
	if _, err := w.Write([]byte("logged blocks")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestTextEncoder(t *testing.T) {
	src := []byte("abcabcabc!")
	matches := []press.Match{
		{Unmatched: 3, Length: 6, Distance: 3},
		{Unmatched: 1},
	}
	got := string(press.TextEncoder{}.Encode(nil, src, matches, true))
	if want := "abc<6,3>!"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAutoReset(t *testing.T) {
	block := []byte(strings.Repeat("the same block again ", 20))

	plain := flate.NewMatchFinder(6)
	plain.FindMatches(nil, block)
	crossing := plain.FindMatches(nil, block)

	auto := press.AutoReset{MatchFinder: flate.NewMatchFinder(6)}
	auto.FindMatches(nil, block)
	fresh := auto.FindMatches(nil, block)

	// Without a reset the second block starts with a match into the first.
	if len(crossing) == 0 || crossing[0].Unmatched != 0 {
		t.Errorf("second block without reset starts with %+v", crossing)
	}
	pos := 0
	for _, m := range fresh {
		pos += m.Unmatched
		if m.Length > 0 && m.Distance > pos {
			t.Fatalf("match %+v at %d reaches before the block", m, pos)
		}
		pos += m.Length
	}
	if pos != len(block) {
		t.Errorf("matches cover %d bytes, want %d", pos, len(block))
	}
}
