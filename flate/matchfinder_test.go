package flate

import (
	"bytes"
	"testing"

	"github.com/andybalholm/press"
)

// replay rebuilds the input from matches, starting from history.
func replay(t *testing.T, history, src []byte, matches []press.Match) []byte {
	t.Helper()
	out := append([]byte(nil), history...)
	pos := 0
	for _, m := range matches {
		out = append(out, src[pos:pos+m.Unmatched]...)
		pos += m.Unmatched
		if m.Length == 0 {
			continue
		}
		if m.Length < minMatch || m.Length > maxMatch {
			t.Fatalf("match length %d out of range", m.Length)
		}
		if m.Distance < 1 || m.Distance > len(out) || m.Distance > maxDistance {
			t.Fatalf("match distance %d out of range (%d bytes of history)", m.Distance, len(out))
		}
		for i := 0; i < m.Length; i++ {
			out = append(out, out[len(out)-m.Distance])
		}
		pos += m.Length
	}
	if pos != len(src) {
		t.Fatalf("matches cover %d bytes of a %d byte block", pos, len(src))
	}
	return out[len(history):]
}

func TestMatchFinderCoversInput(t *testing.T) {
	for level := BestSpeed; level <= BestCompression; level++ {
		for _, in := range testInputs {
			mf := NewMatchFinder(level)
			var history []byte
			for start := 0; start < len(in.data) || start == 0; start += 1 << 15 {
				end := start + 1<<15
				if end > len(in.data) {
					end = len(in.data)
				}
				block := in.data[start:end]
				matches := mf.FindMatches(nil, block)
				if got := replay(t, history, block, matches); !bytes.Equal(got, block) {
					t.Fatalf("level %d, %s: block at %d does not replay", level, in.name, start)
				}
				history = in.data[:end]
				if end == len(in.data) {
					break
				}
			}
		}
	}
}

func TestMatchFinderReset(t *testing.T) {
	data := englishish(10000, 18)
	mf := NewMatchFinder(6)
	first := mf.FindMatches(nil, data)
	mf.Reset()
	second := mf.FindMatches(nil, data)
	if len(first) != len(second) {
		t.Fatalf("%d matches before Reset, %d after", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("match %d differs after Reset: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestEncoderWithAutoReset(t *testing.T) {
	// Any MatchFinder can drive the fixed-code encoder.
	data := englishish(50000, 19)
	b := new(bytes.Buffer)
	w := &press.Writer{
		Dest:        b,
		MatchFinder: press.AutoReset{MatchFinder: NewMatchFinder(3)},
		Encoder:     NewEncoder(),
		BlockSize:   8192,
	}
	w.Write(data)
	w.Close()
	if got := inflate(t, b.Bytes()); !bytes.Equal(got, data) {
		t.Fatal("decompressed output doesn't match")
	}
}

func TestEncoderSplitsLongMatches(t *testing.T) {
	data := bytes.Repeat([]byte{'z'}, 1000)
	for _, length := range []int{259, 260, 261, 516, 999} {
		src := data[:length+1]
		matches := []press.Match{{Unmatched: 1, Length: length, Distance: 1}}
		out := NewEncoder().Encode(nil, src, matches, true)
		if got := inflate(t, out); !bytes.Equal(got, src) {
			t.Fatalf("length %d: decompressed output doesn't match", length)
		}
	}
}
