package flate

import (
	"testing"
)

var compareFuncs = []struct {
	name string
	fn   func(a, b []byte) int
}{
	{"C", compare258C},
	{"Unaligned16", compare258Unaligned16},
	{"Unaligned32", compare258Unaligned32},
	{"Unaligned64", compare258Unaligned64},
	{"SSE", compare258SSE},
	{"AVX2", compare258AVX2},
}

func TestCompare258SelfMatch(t *testing.T) {
	buf := englishish(400, 3)
	for _, c := range compareFuncs {
		if n := c.fn(buf, buf); n != maxMatch {
			t.Errorf("%s: self compare = %d, want %d", c.name, n, maxMatch)
		}
	}
}

func TestCompare258Divergence(t *testing.T) {
	a := randomBytes(300, 4)
	b := make([]byte, len(a))
	for _, c := range compareFuncs {
		for k := 0; k < maxMatch; k++ {
			copy(b, a)
			b[k] ^= 0x40
			if n := c.fn(a, b); n != k {
				t.Fatalf("%s: diverging at %d returned %d", c.name, k, n)
			}
		}
	}
}

func TestCompare258ShortInput(t *testing.T) {
	a := []byte("abcdefghijklmnopqrstuvwxyz")
	for _, c := range compareFuncs {
		for n := 0; n <= len(a); n++ {
			if got := c.fn(a[:n], a); got != n {
				t.Errorf("%s: compare of %d equal bytes = %d", c.name, n, got)
			}
		}
	}
}

func BenchmarkCompare258(b *testing.B) {
	buf := make([]byte, 300)
	for _, c := range compareFuncs {
		b.Run(c.name, func(b *testing.B) {
			b.SetBytes(maxMatch)
			for i := 0; i < b.N; i++ {
				c.fn(buf, buf[1:])
			}
		})
	}
}
