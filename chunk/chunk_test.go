package chunk

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var engines = []struct {
	name string
	e    Engine
}{
	{"64", Engine64},
	{"128", Engine128},
	{"256", Engine256},
}

// replicate is the reference: a plain left-to-right byte loop.
func replicate(buf []byte, out, dist, n int) {
	for i := 0; i < n; i++ {
		buf[out+i] = buf[out-dist+i]
	}
}

func TestWidths(t *testing.T) {
	for _, tc := range []struct {
		e    Engine
		want int
	}{
		{Engine64, 8}, {Engine128, 16}, {Engine256, 32},
	} {
		if tc.e.Width != tc.want {
			t.Errorf("Width = %d, want %d", tc.e.Width, tc.want)
		}
	}
}

func TestMemsetMatchesByteLoop(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, en := range engines {
		w := en.e.Width
		for dist := 1; dist <= 4*w; dist++ {
			for n := 0; n <= 300; n++ {
				out := 4*w + 3
				buf := make([]byte, out+n+w)
				r.Read(buf[:out])
				want := append([]byte(nil), buf...)
				replicate(want, out, dist, n)

				end := en.e.Memset(buf, out, dist, n)
				if end != out+n {
					t.Fatalf("%s dist=%d n=%d: returned %d, want %d", en.name, dist, n, end, out+n)
				}
				if diff := cmp.Diff(want[:out+n], buf[:out+n]); diff != "" {
					t.Fatalf("%s dist=%d n=%d: mismatch (-want +got):\n%s", en.name, dist, n, diff)
				}
			}
		}
	}
}

func TestMemsetSafeRespectsLimit(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for _, en := range engines {
		w := en.e.Width
		for dist := 1; dist <= 4*w; dist++ {
			for n := 0; n <= 300; n += 1 + n/40 {
				out := 4*w + 1
				limit := out + n
				buf := make([]byte, limit+2*w)
				r.Read(buf[:out])
				for i := limit; i < len(buf); i++ {
					buf[i] = 0xA5
				}
				want := append([]byte(nil), buf...)
				replicate(want, out, dist, n)

				end := en.e.MemsetSafe(buf, out, dist, n, limit)
				if end != limit {
					t.Fatalf("%s dist=%d n=%d: returned %d, want %d", en.name, dist, n, end, limit)
				}
				if diff := cmp.Diff(want, buf); diff != "" {
					t.Fatalf("%s dist=%d n=%d: mismatch (-want +got):\n%s", en.name, dist, n, diff)
				}
			}
		}
	}
}

func TestMemsetSafeSlackBelowLimit(t *testing.T) {
	// Only buf[out:out+n] is defined; bytes up to limit may change, bytes
	// from limit on may not.
	for _, en := range engines {
		w := en.e.Width
		for dist := 1; dist <= 2*w; dist++ {
			for _, n := range []int{1, 10, w, 3*w + 1, 100} {
				out := 2 * w
				limit := out + n + 3*w
				buf := make([]byte, limit+w)
				for i := 0; i < out; i++ {
					buf[i] = byte(i*7 + 1)
				}
				for i := out; i < len(buf); i++ {
					buf[i] = 0xA5
				}
				want := append([]byte(nil), buf...)
				replicate(want, out, dist, n)

				end := en.e.MemsetSafe(buf, out, dist, n, limit)
				if end != out+n {
					t.Fatalf("%s dist=%d n=%d: returned %d, want %d", en.name, dist, n, end, out+n)
				}
				if diff := cmp.Diff(want[:out+n], buf[:out+n]); diff != "" {
					t.Fatalf("%s dist=%d n=%d: mismatch (-want +got):\n%s", en.name, dist, n, diff)
				}
				if diff := cmp.Diff(want[limit:], buf[limit:]); diff != "" {
					t.Fatalf("%s dist=%d n=%d: wrote past limit (-want +got):\n%s", en.name, dist, n, diff)
				}
			}
		}
	}
}

func TestMemsetSafeClipsLength(t *testing.T) {
	for _, en := range engines {
		buf := make([]byte, 200)
		copy(buf, "abc")
		limit := 150
		end := en.e.MemsetSafe(buf, 3, 3, 1000, limit)
		if end != limit {
			t.Fatalf("%s: returned %d, want %d", en.name, end, limit)
		}
		for i := 3; i < limit; i++ {
			if buf[i] != "abc"[i%3] {
				t.Fatalf("%s: byte %d = %q", en.name, i, buf[i])
			}
		}
		for i := limit; i < len(buf); i++ {
			if buf[i] != 0 {
				t.Fatalf("%s: wrote past the limit at %d", en.name, i)
			}
		}
	}
}

func TestMemsetShortBuffer(t *testing.T) {
	// Fewer than three chunks left: the copy must stay byte exact and in
	// bounds even without slack.
	for _, en := range engines {
		w := en.e.Width
		for n := 0; n < 3*w-2; n++ {
			buf := make([]byte, 2+n)
			buf[0], buf[1] = 'x', 'y'
			want := append([]byte(nil), buf...)
			replicate(want, 2, 2, n)
			en.e.Memset(buf, 2, 2, n)
			if diff := cmp.Diff(want, buf); diff != "" {
				t.Fatalf("%s n=%d: mismatch (-want +got):\n%s", en.name, n, diff)
			}
		}
	}
}

func TestCopy(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for _, en := range engines {
		for n := 0; n <= 300; n++ {
			src := make([]byte, n)
			r.Read(src)
			dst := make([]byte, n+8)
			for i := range dst {
				dst[i] = 0x5A
			}
			if got := en.e.Copy(dst, src); got != n {
				t.Fatalf("%s n=%d: Copy returned %d", en.name, n, got)
			}
			if diff := cmp.Diff(src, dst[:n]); diff != "" {
				t.Fatalf("%s n=%d: mismatch (-want +got):\n%s", en.name, n, diff)
			}
			for i := n; i < len(dst); i++ {
				if dst[i] != 0x5A {
					t.Fatalf("%s n=%d: Copy wrote past the end", en.name, n)
				}
			}
		}
	}
}

func BenchmarkMemset(b *testing.B) {
	for _, en := range engines {
		for _, dist := range []int{1, 3, 8, 16, 40} {
			b.Run(en.name+"/"+strconv.Itoa(dist), func(b *testing.B) {
				buf := make([]byte, 1<<12)
				for i := range buf[:64] {
					buf[i] = byte(i)
				}
				b.SetBytes(258)
				for i := 0; i < b.N; i++ {
					en.e.Memset(buf, 64, dist, 258)
				}
			})
		}
	}
}
