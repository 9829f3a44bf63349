package flate

import (
	"math/rand"

	"github.com/andybalholm/press/internal/cpu"
)

var words = []string{
	"light", "colours", "rays", "prism", "refraction", "the", "of", "and",
	"which", "is", "in", "that", "by", "glass", "reflected", "experiment",
	"white", "red", "violet", "water", "sun", "image", "length", "breadth",
}

// englishish returns n bytes of word salad with the repetition profile of
// prose.
func englishish(n int, seed int64) []byte {
	r := rand.New(rand.NewSource(seed))
	b := make([]byte, 0, n+16)
	for len(b) < n {
		b = append(b, words[r.Intn(len(words))]...)
		switch r.Intn(12) {
		case 0:
			b = append(b, ". "...)
		case 1:
			b = append(b, ",\n"...)
		default:
			b = append(b, ' ')
		}
	}
	return b[:n]
}

func randomBytes(n int, seed int64) []byte {
	b := make([]byte, n)
	rand.New(rand.NewSource(seed)).Read(b)
	return b
}

func repetitive(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = "abcabcabd"[i%9]
	}
	return b
}

var testInputs = []struct {
	name string
	data []byte
}{
	{"empty", nil},
	{"one", []byte{'x'}},
	{"short", []byte("hello, hello, hello world")},
	{"text", englishish(100000, 1)},
	{"random", randomBytes(70000, 2)},
	{"repetitive", repetitive(150000)},
	{"zeros", make([]byte, 80000)},
}

// featureSets covers every tier combination the dispatch table knows.
var featureSets = []struct {
	name string
	f    cpu.Features
}{
	{"generic", cpu.Features{}},
	{"unaligned", cpu.Features{Unaligned: true}},
	{"sse2", cpu.Features{Unaligned: true, SSE2: true}},
	{"sse42", cpu.Features{Unaligned: true, SSE2: true, SSSE3: true, SSE41: true, SSE42: true, PCLMULQDQ: true}},
	{"avx2", cpu.Features{Unaligned: true, SSE2: true, SSSE3: true, SSE41: true, SSE42: true, PCLMULQDQ: true, AVX2: true, BMI1: true}},
	{"neon", cpu.Features{Unaligned: true, ASIMD: true}},
}
