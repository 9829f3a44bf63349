package flate

import (
	"strings"
	"sync"

	"github.com/andybalholm/press/checksum"
	"github.com/andybalholm/press/chunk"
	"github.com/andybalholm/press/internal/cpu"
)

// A Slot names one entry of a dispatch table.
type Slot int

const (
	SlotAdler32 Slot = iota
	SlotCRC32
	SlotCompare258
	SlotInsertString
	SlotQuickInsertString
	SlotSlideHash
	SlotLongestMatch
	SlotChunk
	numSlots
)

var slotNames = [numSlots]string{
	SlotAdler32:           "adler32",
	SlotCRC32:             "crc32",
	SlotCompare258:        "compare258",
	SlotInsertString:      "insert_string",
	SlotQuickInsertString: "quick_insert_string",
	SlotSlideHash:         "slide_hash",
	SlotLongestMatch:      "longest_match",
	SlotChunk:             "chunk",
}

func (s Slot) String() string {
	if s < 0 || s >= numSlots {
		return "unknown"
	}
	return slotNames[s]
}

// Funcs is a dispatch table: one implementation per hot operation, chosen
// for a feature set. A table never changes after NewFuncs returns, so it
// can be shared by any number of sessions.
type Funcs struct {
	Adler32    checksum.AdlerFunc
	CRC32      checksum.CRCFunc
	Compare258 func(a, b []byte) int
	Chunk      chunk.Engine

	insertString      func(s *state, str, count int) int
	quickInsertString func(s *state, str int) int
	slideHash         func(s *state)
	longestMatch      func(s *state, cur int) int

	tiers [numSlots]cpu.Tier
}

// NewFuncs builds the table for f. Every slot gets the implementation of
// the highest tier whose prerequisites f satisfies.
func NewFuncs(f cpu.Features) *Funcs {
	t := &Funcs{
		Adler32:           checksum.Adler32Generic,
		CRC32:             checksum.CRC32Generic,
		Compare258:        compare258C,
		Chunk:             chunk.Engine64,
		insertString:      insertStringC,
		quickInsertString: quickInsertC,
		slideHash:         slideHashC,
		longestMatch:      longestMatchC,
	}

	if f.Has(cpu.TierUnaligned) {
		t.Compare258 = compare258Unaligned64
		t.longestMatch = longestMatchUnaligned
		t.insertString = insertStringUnaligned
		t.quickInsertString = quickInsertUnaligned
		t.set(cpu.TierUnaligned, SlotCompare258, SlotLongestMatch, SlotInsertString, SlotQuickInsertString)
	}

	if f.Has(cpu.TierSSE) {
		if f.SSSE3 || f.ASIMD {
			t.Adler32 = checksum.Adler32SSSE3
			t.set(cpu.TierSSE, SlotAdler32)
		}
		if (f.SSE42 && f.PCLMULQDQ) || f.ASIMD {
			t.CRC32 = checksum.CRC32PCLMUL
			t.set(cpu.TierSSE, SlotCRC32)
		}
		if f.SSE42 || f.ASIMD {
			t.Compare258 = compare258SSE
			t.longestMatch = longestMatchSSE
			t.set(cpu.TierSSE, SlotCompare258, SlotLongestMatch)
		}
		t.slideHash = slideHashSSE2
		t.Chunk = chunk.Engine128
		t.set(cpu.TierSSE, SlotSlideHash, SlotChunk)
	}

	if f.Has(cpu.TierAVX2) {
		t.Adler32 = checksum.Adler32AVX2
		t.slideHash = slideHashAVX2
		t.Chunk = chunk.Engine256
		t.set(cpu.TierAVX2, SlotAdler32, SlotSlideHash, SlotChunk)
		if f.BMI1 {
			t.Compare258 = compare258AVX2
			t.longestMatch = longestMatchAVX2
			t.set(cpu.TierAVX2, SlotCompare258, SlotLongestMatch)
		}
	}

	return t
}

func (t *Funcs) set(tier cpu.Tier, slots ...Slot) {
	for _, s := range slots {
		t.tiers[s] = tier
	}
}

// Tier reports which tier filled s.
func (t *Funcs) Tier(s Slot) cpu.Tier {
	if s < 0 || s >= numSlots {
		return cpu.TierGeneric
	}
	return t.tiers[s]
}

func (t *Funcs) String() string {
	var b strings.Builder
	for s := Slot(0); s < numSlots; s++ {
		if s > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s.String())
		b.WriteByte('=')
		b.WriteString(t.tiers[s].String())
	}
	return b.String()
}

var (
	defaultFuncs     *Funcs
	defaultFuncsOnce sync.Once
)

// DefaultFuncs returns the table for the host, built on first use.
func DefaultFuncs() *Funcs {
	defaultFuncsOnce.Do(func() {
		defaultFuncs = NewFuncs(cpu.X)
	})
	return defaultFuncs
}
