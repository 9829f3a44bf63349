package flate

import (
	"hash/crc32"
	"strings"
	"testing"

	"github.com/andybalholm/press/internal/cpu"
)

func TestDefaultFuncsIsShared(t *testing.T) {
	if DefaultFuncs() != DefaultFuncs() {
		t.Fatal("DefaultFuncs built more than one table")
	}
}

func TestNewFuncsTiers(t *testing.T) {
	for _, tc := range []struct {
		name string
		want map[Slot]cpu.Tier
	}{
		{"generic", map[Slot]cpu.Tier{SlotAdler32: cpu.TierGeneric, SlotCompare258: cpu.TierGeneric, SlotChunk: cpu.TierGeneric}},
		{"unaligned", map[Slot]cpu.Tier{SlotCompare258: cpu.TierUnaligned, SlotInsertString: cpu.TierUnaligned, SlotSlideHash: cpu.TierGeneric}},
		{"sse2", map[Slot]cpu.Tier{SlotAdler32: cpu.TierGeneric, SlotCompare258: cpu.TierUnaligned, SlotSlideHash: cpu.TierSSE, SlotChunk: cpu.TierSSE}},
		{"sse42", map[Slot]cpu.Tier{SlotAdler32: cpu.TierSSE, SlotCRC32: cpu.TierSSE, SlotCompare258: cpu.TierSSE, SlotLongestMatch: cpu.TierSSE}},
		{"avx2", map[Slot]cpu.Tier{SlotAdler32: cpu.TierAVX2, SlotCRC32: cpu.TierSSE, SlotCompare258: cpu.TierAVX2, SlotSlideHash: cpu.TierAVX2, SlotChunk: cpu.TierAVX2}},
		{"neon", map[Slot]cpu.Tier{SlotAdler32: cpu.TierSSE, SlotCompare258: cpu.TierSSE, SlotChunk: cpu.TierSSE}},
	} {
		var f cpu.Features
		for _, fs := range featureSets {
			if fs.name == tc.name {
				f = fs.f
			}
		}
		funcs := NewFuncs(f)
		for slot, want := range tc.want {
			if got := funcs.Tier(slot); got != want {
				t.Errorf("%s: %v filled by %v, want %v", tc.name, slot, got, want)
			}
		}
	}
}

func TestFuncsChunkWidth(t *testing.T) {
	want := map[string]int{"generic": 8, "unaligned": 8, "sse2": 16, "sse42": 16, "avx2": 32, "neon": 16}
	for _, fs := range featureSets {
		if got := NewFuncs(fs.f).Chunk.Width; got != want[fs.name] {
			t.Errorf("%s: chunk width %d, want %d", fs.name, got, want[fs.name])
		}
	}
}

func TestFuncsString(t *testing.T) {
	s := NewFuncs(cpu.Features{}).String()
	if !strings.HasPrefix(s, "adler32=generic crc32=generic") {
		t.Errorf("unexpected description %q", s)
	}
	if strings.Count(s, "=") != int(numSlots) {
		t.Errorf("description %q does not list every slot", s)
	}
}

func TestChecksumSlots(t *testing.T) {
	for _, fs := range featureSets {
		funcs := NewFuncs(fs.f)
		if got := funcs.Adler32(1, []byte("Wikipedia")); got != 0x11E60398 {
			t.Errorf("%s: Adler32(Wikipedia) = %#x", fs.name, got)
		}
		if got := funcs.Adler32(0x1234, nil); got != 1 {
			t.Errorf("%s: Adler32(nil) = %#x, want 1", fs.name, got)
		}
		if got := funcs.CRC32(0x1234, nil); got != 0 {
			t.Errorf("%s: CRC32(nil) = %#x, want 0", fs.name, got)
		}
		data := englishish(5000, 7)
		if got, want := funcs.CRC32(0, data), crc32.ChecksumIEEE(data); got != want {
			t.Errorf("%s: CRC32 = %#x, want %#x", fs.name, got, want)
		}
	}
}

func TestCrossTierCompare(t *testing.T) {
	base := NewFuncs(cpu.Features{})
	a := repetitive(600)
	for _, fs := range featureSets {
		funcs := NewFuncs(fs.f)
		for off := 0; off < 300; off++ {
			for _, n := range []int{0, 1, 7, 8, 9, 15, 16, 17, 31, 32, 33, 257, 258, 300} {
				x, y := a[:n], a[off:]
				if got, want := funcs.Compare258(x, y), base.Compare258(x, y); got != want {
					t.Fatalf("%s: compare(len %d, offset %d) = %d, want %d", fs.name, n, off, got, want)
				}
			}
		}
		for _, n := range []int{0, 1, 15, 16, 17, 31, 32, 33, 5551, 5552, 5553, 20000} {
			data := randomBytes(n, int64(n))
			if got, want := funcs.Adler32(1, data), base.Adler32(1, data); got != want {
				t.Errorf("%s: Adler32 of %d bytes = %#x, want %#x", fs.name, n, got, want)
			}
			if got, want := funcs.CRC32(0, data), base.CRC32(0, data); got != want {
				t.Errorf("%s: CRC32 of %d bytes = %#x, want %#x", fs.name, n, got, want)
			}
		}
	}
}
