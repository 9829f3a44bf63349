// Package cpu detects the vector instruction tiers available on the host.
// The result selects which implementation fills each slot of the
// compressor's dispatch table. It is computed once, at package
// initialization, and never changes afterwards.
package cpu

// Features is the set of hardware capabilities the compressor cares about,
// listed roughly in order of increasing capability.
type Features struct {
	// Unaligned reports whether unaligned word loads are cheap, so that
	// comparing 8 bytes at a time beats comparing them one by one.
	Unaligned bool

	SSE2      bool
	SSSE3     bool
	SSE41     bool
	SSE42     bool
	PCLMULQDQ bool
	AVX2      bool
	BMI1      bool // provides TZCNT

	ASIMD bool // arm64 NEON
}

// A Tier is one implementation level. Higher tiers process wider chunks.
type Tier int

const (
	TierGeneric   Tier = iota // byte-at-a-time, portable
	TierUnaligned             // 64-bit words
	TierSSE                   // 128-bit chunks (SSE2..SSE4.2 or NEON)
	TierAVX2                  // 256-bit chunks
)

var tierNames = [...]string{
	TierGeneric:   "generic",
	TierUnaligned: "unaligned",
	TierSSE:       "sse",
	TierAVX2:      "avx2",
}

func (t Tier) String() string {
	if t < 0 || int(t) >= len(tierNames) {
		return "unknown"
	}
	return tierNames[t]
}

// X holds the features of the machine the program is running on.
var X = Detect()

// Has reports whether the base prerequisites of t are all satisfied.
// Individual slots may require more (the SSE Adler-32 needs SSSE3, for
// example); those checks live next to the slot.
func (f Features) Has(t Tier) bool {
	switch t {
	case TierGeneric:
		return true
	case TierUnaligned:
		return f.Unaligned
	case TierSSE:
		return f.Unaligned && (f.SSE2 || f.ASIMD)
	case TierAVX2:
		return f.Unaligned && f.AVX2
	}
	return false
}

// Best returns the highest tier whose base prerequisites are satisfied.
func (f Features) Best() Tier {
	best := TierGeneric
	for t := TierGeneric; t <= TierAVX2; t++ {
		if f.Has(t) {
			best = t
		}
	}
	return best
}

// Tiers lists every tier f satisfies, lowest first.
func (f Features) Tiers() []Tier {
	var tiers []Tier
	for t := TierGeneric; t <= TierAVX2; t++ {
		if f.Has(t) {
			tiers = append(tiers, t)
		}
	}
	return tiers
}

// Limit returns a copy of f with every capability above t cleared.
// It is used to build dispatch tables for lower tiers in tests and
// benchmarks.
func (f Features) Limit(t Tier) Features {
	if t < TierAVX2 {
		f.AVX2 = false
		f.BMI1 = false
	}
	if t < TierSSE {
		f.SSE2, f.SSSE3, f.SSE41, f.SSE42, f.PCLMULQDQ = false, false, false, false, false
		f.ASIMD = false
	}
	if t < TierUnaligned {
		f.Unaligned = false
	}
	return f
}
