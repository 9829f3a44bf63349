package flate

import (
	"github.com/nuclio/errors"
)

const (
	NoCompression      = 0
	BestSpeed          = 1
	BestCompression    = 9
	DefaultCompression = -1
)

const (
	minMatch     = 3
	maxMatch     = 258
	minLookahead = maxMatch + minMatch + 1

	// tooFar is the distance beyond which a match of exactly minMatch bytes
	// is not worth a back-reference.
	tooFar = 4096

	defaultWindowBits   = 15
	defaultHashBits     = 16
	defaultTriggerLevel = 5
)

type strategy int

const (
	strategyQuick strategy = iota
	strategyGreedy
	strategyLazy
)

// Config holds the per-level tuning of the match finder.
type Config struct {
	Level      int
	WindowBits int // log2 of the window size, 9..15
	HashBits   int // log2 of the number of hash buckets, 8..16

	// GoodMatch is the length at which the chain budget is cut to a quarter.
	GoodMatch int
	// LazyMatch stops the lazy evaluation once the previous match is at
	// least this long. The greedy strategy uses it as the longest match
	// whose positions all get indexed.
	LazyMatch int
	// NiceMatch ends the chain walk as soon as a match this long is found.
	NiceMatch int
	// MaxChain is the number of chain links walked per search.
	MaxChain int

	// TriggerLevel separates the fast levels from the thorough ones. Below
	// it, the search stops at the first candidate that does not improve;
	// above it, the low byte of the hashed value is masked out.
	TriggerLevel int
}

type levelParams struct {
	good, lazy, nice, chain int
	strategy                strategy
}

var levels = [...]levelParams{
	1: {4, 4, 8, 4, strategyQuick},
	2: {4, 4, 8, 4, strategyGreedy},
	3: {4, 6, 32, 32, strategyGreedy},
	4: {4, 4, 16, 16, strategyLazy},
	5: {8, 16, 32, 32, strategyLazy},
	6: {8, 16, 128, 128, strategyLazy},
	7: {8, 32, 128, 256, strategyLazy},
	8: {32, 128, 258, 1024, strategyLazy},
	9: {32, 258, 258, 4096, strategyLazy},
}

// ConfigForLevel returns the configuration for a compression level.
// DefaultCompression selects level 6. Levels outside 1..9 are returned as
// is and rejected by Validate.
func ConfigForLevel(level int) Config {
	if level == DefaultCompression {
		level = 6
	}
	c := Config{
		Level:        level,
		WindowBits:   defaultWindowBits,
		HashBits:     defaultHashBits,
		TriggerLevel: defaultTriggerLevel,
	}
	if level >= 1 && level <= BestCompression {
		p := levels[level]
		c.GoodMatch, c.LazyMatch, c.NiceMatch, c.MaxChain = p.good, p.lazy, p.nice, p.chain
	}
	return c
}

// Validate reports whether c can drive a compressor.
func (c Config) Validate() error {
	if c.Level < BestSpeed || c.Level > BestCompression {
		return errors.Errorf("Invalid compression level %d: want value in range [1, 9]", c.Level)
	}
	if c.WindowBits < 9 || c.WindowBits > 15 {
		return errors.Errorf("Invalid window bits %d: want value in range [9, 15]", c.WindowBits)
	}
	if c.HashBits < 8 || c.HashBits > 16 {
		return errors.Errorf("Invalid hash bits %d: want value in range [8, 16]", c.HashBits)
	}
	if c.MaxChain < 1 {
		return errors.New("Chain length must be positive")
	}
	if c.NiceMatch < minMatch || c.NiceMatch > maxMatch {
		return errors.Errorf("Invalid nice match %d: want value in range [3, 258]", c.NiceMatch)
	}
	return nil
}

func (c Config) strategy() strategy {
	return levels[c.Level].strategy
}

// levelMask is applied to the four loaded bytes before hashing. Above the
// trigger level only the top three bytes take part.
func (c Config) levelMask() uint32 {
	if c.Level > c.TriggerLevel {
		return 0xffffff00
	}
	return 0xffffffff
}
