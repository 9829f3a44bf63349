package flate

// windowPadding is the slack kept after the two window halves so that
// word-sized loads at the very end of the data stay in bounds.
const windowPadding = maxMatch + 8

// debugDeflate turns on the invariant checks of the match finder.
const debugDeflate = false

// state is one compression session: the sliding window, the hash chains
// over it, and the bookkeeping of the strategy driving them. It is owned by
// a single goroutine.
type state struct {
	funcs *Funcs
	cfg   Config

	window     []byte // 2*wSize + windowPadding bytes
	windowSize int    // 2*wSize
	wSize      int
	wMask      int
	maxDist    int

	// head[h] is the most recent position whose prefix hashes to h.
	// prev[p&wMask] is the previous position with the same hash as p.
	// Position 0 doubles as "no entry".
	head      []uint16
	prev      []uint16
	hashBits  uint
	hashMask  uint32
	levelMask uint32
	insH      uint32

	strStart    int // start of the string to insert
	lookahead   int // number of valid bytes ahead of strStart
	matchStart  int // start of the best match found by longestMatch
	matchLength int
	prevLength  int // best match length at the previous step (lazy)
	prevMatch   int
	matchAvail  bool
	blockStart  int
	insert      int // bytes at the end of the window not yet hashed

	input []byte // data not yet copied into the window
}

func newState(cfg Config, funcs *Funcs) *state {
	wSize := 1 << uint(cfg.WindowBits)
	s := &state{
		funcs:      funcs,
		cfg:        cfg,
		window:     make([]byte, 2*wSize+windowPadding),
		windowSize: 2 * wSize,
		wSize:      wSize,
		wMask:      wSize - 1,
		maxDist:    wSize - minLookahead,
		head:       make([]uint16, 1<<uint(cfg.HashBits)),
		prev:       make([]uint16, wSize),
		hashBits:   uint(cfg.HashBits),
		hashMask:   uint32(1)<<uint(cfg.HashBits) - 1,
		levelMask:  cfg.levelMask(),
	}
	s.reset()
	return s
}

func (s *state) reset() {
	for i := range s.head {
		s.head[i] = 0
	}
	for i := range s.prev {
		s.prev[i] = 0
	}
	for i := range s.window {
		s.window[i] = 0
	}
	s.insH = 0
	s.strStart = 0
	s.lookahead = 0
	s.matchStart = 0
	s.matchLength = minMatch - 1
	s.prevLength = minMatch - 1
	s.prevMatch = 0
	s.matchAvail = false
	s.blockStart = 0
	s.insert = 0
	s.input = nil
}

// fillWindow copies pending input into the window until at least
// minLookahead bytes are available or the input runs out. When strStart
// gets too close to the end of the window, the upper half is moved down and
// the chains are rebased.
func (s *state) fillWindow() {
	for {
		more := s.windowSize - s.lookahead - s.strStart

		if s.strStart >= s.wSize+s.maxDist {
			copy(s.window[:s.wSize], s.window[s.wSize:s.wSize+s.wSize-more])
			s.matchStart -= s.wSize
			if s.matchStart < 0 {
				s.matchStart = 0
			}
			s.strStart -= s.wSize
			s.blockStart -= s.wSize
			if s.insert > s.strStart {
				s.insert = s.strStart
			}
			s.funcs.slideHash(s)
			more += s.wSize
		}
		if len(s.input) == 0 {
			break
		}

		end := s.strStart + s.lookahead
		n := copy(s.window[end:end+more], s.input)
		s.input = s.input[n:]
		s.lookahead += n

		// Hash the tail left over from the previous fill now that the
		// bytes following it are known.
		if s.lookahead+s.insert >= minMatch {
			str := s.strStart - s.insert
			count := s.insert
			if s.lookahead == 1 {
				count--
			}
			if count > 0 {
				s.funcs.insertString(s, str, count)
				s.insert -= count
			}
		}

		if s.lookahead >= minLookahead {
			break
		}
	}
}

// checkChain panics if the chain starting at cur is not strictly
// decreasing or runs past the window.
func (s *state) checkChain(cur int) {
	for steps := 0; cur != 0; steps++ {
		if steps > s.wSize {
			panic("flate: hash chain cycle")
		}
		next := int(s.prev[cur&s.wMask])
		if next >= cur {
			return // link belongs to a newer generation of the slot
		}
		cur = next
	}
}
