// Copyright 2009 The Go Authors. All rights reserved.
// Copyright (c) 2015 Klaus Post
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flate

import (
	"github.com/andybalholm/press"
)

// NewMatchFinder returns a hash-chain MatchFinder for the given level.
// Levels 1–3 search greedily; levels 4–9 use lazy evaluation. Levels
// outside this range will be replaced with the closest level available.
func NewMatchFinder(level int) press.MatchFinder {
	if level < BestSpeed {
		level = BestSpeed
	}
	if level > BestCompression {
		level = BestCompression
	}
	return newChainFinder(ConfigForLevel(level), DefaultFuncs())
}

// chainFinder runs the greedy or the lazy strategy over a session and
// reports its decisions as press.Match values.
type chainFinder struct {
	s    *state
	lazy bool

	// queued output
	matches   []press.Match
	unmatched int // unmatched bytes to output with the next match
}

func newChainFinder(cfg Config, funcs *Funcs) *chainFinder {
	return &chainFinder{
		s:    newState(cfg, funcs),
		lazy: cfg.strategy() == strategyLazy,
	}
}

func (d *chainFinder) emitLiteral() {
	d.unmatched++
}

func (d *chainFinder) emitMatch(length, dist int) {
	if debugDeflate && (length < minMatch || length > maxMatch || dist < 1 || dist > d.s.wSize) {
		panic("flate: invalid match")
	}
	d.matches = append(d.matches, press.Match{
		Unmatched: d.unmatched,
		Length:    length,
		Distance:  dist,
	})
	d.unmatched = 0
}

func (d *chainFinder) FindMatches(dst []press.Match, src []byte) []press.Match {
	d.matches = dst
	d.s.input = src
	d.deflate(noFlush)
	d.deflate(syncFlush)
	d.s.input = nil
	if d.unmatched > 0 {
		d.matches = append(d.matches, press.Match{
			Unmatched: d.unmatched,
		})
		d.unmatched = 0
	}
	return d.matches
}

func (d *chainFinder) deflate(flush flushMode) {
	if d.lazy {
		d.deflateLazy(flush)
	} else {
		d.deflateGreedy(flush)
	}
}

// fill tops up the lookahead. It reports false when the strategy has to
// wait for more input (or, when flushing, when the input is used up).
func (d *chainFinder) fill(flush flushMode) bool {
	s := d.s
	if s.lookahead >= minLookahead {
		return true
	}
	s.fillWindow()
	if s.lookahead < minLookahead && flush == noFlush {
		return false
	}
	return s.lookahead > 0
}

func (d *chainFinder) finishBlock() {
	s := d.s
	if s.strStart < minMatch-1 {
		s.insert = s.strStart
	} else {
		s.insert = minMatch - 1
	}
	s.blockStart = s.strStart
}

// deflateGreedy takes the longest match at each position without looking
// ahead. Positions inside short matches are all indexed; for longer ones
// only the last is.
func (d *chainFinder) deflateGreedy(flush flushMode) {
	s := d.s
	f := s.funcs
	for {
		if !d.fill(flush) {
			break
		}

		head := 0
		if s.lookahead >= minMatch {
			head = f.insertString(s, s.strStart, 1)
		}
		s.matchLength = 0
		if head != 0 && s.strStart-head <= s.maxDist {
			s.prevLength = minMatch - 1
			s.matchLength = f.longestMatch(s, head)
		}

		if s.matchLength >= minMatch {
			d.emitMatch(s.matchLength, s.strStart-s.matchStart)
			s.lookahead -= s.matchLength

			if s.matchLength <= s.cfg.LazyMatch && s.lookahead >= minMatch {
				s.matchLength-- // the string at strStart is already linked
				s.strStart++
				f.insertString(s, s.strStart, s.matchLength)
				s.strStart += s.matchLength
			} else {
				s.strStart += s.matchLength
				if s.lookahead >= minMatch {
					f.quickInsertString(s, s.strStart+2-minMatch)
				}
			}
			s.matchLength = 0
		} else {
			d.emitLiteral()
			s.strStart++
			s.lookahead--
		}
	}
	if flush != noFlush {
		d.finishBlock()
	}
}

// deflateLazy only takes a match once the match starting at the next
// byte turns out not to be longer.
func (d *chainFinder) deflateLazy(flush flushMode) {
	s := d.s
	f := s.funcs
	for {
		if !d.fill(flush) {
			break
		}

		head := 0
		if s.lookahead >= minMatch {
			head = f.insertString(s, s.strStart, 1)
		}

		s.prevLength = s.matchLength
		s.prevMatch = s.matchStart
		s.matchLength = minMatch - 1

		if head != 0 && s.prevLength < s.cfg.LazyMatch && s.strStart-head <= s.maxDist {
			s.matchLength = f.longestMatch(s, head)
			// A three byte match far away costs more than three literals.
			if s.matchLength == minMatch && s.strStart-s.matchStart > tooFar {
				s.matchLength = minMatch - 1
			}
		}

		if s.prevLength >= minMatch && s.matchLength <= s.prevLength {
			maxInsert := s.strStart + s.lookahead - minMatch
			d.emitMatch(s.prevLength, s.strStart-1-s.prevMatch)

			// strStart-1 and strStart are already linked.
			s.lookahead -= s.prevLength - 1
			movFwd := s.prevLength - 2
			if maxInsert > s.strStart {
				count := movFwd
				if count > maxInsert-s.strStart {
					count = maxInsert - s.strStart
				}
				f.insertString(s, s.strStart+1, count)
			}
			s.prevLength = 0
			s.matchAvail = false
			s.matchLength = minMatch - 1
			s.strStart += movFwd + 1
		} else if s.matchAvail {
			// The previous byte gets no match of its own.
			d.emitLiteral()
			s.strStart++
			s.lookahead--
		} else {
			s.matchAvail = true
			s.strStart++
			s.lookahead--
		}
	}
	if flush != noFlush {
		if s.matchAvail {
			d.emitLiteral()
			s.matchAvail = false
		}
		d.finishBlock()
	}
}

func (d *chainFinder) Reset() {
	d.s.reset()
	d.matches = d.matches[:0]
	d.unmatched = 0
}
