package flate

type blockState int

const (
	needMore      blockState = iota // input exhausted or output full
	blockDone                       // block flushed
	finishStarted                   // final block written, output still pending
	finishDone                      // final block written and drained
)

type flushMode int

const (
	noFlush flushMode = iota
	syncFlush
	finishFlush
)

const (
	pendingSize = 1 << 14
	outputSize  = 1 << 15

	// tokenRoom is the largest number of bytes one token can add to
	// pending.
	tokenRoom = 8
)

// quick is the fastest strategy. It emits fixed-code blocks directly,
// takes the first match the chain head offers and never searches further.
type quick struct {
	s         *state
	bw        bitWriter
	out       []byte // compressed bytes ready for the destination; cap is the output budget
	blockOpen bool
}

func (q *quick) availOut() int {
	return cap(q.out) - len(q.out)
}

// flushPending moves as much of pending as fits into the output buffer.
func (q *quick) flushPending() {
	n := len(q.bw.pending)
	if avail := q.availOut(); n > avail {
		n = avail
	}
	if n == 0 {
		return
	}
	q.out = append(q.out, q.bw.pending[:n]...)
	q.bw.pending = q.bw.pending[:copy(q.bw.pending, q.bw.pending[n:])]
}

func (q *quick) deflateQuick(flush flushMode) blockState {
	s := q.s

	if !q.blockOpen {
		q.bw.startFixedBlock(flush == finishFlush)
		q.blockOpen = true
	}

	for {
		if len(q.bw.pending)+tokenRoom >= pendingSize {
			q.flushPending()
			if len(s.input) == 0 && flush != finishFlush {
				return needMore
			}
		}

		if s.lookahead < minLookahead {
			s.fillWindow()
			if s.lookahead < minLookahead && flush == noFlush {
				q.bw.endBlock(false)
				q.blockOpen = false
				s.blockStart = s.strStart
				q.flushPending()
				return needMore
			}
			if s.lookahead == 0 {
				break
			}
		}

		if s.lookahead >= minMatch {
			head := s.funcs.quickInsertString(s, s.strStart)
			dist := s.strStart - head
			if head > 0 && dist > 0 && dist-1 < s.wSize {
				n := s.funcs.Compare258(s.window[s.strStart:], s.window[head:])
				if n >= minMatch {
					if n > s.lookahead {
						n = s.lookahead
					}
					if n > maxMatch {
						n = maxMatch
					}
					q.bw.writeMatch(n, dist)
					s.lookahead -= n
					s.strStart += n
					if q.availOut() == 0 {
						break
					}
					continue
				}
			}
		}

		q.bw.writeLiteral(s.window[s.strStart])
		s.strStart++
		s.lookahead--
		if q.availOut() == 0 {
			break
		}
	}

	// The final block may only be closed once every byte has been coded.
	if q.availOut() == 0 && (flush != finishFlush || s.lookahead > 0 || len(s.input) > 0) {
		return needMore
	}

	if s.strStart < minMatch-1 {
		s.insert = s.strStart
	} else {
		s.insert = minMatch - 1
	}

	last := flush == finishFlush
	q.bw.endBlock(last)
	q.blockOpen = false
	s.blockStart = s.strStart
	q.flushPending()

	if last {
		if q.availOut() == 0 {
			if len(s.input) == 0 {
				return finishStarted
			}
			return needMore
		}
		return finishDone
	}
	return blockDone
}
