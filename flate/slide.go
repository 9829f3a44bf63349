package flate

// The slide functions rebase both chain tables by wSize after the window
// moved down, clamping positions that fell out of the window to 0.

func slideHashC(s *state) {
	w := uint16(s.wSize)
	slideTable(s.head, w)
	slideTable(s.prev, w)
}

func slideTable(t []uint16, w uint16) {
	for i, v := range t {
		if v >= w {
			t[i] = v - w
		} else {
			t[i] = 0
		}
	}
}

// subs8 is a saturating subtract over eight lanes, the shape of one
// 128-bit psubusw.
func subs8(p *[8]uint16, w uint16) {
	for i, v := range p {
		d := v - w
		if d > v {
			d = 0
		}
		p[i] = d
	}
}

func slideLanes8(t []uint16, w uint16) {
	for len(t) >= 8 {
		subs8((*[8]uint16)(t), w)
		t = t[8:]
	}
	slideTable(t, w)
}

func slideLanes16(t []uint16, w uint16) {
	for len(t) >= 16 {
		subs8((*[8]uint16)(t), w)
		subs8((*[8]uint16)(t[8:]), w)
		t = t[16:]
	}
	slideLanes8(t, w)
}

func slideHashSSE2(s *state) {
	w := uint16(s.wSize)
	slideLanes8(s.head, w)
	slideLanes8(s.prev, w)
}

func slideHashAVX2(s *state) {
	w := uint16(s.wSize)
	slideLanes16(s.head, w)
	slideLanes16(s.prev, w)
}
