package body

import "github.com/Nico59000/Ternary-image-codec/internal/gf27"

// scramblerState runs the affine mod-3 recurrence st <- (a*st + b) mod 3
// and re-digitizes one symbol per Next call.
type scramblerState struct {
	a, b, st uint8
}

func newScramblerState(a, b, s0 uint8) *scramblerState {
	return &scramblerState{a: a % 3, b: b % 3, st: s0 % 3}
}

// next adds the current state to each of sym's three digits mod 3,
// then advances the state.
func (s *scramblerState) next(sym gf27.Elem) gf27.Elem {
	v := uint8(sym)
	d0, d1, d2 := v%3, (v/3)%3, (v/9)%3
	d0 = (d0 + s.st) % 3
	d1 = (d1 + s.st) % 3
	d2 = (d2 + s.st) % 3
	s.st = (s.a*s.st + s.b) % 3
	return gf27.Elem(d0 + 3*d1 + 9*d2)
}

// prev subtracts the current state from each digit, the inverse of
// next, and advances the state identically so caller and Scramble stay
// in lockstep symbol-for-symbol.
func (s *scramblerState) prev(sym gf27.Elem) gf27.Elem {
	v := uint8(sym)
	d0, d1, d2 := v%3, (v/3)%3, (v/9)%3
	d0 = (d0 + 3 - s.st) % 3
	d1 = (d1 + 3 - s.st) % 3
	d2 = (d2 + 3 - s.st) % 3
	s.st = (s.a*s.st + s.b) % 3
	return gf27.Elem(d0 + 3*d1 + 9*d2)
}

// Scramble applies the affine mod-3 scrambler to a symbol stream,
// seeded from the header's ScramblerSeedA/B/S0.
func Scramble(symbols []gf27.Elem, a, b, s0 uint8) []gf27.Elem {
	st := newScramblerState(a, b, s0)
	out := make([]gf27.Elem, len(symbols))
	for i, s := range symbols {
		out[i] = st.next(s)
	}
	return out
}

// Descramble inverts Scramble.
func Descramble(symbols []gf27.Elem, a, b, s0 uint8) []gf27.Elem {
	st := newScramblerState(a, b, s0)
	out := make([]gf27.Elem, len(symbols))
	for i, s := range symbols {
		out[i] = st.prev(s)
	}
	return out
}
