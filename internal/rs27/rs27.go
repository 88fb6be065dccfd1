// Package rs27 implements systematic Reed-Solomon encoding and decoding
// over GF(27), RS(26, k) for k in {24, 22, 20, 18}.
package rs27

import (
	"fmt"

	"github.com/Nico59000/Ternary-image-codec/internal/gf27"
)

// N is the fixed codeword length.
const N = 26

// ErrUncorrectable is returned when the error count exceeds floor(r/2)
// or the Forney step finds a zero denominator.
var ErrUncorrectable = fmt.Errorf("rs27: uncorrectable")

// ErrBadLength is returned when a data or codeword slice has the wrong
// length for the codec's (n, k).
var ErrBadLength = fmt.Errorf("rs27: bad length")

// Codec is an RS(26, k) encoder/decoder bound to one set of GF(27)
// tables. Constructed once and safe for concurrent read-only use.
type Codec struct {
	gf *gf27.Tables
	k  int
	r  int
	t  int
	// gen holds the generator polynomial coefficients, low-to-high
	// degree, length r+1.
	gen []gf27.Elem
}

// New builds an RS(26, k) codec. k must be one of {24, 22, 20, 18}.
func New(gf *gf27.Tables, k int) (*Codec, error) {
	if k <= 0 || k >= N {
		return nil, fmt.Errorf("rs27: invalid k=%d: %w", k, ErrBadLength)
	}
	r := N - k
	c := &Codec{
		gf:  gf,
		k:   k,
		r:   r,
		t:   r / 2,
		gen: buildGenerator(gf, r),
	}
	return c, nil
}

// K returns the codec's data symbol count.
func (c *Codec) K() int { return c.k }

// R returns the codec's parity symbol count (N - K).
func (c *Codec) R() int { return c.r }

// T returns the codec's guaranteed correction capacity floor(r/2).
func (c *Codec) T() int { return c.t }

// buildGenerator computes g(x) = prod_{i=1..r} (x - alpha^i), as
// coefficients low-to-high degree, length r+1.
func buildGenerator(gf *gf27.Tables, r int) []gf27.Elem {
	g := []gf27.Elem{1}
	for i := 1; i <= r; i++ {
		root := gf.PowAlpha(i)
		negRoot := gf27.Sub(0, root)
		next := make([]gf27.Elem, len(g)+1)
		for idx, c := range g {
			next[idx] = gf27.Add(next[idx], gf.Mul(c, negRoot))
			next[idx+1] = gf27.Add(next[idx+1], c)
		}
		g = next
	}
	return g
}

// Encode systematically encodes k data symbols into an n-symbol
// codeword: the low r symbols hold parity, the high k symbols are the
// data unchanged (codeword[r:] == data).
func (c *Codec) Encode(data []gf27.Elem) ([]gf27.Elem, error) {
	if len(data) != c.k {
		return nil, fmt.Errorf("rs27: encode: got %d symbols, want %d: %w", len(data), c.k, ErrBadLength)
	}
	msg := make([]gf27.Elem, c.r+c.k)
	copy(msg[c.r:], data)

	rem := make([]gf27.Elem, len(msg))
	copy(rem, msg)
	for i := len(rem) - 1; i >= c.r; i-- {
		coef := rem[i]
		if coef == 0 {
			continue
		}
		shift := i - c.r
		for j, gc := range c.gen {
			rem[shift+j] = gf27.Sub(rem[shift+j], c.gf.Mul(coef, gc))
		}
	}

	codeword := make([]gf27.Elem, len(msg))
	for i := range codeword {
		if i < c.r {
			codeword[i] = gf27.Sub(msg[i], rem[i])
		} else {
			codeword[i] = msg[i]
		}
	}
	return codeword, nil
}

// evaluate computes poly(x) via Horner's method; poly is low-to-high.
func (c *Codec) evaluate(poly []gf27.Elem, x gf27.Elem) gf27.Elem {
	var result gf27.Elem
	for i := len(poly) - 1; i >= 0; i-- {
		result = gf27.Add(c.gf.Mul(result, x), poly[i])
	}
	return result
}

// syndromes computes S_j = sum_i codeword[i] * alpha^((j+1)*i), j=0..r-1.
func (c *Codec) syndromes(codeword []gf27.Elem) []gf27.Elem {
	s := make([]gf27.Elem, c.r)
	for j := 0; j < c.r; j++ {
		var acc gf27.Elem
		for i, ci := range codeword {
			if ci == 0 {
				continue
			}
			acc = gf27.Add(acc, c.gf.Mul(ci, c.gf.PowAlpha((j+1)*i)))
		}
		s[j] = acc
	}
	return s
}

func allZero(v []gf27.Elem) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// berlekampMassey computes the error locator polynomial sigma(x) from
// the syndromes, returning its coefficients low-to-high and its degree L.
func (c *Codec) berlekampMassey(s []gf27.Elem) ([]gf27.Elem, int) {
	r := c.r
	C := make([]gf27.Elem, r+1)
	B := make([]gf27.Elem, r+1)
	C[0], B[0] = 1, 1
	L := 0
	m := 1
	b := gf27.Elem(1)

	for n := 0; n < r; n++ {
		delta := s[n]
		for i := 1; i <= L; i++ {
			delta = gf27.Add(delta, c.gf.Mul(C[i], s[n-i]))
		}
		if delta == 0 {
			m++
			continue
		}
		coef := c.gf.Mul(delta, c.gf.Inv(b))
		T := make([]gf27.Elem, len(C))
		copy(T, C)
		for i := range B {
			if m+i < len(C) {
				C[m+i] = gf27.Sub(C[m+i], c.gf.Mul(coef, B[i]))
			}
		}
		if 2*L <= n {
			L = n + 1 - L
			B = T
			b = delta
			m = 1
		} else {
			m++
		}
	}
	return C[:L+1], L
}

// chienSearch finds the error positions: pos in [0, N) such that
// sigma(alpha^-pos) == 0.
func (c *Codec) chienSearch(sigma []gf27.Elem) []int {
	var positions []int
	for pos := 0; pos < N; pos++ {
		x := c.gf.PowAlpha(-pos)
		if c.evaluate(sigma, x) == 0 {
			positions = append(positions, pos)
		}
	}
	return positions
}

// polyMul multiplies two low-to-high polynomials.
func (c *Codec) polyMul(a, b []gf27.Elem) []gf27.Elem {
	out := make([]gf27.Elem, len(a)+len(b)-1)
	for i, ca := range a {
		if ca == 0 {
			continue
		}
		for j, cb := range b {
			if cb == 0 {
				continue
			}
			out[i+j] = gf27.Add(out[i+j], c.gf.Mul(ca, cb))
		}
	}
	return out
}

// formalDerivative computes the classical formal derivative of sigma
// over a characteristic-3 field: d/dx sum_i c_i x^i = sum_i i*c_i x^(i-1).
// Since the field has characteristic 3, terms with i == 0 (mod 3)
// vanish; i == 1 (mod 3) preserves the coefficient; i == 2 (mod 3)
// doubles it (adds the coefficient to itself, digit-wise mod 3).
func formalDerivative(sigma []gf27.Elem) []gf27.Elem {
	if len(sigma) == 0 {
		return nil
	}
	out := make([]gf27.Elem, len(sigma)-1)
	for i, c := range sigma {
		if i == 0 {
			continue
		}
		switch i % 3 {
		case 0:
			continue
		case 1:
			out[i-1] = gf27.Add(out[i-1], c)
		case 2:
			out[i-1] = gf27.Add(out[i-1], gf27.Add(c, c))
		}
	}
	return out
}

// Decode corrects up to t errors in an n-symbol codeword and returns the
// k data symbols. It does not mutate codeword. If more than t errors are
// present, or the Forney step hits a zero denominator, it returns
// ErrUncorrectable and the input is left untouched.
func (c *Codec) Decode(codeword []gf27.Elem) ([]gf27.Elem, error) {
	if len(codeword) != N {
		return nil, fmt.Errorf("rs27: decode: got %d symbols, want %d: %w", len(codeword), N, ErrBadLength)
	}

	s := c.syndromes(codeword)
	if allZero(s) {
		data := make([]gf27.Elem, c.k)
		copy(data, codeword[c.r:])
		return data, nil
	}

	sigma, L := c.berlekampMassey(s)
	if L > c.t {
		return nil, ErrUncorrectable
	}

	positions := c.chienSearch(sigma)
	if len(positions) != L {
		return nil, ErrUncorrectable
	}

	omegaFull := c.polyMul(s, sigma)
	omega := omegaFull
	if len(omega) > c.r {
		omega = omega[:c.r]
	}
	sigmaPrime := formalDerivative(sigma)

	corrected := make([]gf27.Elem, N)
	copy(corrected, codeword)
	for _, pos := range positions {
		xInv := c.gf.PowAlpha(-pos)
		omegaVal := c.evaluate(omega, xInv)
		sigPrimeVal := c.evaluate(sigmaPrime, xInv)
		if sigPrimeVal == 0 {
			return nil, ErrUncorrectable
		}
		mag := c.gf.Mul(omegaVal, c.gf.Inv(sigPrimeVal))
		corrected[pos] = gf27.Add(corrected[pos], mag)
	}

	if !allZero(c.syndromes(corrected)) {
		return nil, ErrUncorrectable
	}

	data := make([]gf27.Elem, c.k)
	copy(data, corrected[c.r:])
	return data, nil
}
