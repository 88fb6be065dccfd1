// Package pixel maps quantized YCbCr pixel triples to Word27 transport
// words and back, under one of two packing policies.
package pixel

import (
	"fmt"

	"github.com/Nico59000/Ternary-image-codec/internal/trit"
)

// Policy selects how pixels map onto Word27 values.
type Policy uint8

const (
	// PairPacking packs two pixels into one Word27: 5 trits of Y, 4
	// trits of Cb+40, 4 trits of Cr+40, repeated for the second pixel,
	// with a final trit left zero. This is the committed default.
	PairPacking Policy = iota
	// SingletonPacking packs one pixel into a 13-trit integer stored
	// in a Word27: Y occupies powers 3^0..3^4, Cb 3^5..3^8, Cr 3^9..3^12.
	SingletonPacking
)

// Quantized is a quantized YCbCr pixel triple.
type Quantized struct {
	Y  int16 // [0, 242]
	Cb int16 // [-40, 40]
	Cr int16 // [-40, 40]
}

// Clamp saturates Y to [0,242] and Cb/Cr to [-40,40].
func (q Quantized) Clamp() Quantized {
	return Quantized{
		Y:  clamp(q.Y, 0, 242),
		Cb: clamp(q.Cb, -40, 40),
		Cr: clamp(q.Cr, -40, 40),
	}
}

func clamp(v, lo, hi int16) int16 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Word27Trits is a Word27 value as 27 unbalanced trits, index 0 first.
type Word27Trits [27]trit.Unbalanced

// ErrBadTritCount is returned when a caller-supplied trit slice has the
// wrong length for the operation.
var ErrBadTritCount = fmt.Errorf("pixel: bad trit count")

func intToTrits(v int, n int) []trit.Unbalanced {
	out := make([]trit.Unbalanced, n)
	for i := 0; i < n; i++ {
		out[i] = trit.Unbalanced(v % 3)
		v /= 3
	}
	return out
}

func tritsToInt(t []trit.Unbalanced) int {
	v := 0
	mul := 1
	for _, d := range t {
		v += int(d) * mul
		mul *= 3
	}
	return v
}

// PackPair packs two quantized pixels into one Word27: 5 trits Y, 4
// trits Cb+40, 4 trits Cr+40, for pixel a then pixel b, with the final
// trit of the word left zero (5+4+4 = 13 per pixel, 26 total, 1 spare).
func PackPair(a, b Quantized) Word27Trits {
	var w Word27Trits
	pos := 0
	for _, p := range [2]Quantized{a.Clamp(), b.Clamp()} {
		copy(w[pos:pos+5], intToTrits(int(p.Y), 5))
		pos += 5
		copy(w[pos:pos+4], intToTrits(int(p.Cb+40), 4))
		pos += 4
		copy(w[pos:pos+4], intToTrits(int(p.Cr+40), 4))
		pos += 4
	}
	w[26] = 0
	return w
}

// UnpackPair inverts PackPair.
func UnpackPair(w Word27Trits) (a, b Quantized) {
	pos := 0
	read := func() Quantized {
		y := tritsToInt(w[pos : pos+5])
		pos += 5
		cb := tritsToInt(w[pos : pos+4])
		pos += 4
		cr := tritsToInt(w[pos : pos+4])
		pos += 4
		return Quantized{Y: int16(y), Cb: int16(cb - 40), Cr: int16(cr - 40)}
	}
	a = read()
	b = read()
	return a, b
}

// PackSingleton packs one quantized pixel into a 13-trit integer stored
// at the low end of a Word27: Y at powers 3^0..3^4, Cb+40 at 3^5..3^8,
// Cr+40 at 3^9..3^12. The remaining 14 trits are zero.
func PackSingleton(p Quantized) Word27Trits {
	p = p.Clamp()
	var w Word27Trits
	copy(w[0:5], intToTrits(int(p.Y), 5))
	copy(w[5:9], intToTrits(int(p.Cb+40), 4))
	copy(w[9:13], intToTrits(int(p.Cr+40), 4))
	return w
}

// UnpackSingleton inverts PackSingleton.
func UnpackSingleton(w Word27Trits) Quantized {
	y := tritsToInt(w[0:5])
	cb := tritsToInt(w[5:9])
	cr := tritsToInt(w[9:13])
	return Quantized{Y: int16(y), Cb: int16(cb - 40), Cr: int16(cr - 40)}
}
