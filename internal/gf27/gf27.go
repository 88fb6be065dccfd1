// Package gf27 implements arithmetic over GF(27), the finite field with
// 27 elements used by the ternary transport core's Reed-Solomon codec.
//
// An element is identified with three unbalanced trit digits (d0, d1, d2)
// and an integer form d0 + 3*d1 + 9*d2 in [0, 26]. Addition is digit-wise
// mod 3; multiplication reduces polynomial products modulo the fixed
// primitive polynomial p(x) = x^3 + 2x + 1 over GF(3).
package gf27

import "fmt"

// Size is the number of elements in GF(27).
const Size = 27

// Order is the multiplicative order of the field's primitive element.
const Order = Size - 1

// Elem is an element of GF(27), stored in integer form [0, 26].
type Elem uint8

// Tables holds the precomputed log/exp/mul/inv tables for GF(27), built
// once at construction and read-only afterward. A zero-value Tables is
// invalid; use New.
type Tables struct {
	alpha Elem
	exp   [2 * Order]Elem // cyclic, length 3*Order would also work; 2*Order covers all lookups used
	log   [Size]int8      // log[0] is unused (sentinel -1)
	mul   [Size][Size]Elem
	inv   [Size]Elem
}

// ErrNoPrimitive is returned if no element of order 26 exists, which
// would indicate the field construction itself is broken.
var ErrNoPrimitive = fmt.Errorf("gf27: no primitive element of order %d found", Order)

// digits splits an integer-form element into its three base-3 digits.
func digits(e Elem) [3]uint8 {
	v := uint8(e)
	return [3]uint8{v % 3, (v / 3) % 3, (v / 9) % 3}
}

func fromDigits(d [3]uint8) Elem {
	return Elem(d[0] + 3*d[1] + 9*d[2])
}

// polyMulMod multiplies two field elements as degree<=2 polynomials over
// GF(3) and reduces modulo x^3 + 2x + 1. Since p(x) = 0 implies
// x^3 = -2x - 1 = x + 2 (mod 3), and x^4 = x*x^3 = x^2 + 2x.
func polyMulMod(a, b Elem) Elem {
	da, db := digits(a), digits(b)
	// Full product has degree <= 4; coefficients index 0..4.
	var prod [5]uint8
	for i := 0; i < 3; i++ {
		if da[i] == 0 {
			continue
		}
		for j := 0; j < 3; j++ {
			if db[j] == 0 {
				continue
			}
			prod[i+j] = (prod[i+j] + da[i]*db[j]) % 3
		}
	}
	// x^3 -> x + 2, x^4 -> x^2 + 2x.
	c0 := (prod[0] + 2*prod[3]) % 3
	c1 := (prod[1] + prod[3] + 2*prod[4]) % 3
	c2 := (prod[2] + prod[4]) % 3
	return fromDigits([3]uint8{c0, c1, c2})
}

// Add returns a + b in GF(27), digit-wise mod 3.
func Add(a, b Elem) Elem {
	da, db := digits(a), digits(b)
	return fromDigits([3]uint8{
		(da[0] + db[0]) % 3,
		(da[1] + db[1]) % 3,
		(da[2] + db[2]) % 3,
	})
}

// Sub returns a - b in GF(27); characteristic 3 makes this Add(a, Neg(b)).
func Sub(a, b Elem) Elem {
	da, db := digits(a), digits(b)
	return fromDigits([3]uint8{
		(da[0] + 3 - db[0]) % 3,
		(da[1] + 3 - db[1]) % 3,
		(da[2] + 3 - db[2]) % 3,
	})
}

// Neg returns -a in GF(27).
func Neg(a Elem) Elem {
	return Sub(0, a)
}

// New builds the field tables, locating the smallest element of order 26
// (alpha >= 2, since 0 and 1 cannot be primitive) for deterministic
// construction.
func New() (*Tables, error) {
	var t Tables

	alpha, err := findPrimitive()
	if err != nil {
		return nil, err
	}
	t.alpha = alpha

	// Build exp table cyclically: exp[0] = 1, exp[i] = alpha^i.
	acc := Elem(1)
	for i := 0; i < len(t.exp); i++ {
		t.exp[i] = acc
		acc = polyMulMod(acc, alpha)
	}

	for i := range t.log {
		t.log[i] = -1
	}
	for i := 0; i < Order; i++ {
		t.log[t.exp[i]] = int8(i)
	}

	for a := Elem(0); a < Size; a++ {
		for b := Elem(0); b < Size; b++ {
			t.mul[a][b] = mulSlow(&t, a, b)
		}
	}

	for a := Elem(1); a < Size; a++ {
		for b := Elem(1); b < Size; b++ {
			if t.mul[a][b] == 1 {
				t.inv[a] = b
				break
			}
		}
	}
	t.inv[0] = 0 // sentinel; callers must not invert zero.

	return &t, nil
}

func mulSlow(t *Tables, a, b Elem) Elem {
	if a == 0 || b == 0 {
		return 0
	}
	e := (int(t.log[a]) + int(t.log[b])) % Order
	return t.exp[e]
}

func findPrimitive() (Elem, error) {
	for cand := Elem(2); cand < Size; cand++ {
		if order(cand) == Order {
			return cand, nil
		}
	}
	return 0, ErrNoPrimitive
}

func order(a Elem) int {
	acc := a
	for i := 1; i <= Order; i++ {
		if acc == 1 {
			return i
		}
		acc = polyMulMod(acc, a)
	}
	return -1
}

// Alpha returns the primitive element used to build these tables.
func (t *Tables) Alpha() Elem { return t.alpha }

// Mul returns a * b in GF(27).
func (t *Tables) Mul(a, b Elem) Elem { return t.mul[a][b] }

// Inv returns the multiplicative inverse of a. Inv(0) is the sentinel 0;
// callers must not invert zero.
func (t *Tables) Inv(a Elem) Elem { return t.inv[a] }

// Log returns the discrete log of a nonzero element base alpha.
func (t *Tables) Log(a Elem) (int, bool) {
	if a == 0 {
		return 0, false
	}
	return int(t.log[a]), true
}

// PowAlpha returns alpha^e, e taken mod Order (and made non-negative).
func (t *Tables) PowAlpha(e int) Elem {
	m := e % Order
	if m < 0 {
		m += Order
	}
	return t.exp[m]
}
