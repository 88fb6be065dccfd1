// Package trit implements the balanced/unbalanced trit algebra and the
// base-243 byte packing used at the container boundary.
package trit

import "fmt"

// Balanced is a trit in {-1, 0, +1}.
type Balanced int8

// Unbalanced is a trit in {0, 1, 2}.
type Unbalanced uint8

// ToUnbalanced converts a balanced trit to its unbalanced form, clamping
// out-of-range input defensively.
func (b Balanced) ToUnbalanced() Unbalanced {
	v := b
	switch {
	case v < -1:
		v = -1
	case v > 1:
		v = 1
	}
	return Unbalanced(v + 1)
}

// ToBalanced converts an unbalanced trit to its balanced form, clamping
// out-of-range input defensively.
func (u Unbalanced) ToBalanced() Balanced {
	v := u
	if v > 2 {
		v = 2
	}
	return Balanced(int8(v) - 1)
}

// BalancedToUnbalanced converts a slice, value by value.
func BalancedToUnbalanced(v []Balanced) []Unbalanced {
	out := make([]Unbalanced, len(v))
	for i, b := range v {
		out[i] = b.ToUnbalanced()
	}
	return out
}

// UnbalancedToBalanced converts a slice, value by value.
func UnbalancedToBalanced(v []Unbalanced) []Balanced {
	out := make([]Balanced, len(v))
	for i, u := range v {
		out[i] = u.ToBalanced()
	}
	return out
}

// ErrTritOutOfRange is returned when an unbalanced trit digit is >= 3.
var ErrTritOutOfRange = fmt.Errorf("trit digit out of range")

const groupSize = 5

// pow3 holds 3^0 .. 3^4.
var pow3 = [groupSize]int{1, 3, 9, 27, 81}

// Pack243 packs unbalanced trits 5-at-a-time into bytes, each byte's value
// being sum(t_i * 3^i) for i = 0..k-1, k <= 5 (k < 5 only for the final
// byte). The number of input trits is not stored in the output; callers
// must record it (or n mod 5) themselves to call Unpack243 correctly.
func Pack243(trits []Unbalanced) ([]byte, error) {
	n := len(trits)
	out := make([]byte, (n+groupSize-1)/groupSize)
	for i := range out {
		var v int
		base := i * groupSize
		end := base + groupSize
		if end > n {
			end = n
		}
		for j := base; j < end; j++ {
			t := trits[j]
			if t > 2 {
				return nil, fmt.Errorf("pack243: trit %d: %w", j, ErrTritOutOfRange)
			}
			v += int(t) * pow3[j-base]
		}
		out[i] = byte(v)
	}
	return out, nil
}

// Unpack243 inverts Pack243, reconstructing exactly n trits.
func Unpack243(data []byte, n int) ([]Unbalanced, error) {
	out := make([]Unbalanced, n)
	for i := 0; i < n; i++ {
		byteIdx := i / groupSize
		if byteIdx >= len(data) {
			return nil, fmt.Errorf("unpack243: short input for n=%d", n)
		}
		shift := i % groupSize
		v := int(data[byteIdx])
		out[i] = Unbalanced((v / pow3[shift]) % 3)
	}
	return out, nil
}

// PackedSize returns ceil(n/5), the number of bytes Pack243 produces for
// n input trits.
func PackedSize(n int) int {
	return (n + groupSize - 1) / groupSize
}
