package body

import (
	"testing"

	"github.com/Nico59000/Ternary-image-codec/internal/gf27"
	"github.com/stretchr/testify/require"
)

func seq(n int) []gf27.Elem {
	out := make([]gf27.Elem, n)
	for i := range out {
		out[i] = gf27.Elem(i % 27)
	}
	return out
}

func TestBoustrophedonExactTiles(t *testing.T) {
	in := seq(2 * 3 * 4) // two 3x4 tiles
	out := Interleave2D(in, 3, 4)
	require.Len(t, out, len(in))

	// First tile (symbols 0..11), row-major fill, boustrophedon scan:
	// row0 L2R: 0,1,2 ; row1 R2L: 5,4,3 ; row2 L2R: 6,7,8 ; row3 R2L: 11,10,9
	want := []gf27.Elem{0, 1, 2, 5, 4, 3, 6, 7, 8, 11, 10, 9}
	require.Equal(t, want, out[:12])
}

func TestBoustrophedonRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 5, 12, 24, 37, 100} {
		in := seq(n)
		out := Interleave2D(in, 3, 4)
		back := Deinterleave2D(out, 3, 4)
		require.Equal(t, in, back, "n=%d", n)
	}
}

func TestBoustrophedonPartialFinalTile(t *testing.T) {
	in := seq(12 + 5) // one full 3x4 tile, one partial tile of 5 cells
	out := Interleave2D(in, 3, 4)
	require.Len(t, out, len(in))
	back := Deinterleave2D(out, 3, 4)
	require.Equal(t, in, back)
}
