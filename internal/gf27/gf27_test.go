package gf27

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFindsPrimitiveOfOrder26(t *testing.T) {
	tbl, err := New()
	require.NoError(t, err)
	require.GreaterOrEqual(t, tbl.Alpha(), Elem(2))
	require.Equal(t, Order, order(tbl.Alpha()))
}

func TestExpLogRoundTrip(t *testing.T) {
	tbl, err := New()
	require.NoError(t, err)
	for e := 0; e < Order; e++ {
		elem := tbl.PowAlpha(e)
		logv, ok := tbl.Log(elem)
		require.True(t, ok)
		require.Equal(t, e, logv)
	}
}

func TestMulMatchesPolynomialProduct(t *testing.T) {
	tbl, err := New()
	require.NoError(t, err)
	for a := Elem(0); a < Size; a++ {
		for b := Elem(0); b < Size; b++ {
			got := tbl.Mul(a, b)
			want := polyMulMod(a, b)
			require.Equalf(t, want, got, "a=%d b=%d", a, b)
		}
	}
}

func TestAddSubInverse(t *testing.T) {
	for a := Elem(0); a < Size; a++ {
		for b := Elem(0); b < Size; b++ {
			require.Equal(t, a, Sub(Add(a, b), b))
		}
	}
}

func TestInvIsMultiplicativeInverse(t *testing.T) {
	tbl, err := New()
	require.NoError(t, err)
	for a := Elem(1); a < Size; a++ {
		inv := tbl.Inv(a)
		require.Equal(t, Elem(1), tbl.Mul(a, inv))
	}
}

func TestInvZeroIsSentinel(t *testing.T) {
	tbl, err := New()
	require.NoError(t, err)
	require.Equal(t, Elem(0), tbl.Inv(0))
}

func TestAllNonzeroElementsAreDistinctPowers(t *testing.T) {
	tbl, err := New()
	require.NoError(t, err)
	seen := make(map[Elem]bool)
	for e := 0; e < Order; e++ {
		v := tbl.PowAlpha(e)
		require.False(t, seen[v], "duplicate power at e=%d", e)
		seen[v] = true
	}
	require.Len(t, seen, Order)
}
