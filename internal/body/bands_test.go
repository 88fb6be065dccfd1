package body

import (
	"testing"

	"github.com/Nico59000/Ternary-image-codec/internal/gf27"
	"github.com/stretchr/testify/require"
)

func TestSplitMergeBandsRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 8, 9, 10, 37} {
		in := seq(n)
		bands := SplitBands(in)
		out := MergeBands(bands, n)
		require.Equal(t, in, out, "n=%d", n)
	}
}

func TestBandUsefulCountsSumToTotal(t *testing.T) {
	for _, n := range []int{0, 1, 9, 25, 100} {
		counts := BandUsefulCounts(n)
		sum := 0
		for _, c := range counts {
			sum += c
		}
		require.Equal(t, n, sum)
	}
}

func TestEncodeDecodeBandsRoundTrip(t *testing.T) {
	gf, err := gf27.New()
	require.NoError(t, err)
	codecs, err := NewCodecs(gf)
	require.NoError(t, err)

	uep := [NumBands]uint8{0, 1, 2, 0, 1, 2, 0, 1, 2}
	useful := seq(200)
	bands := SplitBands(useful)

	encoded, err := EncodeBands(bands, uep, codecs)
	require.NoError(t, err)

	counts := BandUsefulCounts(len(useful))
	decoded, err := DecodeBands(encoded, uep, codecs, counts)
	require.NoError(t, err)

	got := MergeBands(decoded, len(useful))
	require.Equal(t, useful, got)
}

func TestEncodeBandsRejectsBadUEP(t *testing.T) {
	gf, err := gf27.New()
	require.NoError(t, err)
	codecs, err := NewCodecs(gf)
	require.NoError(t, err)

	var uep [NumBands]uint8
	uep[0] = 3
	_, err = EncodeBands(SplitBands(seq(9)), uep, codecs)
	require.ErrorIs(t, err, ErrBadUEP)
}
