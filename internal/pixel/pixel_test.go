package pixel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPairPackingRoundTrip(t *testing.T) {
	cases := map[string]struct {
		a, b Quantized
	}{
		"black/white":   {Quantized{0, 0, 0}, Quantized{242, 40, -40}},
		"mid range":     {Quantized{121, -20, 20}, Quantized{60, 0, 0}},
		"out of range":  {Quantized{76, 85, -21}, Quantized{150, -43, 21}}, // chroma saturates to [-40, 40]
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			w := PackPair(tc.a, tc.b)
			require.EqualValues(t, 0, w[26])
			gotA, gotB := UnpackPair(w)
			require.Equal(t, tc.a.Clamp(), gotA)
			require.Equal(t, tc.b.Clamp(), gotB)
		})
	}
}

func TestSingletonPackingRoundTrip(t *testing.T) {
	cases := map[string]Quantized{
		"black": {0, 0, 0},
		"white": {242, 40, -40},
		"mid":   {128, -15, 33},
	}
	for name, q := range cases {
		t.Run(name, func(t *testing.T) {
			w := PackSingleton(q)
			for i := 13; i < 27; i++ {
				require.EqualValues(t, 0, w[i])
			}
			got := UnpackSingleton(w)
			require.Equal(t, q.Clamp(), got)
		})
	}
}

func TestClampSaturates(t *testing.T) {
	q := Quantized{Y: 300, Cb: -100, Cr: 100}.Clamp()
	require.Equal(t, Quantized{Y: 242, Cb: -40, Cr: 40}, q)
}
