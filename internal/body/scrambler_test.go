package body

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScrambleDescrambleRoundTrip(t *testing.T) {
	in := seq(50)
	out := Scramble(in, 1, 1, 2)
	back := Descramble(out, 1, 1, 2)
	require.Equal(t, in, back)
}

func TestScrambleChangesData(t *testing.T) {
	in := seq(10)
	out := Scramble(in, 1, 1, 1)
	require.NotEqual(t, in, out)
}

func TestScrambleZeroStateIsIdentity(t *testing.T) {
	in := seq(10)
	out := Scramble(in, 0, 0, 0)
	require.Equal(t, in, out)
}
