package body

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBeaconValueFormula(t *testing.T) {
	require.EqualValues(t, 0, BeaconValue(0, 0, 0))
	require.EqualValues(t, (1+5*2+15*1)%27, BeaconValue(1, 2, 1))
}

func TestInsertBeaconsOverwritesReservedSlot(t *testing.T) {
	in := seq(9 * 3) // three words
	out := InsertBeacons(in, true, 1, 2, 1, 0, 0)
	val := BeaconValue(1, 0, 0)
	for w := 0; w < 3; w++ {
		require.Equal(t, val, out[w*9+2])
	}
	// non-reserved slots untouched
	require.Equal(t, in[0], out[0])
	require.Equal(t, in[1], out[1])
}

func TestInsertBeaconsDisabledIsNoOp(t *testing.T) {
	in := seq(18)
	out := InsertBeacons(in, false, 1, 2, 1, 0, 0)
	require.Equal(t, in, out)
}

func TestExtractBeaconsMatchesInserted(t *testing.T) {
	in := seq(9 * 5)
	out := InsertBeacons(in, true, 2, 3, 2, 4, 1)
	got := ExtractBeacons(out, true, 2, 3)
	val := BeaconValue(2, 4, 1)
	for _, v := range got {
		require.Equal(t, val, v)
	}
	require.NotEmpty(t, got)
}
