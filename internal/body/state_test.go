package body

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrameMachineHappyPath(t *testing.T) {
	m := NewFrameMachine()
	require.Equal(t, Idle, m.State())
	require.NoError(t, m.HeaderAccepted())
	require.Equal(t, HeaderOk, m.State())
	require.NoError(t, m.BodyAccepted())
	require.Equal(t, BodyDecoded, m.State())
	require.NoError(t, m.Emit())
	require.Equal(t, Emitted, m.State())
}

func TestFrameMachineRejectsOutOfOrderTransitions(t *testing.T) {
	m := NewFrameMachine()
	require.ErrorIs(t, m.BodyAccepted(), ErrBadTransition)
	require.ErrorIs(t, m.Emit(), ErrBadTransition)
}

func TestFrameMachineFailIsTerminal(t *testing.T) {
	m := NewFrameMachine()
	require.NoError(t, m.HeaderAccepted())
	failed := m.Fail(errors.New("band RS exceeded t"))
	require.Equal(t, HeaderOk, failed.At)
	require.Equal(t, HeaderOk, m.State())
}
