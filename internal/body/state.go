package body

import "fmt"

// FrameState is a per-frame decode state, advanced strictly forward.
type FrameState uint8

// Frame states, per the body pipeline's decode state machine.
const (
	Idle FrameState = iota
	HeaderOk
	BodyDecoded
	Emitted
)

func (s FrameState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case HeaderOk:
		return "HeaderOk"
	case BodyDecoded:
		return "BodyDecoded"
	case Emitted:
		return "Emitted"
	default:
		return "Unknown"
	}
}

// ErrBadTransition is returned when a frame's state machine is driven
// out of order.
var ErrBadTransition = fmt.Errorf("body: invalid frame state transition")

// FrameMachine tracks one frame's progress through header validation,
// per-band RS decode, and final repacking. An RS failure outside the
// error-correcting bound is terminal: the frame stays wherever it was
// and is never retried within the codec.
type FrameMachine struct {
	state FrameState
}

// NewFrameMachine returns a machine in the Idle state.
func NewFrameMachine() *FrameMachine {
	return &FrameMachine{state: Idle}
}

// State reports the current state.
func (m *FrameMachine) State() FrameState { return m.state }

// HeaderAccepted advances Idle -> HeaderOk.
func (m *FrameMachine) HeaderAccepted() error {
	if m.state != Idle {
		return ErrBadTransition
	}
	m.state = HeaderOk
	return nil
}

// BodyAccepted advances HeaderOk -> BodyDecoded.
func (m *FrameMachine) BodyAccepted() error {
	if m.state != HeaderOk {
		return ErrBadTransition
	}
	m.state = BodyDecoded
	return nil
}

// Emit advances BodyDecoded -> Emitted.
func (m *FrameMachine) Emit() error {
	if m.state != BodyDecoded {
		return ErrBadTransition
	}
	m.state = Emitted
	return nil
}

// FailedFrame records the state a frame had reached when it failed and
// the cause. Building one does not change the machine's state;
// DecodeFrame returns at the first failure and never retries the frame.
type FailedFrame struct {
	At  FrameState
	Err error
}

func (f *FailedFrame) Error() string {
	return fmt.Sprintf("body: frame failed at %s: %v", f.At, f.Err)
}

func (f *FailedFrame) Unwrap() error { return f.Err }

// Fail wraps cause as a terminal FailedFrame anchored at the machine's
// current state.
func (m *FrameMachine) Fail(cause error) *FailedFrame {
	return &FailedFrame{At: m.state, Err: cause}
}
