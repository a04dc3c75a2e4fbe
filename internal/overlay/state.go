package overlay

import "github.com/1broseidon/warmscreen/internal/platform"

// ShutdownPhase tracks how far the controller is through shutting down.
type ShutdownPhase int

const (
	// PhaseRunning is normal operation.
	PhaseRunning ShutdownPhase = iota
	// PhaseGraceful means the user closed the last window; the next idle
	// tick finishes the loop.
	PhaseGraceful
	// PhaseTerminal means every window is gone and the loop may stop.
	PhaseTerminal
)

// String returns the string representation of the phase
func (p ShutdownPhase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseGraceful:
		return "graceful"
	case PhaseTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// ControlFlow is what the controller asks of the event loop.
type ControlFlow int

const (
	// FlowWait blocks until the next event.
	FlowWait ControlFlow = iota
	// FlowExit asks the loop to run idle ticks until shutdown completes.
	FlowExit
)

func (f ControlFlow) String() string {
	switch f {
	case FlowWait:
		return "wait"
	case FlowExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Latch is a one-shot flag that keeps a held key from firing its shortcut
// again on auto-repeat. It starts armed.
type Latch struct {
	disarmed bool
}

// Arm re-enables the latch; call on key release.
func (l *Latch) Arm() {
	l.disarmed = false
}

// Consume disarms the latch and reports whether it was armed.
func (l *Latch) Consume() bool {
	if l.disarmed {
		return false
	}
	l.disarmed = true
	return true
}

// WindowRecord is one overlay window the controller owns.
type WindowRecord struct {
	ID         platform.WindowID
	Display    platform.Display
	Fullscreen bool
}
