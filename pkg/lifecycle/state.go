package lifecycle

// State is the process-wide lifecycle state. Transitions only move forward.
type State int32

const (
	StateUninitialized State = iota
	StateStarting
	StateReady
	StateStopping
	StateStopped
)

var stateNames = [...]string{
	StateUninitialized: "uninitialized",
	StateStarting:      "starting",
	StateReady:         "ready",
	StateStopping:      "stopping",
	StateStopped:       "stopped",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// transitions lists every allowed forward move.
// Starting->Stopped is the failed startup path; Uninitialized->Stopped covers
// a stop that arrives before any start.
var transitions = map[State][]State{
	StateUninitialized: {StateStarting, StateStopped},
	StateStarting:      {StateReady, StateStopped},
	StateReady:         {StateStopping},
	StateStopping:      {StateStopped},
}

// CanTransition reports whether moving from s to next is allowed.
func (s State) CanTransition(next State) bool {
	for _, to := range transitions[s] {
		if to == next {
			return true
		}
	}
	return false
}

// HandleState describes the connection state of a single service handle.
type HandleState int32

const (
	HandleUnconnected HandleState = iota
	HandleConnected
	HandleClosed
)

func (s HandleState) String() string {
	switch s {
	case HandleUnconnected:
		return "unconnected"
	case HandleConnected:
		return "connected"
	case HandleClosed:
		return "closed"
	default:
		return "unknown"
	}
}
