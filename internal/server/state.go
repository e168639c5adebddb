package server

import "sync/atomic"

// State is a lifecycle stage of an engine.
type State uint32

const (
	StateInitializing State = iota
	StateListening
	StateShuttingDown
	StateTerminated
	// StateAborted is the error path out of initialization, entered when
	// binding the listening socket fails.
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateListening:
		return "listening"
	case StateShuttingDown:
		return "shutting_down"
	case StateTerminated:
		return "terminated"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Lifecycle tracks the engine state machine:
//
//	initializing -> listening -> shutting_down -> terminated
//	initializing -> aborted
//
// No state allows re-entry to listening. The zero value starts at
// initializing.
type Lifecycle struct {
	state atomic.Uint32
}

func (l *Lifecycle) Current() State {
	return State(l.state.Load())
}

// To attempts the transition and reports whether it was legal. Illegal
// transitions leave the state untouched.
func (l *Lifecycle) To(next State) bool {
	for {
		current := l.Current()
		if !allowed(current, next) {
			return false
		}

		if l.state.CompareAndSwap(uint32(current), uint32(next)) {
			return true
		}
	}
}

func allowed(from, to State) bool {
	switch from {
	case StateInitializing:
		return to == StateListening || to == StateAborted
	case StateListening:
		return to == StateShuttingDown
	case StateShuttingDown:
		return to == StateTerminated
	default:
		return false
	}
}
