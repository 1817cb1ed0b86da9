package stopwatch

import "time"

// State represents the current StopWatch mode.
type State string

const (
	StateStopped State = "stopped"
	StateStarted State = "started"
	StatePaused  State = "paused"
)

// EventType defines the type of StopWatch event.
type EventType string

const (
	// EventStateChange is sent after every successful transition.
	EventStateChange EventType = "state_change"
	// EventDisplay is sent whenever the display text is recomputed.
	EventDisplay EventType = "display"
)

// Event represents a StopWatch update for observers.
type Event struct {
	Type    EventType
	State   State
	Elapsed time.Duration
	Text    string
	At      time.Time
}
