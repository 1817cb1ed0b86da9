package stopwatch

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState is matched by every InvalidStateError.
	ErrInvalidState = errors.New("invalid stopwatch state")
	// ErrInvalidFormat indicates a format specifier that cannot be parsed.
	ErrInvalidFormat = errors.New("invalid stopwatch format")
	// ErrInvalidInterval indicates a non-positive tick interval.
	ErrInvalidInterval = errors.New("invalid stopwatch interval")
)

// Reasons carried by InvalidStateError.
const (
	ReasonAlreadyStarted     = "already started"
	ReasonNotStarted         = "not started"
	ReasonNotStartedOrPaused = "not started or paused"
)

// InvalidStateError reports a transition attempted from a state that does not allow it.
type InvalidStateError struct {
	Op     string
	State  State
	Reason string
}

func (err *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s stopwatch: %s", err.Op, err.Reason)
}

// Is reports whether target is ErrInvalidState.
func (err *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}
