package stopwatch

import "time"

// Clock returns the current instant. Instants only need to be comparable
// with each other, so readings that carry a monotonic component are preferred.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

// Now returns the current local time including its monotonic reading.
func (SystemClock) Now() time.Time {
	return time.Now()
}
