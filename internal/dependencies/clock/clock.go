package clock

import "time"

// Clock provides time operations that can be mocked for testing
type Clock interface {
	Now() time.Time
}

// SystemClock reads the system clock
type SystemClock struct{}

// New creates a new SystemClock
func New() *SystemClock {
	return &SystemClock{}
}

// Now returns the current time in UTC with the monotonic reading stripped,
// so it compares equal to the same instant read back from storage.
func (c *SystemClock) Now() time.Time {
	return time.Now().UTC().Round(0)
}
