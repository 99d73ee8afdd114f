package clock

import "time"

// Clock abstracts time so countdowns and timestamps are testable
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current wall-clock time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

var _ Clock = (*RealClock)(nil)
