// Package clock abstracts the wall clock so request timing can be pinned in tests.
package clock

import "time"

// Clock reports the current time
type Clock interface {
	Now() time.Time
}

// System reads the wall clock
type System struct{}

// New returns the system clock
func New() System {
	return System{}
}

// Now returns the current wall-clock time
func (System) Now() time.Time {
	return time.Now()
}

// Elapsed returns how far c has moved since start
func Elapsed(c Clock, start time.Time) time.Duration {
	return c.Now().Sub(start)
}
