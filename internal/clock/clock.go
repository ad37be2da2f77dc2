// Package clock abstracts wall-clock access so that time-gated behavior
// (the Sunday automation gate, week-boundary math) is testable without
// manipulating real time.
package clock

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// System is the real wall clock.
type System struct{}

// Now returns time.Now().
func (System) Now() time.Time { return time.Now() }

// Fixed is a clock pinned to a single instant; useful in tests and for
// replaying an automation run at a given execution time.
type Fixed struct{ T time.Time }

// Now returns the pinned instant.
func (f Fixed) Now() time.Time { return f.T }
