package clock

import "time"

// Clock is the source of wall time for sessions, snapshots and host tokens
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

// System reads the system clock
type System struct{}

// New returns the system clock
func New() System {
	return System{}
}

func (System) Now() time.Time { return time.Now() }

func (System) Since(t time.Time) time.Duration { return time.Since(t) }
