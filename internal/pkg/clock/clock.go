// Package clock abstracts wall-clock access so commands that stamp rows can
// be tested with pinned timestamps.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// System returns the real wall clock.
func System() Clock {
	return systemClock{}
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Frozen is a Clock stopped at a fixed instant until moved explicitly.
type Frozen struct {
	now time.Time
}

func Freeze(at time.Time) *Frozen {
	return &Frozen{now: at}
}

func (f *Frozen) Now() time.Time {
	return f.now
}

// Set pins the clock to a new instant.
func (f *Frozen) Set(at time.Time) {
	f.now = at
}

// Advance moves the clock forward by d.
func (f *Frozen) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}
