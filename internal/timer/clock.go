package timer

import "time"

// Timer is a pending call scheduled by a Clock.
type Timer interface {
	// Stop prevents the call from firing. It returns false if the call has
	// already fired or was stopped before.
	Stop() bool
}

// Clock schedules the engine's ticks. Tests substitute a FakeClock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

// SystemClock is the Clock backed by the time package.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (systemClock) Now() time.Time {
	return time.Now()
}
