// Package signals delivers the signals which ask the countdown command to
// print its current value.
package signals

import (
	"os"
	"sync"
)

// GetProgressChannel returns a channel on which SIGUSR1 (and SIGINFO where
// the platform has it) is delivered. All callers share the same channel, so
// each signal reaches only one listener.
func GetProgressChannel() <-chan os.Signal {
	signals.Do(func() {
		signals.ch = make(chan os.Signal, 1)
		setupSignals(signals.ch)
	})

	return signals.ch
}

var signals struct {
	ch chan os.Signal
	sync.Once
}
