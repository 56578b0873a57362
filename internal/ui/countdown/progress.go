// Package countdown renders the state of a timer.Engine for the countdown
// command, either as a status line or as JSON messages.
package countdown

import (
	"strconv"
	"time"

	"github.com/restic/countdown/internal/options"
	"github.com/restic/countdown/internal/timer"
	"github.com/restic/countdown/internal/ui"
)

// ProgressPrinter shows what the engine does. Event is meant to be passed to
// timer.New as the observer.
type ProgressPrinter interface {
	// Event reports a single engine transition.
	Event(ev timer.Event)
	// Show prints the current state as a regular message, even when the
	// status line is not visible.
	Show(st timer.Status)
	// Finish removes the status and prints a summary.
	Finish(st timer.Status, elapsed time.Duration)
}

// ControlsHint lists the control commands accepted on stdin.
const ControlsHint = "[p]ause [r]esume [s]tart [x] reset [q]uit"

// Options control how the counter value is rendered.
type Options struct {
	// Clock renders the value as a HH:MM:SS time of day, otherwise the
	// plain number of seconds is shown.
	Clock bool `option:"clock" help:"show the value as HH:MM:SS time of day, or as plain seconds if false (default: true)"`
	// FPS limits status redraws per second, zero or less disables the limit.
	FPS int `option:"fps" help:"maximum number of status updates per second (default: 10 on terminals, $COUNTDOWN_PROGRESS_FPS)"`
	// Controls adds ControlsHint to the status.
	Controls bool
}

func init() {
	options.Register("display", Options{})
}

// FormatValue renders a counter value according to opts.
func (opts Options) FormatValue(v int64) string {
	if opts.Clock {
		return ui.FormatClock(v)
	}
	return strconv.FormatInt(v, 10)
}

// stateLabel describes a stopped engine, running engines have no label.
func stateLabel(state timer.State, reason timer.StopReason) string {
	if state == timer.Running {
		return ""
	}

	switch reason {
	case timer.ReasonPaused:
		return "paused"
	case timer.ReasonBoundary:
		return "done"
	case timer.ReasonInvalidRange:
		return "halted"
	default:
		return "stopped"
	}
}
