package countdown

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/restic/countdown/internal/timer"
	"github.com/restic/countdown/internal/ui"
	"github.com/restic/countdown/internal/ui/progress"
)

type textPrinter struct {
	progress.Printer

	term      ui.Terminal
	verbosity uint
	opts      Options
	limiter   *rate.Limiter

	m     sync.Mutex
	ticks uint64
}

// NewTextProgress returns a printer which keeps the counter in the status
// lines of term. Messages are shown according to verbosity.
func NewTextProgress(term ui.Terminal, verbosity uint, opts Options) ProgressPrinter {
	limit := rate.Inf
	if opts.FPS > 0 {
		limit = rate.Limit(opts.FPS)
	}

	return &textPrinter{
		Printer:   progress.NewTerminalPrinter(term, verbosity),
		term:      term,
		verbosity: verbosity,
		opts:      opts,
		limiter:   rate.NewLimiter(limit, 1),
	}
}

// setStatus shows the counter, unless output is quiet.
func (p *textPrinter) setStatus(value int64, state timer.State, reason timer.StopReason) {
	if p.verbosity == 0 {
		return
	}
	p.term.SetStatus(p.status(value, state, reason))
}

func (p *textPrinter) status(value int64, state timer.State, reason timer.StopReason) []string {
	line := p.opts.FormatValue(value)
	if label := stateLabel(state, reason); label != "" {
		line += " (" + label + ")"
	}

	lines := []string{line}
	if p.opts.Controls {
		lines = append(lines, ControlsHint)
	}
	return lines
}

func (p *textPrinter) Event(ev timer.Event) {
	switch ev.Kind {
	case timer.EventStarted:
		p.V("started at %s", p.opts.FormatValue(ev.Value))
		p.setStatus(ev.Value, timer.Running, timer.ReasonNone)

	case timer.EventResumed:
		p.V("resumed at %s", p.opts.FormatValue(ev.Value))
		p.setStatus(ev.Value, timer.Running, timer.ReasonNone)

	case timer.EventTick:
		p.m.Lock()
		p.ticks++
		p.m.Unlock()

		// skipped redraws are fine, the next tick or stop shows the value
		if p.limiter.Allow() {
			p.setStatus(ev.Value, timer.Running, timer.ReasonNone)
		}

	case timer.EventStopped:
		p.setStatus(ev.Value, timer.Stopped, ev.Reason)

		value := p.opts.FormatValue(ev.Value)
		switch ev.Reason {
		case timer.ReasonBoundary:
			p.P("reached %s", value)
		case timer.ReasonPaused:
			p.V("paused at %s", value)
		case timer.ReasonReset:
			p.V("reset to %s", value)
		case timer.ReasonInvalidRange:
			p.V("halted at %s", value)
		}

	case timer.EventDiagnostic:
		p.E("Warning: %v", ev.Err)
	}
}

func (p *textPrinter) Show(st timer.Status) {
	line := p.opts.FormatValue(st.Value)
	if label := stateLabel(st.State, st.Reason); label != "" {
		line += " (" + label + ")"
	}
	p.term.Print(line)
}

func (p *textPrinter) Finish(st timer.Status, elapsed time.Duration) {
	if p.verbosity > 0 {
		p.term.SetStatus(nil)
	}

	p.m.Lock()
	ticks := p.ticks
	p.m.Unlock()

	summary := fmt.Sprintf("Summary: %s after %d ticks in %s",
		p.opts.FormatValue(st.Value), ticks, ui.FormatDuration(elapsed))
	if label := stateLabel(st.State, st.Reason); label != "" {
		summary += ", " + label
	}
	p.P("%s", summary)
}
