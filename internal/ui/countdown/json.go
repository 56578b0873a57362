package countdown

import (
	"sync"
	"time"

	"github.com/restic/countdown/internal/timer"
	"github.com/restic/countdown/internal/ui"
)

type jsonPrinter struct {
	term      ui.Terminal
	verbosity uint
	opts      Options

	m     sync.Mutex
	ticks uint64
}

// NewJSONProgress returns a printer which writes one JSON object per line.
// Start, resume and stop messages are only printed at verbosity 2 and above,
// ticks and diagnostics are always printed.
func NewJSONProgress(term ui.Terminal, verbosity uint, opts Options) ProgressPrinter {
	return &jsonPrinter{
		term:      term,
		verbosity: verbosity,
		opts:      opts,
	}
}

func (p *jsonPrinter) print(status interface{}) {
	p.term.Print(ui.ToJSONString(status))
}

func (p *jsonPrinter) error(status interface{}) {
	p.term.Error(ui.ToJSONString(status))
}

func (p *jsonPrinter) statusUpdate(value int64, state timer.State, reason timer.StopReason) statusUpdate {
	s := statusUpdate{
		MessageType: "status",
		Value:       value,
		Display:     p.opts.FormatValue(value),
		State:       state.String(),
	}
	if state == timer.Stopped && reason != timer.ReasonNone {
		s.Reason = reason.String()
	}
	return s
}

func (p *jsonPrinter) Event(ev timer.Event) {
	switch ev.Kind {
	case timer.EventStarted, timer.EventResumed:
		if p.verbosity >= 2 {
			p.print(action{MessageType: ev.Kind.String(), Value: ev.Value})
		}

	case timer.EventTick:
		p.m.Lock()
		p.ticks++
		p.m.Unlock()
		p.print(p.statusUpdate(ev.Value, timer.Running, timer.ReasonNone))

	case timer.EventStopped:
		p.print(stopped{
			MessageType: "stopped",
			Value:       ev.Value,
			Display:     p.opts.FormatValue(ev.Value),
			Reason:      ev.Reason.String(),
		})

	case timer.EventDiagnostic:
		p.error(diagnostic{
			MessageType: "diagnostic",
			Error:       errorObject{ev.Err.Error()},
			Value:       ev.Value,
		})
	}
}

func (p *jsonPrinter) Show(st timer.Status) {
	p.print(p.statusUpdate(st.Value, st.State, st.Reason))
}

func (p *jsonPrinter) Finish(st timer.Status, elapsed time.Duration) {
	p.m.Lock()
	ticks := p.ticks
	p.m.Unlock()

	s := summaryOutput{
		MessageType:     "summary",
		Value:           st.Value,
		Display:         p.opts.FormatValue(st.Value),
		State:           st.State.String(),
		Ticks:           ticks,
		SecondsElapsed:  uint64(elapsed / time.Second),
		DurationSeconds: elapsed.Seconds(),
	}
	if st.Reason != timer.ReasonNone {
		s.Reason = st.Reason.String()
	}
	p.print(s)
}

type action struct {
	MessageType string `json:"message_type"` // "started" or "resumed"
	Value       int64  `json:"value"`
}

type statusUpdate struct {
	MessageType string `json:"message_type"` // "status"
	Value       int64  `json:"value"`
	Display     string `json:"display"`
	State       string `json:"state"`
	Reason      string `json:"reason,omitempty"`
}

type stopped struct {
	MessageType string `json:"message_type"` // "stopped"
	Value       int64  `json:"value"`
	Display     string `json:"display"`
	Reason      string `json:"reason"`
}

type errorObject struct {
	Message string `json:"message"`
}

type diagnostic struct {
	MessageType string      `json:"message_type"` // "diagnostic"
	Error       errorObject `json:"error"`
	Value       int64       `json:"value"`
}

type summaryOutput struct {
	MessageType     string  `json:"message_type"` // "summary"
	Value           int64   `json:"value"`
	Display         string  `json:"display"`
	State           string  `json:"state"`
	Reason          string  `json:"reason,omitempty"`
	Ticks           uint64  `json:"ticks"`
	SecondsElapsed  uint64  `json:"seconds_elapsed"`
	DurationSeconds float64 `json:"total_duration"`
}
