// Package timer implements a count-up/count-down engine driven by a single
// repeating tick. The engine owns the counter; user interfaces read it and
// call the control operations Start, Pause, Resume and Reset.
package timer

import (
	"sync"
	"time"

	"github.com/restic/countdown/internal/debug"
	"github.com/restic/countdown/internal/feature"
)

// State is either Stopped or Running.
type State uint

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// StopReason records why the engine last left the Running state.
type StopReason uint

const (
	ReasonNone StopReason = iota
	ReasonPaused
	ReasonBoundary
	ReasonInvalidRange
	ReasonReset
)

func (r StopReason) String() string {
	switch r {
	case ReasonPaused:
		return "paused"
	case ReasonBoundary:
		return "boundary"
	case ReasonInvalidRange:
		return "invalid-range"
	case ReasonReset:
		return "reset"
	default:
		return "none"
	}
}

// EventKind identifies an Event.
type EventKind uint

const (
	EventStarted EventKind = iota
	EventResumed
	EventTick
	EventStopped
	EventDiagnostic
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventResumed:
		return "resumed"
	case EventTick:
		return "tick"
	case EventStopped:
		return "stopped"
	case EventDiagnostic:
		return "diagnostic"
	default:
		return "unknown"
	}
}

// Event describes one transition of the engine. Value is the counter after
// the transition.
type Event struct {
	Kind   EventKind
	Value  int64
	Reason StopReason
	Err    error
}

// Observer receives events. Calls are serialised and happen in transition
// order, but not necessarily on the goroutine that caused the transition.
// An Observer may call back into the Engine.
type Observer func(Event)

// Status is a consistent snapshot of the engine.
type Status struct {
	Value  int64
	State  State
	Reason StopReason
	Err    error
}

// Engine counts from Config.Start towards Config.End, one step per tick.
// All methods are safe for concurrent use.
type Engine struct {
	cfg      Config
	clock    Clock
	observer Observer

	// stop in the tick that reaches the end, otherwise one tick later
	stopOnReach bool

	m       sync.Mutex
	current int64
	tick    *tick
	reason  StopReason
	err     error

	// pending events and whether a goroutine is currently delivering them
	pending    []Event
	delivering bool
}

// tick is the handle of the active repeating tick. A fired callback whose
// handle is no longer Engine.tick has been cancelled and does nothing.
type tick struct {
	timer Timer
	next  time.Time
}

// New returns a stopped engine with its counter at cfg.Start. The range is
// not validated here, an invalid range halts the engine on its first tick.
// A nil clock selects SystemClock, a nil observer discards all events. The
// feature flag stop-on-boundary-tick is read once, here.
func New(cfg Config, clock Clock, observer Observer) *Engine {
	if cfg.Interval <= 0 {
		debug.Log("interval %v is not positive, using %v", cfg.Interval, DefaultInterval)
		cfg.Interval = DefaultInterval
	}
	if clock == nil {
		clock = SystemClock
	}

	return &Engine{
		cfg:         cfg,
		clock:       clock,
		observer:    observer,
		stopOnReach: feature.Flag.Enabled(feature.StopOnBoundaryTick),
		current:     cfg.Start,
	}
}

// Config returns the configuration the engine was created with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Start cancels any active tick and schedules a new one. Calling Start
// repeatedly leaves exactly one tick active.
func (e *Engine) Start() {
	e.run(EventStarted)
}

// Resume continues counting from the current value. It behaves exactly
// like Start, so calling it on a running engine does not add a second tick.
func (e *Engine) Resume() {
	e.run(EventResumed)
}

func (e *Engine) run(kind EventKind) {
	e.m.Lock()
	e.cancel()
	e.reason = ReasonNone
	e.err = nil
	e.schedule()
	debug.Log("%v at %d, %v", kind, e.current, e.cfg)

	e.emit(Event{Kind: kind, Value: e.current})
}

// Pause cancels the active tick. It is a no-op on a stopped engine.
func (e *Engine) Pause() {
	e.m.Lock()
	if e.tick == nil {
		e.m.Unlock()
		return
	}

	e.halt(ReasonPaused)
	debug.Log("paused at %d", e.current)

	e.emit(Event{Kind: EventStopped, Value: e.current, Reason: ReasonPaused})
}

// Reset cancels the active tick and restores the counter to Config.Start.
func (e *Engine) Reset() {
	e.m.Lock()
	e.halt(ReasonReset)
	e.current = e.cfg.Start
	e.err = nil
	debug.Log("reset to %d", e.current)

	e.emit(Event{Kind: EventStopped, Value: e.current, Reason: ReasonReset})
}

// CurrentValue returns the counter.
func (e *Engine) CurrentValue() int64 {
	e.m.Lock()
	defer e.m.Unlock()

	return e.current
}

// State returns Running while a tick is scheduled.
func (e *Engine) State() State {
	e.m.Lock()
	defer e.m.Unlock()

	return e.state()
}

// StopReason returns why the engine last stopped, or ReasonNone while it is
// running or has never run.
func (e *Engine) StopReason() StopReason {
	e.m.Lock()
	defer e.m.Unlock()

	return e.reason
}

// Err returns the *RangeError which halted the engine, if any. It is
// cleared by Start, Resume and Reset.
func (e *Engine) Err() error {
	e.m.Lock()
	defer e.m.Unlock()

	return e.err
}

// Status returns a snapshot of the engine.
func (e *Engine) Status() Status {
	e.m.Lock()
	defer e.m.Unlock()

	return Status{
		Value:  e.current,
		State:  e.state(),
		Reason: e.reason,
		Err:    e.err,
	}
}

func (e *Engine) state() State {
	if e.tick != nil {
		return Running
	}
	return Stopped
}

// schedule arms a new repeating tick. e.m must be held and no tick may be
// active.
func (e *Engine) schedule() {
	t := &tick{next: e.clock.Now().Add(e.cfg.Interval)}
	e.tick = t
	t.timer = e.clock.AfterFunc(e.cfg.Interval, func() { e.fire(t) })
}

// cancel stops the active tick, if any. e.m must be held.
func (e *Engine) cancel() {
	if e.tick == nil {
		return
	}

	e.tick.timer.Stop()
	e.tick = nil
}

// halt leaves the Running state. e.m must be held.
func (e *Engine) halt(reason StopReason) {
	e.cancel()
	e.reason = reason
}

func (e *Engine) fire(t *tick) {
	e.m.Lock()
	if e.tick != t {
		// cancelled while the callback was waiting for the lock
		e.m.Unlock()
		return
	}

	events := e.advance()

	if e.tick == t {
		// A late tick is not made up for, the next one is simply due one
		// interval after now.
		now := e.clock.Now()
		t.next = t.next.Add(e.cfg.Interval)
		if !t.next.After(now) {
			t.next = now.Add(e.cfg.Interval)
		}
		t.timer = e.clock.AfterFunc(t.next.Sub(now), func() { e.fire(t) })
	}

	e.emit(events...)
}

// advance runs a single tick: it either halts the engine or moves the
// counter one step towards the end. e.m must be held.
func (e *Engine) advance() []Event {
	if err := e.cfg.Validate(); err != nil {
		debug.Log("halting at %d: %v", e.current, err)
		e.err = err
		e.halt(ReasonInvalidRange)
		return []Event{
			{Kind: EventDiagnostic, Value: e.current, Err: err},
			{Kind: EventStopped, Value: e.current, Reason: ReasonInvalidRange, Err: err},
		}
	}

	if e.current == e.cfg.End {
		debug.Log("already at end %d", e.current)
		e.halt(ReasonBoundary)
		return []Event{{Kind: EventStopped, Value: e.current, Reason: ReasonBoundary}}
	}

	e.current += e.cfg.step()
	events := []Event{{Kind: EventTick, Value: e.current}}

	if e.current == e.cfg.End && e.stopOnReach {
		debug.Log("reached end %d", e.current)
		e.halt(ReasonBoundary)
		events = append(events, Event{Kind: EventStopped, Value: e.current, Reason: ReasonBoundary})
	}

	return events
}

// emit queues events, releases e.m and delivers everything queued unless
// another goroutine is already doing so. e.m must be held on entry.
func (e *Engine) emit(events ...Event) {
	if e.observer == nil {
		e.m.Unlock()
		return
	}

	e.pending = append(e.pending, events...)
	if e.delivering {
		e.m.Unlock()
		return
	}
	e.delivering = true

	for {
		batch := e.pending
		e.pending = nil
		if len(batch) == 0 {
			e.delivering = false
			e.m.Unlock()
			return
		}
		e.m.Unlock()

		for _, ev := range batch {
			e.observer(ev)
		}

		e.m.Lock()
	}
}
