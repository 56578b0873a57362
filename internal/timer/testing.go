package timer

import (
	"sync"
	"time"
)

// FakeClock is a Clock whose time only moves when Advance is called.
// Scheduled functions run synchronously on the goroutine calling Advance,
// in the order of their due time.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*fakeTimer
}

type fakeTimer struct {
	clock *FakeClock
	when  time.Time
	seq   uint64
	f     func()
	done  bool
}

var _ Clock = &FakeClock{}

// NewFakeClock returns a FakeClock set to now.
func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

// AfterFunc schedules f to run once the clock has been advanced by d.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &fakeTimer{
		clock: c,
		when:  c.now.Add(d),
		seq:   c.seq,
		f:     f,
	}
	c.seq++
	c.timers = append(c.timers, t)

	return t
}

func (t *fakeTimer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	c.remove(t)

	return true
}

// remove drops t from the list of pending timers. c.mu must be held.
func (c *FakeClock) remove(t *fakeTimer) {
	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}

// next returns the earliest timer due at or before deadline. c.mu must be
// held.
func (c *FakeClock) next(deadline time.Time) *fakeTimer {
	var first *fakeTimer
	for _, t := range c.timers {
		if t.when.After(deadline) {
			continue
		}
		if first == nil || t.when.Before(first.when) || (t.when.Equal(first.when) && t.seq < first.seq) {
			first = t
		}
	}
	return first
}

// Advance moves the clock forward by d and runs every function which
// becomes due, including ones scheduled by those functions.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	deadline := c.now.Add(d)

	for {
		t := c.next(deadline)
		if t == nil {
			break
		}

		t.done = true
		c.remove(t)
		c.now = t.when

		c.mu.Unlock()
		t.f()
		c.mu.Lock()
	}

	c.now = deadline
	c.mu.Unlock()
}

// Pending returns the number of scheduled functions which have not run
// and were not stopped.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.timers)
}
