package timer

import (
	"fmt"
	"strings"
	"time"

	"github.com/restic/countdown/internal/errors"
)

// Direction selects whether the counter increases or decreases per tick.
type Direction uint

const (
	Forward Direction = iota
	Reverse
)

// DefaultInterval is the delay between two ticks when none is configured.
const DefaultInterval = time.Second

// Set implements the method needed for pflag command flag parsing.
func (d *Direction) Set(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forward", "up", "":
		*d = Forward
	case "reverse", "down":
		*d = Reverse
	default:
		return errors.Errorf("invalid direction %q, must be one of (forward|reverse)", s)
	}

	return nil
}

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	default:
		return "invalid"
	}
}

// Type implements pflag.Value.
func (d *Direction) Type() string {
	return "direction"
}

// UnmarshalText allows a Direction to be decoded from configuration files.
func (d *Direction) UnmarshalText(text []byte) error {
	return d.Set(string(text))
}

// MarshalText is the inverse of UnmarshalText.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config is the fixed configuration of an Engine.
type Config struct {
	Direction Direction
	Start     int64
	End       int64
	Interval  time.Duration
}

// ErrInvalidRange is matched by every *RangeError via errors.Is.
var ErrInvalidRange = errors.New("invalid range configuration")

// RangeError describes a start/end pair which can never reach the end by
// stepping in the configured direction.
type RangeError struct {
	Direction Direction
	Start     int64
	End       int64
}

func (e *RangeError) Error() string {
	if e.Direction == Reverse {
		return fmt.Sprintf("when counting in reverse, start (%d) must not be less than end (%d)", e.Start, e.End)
	}
	return fmt.Sprintf("when counting forward, start (%d) must not be greater than end (%d)", e.Start, e.End)
}

// Is makes errors.Is(err, ErrInvalidRange) succeed.
func (e *RangeError) Is(target error) bool {
	return target == ErrInvalidRange
}

// Validate returns a *RangeError if the direction is inconsistent with the
// start/end pair.
func (c Config) Validate() error {
	switch {
	case c.Direction == Reverse && c.Start < c.End,
		c.Direction != Reverse && c.Start > c.End:
		return &RangeError{Direction: c.Direction, Start: c.Start, End: c.End}
	}
	return nil
}

// step returns the amount the counter changes per tick.
func (c Config) step() int64 {
	if c.Direction == Reverse {
		return -1
	}
	return 1
}

func (c Config) String() string {
	return fmt.Sprintf("<Config %v %d..%d every %v>", c.Direction, c.Start, c.End, c.Interval)
}
