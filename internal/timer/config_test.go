package timer_test

import (
	"testing"
	"time"

	"github.com/restic/countdown/internal/errors"
	rtest "github.com/restic/countdown/internal/test"
	"github.com/restic/countdown/internal/timer"
)

func TestConfigValidate(t *testing.T) {
	for _, test := range []struct {
		cfg   timer.Config
		valid bool
	}{
		{timer.Config{Direction: timer.Forward, Start: 0, End: 0}, true},
		{timer.Config{Direction: timer.Forward, Start: 0, End: 3}, true},
		{timer.Config{Direction: timer.Forward, Start: 5, End: 2}, false},
		{timer.Config{Direction: timer.Reverse, Start: 300, End: 0}, true},
		{timer.Config{Direction: timer.Reverse, Start: 0, End: 0}, true},
		{timer.Config{Direction: timer.Reverse, Start: 0, End: 300}, false},
	} {
		err := test.cfg.Validate()
		if test.valid {
			rtest.OK(t, err)
			continue
		}

		rtest.Assert(t, errors.Is(err, timer.ErrInvalidRange), "%v: expected ErrInvalidRange, got %v", test.cfg, err)
	}
}

func TestRangeErrorMessage(t *testing.T) {
	err := timer.Config{Direction: timer.Reverse, Start: 1, End: 2}.Validate()
	rtest.Equals(t, "when counting in reverse, start (1) must not be less than end (2)", err.Error())

	err = timer.Config{Direction: timer.Forward, Start: 5, End: 2}.Validate()
	rtest.Equals(t, "when counting forward, start (5) must not be greater than end (2)", err.Error())
}

func TestDirectionSet(t *testing.T) {
	for _, test := range []struct {
		in   string
		want timer.Direction
	}{
		{"forward", timer.Forward},
		{"up", timer.Forward},
		{"Reverse", timer.Reverse},
		{" down ", timer.Reverse},
	} {
		var d timer.Direction
		rtest.OK(t, d.Set(test.in))
		rtest.Equals(t, test.want, d)
	}

	var d timer.Direction
	rtest.Assert(t, d.Set("sideways") != nil, "expected error for invalid direction")
}

func TestDirectionText(t *testing.T) {
	text, err := timer.Reverse.MarshalText()
	rtest.OK(t, err)
	rtest.Equals(t, "reverse", string(text))

	var d timer.Direction
	rtest.OK(t, d.UnmarshalText(text))
	rtest.Equals(t, timer.Reverse, d)
}

func TestConfigString(t *testing.T) {
	cfg := timer.Config{Direction: timer.Reverse, Start: 300, End: 0, Interval: 200 * time.Millisecond}
	rtest.Equals(t, "<Config reverse 300..0 every 200ms>", cfg.String())
}
