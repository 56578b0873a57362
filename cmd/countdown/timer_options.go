package main

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/restic/countdown/internal/config"
	"github.com/restic/countdown/internal/debug"
	"github.com/restic/countdown/internal/errors"
	"github.com/restic/countdown/internal/timer"
)

// timerOptions select the timer configuration. Values come from the preset
// first, flags given on the command line override them.
type timerOptions struct {
	Preset    string
	Direction timer.Direction
	Reverse   bool
	Start     int64
	End       int64
	Interval  time.Duration
}

func (opts *timerOptions) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&opts.Preset, "preset", "", "start from the preset `name` in the config file")
	f.Var(&opts.Direction, "direction", "count `direction`, one of (forward|reverse)")
	f.BoolVarP(&opts.Reverse, "reverse", "r", false, "count down, same as --direction reverse")
	f.Int64Var(&opts.Start, "start", 0, "first `value` of the counter")
	f.Int64Var(&opts.End, "end", 0, "`value` at which counting stops")
	f.DurationVar(&opts.Interval, "interval", timer.DefaultInterval, "`duration` between two steps")
}

// resolve combines the preset with the flags set in f.
func (opts *timerOptions) resolve(f *pflag.FlagSet, presets *config.Presets) (timer.Config, error) {
	preset := config.Default()
	if opts.Preset != "" {
		var ok bool
		preset, ok = presets.Lookup(opts.Preset)
		if !ok {
			return timer.Config{}, errors.Fatalf("preset %q not found", opts.Preset)
		}
	}

	cfg := preset.Config()

	if f.Changed("direction") {
		cfg.Direction = opts.Direction
	}
	if opts.Reverse {
		if f.Changed("direction") && opts.Direction != timer.Reverse {
			return timer.Config{}, errors.Fatal("--reverse and --direction forward cannot be specified at the same time")
		}
		cfg.Direction = timer.Reverse
	}
	if f.Changed("start") {
		cfg.Start = opts.Start
	}
	if f.Changed("end") {
		cfg.End = opts.End
	}
	if f.Changed("interval") {
		if opts.Interval <= 0 {
			return timer.Config{}, errors.Fatalf("invalid interval %v, must be positive", opts.Interval)
		}
		cfg.Interval = opts.Interval
	}

	debug.Log("resolved %v from preset %q", cfg, preset.Name)
	return cfg, nil
}
