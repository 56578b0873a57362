// Package global holds the options shared by all countdown commands.
package global

import (
	"os"

	"github.com/spf13/pflag"

	"github.com/restic/countdown/internal/config"
	"github.com/restic/countdown/internal/debug"
	"github.com/restic/countdown/internal/errors"
	"github.com/restic/countdown/internal/options"
)

// Version is overwritten at link time for release builds.
var Version = "0.1.0-dev (compiled manually)"

// Options hold all global options of the countdown command.
type Options struct {
	Quiet      bool
	Verbose    int
	JSON       bool
	ConfigFile string
	Options    []string

	// verbosity is set as follows:
	//  0 means: only print errors, used with --quiet
	//  1 is the default: print essential messages
	//  2 means: report every start, pause and reset, used with --verbose
	//  3 means: print debug messages, used with --verbose=2
	verbosity uint

	extended options.Options
}

func (opts *Options) AddFlags(f *pflag.FlagSet) {
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "do not output the timer value or the summary, only warnings and errors")
	// use empty parameter name as `-v, --verbose n` instead of the correct `--verbose=n` is confusing
	f.CountVarP(&opts.Verbose, "verbose", "v", "be verbose (specify multiple times or a level using --verbose=n``, max level/times is 2)")
	f.BoolVar(&opts.JSON, "json", false, "set output mode to JSON for commands that support it")
	f.StringVar(&opts.ConfigFile, "config", "", "read timer presets from `file` (default: $COUNTDOWN_CONFIG)")
	f.StringSliceVarP(&opts.Options, "option", "o", []string{}, "set extended option (`key=value`, can be specified multiple times)")

	opts.ConfigFile = os.Getenv("COUNTDOWN_CONFIG")
}

// PreRun checks the flags and parses the extended options. It must be
// called before Verbosity or ApplyExtended.
func (opts *Options) PreRun() error {
	if opts.Quiet && opts.Verbose > 0 {
		return errors.Fatal("--quiet and --verbose cannot be specified at the same time")
	}

	opts.verbosity = 1
	switch {
	case opts.Verbose >= 2:
		opts.verbosity = 3
	case opts.Verbose > 0:
		opts.verbosity = 2
	case opts.Quiet:
		opts.verbosity = 0
	}

	extended, err := options.Parse(opts.Options)
	if err != nil {
		return err
	}
	opts.extended = extended

	debug.Log("verbosity %d, extended options %v", opts.verbosity, opts.extended)
	return nil
}

// Verbosity returns the message level selected by --quiet and --verbose.
func (opts *Options) Verbosity() uint {
	return opts.verbosity
}

// ApplyExtended sets the fields of dst from the extended options in
// namespace ns.
func (opts *Options) ApplyExtended(ns string, dst interface{}) error {
	return opts.extended.Extract(ns).Apply(ns, dst)
}

// LoadPresets reads the presets file. Without a file, the result contains
// no presets.
func (opts *Options) LoadPresets() (*config.Presets, error) {
	if opts.ConfigFile == "" {
		return config.Parse(nil)
	}

	debug.Log("loading presets from %v", opts.ConfigFile)
	return config.Load(opts.ConfigFile)
}
