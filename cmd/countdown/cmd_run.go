package main

import (
	"bufio"
	"context"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/restic/countdown/internal/debug"
	"github.com/restic/countdown/internal/errors"
	"github.com/restic/countdown/internal/feature"
	"github.com/restic/countdown/internal/timer"
	"github.com/restic/countdown/internal/ui/countdown"
	"github.com/restic/countdown/internal/ui/signals"
	"github.com/restic/countdown/internal/ui/termstatus"
)

func newRunCommand(s *state) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run [flags]",
		Short: "Run a timer",
		Long: `
The "run" command starts a timer and shows its value until it reaches the
end value. The value is shown as a time of day (HH:MM:SS) unless the option
display.clock=false is set.

While the timer runs, the following commands are read from standard input,
one per line:

  p, pause    stop counting
  r, resume   continue counting from the current value
  s, start    (re)start counting from the current value
  x, reset    stop and go back to the start value
  q, quit     exit

With controls enabled, countdown keeps running after the timer stopped
until "quit" is entered or standard input is closed. Sending SIGUSR1 (or
SIGINFO) prints the current value.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error.
Exit status is 3 if the timer halted because start and end do not fit the direction.
Exit status is 130 if the command was interrupted.
`,
		GroupID:           cmdGroupDefault,
		DisableAutoGenTag: true,
		Args:              cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTimer(cmd.Context(), opts, cmd.Flags(), s)
		},
	}

	opts.AddFlags(cmd.Flags())
	return cmd
}

type runOptions struct {
	timerOptions
	NoControls bool
}

func (opts *runOptions) AddFlags(f *pflag.FlagSet) {
	opts.timerOptions.AddFlags(f)
	f.BoolVar(&opts.NoControls, "no-controls", false, "do not read control commands from stdin")
}

// control is a command read from stdin.
type control int

const (
	controlPause control = iota
	controlResume
	controlStart
	controlReset
	controlQuit
)

func parseControl(s string) (control, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "p", "pause":
		return controlPause, nil
	case "r", "resume":
		return controlResume, nil
	case "s", "start":
		return controlStart, nil
	case "x", "reset":
		return controlReset, nil
	case "q", "quit":
		return controlQuit, nil
	default:
		return 0, errors.Errorf("unknown command %q, use one of %s", strings.TrimSpace(s), countdown.ControlsHint)
	}
}

// readControls sends every non-empty line of rd to ch and closes ch on EOF.
// It cannot be interrupted while blocked in Read, so it is not part of the
// error group.
func readControls(rd io.Reader, ch chan<- string) {
	defer close(ch)

	sc := bufio.NewScanner(rd)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			ch <- line
		}
	}
	if err := sc.Err(); err != nil {
		debug.Log("reading controls failed: %v", err)
	}
}

// displayOptions collects the display settings. -o display.* wins over
// $COUNTDOWN_PROGRESS_FPS, which wins over the defaults.
func displayOptions(s *state, term *termstatus.Terminal) (countdown.Options, error) {
	opts := countdown.Options{Clock: true}
	if term.CanUpdateStatus() {
		opts.FPS = 10
	}

	if fps, err := strconv.Atoi(os.Getenv("COUNTDOWN_PROGRESS_FPS")); err == nil && fps > 0 {
		opts.FPS = fps
	}

	if err := s.gopts.ApplyExtended("display", &opts); err != nil {
		return countdown.Options{}, err
	}
	return opts, nil
}

func runTimer(ctx context.Context, opts runOptions, flags *pflag.FlagSet, s *state) error {
	presets, err := s.gopts.LoadPresets()
	if err != nil {
		return err
	}

	cfg, err := opts.resolve(flags, presets)
	if err != nil {
		return err
	}

	if feature.Flag.Enabled(feature.EagerRangeValidation) {
		if err := cfg.Validate(); err != nil {
			return errors.Fatalf("invalid configuration: %v", err)
		}
	}

	term, done := setupTermstatus(s)
	defer done()

	display, err := displayOptions(s, term)
	if err != nil {
		return err
	}
	controls := !opts.NoControls
	display.Controls = controls && term.InputIsTerminal()

	var printer countdown.ProgressPrinter
	if s.gopts.JSON {
		printer = countdown.NewJSONProgress(term, s.gopts.Verbosity(), display)
	} else {
		printer = countdown.NewTextProgress(term, s.gopts.Verbosity(), display)
	}

	// halted is signalled whenever the engine stops on its own
	halted := make(chan struct{}, 1)
	observer := func(ev timer.Event) {
		printer.Event(ev)
		if ev.Kind == timer.EventStopped && (ev.Reason == timer.ReasonBoundary || ev.Reason == timer.ReasonInvalidRange) {
			select {
			case halted <- struct{}{}:
			default:
			}
		}
	}

	engine := timer.New(cfg, timer.SystemClock, observer)
	started := timer.SystemClock.Now()
	debug.Log("running %v", engine.Config())
	engine.Start()

	var commands chan string
	if controls {
		commands = make(chan string)
		go readControls(term.Input(), commands)
	}

	ctx, cancel := context.WithCancel(ctx)
	wg, wgCtx := errgroup.WithContext(ctx)

	wg.Go(func() error {
		progressCh := signals.GetProgressChannel()
		for {
			select {
			case <-wgCtx.Done():
				return nil
			case <-progressCh:
				printer.Show(engine.Status())
			}
		}
	})

	wg.Go(func() error {
		defer cancel()
		return controlLoop(wgCtx, engine, commands, halted, printer)
	})

	err = wg.Wait()

	// unmount: a timer still running when countdown exits is paused
	engine.Pause()
	st := engine.Status()
	printer.Finish(st, timer.SystemClock.Now().Sub(started))

	if err != nil {
		return err
	}
	if st.Reason == timer.ReasonInvalidRange {
		return errors.Wrap(st.Err, "timer halted")
	}
	return nil
}

// controlLoop applies commands to engine until the user quits, or until the
// engine stopped on its own while no more commands can arrive.
func controlLoop(ctx context.Context, engine *timer.Engine, commands <-chan string, halted <-chan struct{}, printer countdown.ProgressPrinter) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-halted:
			if commands == nil {
				return nil
			}
			debug.Log("timer halted, waiting for commands")

		case line, ok := <-commands:
			if !ok {
				debug.Log("end of control input")
				commands = nil
				if engine.State() == timer.Stopped {
					return nil
				}
				continue
			}

			c, err := parseControl(line)
			if err != nil {
				printer.Event(timer.Event{Kind: timer.EventDiagnostic, Value: engine.CurrentValue(), Err: err})
				continue
			}

			switch c {
			case controlPause:
				engine.Pause()
			case controlResume:
				engine.Resume()
			case controlStart:
				engine.Start()
			case controlReset:
				engine.Reset()
			case controlQuit:
				return nil
			}
		}
	}
}
