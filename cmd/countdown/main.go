package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/restic/countdown/internal/debug"
	"github.com/restic/countdown/internal/errors"
	"github.com/restic/countdown/internal/feature"
	"github.com/restic/countdown/internal/global"
	"github.com/restic/countdown/internal/timer"
)

func init() {
	// don't import `go.uber.org/automaxprocs` to disable the log output
	_, _ = maxprocs.Set()
}

const (
	cmdGroupDefault  = "default"
	cmdGroupAdvanced = "advanced"
)

// state holds the global options and the streams all commands use. Tests
// replace the streams.
type state struct {
	gopts global.Options

	stdin  io.ReadCloser
	stdout io.Writer
	stderr io.Writer
}

func newState() *state {
	return &state{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

func newRootCommand(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "countdown",
		Short: "Count up or down in fixed steps",
		Long: `
countdown counts from a start value to an end value, one step per interval,
and shows the value as a time of day or as a plain number. A running timer
can be paused, resumed, restarted and reset.
`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		DisableAutoGenTag: true,

		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return s.gopts.PreRun()
		},
	}

	cmd.AddGroup(
		&cobra.Group{
			ID:    cmdGroupDefault,
			Title: "Available Commands:",
		},
		&cobra.Group{
			ID:    cmdGroupAdvanced,
			Title: "Advanced Options:",
		},
	)

	s.gopts.AddFlags(cmd.PersistentFlags())
	cmd.SetOut(s.stdout)
	cmd.SetErr(s.stderr)

	// Use our "generate" command instead of the cobra provided "completion" command
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddCommand(
		newCheckCommand(s),
		newFeaturesCommand(s),
		newGenerateCommand(s),
		newOptionsCommand(s),
		newPresetsCommand(s),
		newRunCommand(s),
		newVersionCommand(s),
	)

	global.RegisterProfiling(cmd, s.stderr)

	return cmd
}

// exitCode maps the error returned by a command to the exit status. Fatal
// errors always exit with 1, even if they wrap a range error.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.IsFatal(err):
		return 1
	case errors.Is(err, timer.ErrInvalidRange):
		return 3
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}

// exitMessage formats err for the user. Fatal errors are shown as they are,
// anything else includes the stack trace recorded by pkg/errors.
func exitMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.IsFatal(err):
		return err.Error()
	case errors.Is(err, timer.ErrInvalidRange):
		return fmt.Sprintf("Warning: %v", err)
	case errors.Is(err, context.Canceled):
		return "interrupted"
	default:
		return fmt.Sprintf("%+v", err)
	}
}

func printExitError(s *state, code int, message string) {
	if !s.gopts.JSON {
		_, _ = fmt.Fprintln(s.stderr, message)
		return
	}

	type jsonExitError struct {
		MessageType string `json:"message_type"` // exit_error
		Code        int    `json:"code"`
		Message     string `json:"message"`
	}

	err := json.NewEncoder(s.stderr).Encode(jsonExitError{
		MessageType: "exit_error",
		Code:        code,
		Message:     message,
	})
	if err != nil {
		_, _ = fmt.Fprintf(s.stderr, "JSON encode failed: %v\n", err)
	}
}

func main() {
	err := feature.Flag.Apply(os.Getenv("COUNTDOWN_FEATURES"), func(s string) {
		_, _ = fmt.Fprintln(os.Stderr, s)
	})
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		Exit(1)
	}

	debug.Log("main %#v", os.Args)
	debug.Log("countdown %s compiled with %v on %v/%v",
		global.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)

	s := newState()
	ctx := createGlobalContext(s.stderr)
	err = newRootCommand(s).ExecuteContext(ctx)

	if err == nil {
		err = ctx.Err()
	}

	code := exitCode(err)
	if code != 0 {
		printExitError(s, code, exitMessage(err))
	}
	Exit(code)
}
