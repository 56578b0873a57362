package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/restic/countdown/internal/errors"
	rtest "github.com/restic/countdown/internal/test"
	"github.com/restic/countdown/internal/timer"
)

// testState returns a state reading stdin and recording all output.
func testState(t *testing.T, stdin string) (*state, *bytes.Buffer, *bytes.Buffer) {
	t.Setenv("COUNTDOWN_CONFIG", "")
	t.Setenv("COUNTDOWN_PROGRESS_FPS", "")

	var stdout, stderr bytes.Buffer
	return &state{
		stdin:  io.NopCloser(strings.NewReader(stdin)),
		stdout: &stdout,
		stderr: &stderr,
	}, &stdout, &stderr
}

func runCommand(s *state, args ...string) error {
	cmd := newRootCommand(s)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func TestExitCode(t *testing.T) {
	rangeErr := timer.Config{Direction: timer.Reverse, Start: 0, End: 300}.Validate()

	for _, test := range []struct {
		err  error
		code int
		msg  string
	}{
		{nil, 0, ""},
		{errors.Wrap(rangeErr, "timer halted"), 3, "Warning: timer halted: when counting in reverse, start (0) must not be less than end (300)"},
		{errors.Fatal("preset \"tea\" not found"), 1, "Fatal: preset \"tea\" not found"},
		{errors.Fatalf("invalid configuration: %v", rangeErr), 1, "Fatal: invalid configuration: when counting in reverse, start (0) must not be less than end (300)"},
		{context.Canceled, 130, "interrupted"},
		{errors.Wrap(context.Canceled, "run"), 130, "interrupted"},
	} {
		rtest.Equals(t, test.code, exitCode(test.err), fmt.Sprintf("error %v", test.err))
		rtest.Equals(t, test.msg, exitMessage(test.err))
	}

	err := errors.New("something broke")
	rtest.Equals(t, 1, exitCode(err))
	rtest.Assert(t, strings.HasPrefix(exitMessage(err), "something broke\n"), "expected stack trace, got %q", exitMessage(err))
}

func TestPrintExitError(t *testing.T) {
	s, _, stderr := testState(t, "")
	printExitError(s, 3, "Warning: halted")
	rtest.Equals(t, "Warning: halted\n", stderr.String())

	stderr.Reset()
	s.gopts.JSON = true
	printExitError(s, 3, "Warning: halted")
	rtest.Equals(t, "{\"message_type\":\"exit_error\",\"code\":3,\"message\":\"Warning: halted\"}\n", stderr.String())
}

func TestQuietAndVerboseConflict(t *testing.T) {
	s, _, _ := testState(t, "")
	err := runCommand(s, "version", "-q", "-v")
	rtest.Assert(t, errors.IsFatal(err), "expected fatal error, got %v", err)
}

func TestVersion(t *testing.T) {
	s, stdout, _ := testState(t, "")
	rtest.OK(t, runCommand(s, "version"))
	rtest.Assert(t, strings.HasPrefix(stdout.String(), "countdown "), "unexpected output %q", stdout.String())

	s, stdout, _ = testState(t, "")
	rtest.OK(t, runCommand(s, "version", "--json"))
	rtest.Assert(t, strings.HasPrefix(stdout.String(), "{\"message_type\":\"version\""), "unexpected output %q", stdout.String())
}

func TestFeaturesCommand(t *testing.T) {
	s, stdout, _ := testState(t, "")
	rtest.OK(t, runCommand(s, "features"))

	out := stdout.String()
	rtest.Assert(t, strings.HasPrefix(out, "All Feature Flags:\n"), "unexpected output %q", out)
	rtest.Assert(t, strings.Contains(out, "eager-range-validation  alpha"), "missing feature in %q", out)
	rtest.Assert(t, strings.Contains(out, "stop-on-boundary-tick   beta"), "missing feature in %q", out)
}

func TestOptionsCommand(t *testing.T) {
	s, stdout, _ := testState(t, "")
	rtest.OK(t, runCommand(s, "options"))

	out := stdout.String()
	rtest.Assert(t, strings.Contains(out, "  display.clock  show the value as HH:MM:SS"), "missing option in %q", out)
	rtest.Assert(t, strings.Contains(out, "  display.fps    maximum number"), "missing option in %q", out)
}
