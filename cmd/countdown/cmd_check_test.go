package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/restic/countdown/internal/config"
	"github.com/restic/countdown/internal/errors"
	rtest "github.com/restic/countdown/internal/test"
	"github.com/restic/countdown/internal/timer"
)

func TestCheck(t *testing.T) {
	s, stdout, _ := testState(t, "")
	rtest.OK(t, runCommand(s, "check", "--reverse", "--start", "300"))
	rtest.Equals(t, "configuration <Config reverse 300..0 every 1s> is valid\n", stdout.String())

	s, stdout, _ = testState(t, "")
	err := runCommand(s, "check", "--start", "5", "--end", "2")
	rtest.Assert(t, errors.IsFatal(err), "expected fatal error, got %v", err)
	rtest.Equals(t, "Fatal: invalid configuration <Config forward 5..2 every 1s>: when counting forward, start (5) must not be greater than end (2)", err.Error())
	rtest.Equals(t, 1, exitCode(err))
	rtest.Equals(t, err.Error(), exitMessage(err))
	rtest.Equals(t, "", stdout.String())
}

func TestCheckJSON(t *testing.T) {
	s, stdout, _ := testState(t, "")
	err := runCommand(s, "check", "--json", "--reverse", "--end", "10", "--interval", "250ms")
	rtest.Assert(t, err != nil, "expected error")

	var res checkResult
	rtest.OK(t, json.Unmarshal(stdout.Bytes(), &res))
	rtest.Equals(t, checkResult{
		MessageType: "check",
		Direction:   "reverse",
		Start:       0,
		End:         10,
		Interval:    "250ms",
		Valid:       false,
		Error:       "when counting in reverse, start (0) must not be less than end (10)",
	}, res)
}

func TestResolve(t *testing.T) {
	presets, err := config.Parse([]byte("presets:\n  tea:\n    direction: reverse\n    start: 180\n    interval: 2s\n"))
	rtest.OK(t, err)

	for _, test := range []struct {
		args []string
		want timer.Config
	}{
		{nil, timer.Config{Direction: timer.Forward, Interval: timer.DefaultInterval}},
		{[]string{"--end", "60"}, timer.Config{Direction: timer.Forward, End: 60, Interval: timer.DefaultInterval}},
		{[]string{"-r", "--start", "60"}, timer.Config{Direction: timer.Reverse, Start: 60, Interval: timer.DefaultInterval}},
		{[]string{"--direction", "down", "--interval", "10ms"}, timer.Config{Direction: timer.Reverse, Interval: 10e6}},
		{[]string{"--preset", "tea"}, timer.Config{Direction: timer.Reverse, Start: 180, Interval: 2e9}},
		{[]string{"--preset", "tea", "--direction", "forward", "--start", "0", "--end", "5"}, timer.Config{Direction: timer.Forward, End: 5, Interval: 2e9}},
	} {
		t.Run(strings.Join(test.args, " "), func(t *testing.T) {
			var opts timerOptions
			f := pflag.NewFlagSet("test", pflag.ContinueOnError)
			opts.AddFlags(f)
			rtest.OK(t, f.Parse(test.args))

			cfg, err := opts.resolve(f, presets)
			rtest.OK(t, err)
			rtest.Equals(t, test.want, cfg)
		})
	}
}

func TestResolveInvalid(t *testing.T) {
	for _, args := range [][]string{
		{"--preset", "coffee"},
		{"--reverse", "--direction", "forward"},
		{"--interval", "0s"},
		{"--interval", "-1s"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			var opts timerOptions
			f := pflag.NewFlagSet("test", pflag.ContinueOnError)
			opts.AddFlags(f)
			rtest.OK(t, f.Parse(args))

			_, err := opts.resolve(f, nil)
			rtest.Assert(t, errors.IsFatal(err), "expected fatal error, got %v", err)
		})
	}
}

func TestPresetsCommand(t *testing.T) {
	filename := filepath.Join(rtest.TempDir(t), "presets.yaml")
	rtest.OK(t, os.WriteFile(filename, []byte(`
presets:
  tea:
    direction: reverse
    start: 180
  pomodoro:
    direction: reverse
    start: 1500
    interval: 500ms
`), 0600))

	s, stdout, _ := testState(t, "")
	t.Setenv("COUNTDOWN_CONFIG", filename)
	rtest.OK(t, runCommand(s, "presets"))

	want := `Name      Direction  Start  End  Interval
-----------------------------------------
pomodoro  reverse    1500   0    500ms
tea       reverse    180    0    1s
-----------------------------------------
2 presets
`
	rtest.Equals(t, want, stdout.String())

	s, stdout, _ = testState(t, "")
	rtest.OK(t, runCommand(s, "presets", "--json", "--config", filename))
	rtest.Equals(t, `[{"name":"pomodoro","direction":"reverse","start":1500,"end":0,"interval":"500ms"},{"name":"tea","direction":"reverse","start":180,"end":0,"interval":"1s"}]`+"\n", stdout.String())
}

func TestGenerateStdout(t *testing.T) {
	for _, shell := range []string{"bash", "fish", "zsh", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			s, stdout, _ := testState(t, "")
			rtest.OK(t, runCommand(s, "generate", "--"+shell+"-completion", "-"))
			rtest.Assert(t, strings.Contains(stdout.String(), "# "+shell+" completion for countdown"), "has no expected completion header")
		})
	}

	t.Run("two shells", func(t *testing.T) {
		s, _, _ := testState(t, "")
		err := runCommand(s, "generate", "--bash-completion", "-", "--fish-completion", "-")
		rtest.Assert(t, errors.IsFatal(err), "expected fatal error, got %v", err)
	})

	t.Run("nothing", func(t *testing.T) {
		s, _, _ := testState(t, "")
		err := runCommand(s, "generate")
		rtest.Assert(t, errors.IsFatal(err), "expected fatal error, got %v", err)
	})
}

func TestGenerateVerboseJSON(t *testing.T) {
	s, stdout, _ := testState(t, "")
	rtest.OK(t, runCommand(s, "generate", "-v", "--bash-completion", "-"))
	rtest.Assert(t, strings.HasPrefix(stdout.String(), "writing bash completion file to -\n"), "missing message in %q", stdout.String())

	// with --json no human readable messages may end up on stdout
	s, stdout, _ = testState(t, "")
	rtest.OK(t, runCommand(s, "generate", "--json", "-v", "--bash-completion", "-"))
	rtest.Assert(t, strings.HasPrefix(stdout.String(), "# bash completion for countdown"), "unexpected output %q", stdout.String())
	rtest.Assert(t, strings.HasSuffix(stdout.String(), "\n"), "completion must end with a newline")
}

func TestGenerateManpages(t *testing.T) {
	dir := rtest.TempDir(t)
	s, _, _ := testState(t, "")
	rtest.OK(t, runCommand(s, "generate", "--man", dir))

	for _, name := range []string{"countdown.1", "countdown-run.1", "countdown-check.1"} {
		_, err := os.Stat(filepath.Join(dir, name))
		rtest.OK(t, err)
	}
}
