package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/restic/countdown/internal/errors"
	"github.com/restic/countdown/internal/ui"
)

func newCheckCommand(s *state) *cobra.Command {
	var opts timerOptions

	cmd := &cobra.Command{
		Use:   "check [flags]",
		Short: "Check a timer configuration",
		Long: `
The "check" command resolves a timer configuration from a preset and the
given flags, the same way "run" does, and reports whether start and end
fit the direction. A timer with such a configuration would halt on its
first tick.

EXIT STATUS
===========

Exit status is 0 if the configuration is valid.
Exit status is 1 if the configuration is invalid or there was any other error.
`,
		GroupID:           cmdGroupDefault,
		DisableAutoGenTag: true,
		Args:              cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.Context(), opts, cmd.Flags(), s)
		},
	}

	opts.AddFlags(cmd.Flags())
	return cmd
}

type checkResult struct {
	MessageType string `json:"message_type"` // "check"
	Direction   string `json:"direction"`
	Start       int64  `json:"start"`
	End         int64  `json:"end"`
	Interval    string `json:"interval"`
	Valid       bool   `json:"valid"`
	Error       string `json:"error,omitempty"`
}

func runCheck(_ context.Context, opts timerOptions, flags *pflag.FlagSet, s *state) error {
	presets, err := s.gopts.LoadPresets()
	if err != nil {
		return err
	}

	cfg, err := opts.resolve(flags, presets)
	if err != nil {
		return err
	}

	term, done := setupTermstatus(s)
	defer done()

	verr := cfg.Validate()

	if s.gopts.JSON {
		res := checkResult{
			MessageType: "check",
			Direction:   cfg.Direction.String(),
			Start:       cfg.Start,
			End:         cfg.End,
			Interval:    cfg.Interval.String(),
			Valid:       verr == nil,
		}
		if verr != nil {
			res.Error = verr.Error()
		}
		term.Print(ui.ToJSONString(res))
	} else if verr == nil {
		newPrinter(s, term).P("configuration %v is valid", cfg)
	}

	if verr != nil {
		return errors.Fatalf("invalid configuration %v: %v", cfg, verr)
	}
	return nil
}
