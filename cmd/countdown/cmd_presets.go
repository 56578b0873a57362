package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/restic/countdown/internal/ui"
	"github.com/restic/countdown/internal/ui/table"
)

func newPresetsCommand(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the presets of the config file",
		Long: `
The "presets" command lists the timer presets defined in the config file
given with --config or $COUNTDOWN_CONFIG.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error.
`,
		GroupID:           cmdGroupDefault,
		DisableAutoGenTag: true,
		Args:              cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPresets(cmd.Context(), s)
		},
	}

	return cmd
}

type presetJSON struct {
	Name      string `json:"name"`
	Direction string `json:"direction"`
	Start     int64  `json:"start"`
	End       int64  `json:"end"`
	Interval  string `json:"interval"`
}

func runPresets(_ context.Context, s *state) error {
	presets, err := s.gopts.LoadPresets()
	if err != nil {
		return err
	}
	list := presets.List()

	term, done := setupTermstatus(s)
	defer done()

	if s.gopts.JSON {
		res := make([]presetJSON, 0, len(list))
		for _, p := range list {
			res = append(res, presetJSON{
				Name:      p.Name,
				Direction: p.Direction.String(),
				Start:     p.Start,
				End:       p.End,
				Interval:  p.Interval.String(),
			})
		}
		term.Print(ui.ToJSONString(res))
		return nil
	}

	tab := table.New()
	tab.AddColumn("Name", "{{ .Name }}")
	tab.AddColumn("Direction", "{{ .Direction }}")
	tab.AddColumn("Start", "{{ .Start }}")
	tab.AddColumn("End", "{{ .End }}")
	tab.AddColumn("Interval", "{{ .Interval }}")
	for _, p := range list {
		tab.AddRow(p)
	}
	tab.AddFooter(fmt.Sprintf("%d presets", len(list)))

	return tab.Write(term.OutputWriter())
}
