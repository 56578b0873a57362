package main

import (
	"github.com/spf13/cobra"

	"github.com/restic/countdown/internal/feature"
	"github.com/restic/countdown/internal/ui/table"
)

func newFeaturesCommand(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "features",
		Short: "Print list of feature flags",
		Long: `
The "features" command prints a list of supported feature flags.

To pass feature flags to countdown, set the $COUNTDOWN_FEATURES environment
variable to "featureA=true,featureB=false". Specifying an unknown feature flag
is an error.

A feature can either be in alpha, beta, stable or deprecated state.
An _alpha_ feature is disabled by default and may change in arbitrary ways between releases or be removed.
A _beta_ feature is enabled by default, but still can change in minor ways or be removed.
A _stable_ feature is always enabled and cannot be disabled. The flag will be removed in a future release.
A _deprecated_ feature is always disabled and cannot be enabled. The flag will be removed in a future release.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error.
`,
		GroupID:           cmdGroupAdvanced,
		DisableAutoGenTag: true,
		Args:              cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			term, done := setupTermstatus(s)
			defer done()

			newPrinter(s, term).P("All Feature Flags:")

			tab := table.New()
			tab.AddColumn("Name", "{{ .Name }}")
			tab.AddColumn("Type", "{{ .Type }}")
			tab.AddColumn("Default", "{{ .Default }}")
			tab.AddColumn("Enabled", "{{ .Enabled }}")
			tab.AddColumn("Description", "{{ .Description }}")

			for _, flag := range feature.Flag.List() {
				tab.AddRow(flag)
			}
			return tab.Write(term.OutputWriter())
		},
	}

	return cmd
}
