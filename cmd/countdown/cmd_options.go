package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/restic/countdown/internal/options"
)

func newOptionsCommand(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Print list of extended options",
		Long: `
The "options" command prints a list of extended options, which are set
with "-o key=value".

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error.
`,
		GroupID:           cmdGroupAdvanced,
		DisableAutoGenTag: true,
		Args:              cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			term, done := setupTermstatus(s)
			defer done()

			term.Print("All Extended Options:")

			list := options.List()
			var maxLen int
			for _, opt := range list {
				if l := len(opt.Namespace + "." + opt.Name); l > maxLen {
					maxLen = l
				}
			}
			for _, opt := range list {
				term.Print(fmt.Sprintf("  %*s  %s", -maxLen, opt.Namespace+"."+opt.Name, opt.Text))
			}
		},
	}

	return cmd
}
