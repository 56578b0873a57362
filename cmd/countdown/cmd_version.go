package main

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/restic/countdown/internal/global"
	"github.com/restic/countdown/internal/ui"
)

func newVersionCommand(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `
The "version" command prints detailed information about the build environment
and the version of this software.

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

			if s.gopts.JSON {
				type jsonVersion struct {
					MessageType string `json:"message_type"` // version
					Version     string `json:"version"`
					GoVersion   string `json:"go_version"`
					GoOS        string `json:"go_os"`
					GoArch      string `json:"go_arch"`
				}

				term.Print(ui.ToJSONString(jsonVersion{
					MessageType: "version",
					Version:     global.Version,
					GoVersion:   runtime.Version(),
					GoOS:        runtime.GOOS,
					GoArch:      runtime.GOARCH,
				}))
				return
			}

			newPrinter(s, term).P("countdown %s compiled with %v on %v/%v",
				global.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
	return cmd
}
