package main

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	"github.com/spf13/pflag"

	"github.com/restic/countdown/internal/errors"
	"github.com/restic/countdown/internal/ui/progress"
	"github.com/restic/countdown/internal/ui/termstatus"
)

func newGenerateCommand(s *state) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate [flags]",
		Short: "Generate manual pages and auto-completion files (bash, fish, zsh, powershell)",
		Long: `
The "generate" command writes automatically generated files (like the man pages
and the auto-completion files for bash, fish, zsh and powershell).
A file name of "-" writes to standard output.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error.
`,
		GroupID:           cmdGroupAdvanced,
		DisableAutoGenTag: true,
		Args:              cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			term, done := setupTermstatus(s)
			defer done()
			return runGenerate(cmd.Root(), opts, s, term)
		},
	}

	opts.AddFlags(cmd.Flags())
	return cmd
}

type generateOptions struct {
	ManDir                   string
	BashCompletionFile       string
	FishCompletionFile       string
	ZSHCompletionFile        string
	PowerShellCompletionFile string
}

func (opts *generateOptions) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&opts.ManDir, "man", "", "write man pages to `directory`")
	f.StringVar(&opts.BashCompletionFile, "bash-completion", "", "write bash completion `file` (`-` for stdout)")
	f.StringVar(&opts.FishCompletionFile, "fish-completion", "", "write fish completion `file` (`-` for stdout)")
	f.StringVar(&opts.ZSHCompletionFile, "zsh-completion", "", "write zsh completion `file` (`-` for stdout)")
	f.StringVar(&opts.PowerShellCompletionFile, "powershell-completion", "", "write powershell completion `file` (`-` for stdout)")
}

func writeManpages(root *cobra.Command, dir string, printer progress.Printer) error {
	// use a fixed date for the man pages so that generating them is deterministic
	date, err := time.Parse("Jan 2006", "Jan 2017")
	if err != nil {
		return err
	}

	header := &doc.GenManHeader{
		Title:   "countdown",
		Section: "1",
		Source:  "generated by `countdown generate`",
		Date:    &date,
	}

	printer.V("writing man pages to directory %v", dir)
	return doc.GenManTree(root, header, dir)
}

func writeCompletion(filename string, shell string, generate func(w io.Writer) error, printer progress.Printer, stdout io.Writer) (err error) {
	printer.V("writing %s completion file to %v", shell, filename)

	var outWriter io.Writer
	if filename != "-" {
		var outFile *os.File
		outFile, err = os.Create(filename)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := outFile.Close(); err == nil {
				err = cerr
			}
		}()
		outWriter = outFile
	} else {
		outWriter = stdout
	}

	return generate(outWriter)
}

func checkStdoutForSingleShell(opts generateOptions) error {
	completionFileOpts := []string{
		opts.BashCompletionFile,
		opts.FishCompletionFile,
		opts.ZSHCompletionFile,
		opts.PowerShellCompletionFile,
	}
	seenIsStdout := false
	for _, completionFileOpt := range completionFileOpts {
		if completionFileOpt == "-" {
			if seenIsStdout {
				return errors.Fatal("the generate command can generate shell completions to stdout for single shell only")
			}
			seenIsStdout = true
		}
	}
	return nil
}

func runGenerate(root *cobra.Command, opts generateOptions, s *state, term *termstatus.Terminal) error {
	if opts.ManDir == "" && opts.BashCompletionFile == "" && opts.FishCompletionFile == "" && opts.ZSHCompletionFile == "" && opts.PowerShellCompletionFile == "" {
		return errors.Fatal("nothing to do, please specify at least one output file/dir")
	}

	if err := checkStdoutForSingleShell(opts); err != nil {
		return err
	}

	printer := newPrinter(s, term)

	if opts.ManDir != "" {
		if err := writeManpages(root, opts.ManDir, printer); err != nil {
			return err
		}
	}

	for _, c := range []struct {
		filename string
		shell    string
		generate func(w io.Writer) error
	}{
		{opts.BashCompletionFile, "bash", root.GenBashCompletion},
		{opts.FishCompletionFile, "fish", func(w io.Writer) error { return root.GenFishCompletion(w, true) }},
		{opts.ZSHCompletionFile, "zsh", root.GenZshCompletion},
		{opts.PowerShellCompletionFile, "powershell", root.GenPowerShellCompletionWithDesc},
	} {
		if c.filename == "" {
			continue
		}
		if err := writeCompletion(c.filename, c.shell, c.generate, printer, term.OutputWriter()); err != nil {
			return err
		}
	}

	return nil
}
