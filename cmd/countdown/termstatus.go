package main

import (
	"github.com/restic/countdown/internal/ui/progress"
	"github.com/restic/countdown/internal/ui/termstatus"
)

// setupTermstatus starts a terminal on the streams of s. The returned
// function must be called to flush all output and shut the terminal down.
func setupTermstatus(s *state) (*termstatus.Terminal, func()) {
	return termstatus.Setup(s.stdin, s.stdout, s.stderr, s.gopts.Quiet)
}

// newPrinter returns a printer for human readable messages. With --json
// these messages are discarded so that stdout only carries JSON.
func newPrinter(s *state, term *termstatus.Terminal) progress.Printer {
	if s.gopts.JSON {
		return &progress.NoopPrinter{}
	}
	return progress.NewTerminalPrinter(term, s.gopts.Verbosity())
}
