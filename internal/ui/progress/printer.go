// Package progress contains the leveled message printers used by the
// countdown commands.
package progress

import (
	"fmt"

	"github.com/restic/countdown/internal/ui"
)

// A Printer prints messages at different log levels. It must be safe to call
// its methods from concurrent goroutines.
type Printer interface {
	// E reports an error, it is always shown.
	E(msg string, args ...interface{})
	// P prints a message unless the output is quiet.
	P(msg string, args ...interface{})
	// V prints a message in verbose mode.
	V(msg string, args ...interface{})
	// VV prints debug output, only shown with verbosity of at least 3.
	VV(msg string, args ...interface{})
}

// NoopPrinter discards all messages
type NoopPrinter struct{}

var _ Printer = (*NoopPrinter)(nil)

func (*NoopPrinter) E(msg string, args ...interface{}) {}

func (*NoopPrinter) P(msg string, args ...interface{}) {}

func (*NoopPrinter) V(msg string, args ...interface{}) {}

func (*NoopPrinter) VV(msg string, args ...interface{}) {}

// TerminalPrinter writes messages to a ui.Terminal. A verbosity of 0 only
// shows errors, 1 is the default.
type TerminalPrinter struct {
	term      ui.Terminal
	verbosity uint
}

var _ Printer = &TerminalPrinter{}

// NewTerminalPrinter returns a Printer which shows messages up to verbosity.
func NewTerminalPrinter(term ui.Terminal, verbosity uint) *TerminalPrinter {
	return &TerminalPrinter{term: term, verbosity: verbosity}
}

func (p *TerminalPrinter) E(msg string, args ...interface{}) {
	p.term.Error(fmt.Sprintf(msg, args...))
}

func (p *TerminalPrinter) P(msg string, args ...interface{}) {
	p.print(1, msg, args)
}

func (p *TerminalPrinter) V(msg string, args ...interface{}) {
	p.print(2, msg, args)
}

func (p *TerminalPrinter) VV(msg string, args ...interface{}) {
	p.print(3, msg, args)
}

func (p *TerminalPrinter) print(level uint, msg string, args []interface{}) {
	if p.verbosity >= level {
		p.term.Print(fmt.Sprintf(msg, args...))
	}
}
