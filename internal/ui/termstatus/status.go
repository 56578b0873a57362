// Package termstatus serialises all terminal output of the countdown command.
// Messages and the in-place status lines (the current counter value and the
// control hint) are written by a single goroutine so they never interleave.
package termstatus

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/restic/countdown/internal/terminal"
	"github.com/restic/countdown/internal/ui"
)

var _ ui.Terminal = &Terminal{}

// Terminal writes messages and keeps a block of status lines at the bottom
// of the output. When the output is not an interactive terminal, every
// status update is printed as plain lines instead.
type Terminal struct {
	in  io.ReadCloser
	out io.Writer
	err io.Writer

	fd               uintptr
	inputIsTerminal  bool
	outputIsTerminal bool
	canUpdateStatus  bool

	msg    chan message
	status chan []string

	// closed is closed once Run returns, so senders never block afterwards.
	closed chan struct{}

	// number of status lines currently on screen
	shown int

	clearLine func(io.Writer, uintptr) error
	cursorUp  func(io.Writer, uintptr, int) error

	lineWriter     io.WriteCloser
	lineWriterOnce sync.Once
}

type message struct {
	line    string
	isErr   bool
	barrier chan struct{}
}

type fder interface {
	Fd() uintptr
}

// Setup starts a Terminal in the background. The returned function flushes
// pending output, removes the status lines and waits for the terminal to
// shut down.
//
//	term, done := termstatus.Setup(os.Stdin, os.Stdout, os.Stderr, false)
//	defer done()
func Setup(stdin io.ReadCloser, stdout, stderr io.Writer, quiet bool) (*Terminal, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	term := New(stdin, stdout, stderr, quiet)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		term.Run(ctx)
	}()

	return term, func() {
		if term.lineWriter != nil {
			_ = term.lineWriter.Close()
		}
		term.Flush()
		cancel()
		wg.Wait()
	}
}

// New returns a Terminal writing messages to out and errors to errOut. Status
// lines are only updated in place if out is an *os.File attached to a
// terminal that supports it and disableStatus is false. Run must be called
// for any output to appear.
func New(in io.ReadCloser, out, errOut io.Writer, disableStatus bool) *Terminal {
	t := &Terminal{
		in:     in,
		out:    out,
		err:    errOut,
		msg:    make(chan message),
		status: make(chan []string),
		closed: make(chan struct{}),
	}

	if f, ok := in.(fder); ok && terminal.InputIsTerminal(f.Fd()) {
		t.inputIsTerminal = true
	}

	f, ok := out.(fder)
	if !ok {
		return t
	}
	t.outputIsTerminal = terminal.OutputIsTerminal(f.Fd())

	if !disableStatus && terminal.CanUpdateStatus(f.Fd()) {
		t.canUpdateStatus = true
		t.fd = f.Fd()
		t.clearLine = terminal.ClearCurrentLine(t.fd)
		t.cursorUp = terminal.MoveCursorUp(t.fd)
	}

	return t
}

// Input returns the reader control commands are read from.
func (t *Terminal) Input() io.ReadCloser {
	return t.in
}

// InputIsTerminal reports whether a user is typing the input.
func (t *Terminal) InputIsTerminal() bool {
	return t.inputIsTerminal
}

// OutputIsTerminal reports whether the output is shown on a terminal.
func (t *Terminal) OutputIsTerminal() bool {
	return t.outputIsTerminal
}

// CanUpdateStatus reports whether status lines are redrawn in place.
func (t *Terminal) CanUpdateStatus() bool {
	return t.canUpdateStatus
}

// OutputWriter returns a writer which passes complete lines to Print. It is
// safe to use concurrently with the other output methods.
func (t *Terminal) OutputWriter() io.Writer {
	t.lineWriterOnce.Do(func() {
		t.lineWriter = newLineWriter(t.Print)
	})
	return t.lineWriter
}

// Run writes all output until ctx is cancelled. Status lines still on
// screen are removed before it returns.
func (t *Terminal) Run(ctx context.Context) {
	defer close(t.closed)

	var status []string
	for {
		select {
		case <-ctx.Done():
			if t.canUpdateStatus && !terminal.IsProcessBackground(t.fd) {
				t.drawStatus(nil)
			}
			return

		case msg := <-t.msg:
			if msg.barrier != nil {
				msg.barrier <- struct{}{}
				continue
			}
			t.writeMessage(msg, status)

		case lines := <-t.status:
			if !t.canUpdateStatus {
				t.writeLines(lines)
				continue
			}
			status = lines
			if !terminal.IsProcessBackground(t.fd) {
				t.drawStatus(status)
			}
		}
	}
}

func (t *Terminal) writeMessage(msg message, status []string) {
	dst := t.out
	if msg.isErr {
		dst = t.err
	}

	if !t.canUpdateStatus {
		t.write(dst, msg.line)
		return
	}

	// a process in the background must not touch the terminal
	if terminal.IsProcessBackground(t.fd) {
		return
	}

	t.control(t.clearLine(t.out, t.fd))
	t.write(dst, msg.line)
	t.shown = 0
	t.drawStatus(status)
}

// writeLines prints status lines without any cursor movement, each ending
// in exactly one newline.
func (t *Terminal) writeLines(lines []string) {
	for _, line := range lines {
		t.write(t.out, strings.TrimRight(line, "\n")+"\n")
	}
}

// drawStatus replaces the status lines on screen with lines. The cursor is
// left on the first status line.
func (t *Terminal) drawStatus(lines []string) {
	n := len(lines)
	if n < t.shown {
		n = t.shown
	}
	if n == 0 {
		return
	}

	for i := 0; i < n; i++ {
		t.control(t.clearLine(t.out, t.fd))

		var line string
		if i < len(lines) {
			line = lines[i]
		}
		if i < n-1 {
			line += "\n"
		}
		t.write(t.out, line)
	}

	t.control(t.cursorUp(t.out, t.fd, n-1))
	t.shown = len(lines)
}

func (t *Terminal) write(dst io.Writer, s string) {
	if _, err := io.WriteString(dst, s); err != nil {
		_, _ = fmt.Fprintf(t.err, "write failed: %v\n", err)
	}
}

func (t *Terminal) control(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(t.err, "write failed: %v\n", err)
	}
}

// Flush blocks until all messages sent before it have been written.
func (t *Terminal) Flush() {
	ch := make(chan struct{})
	defer close(ch)

	select {
	case t.msg <- message{barrier: ch}:
	case <-t.closed:
		return
	}

	select {
	case <-ch:
	case <-t.closed:
	}
}

func (t *Terminal) send(line string, isErr bool) {
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}

	select {
	case t.msg <- message{line: line, isErr: isErr}:
	case <-t.closed:
	}
}

// Print writes a line to the output.
func (t *Terminal) Print(line string) {
	t.send(line, false)
}

// Error writes a line to the error output.
func (t *Terminal) Error(line string) {
	t.send(line, true)
}

// SetStatus replaces the status lines. Lines must not contain line breaks.
// Passing no lines removes the status.
func (t *Terminal) SetStatus(lines []string) {
	width := 0
	if t.canUpdateStatus {
		width = terminal.Width(t.fd)
		if width <= 0 {
			width = 80
		}
	}

	lines = sanitizeLines(lines, width)

	select {
	case t.status <- lines:
	case <-t.closed:
	}
}

// sanitizeLines quotes unprintable characters and truncates every line to
// width cells if width is positive. The input is not modified.
func sanitizeLines(lines []string, width int) []string {
	res := make([]string, 0, len(lines))
	for _, line := range lines {
		line = ui.Quote(line)
		if width > 0 {
			// leave room for the cursor
			line = ui.Truncate(line, width-2)
		}
		res = append(res, line)
	}
	return res
}
