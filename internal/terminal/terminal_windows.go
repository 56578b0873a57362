//go:build windows

package terminal

import (
	"io"

	"golang.org/x/sys/windows"
)

// ClearCurrentLine removes all characters from the current line and resets the
// cursor position to the first column.
func ClearCurrentLine(_ uintptr) func(io.Writer, uintptr) error {
	return PosixClearCurrentLine
}

// MoveCursorUp moves the cursor to the line n lines above the current one.
func MoveCursorUp(_ uintptr) func(io.Writer, uintptr, int) error {
	return PosixMoveCursorUp
}

// CanUpdateStatus returns true if the console interprets the escape
// sequences used to update status lines in place. Virtual terminal
// processing is enabled on demand.
func CanUpdateStatus(fd uintptr) bool {
	var mode uint32
	h := windows.Handle(fd)
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return false
	}
	if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
		return true
	}
	return windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) == nil
}
