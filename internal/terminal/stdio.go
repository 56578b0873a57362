// Package terminal detects what the terminal attached to a file descriptor
// is able to display.
package terminal

import (
	"golang.org/x/term"
)

func InputIsTerminal(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

func OutputIsTerminal(fd uintptr) bool {
	return term.IsTerminal(int(fd)) || CanUpdateStatus(fd)
}

// Width returns the width of the terminal, or 0 if it is unknown.
func Width(fd uintptr) int {
	w, _, err := term.GetSize(int(fd))
	if err != nil {
		return 0
	}
	return w
}
