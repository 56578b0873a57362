//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"golang.org/x/sys/unix"

	"github.com/restic/countdown/internal/debug"
)

// IsProcessBackground reports whether the current process is running in the
// background. fd must be a file descriptor for the terminal.
func IsProcessBackground(fd uintptr) bool {
	pgid, err := unix.IoctlGetInt(int(fd), unix.TIOCGPGRP)
	if err != nil {
		debug.Log("can't check if we are in the background: %v", err)
		return false
	}
	return pgid != unix.Getpgrp()
}
