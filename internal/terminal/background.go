//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package terminal

// IsProcessBackground reports whether the current process is running in the
// background. Not implemented for this platform.
func IsProcessBackground(uintptr) bool {
	return false
}
