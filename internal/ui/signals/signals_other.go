//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris)

package signals

import "os"

// no progress signal on this platform
func setupSignals(chan<- os.Signal) {}
