//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package signals

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

func setupSignals(ch chan<- os.Signal) {
	signal.Notify(ch, unix.SIGINFO, unix.SIGUSR1)
}
