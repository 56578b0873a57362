//go:build aix || linux || solaris

package signals

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

func setupSignals(ch chan<- os.Signal) {
	signal.Notify(ch, unix.SIGUSR1)
}
