package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/restic/countdown/internal/debug"
)

func createGlobalContext(stderr io.Writer) context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	go cleanupHandler(ch, cancel, stderr)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	return ctx
}

// cleanupHandler cancels the global context on SIGINT or SIGTERM. The
// running command then pauses the timer and prints its summary.
func cleanupHandler(c <-chan os.Signal, cancel context.CancelFunc, stderr io.Writer) {
	s := <-c
	debug.Log("signal %v received, cleaning up", s)
	_, _ = fmt.Fprintf(stderr, "\rsignal %v received, cleaning up\n", s)

	if val, _ := os.LookupEnv("COUNTDOWN_DEBUG_STACKTRACE_SIGINT"); val != "" {
		_, _ = io.WriteString(stderr, "\n--- STACKTRACE START ---\n\n")
		_, _ = io.WriteString(stderr, debug.DumpStacktrace())
		_, _ = io.WriteString(stderr, "\n--- STACKTRACE END ---\n")
	}

	cancel()
}

// Exit terminates the process with the given exit code.
func Exit(code int) {
	debug.Log("exiting with status code %d", code)
	os.Exit(code)
}
