package debug

import (
	"log"
	"testing"
)

// TestLogTo routes the debug log to t.Log for the duration of the test,
// unless a debug log is already configured.
func TestLogTo(t testing.TB) {
	if opts.isEnabled {
		return
	}

	opts.logger = log.New(testWriter{t}, "", 0)
	opts.isEnabled = true
	t.Cleanup(func() {
		opts.logger = nil
		opts.isEnabled = false
	})
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}
