// Package test contains assertion helpers and environment driven settings
// shared by the tests of all countdown packages.
package test

import (
	"fmt"
	"os"
	"time"
)

var (
	TestCleanupTempDirs = getBoolVar("COUNTDOWN_TEST_CLEANUP", true)
	TestTempDir         = getStringVar("COUNTDOWN_TEST_TMPDIR", "")
	// TestRealClockTimeout bounds tests which run the engine on the wall clock.
	TestRealClockTimeout = getDurationVar("COUNTDOWN_TEST_REALCLOCK_TIMEOUT", 10*time.Second)
)

func getStringVar(name, defaultValue string) string {
	if e := os.Getenv(name); e != "" {
		return e
	}

	return defaultValue
}

func getBoolVar(name string, defaultValue bool) bool {
	if e := os.Getenv(name); e != "" {
		switch e {
		case "1", "true":
			return true
		case "0", "false":
			return false
		default:
			fmt.Fprintf(os.Stderr, "invalid value for variable %q, using default\n", name)
		}
	}

	return defaultValue
}

func getDurationVar(name string, defaultValue time.Duration) time.Duration {
	if e := os.Getenv(name); e != "" {
		d, err := time.ParseDuration(e)
		if err == nil {
			return d
		}
		fmt.Fprintf(os.Stderr, "invalid value for variable %q, using default\n", name)
	}

	return defaultValue
}
