// Package debug provides an opt-in trace log for countdown. It is
// controlled entirely through environment variables:
//
//	COUNTDOWN_DEBUG_LOG    append all messages to this file
//	COUNTDOWN_DEBUG_FUNCS  comma separated function name globs printed to stderr
//	COUNTDOWN_DEBUG_FILES  comma separated dir/file.go:line globs printed to stderr
//
// A leading "-" disables a pattern, "all" enables everything.
package debug

import (
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

var opts struct {
	isEnabled bool
	logger    *log.Logger
	funcs     map[string]bool
	files     map[string]bool
}

// initialise before any init() function of other packages runs
var _ = initDebug()

func initDebug() bool {
	initDebugLogger()
	initDebugTags()

	if opts.logger == nil && len(opts.funcs) == 0 && len(opts.files) == 0 {
		opts.isEnabled = false
		return false
	}

	opts.isEnabled = true
	fmt.Fprintf(os.Stderr, "debug enabled\n")

	return true
}

func initDebugLogger() {
	debugfile := os.Getenv("COUNTDOWN_DEBUG_LOG")
	if debugfile == "" {
		return
	}

	fmt.Fprintf(os.Stderr, "debug log file %v\n", debugfile)

	f, err := os.OpenFile(debugfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to open debug log file: %v\n", err)
		os.Exit(2)
	}

	opts.logger = log.New(f, "", log.LstdFlags)
}

func parseFilter(envname string, pad func(string) string) map[string]bool {
	filter := make(map[string]bool)

	env := os.Getenv(envname)
	if env == "" {
		return filter
	}

	for _, fn := range strings.Split(env, ",") {
		t := pad(strings.TrimSpace(fn))
		if t == "" {
			continue
		}

		val := true
		switch t[0] {
		case '-':
			val = false
			t = t[1:]
		case '+':
			t = t[1:]
		}

		if _, err := path.Match(t, ""); err != nil {
			fmt.Fprintf(os.Stderr, "error: invalid pattern %q: %v\n", t, err)
			os.Exit(5)
		}

		filter[t] = val
	}

	return filter
}

func padFile(s string) string {
	if s == "all" || s == "" {
		return s
	}

	if !strings.Contains(s, "/") {
		s = "*/" + s
	}

	if !strings.Contains(s, ":") {
		s = s + ":*"
	}

	return s
}

func initDebugTags() {
	opts.funcs = parseFilter("COUNTDOWN_DEBUG_FUNCS", func(s string) string { return s })
	opts.files = parseFilter("COUNTDOWN_DEBUG_FILES", padFile)
}

// goroutineNum parses the current goroutine id from the stack header.
func goroutineNum() int {
	b := make([]byte, 20)
	runtime.Stack(b, false)
	var num int

	_, _ = fmt.Sscanf(string(b), "goroutine %d ", &num)
	return num
}

func getPosition() (fn, dir, file string, line int) {
	pc, file, line, ok := runtime.Caller(2)
	if !ok {
		return "", "", "", 0
	}

	dirname, filename := filepath.Base(filepath.Dir(file)), filepath.Base(file)

	return path.Base(runtime.FuncForPC(pc).Name()), dirname, filename, line
}

func checkFilter(filter map[string]bool, key string) bool {
	if v, ok := filter[key]; ok {
		return v
	}

	for k, v := range filter {
		if k == "all" {
			continue
		}
		if m, _ := path.Match(k, key); m {
			return v
		}
	}

	if v, ok := filter["all"]; ok && v {
		return true
	}

	return false
}

// Log prints a message to the debug log (if debug is enabled).
func Log(f string, args ...interface{}) {
	if !opts.isEnabled {
		return
	}

	fn, dir, file, line := getPosition()
	goroutine := goroutineNum()

	if len(f) == 0 || f[len(f)-1] != '\n' {
		f += "\n"
	}

	pos := fmt.Sprintf("%s/%s:%d", dir, file, line)
	formatString := fmt.Sprintf("%s\t%s\t%d\t%s", pos, fn, goroutine, f)

	if opts.logger != nil {
		opts.logger.Printf(formatString, args...)
	}

	if checkFilter(opts.files, pos) || checkFilter(opts.funcs, fn) {
		fmt.Fprintf(os.Stderr, formatString, args...)
	}
}
