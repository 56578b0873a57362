package errors

import (
	"errors"
	"fmt"
)

// fatalError is shown to the user as is, after which countdown exits with a
// non-zero status code.
type fatalError struct {
	msg string
	err error
}

func (e *fatalError) Error() string {
	return e.msg
}

func (e *fatalError) Unwrap() error {
	return e.err
}

// IsFatal reports whether err, or an error it wraps, was created by Fatal or
// Fatalf.
func IsFatal(err error) bool {
	var fatal *fatalError
	return errors.As(err, &fatal)
}

// Fatal returns an error marked as fatal.
func Fatal(s string) error {
	return Wrap(&fatalError{msg: s}, "Fatal")
}

// Fatalf returns an error marked as fatal. The last error found in data is
// kept as the wrapped error.
func Fatalf(s string, data ...interface{}) error {
	var cause error
	for i := len(data) - 1; i >= 0; i-- {
		if err, ok := data[i].(error); ok {
			cause = err
			break
		}
	}

	return Wrap(&fatalError{
		msg: fmt.Sprintf(s, data...),
		err: cause,
	}, "Fatal")
}
