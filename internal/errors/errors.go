// Package errors wraps github.com/pkg/errors so that every package in
// countdown creates and annotates errors the same way.
package errors

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// New returns an error with message and a stack trace.
var New = errors.New

// Errorf formats an error message and records a stack trace.
var Errorf = errors.Errorf

// Wrap annotates err with message. It returns nil if err is nil.
var Wrap = errors.Wrap

// Wrapf annotates err with a formatted message. It returns nil if err is nil.
var Wrapf = errors.Wrapf

// WithStack attaches a stack trace to err. It returns nil if err is nil.
var WithStack = errors.WithStack

// As is errors.As from the standard library.
func As(err error, target interface{}) bool { return stderrors.As(err, target) }

// Is is errors.Is from the standard library.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// Join is errors.Join from the standard library.
func Join(errs ...error) error { return stderrors.Join(errs...) }

// Unwrap is errors.Unwrap from the standard library.
func Unwrap(err error) error { return stderrors.Unwrap(err) }
