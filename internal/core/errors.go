package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure returned by the core subsystems, per the
// error handling design: every failing command body converts its internal
// failure into exactly one of these kinds before returning.
type ErrorKind string

const (
	NotFound          ErrorKind = "NotFound"
	Exists            ErrorKind = "Exists"
	TypeMismatch      ErrorKind = "TypeMismatch"
	ValidationFailure ErrorKind = "ValidationFailure"
	ExpressionError   ErrorKind = "ExpressionError"
	IoError           ErrorKind = "IoError"
	BadParameter      ErrorKind = "BadParameter"
)

// Error is the single error type returned by every core subsystem. Columns
// is populated for ValidationFailure, carrying the offending column names
// so callers see the full error set rather than only the first failure.
type Error struct {
	Kind    ErrorKind
	Message string
	Columns []string
	Err     error
}

func (e *Error) Error() string {
	if len(e.Columns) > 0 {
		return fmt.Sprintf("%s: %s (columns: %v)", e.Kind, e.Message, e.Columns)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Newf builds an Error of the given kind from a formatted message.
func Newf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given kind around an underlying error.
func Wrap(kind ErrorKind, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: err.Error(), Err: err}
}

// WithColumns attaches the offending column set to a ValidationFailure.
func (e *Error) WithColumns(columns []string) *Error {
	e.Columns = columns
	return e
}

// KindOf extracts the ErrorKind from err, if err is (or wraps) a *Error.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
