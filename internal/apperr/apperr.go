// Package apperr defines the application error type shared by all packages.
package apperr

import "fmt"

// Error is an application error with a user-facing message. Packages declare
// their errors as package-level *Error values so call sites can compare them
// with errors.Is.
type Error struct {
	Cause   error
	Message string
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Fmt returns a copy of the error with its message format specifiers
// interpolated with the provided arguments.
func (e *Error) Fmt(args ...any) *Error {
	return &Error{
		Message: fmt.Sprintf(e.Message, args...),
		Cause:   e.Cause,
	}
}

// Wrap returns a copy of the error with the given cause attached.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		Message: e.Message,
		Cause:   err,
	}
}
