package engine

import "fmt"

// Code classifies engine failures.
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
)

// Error is the engine's coded error. Callers match on the code with errors.Is.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// ErrInvalidArgument matches any engine error carrying CodeInvalidArgument.
var ErrInvalidArgument = &Error{Code: CodeInvalidArgument, Message: "invalid argument"}

func invalidArgument(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}
