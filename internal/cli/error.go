package cli

import (
	"errors"
	"flag"
)

// NewError creates a new error with the given error code and error.
func NewError(code ErrorCode, err error) error {
	return &Error{code: code, err: err}
}

// ErrorCode classifies an [Error].
type ErrorCode int

const (
	// ErrUsage means the arguments themselves are wrong: a flag is missing its value, a value
	// does not parse, or a referenced configuration is invalid.
	ErrUsage ErrorCode = iota + 1
)

func (c ErrorCode) String() string {
	switch c {
	case ErrUsage:
		return "usage error"
	default:
		return "unknown error"
	}
}

// Error represents an error with an error code and an underlying error.
type Error struct {
	code ErrorCode
	err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.err == nil {
		return e.code.String() + ": <nil>"
	}
	return e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

// Code returns the error's classification.
func (e *Error) Code() ErrorCode {
	return e.code
}

// ExitCode maps the result of [ParseAndRun] to a process exit status: 0 for success or a help
// request, 2 for an [ErrUsage] error and 1 for anything else.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if cliErr := (*Error)(nil); errors.As(err, &cliErr) && cliErr.code == ErrUsage {
		return 2
	}
	return 1
}
