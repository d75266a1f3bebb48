package usage

import (
	"errors"
	"strings"
)

// ErrorKind represents the type of usage error.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrSyntax
	ErrUnknownCommand
	ErrAmbiguousCommand
	ErrUnknownValue
	ErrAmbiguousValue
	ErrTooManyArguments
	ErrAmbiguousArgument
	ErrMissingArgument
	ErrUnexpectedArgument
	ErrHandler
	ErrInvalidConfigKey
)

func (k ErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "syntax"
	case ErrUnknownCommand, ErrAmbiguousCommand, ErrUnknownValue, ErrAmbiguousValue:
		return "name resolution"
	case ErrTooManyArguments, ErrAmbiguousArgument, ErrMissingArgument, ErrUnexpectedArgument:
		return "bind"
	case ErrHandler:
		return "handler"
	case ErrInvalidConfigKey:
		return "config"
	default:
		return "unknown"
	}
}

// Exit codes:
//
//	Exit 1: command or environment errors
//	  - Unknown errors
//	  - Unknown or ambiguous command
//	  - Handler failures
//	  - Invalid config key
//
//	Exit 2: input errors
//	  - Syntax errors
//	  - Unknown or ambiguous option values
//	  - Argument binding errors
var exitCodes = map[ErrorKind]int{
	ErrUnknown:            1,
	ErrSyntax:             2,
	ErrUnknownCommand:     1,
	ErrAmbiguousCommand:   1,
	ErrUnknownValue:       2,
	ErrAmbiguousValue:     2,
	ErrTooManyArguments:   2,
	ErrAmbiguousArgument:  2,
	ErrMissingArgument:    2,
	ErrUnexpectedArgument: 2,
	ErrHandler:            1,
	ErrInvalidConfigKey:   1,
}

// Error represents a user-facing command error with semantic type information.
//
// Message is the first diagnostic line. Detail holds any further lines
// (the caret line of a syntax error, a usage line, a candidate list).
// A Quiet error has already been written to the diagnostic stream and
// must not be printed again by callers.
type Error struct {
	Kind     ErrorKind
	Message  string
	Detail   []string
	Quiet    bool
	Err      error
	ExitCode int // computed from Kind if zero
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Detail) == 0 {
		return e.Message
	}
	return e.Message + "\n" + strings.Join(e.Detail, "\n")
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Lines returns every diagnostic line of the error in display order.
func (e *Error) Lines() []string {
	return append([]string{e.Message}, e.Detail...)
}

// GetExitCode returns the appropriate exit code for this error.
// If ExitCode is explicitly set, it is returned; otherwise, the code is derived from Kind.
func (e *Error) GetExitCode() int {
	if e.ExitCode != 0 {
		return e.ExitCode
	}
	if code, ok := exitCodes[e.Kind]; ok {
		return code
	}
	return 1
}

// MarkQuiet flags the error as already reported and returns it.
func (e *Error) MarkQuiet() *Error {
	e.Quiet = true
	return e
}

// As extracts a *Error from an error chain.
func As(err error) (*Error, bool) {
	var ue *Error
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// IsQuiet reports whether err carries a usage error that was already reported.
func IsQuiet(err error) bool {
	ue, ok := As(err)
	return ok && ue.Quiet
}

// KindOf returns the kind of the usage error in err, or ErrUnknown.
func KindOf(err error) ErrorKind {
	if ue, ok := As(err); ok {
		return ue.Kind
	}
	return ErrUnknown
}

// Verify Error implements the error interface.
var _ error = (*Error)(nil)
