package usage

import "fmt"

// MissingArgument is returned when a required argument is not provided.
func MissingArgument(arg string) *Error {
	return &Error{
		Kind:    ErrMissingArgument,
		Message: fmt.Sprintf("Parsing-Error: missing required argument: %s", arg),
	}
}

// AmbiguousArgument is returned when a positional value has no declared
// parameter slot left to land in.
func AmbiguousArgument(value string) *Error {
	return &Error{
		Kind:    ErrAmbiguousArgument,
		Message: fmt.Sprintf("Parsing-Error: ambiguous argument: '%s'", value),
	}
}

// UnexpectedArgument is returned when a keyword argument names no declared
// parameter of a fixed signature.
func UnexpectedArgument(command, name string) *Error {
	return &Error{
		Kind:    ErrUnexpectedArgument,
		Message: fmt.Sprintf("Error: %s got an unexpected keyword argument '%s'.", command, name),
	}
}

// TooManyArguments is returned when more values are given than a command
// declares. expected is the rendered expectation ("None", "2", "1 to 3").
func TooManyArguments(command, expected string, usageLine string) *Error {
	e := &Error{
		Kind:    ErrTooManyArguments,
		Message: fmt.Sprintf("Error: too many arguments for %s. %s expected.", command, expected),
	}
	if usageLine != "" {
		e.Detail = []string{usageLine}
	}
	return e
}
