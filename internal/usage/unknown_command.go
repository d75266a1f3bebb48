package usage

import (
	"fmt"
	"strings"
)

// UnknownCommand is returned when a command keyword matches nothing in the
// command table. Suggestions, if any, are offered as a "did you mean" line.
func UnknownCommand(command string, suggestions ...string) *Error {
	e := &Error{
		Kind:    ErrUnknownCommand,
		Message: fmt.Sprintf("Error: unknown command '%s'.", command),
	}
	if len(suggestions) > 0 {
		e.Detail = []string{"Did you mean: " + strings.Join(suggestions, ", ") + "?"}
	}
	return e
}

// AmbiguousCommand is returned when a command keyword is a prefix of several
// registered commands.
func AmbiguousCommand(command string, candidates []string) *Error {
	return &Error{
		Kind:    ErrAmbiguousCommand,
		Message: fmt.Sprintf("Error: ambiguous command '%s'.", command),
		Detail:  []string{"Candidates: " + strings.Join(candidates, " ")},
	}
}

// UnknownValue is returned when an enumerated option value matches nothing.
func UnknownValue(what, value string) *Error {
	return &Error{
		Kind:    ErrUnknownValue,
		Message: fmt.Sprintf("Error: unknown %s '%s'.", what, value),
	}
}

// AmbiguousValue is returned when an enumerated option value is a prefix of
// several candidates.
func AmbiguousValue(what, value string, candidates []string) *Error {
	return &Error{
		Kind:    ErrAmbiguousValue,
		Message: fmt.Sprintf("Error: ambiguous %s '%s':", what, value),
		Detail:  []string{"  " + strings.Join(candidates, " ")},
	}
}
