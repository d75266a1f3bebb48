package usage

import (
	"fmt"
	"strings"
)

// Syntax is returned when a command line does not conform to the grammar.
// The diagnostic is the original line followed by a caret under offset.
func Syntax(line string, offset int) *Error {
	return &Error{
		Kind:    ErrSyntax,
		Message: "Error: " + line,
		Detail:  []string{"Error: " + strings.Repeat(" ", max(offset, 0)) + "^ syntax error."},
	}
}

// Handler wraps a failure raised by a command handler.
func Handler(command string, err error) *Error {
	return &Error{
		Kind:    ErrHandler,
		Message: fmt.Sprintf("Error: %s: %v", command, err),
		Err:     err,
	}
}

// InvalidConfigKey is returned for configuration keys that do not exist.
func InvalidConfigKey(key string) *Error {
	return &Error{
		Kind:    ErrInvalidConfigKey,
		Message: fmt.Sprintf("Error: unknown config key '%s'.", key),
	}
}
