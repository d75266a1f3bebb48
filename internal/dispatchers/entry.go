package dispatchers

import (
	"context"

	"github.com/dualword/PyMOL/internal/binding"
	"github.com/dualword/PyMOL/internal/parsing"
)

// Handler runs a command with its bound arguments.
type Handler func(ctx context.Context, call binding.Call) error

// Entry is one row of the command table.
//
// MinArgs, MaxArgs and Separator are carried for command tables written
// against the legacy split modes; Strict, Legacy and NoCheck binding
// ignore them.
type Entry struct {
	Name      string
	Handler   Handler
	Signature binding.Signature
	MinArgs   int
	MaxArgs   int
	Separator string
	Mode      parsing.Mode
	Summary   string
	Doc       string
	Category  CommandCategory

	// Complete returns candidates for the first argument.
	Complete func(prefix string) []string
}

// Usage returns the usage line of the entry.
func (e Entry) Usage() string {
	return e.Signature.Usage(e.Name)
}

func (e Entry) withDefaults() Entry {
	if e.Mode == parsing.Simple && e.Separator == "" {
		e.Mode = parsing.Strict
	}
	if e.Separator == "" {
		e.Separator = ","
	}
	return e
}
