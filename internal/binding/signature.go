package binding

import (
	"slices"
	"strings"
)

// Signature describes the parameters a command handler declares.
//
// Params lists parameter names in declaration order. The last Defaults
// of them are optional. VarArgs and VarKwargs mark handlers that accept
// arbitrary extra positional or keyword arguments; either one disables
// arity and name checks during binding.
type Signature struct {
	Params    []string
	Defaults  int
	VarArgs   bool
	VarKwargs bool
}

// Fixed is a convenience constructor for a fixed signature whose last
// optional parameters carry defaults.
func Fixed(optional int, names ...string) Signature {
	return Signature{Params: names, Defaults: optional}
}

// Variadic returns a signature that accepts anything.
func Variadic(names ...string) Signature {
	return Signature{Params: names, VarArgs: true, VarKwargs: true}
}

// Required returns how many leading parameters must be bound.
func (s Signature) Required() int {
	return max(len(s.Params)-s.Defaults, 0)
}

// Open reports whether the signature accepts arbitrary extra arguments.
func (s Signature) Open() bool {
	return s.VarArgs || s.VarKwargs
}

// Declares reports whether name is one of the declared parameters.
func (s Signature) Declares(name string) bool {
	return slices.Contains(s.Params, name)
}

// Usage renders the usage line for a command with this signature:
//
//	Usage: name req1, req2 [, opt1 [, opt2]]
func (s Signature) Usage(name string) string {
	var b strings.Builder
	b.WriteString("Usage: ")
	b.WriteString(name)

	nreq := s.Required()
	open := 0
	for i, p := range s.Params {
		switch {
		case i >= nreq && i > 0:
			b.WriteString(" [, ")
			open++
		case i >= nreq:
			b.WriteString(" [")
			open++
		case i > 0:
			b.WriteString(", ")
		default:
			b.WriteString(" ")
		}
		b.WriteString(p)
	}
	b.WriteString(strings.Repeat("]", open))
	return b.String()
}
