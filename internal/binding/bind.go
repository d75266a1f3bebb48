// Package binding matches parsed command arguments onto a handler's
// declared parameters.
package binding

import (
	"fmt"

	"github.com/dualword/PyMOL/internal/parsing"
	"github.com/dualword/PyMOL/internal/usage"
)

// Bind matches args against sig under mode and returns the call to invoke.
// name is the command name used in diagnostics.
//
// Literal modes bind like Strict; the literal tail is already a single
// positional argument by the time it gets here.
func Bind(name string, args []parsing.Argument, sig Signature, mode parsing.Mode) (Call, error) {
	if sig.Open() {
		mode = parsing.NoCheck
	}
	if mode == parsing.NoCheck {
		return bindUnchecked(args), nil
	}

	if mode == parsing.Legacy {
		args = reclassify(args, sig)
	}

	if err := checkArity(name, args, sig); err != nil {
		return Call{}, err
	}

	values, err := matchArguments(name, args, sig)
	if err != nil {
		return Call{}, err
	}

	for _, p := range sig.Params[:sig.Required()] {
		if _, ok := values[p]; !ok {
			return Call{}, usage.MissingArgument(p)
		}
	}

	return Call{Kwargs: values}, nil
}

func bindUnchecked(args []parsing.Argument) Call {
	call := Call{Kwargs: map[string]string{}}
	for _, a := range args {
		if a.IsNamed() {
			call.Kwargs[a.Name] = a.Value
		} else {
			call.Args = append(call.Args, a.Value)
		}
	}
	return call
}

// reclassify turns every name=value whose name is not a declared
// parameter into the two positional values name and value.
func reclassify(args []parsing.Argument, sig Signature) []parsing.Argument {
	out := make([]parsing.Argument, 0, len(args))
	for _, a := range args {
		if a.IsNamed() && !sig.Declares(a.Name) {
			out = append(out, parsing.Positional(a.Name), parsing.Positional(a.Value))
			continue
		}
		out = append(out, a)
	}
	return out
}

func checkArity(name string, args []parsing.Argument, sig Signature) error {
	narg := len(sig.Params)
	if len(args) <= narg {
		return nil
	}

	nreq := sig.Required()
	switch {
	case narg == 0:
		return usage.TooManyArguments(name, "None", "")
	case narg == nreq:
		return usage.TooManyArguments(name, fmt.Sprint(nreq), sig.Usage(name))
	default:
		return usage.TooManyArguments(name, fmt.Sprintf("%d to %d", nreq, narg), sig.Usage(name))
	}
}

// matchArguments walks args with a positional cursor. The cursor advances
// for named arguments too, so "cmd b=1, 2" binds 2 to the second
// parameter, not the first. Later bindings of the same parameter win.
func matchArguments(name string, args []parsing.Argument, sig Signature) (map[string]string, error) {
	values := make(map[string]string, len(args))
	for ac, a := range args {
		if !a.IsNamed() {
			if ac >= len(sig.Params) {
				return nil, usage.AmbiguousArgument(a.Value)
			}
			values[sig.Params[ac]] = a.Value
			continue
		}
		if !sig.Declares(a.Name) {
			return nil, usage.UnexpectedArgument(name, a.Name)
		}
		values[a.Name] = a.Value
	}
	return values, nil
}
