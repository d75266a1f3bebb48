package parsing

// Argument is one parsed argument of a command line. Name is empty for
// positional arguments. Value keeps any quote characters it was written with.
type Argument struct {
	Name  string
	Value string
}

// Positional returns an unnamed argument.
func Positional(value string) Argument {
	return Argument{Value: value}
}

// Named returns a keyword argument.
func Named(name, value string) Argument {
	return Argument{Name: name, Value: value}
}

// IsNamed reports whether the argument was written as name=value.
func (a Argument) IsNamed() bool {
	return a.Name != ""
}

func (a Argument) String() string {
	if a.Name == "" {
		return a.Value
	}
	return a.Name + "=" + a.Value
}

// Values returns the values of args in order.
func Values(args []Argument) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = a.Value
	}
	return out
}
