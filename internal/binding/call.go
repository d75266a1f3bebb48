package binding

// Call holds the arguments bound for one handler invocation.
//
// Under checked modes every value is keyed by parameter name and Args is
// empty. Under NoCheck, Args and Kwargs keep the split exactly as parsed.
type Call struct {
	Args   []string
	Kwargs map[string]string
}

// Has reports whether a value was bound for name.
func (c Call) Has(name string) bool {
	_, ok := c.Kwargs[name]
	return ok
}

// Arg returns the value bound for name, or def when none was.
func (c Call) Arg(name, def string) string {
	if v, ok := c.Kwargs[name]; ok {
		return v
	}
	return def
}

// Positional returns the i-th positional value, or def when absent.
func (c Call) Positional(i int, def string) string {
	if i >= 0 && i < len(c.Args) {
		return c.Args[i]
	}
	return def
}

// Len returns the total number of bound values.
func (c Call) Len() int {
	return len(c.Args) + len(c.Kwargs)
}
