package shortcut

// Kind discriminates the three outcomes of a shortcut lookup.
type Kind int

const (
	NotFound Kind = iota
	Unique
	Ambiguous
)

func (k Kind) String() string {
	switch k {
	case Unique:
		return "unique"
	case Ambiguous:
		return "ambiguous"
	default:
		return "not found"
	}
}

// Result is the outcome of resolving a partial string against an Index.
// Match is set for Unique results, Candidates for Ambiguous ones.
type Result struct {
	Kind       Kind
	Match      string
	Candidates []string
}

// Found reports whether the lookup produced exactly one match.
func (r Result) Found() bool {
	return r.Kind == Unique
}
