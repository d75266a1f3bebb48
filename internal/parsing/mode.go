package parsing

import "fmt"

// Mode is the binding mode of a command. It decides how the argument text of
// a command line is tokenized and how the parsed arguments are matched to the
// command's declared parameters.
type Mode int

// The numeric values are stable: command tables written against the legacy
// parser refer to them.
const (
	Simple   Mode = 0  // legacy split on the entry separator (deprecated)
	Single   Mode = 1  // legacy single argument
	Run      Mode = 2  // legacy run command
	Spawn    Mode = 3  // legacy spawn and fork commands
	Abort    Mode = 4  // terminates a command script
	NoCheck  Mode = 10 // no error checking
	Strict   Mode = 11 // strict name to parameter checking
	Legacy   Mode = 12 // str1=val1,... is read as str1,val1,...
	Literal  Mode = 20 // the whole argument text is one literal string
	Literal1 Mode = 21 // one regular argument, then a literal string
	Literal2 Mode = 22 // two regular arguments, then a literal string
)

// LiteralN returns the literal mode that takes n regular arguments before
// the literal remainder.
func LiteralN(n int) Mode {
	if n < 0 {
		n = 0
	}
	return Literal + Mode(n)
}

// IsLiteral reports whether m belongs to the literal family.
func (m Mode) IsLiteral() bool {
	return m >= Literal
}

// LiteralThreshold returns the number of regular arguments read before the
// literal remainder, and false for non-literal modes.
func (m Mode) LiteralThreshold() (int, bool) {
	if !m.IsLiteral() {
		return 0, false
	}
	return int(m - Literal), true
}

// Checked reports whether binding validates arity and names in this mode.
func (m Mode) Checked() bool {
	return m != NoCheck
}

func (m Mode) String() string {
	switch m {
	case Simple:
		return "simple"
	case Single:
		return "single"
	case Run:
		return "run"
	case Spawn:
		return "spawn"
	case Abort:
		return "abort"
	case NoCheck:
		return "no_check"
	case Strict:
		return "strict"
	case Legacy:
		return "legacy"
	case Literal:
		return "literal"
	}
	if n, ok := m.LiteralThreshold(); ok {
		return fmt.Sprintf("literal%d", n)
	}
	return fmt.Sprintf("mode(%d)", int(m))
}
