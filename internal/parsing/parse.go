package parsing

import (
	"strings"

	"github.com/dualword/PyMOL/internal/usage"
)

// Parse splits the argument text of one command line into an ordered list of
// arguments. line is the whole statement: the leading command keyword is
// skipped before any argument is read.
//
// Arguments are separated by commas. An argument may be named (name=value),
// a parenthesized selection with balanced parentheses (commas and semicolons
// inside are not separators), a quoted string ('''...''', '...' or "...",
// quotes kept), or a plain run of text up to the next comma or semicolon.
// In the literal modes, once the mode's count of regular arguments has been
// read, the rest of the line is returned verbatim as one final argument.
//
// Grammar violations return a *usage.Error of kind usage.ErrSyntax whose
// diagnostic points at the failing offset.
func Parse(line string, mode Mode) ([]Argument, error) {
	result := []Argument{}

	start, cc := KeywordSpan(line)
	if start == len(line) {
		return result, nil
	}

	threshold, literal := mode.LiteralThreshold()

	for {
		if literal && len(result) == threshold {
			result = append(result, Positional(strings.TrimSpace(line[cc:])))
			return result, nil
		}

		cc = skipSpace(line, cc)
		if cc == len(line) {
			break
		}

		var name string
		if n, end, ok := matchName(line, cc); ok {
			name = n
			cc = skipSpace(line, end)
		}

		if sel, ok := matchSelection(line, cc); ok {
			if sel == "" {
				return nil, usage.Syntax(line, cc)
			}
			result = append(result, Argument{Name: name, Value: sel})
			cc += len(sel)
		} else {
			end, ok := matchValue(line, cc)
			if !ok {
				return nil, usage.Syntax(line, cc)
			}
			result = append(result, Argument{Name: name, Value: strings.TrimSpace(line[cc:end])})
			cc = end
		}

		cc = skipSpace(line, cc)
		if cc < len(line) {
			end, ok := matchComma(line, cc)
			if !ok {
				return nil, usage.Syntax(line, cc)
			}
			cc = end
		}
	}

	return result, nil
}

// isSpace matches the whitespace class of the command grammar.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isNameChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// KeywordSpan returns the offsets of the command keyword: the first run of
// non-space bytes. Only ASCII whitespace separates it, so a keyword
// followed by any other byte runs on into it.
func KeywordSpan(line string) (start, end int) {
	start = skipSpace(line, 0)
	return start, skipToken(line, start)
}

// Keyword returns the command keyword of line, or "" for a blank line.
func Keyword(line string) string {
	start, end := KeywordSpan(line)
	return line[start:end]
}

// SkipSpace returns the first offset at or after i that is not whitespace.
func SkipSpace(s string, i int) int {
	return skipSpace(s, i)
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func skipToken(s string, i int) int {
	for i < len(s) && !isSpace(s[i]) {
		i++
	}
	return i
}

// matchName matches `[A-Za-z0-9_]+\s*=` at i and returns the name and the
// offset just past the '='.
func matchName(s string, i int) (string, int, bool) {
	j := i
	for j < len(s) && isNameChar(s[j]) {
		j++
	}
	if j == i {
		return "", i, false
	}
	k := skipSpace(s, j)
	if k >= len(s) || s[k] != '=' {
		return "", i, false
	}
	return s[i:j], k + 1, true
}

// matchSelection reports whether a parenthesized selection starts at i: an
// opening parenthesis with a closing one later on the same line. The
// returned selection is empty when the parentheses never balance.
func matchSelection(s string, i int) (string, bool) {
	if i >= len(s) || s[i] != '(' {
		return "", false
	}
	eol := strings.IndexByte(s[i:], '\n')
	if eol < 0 {
		eol = len(s) - i
	}
	last := strings.LastIndexByte(s[i:i+eol], ')')
	if last <= 0 {
		return "", false
	}
	sel, ok := TrimSelection(s[i : i+last+1])
	if !ok {
		return "", true
	}
	return sel, true
}

// TrimSelection returns the leading balanced parenthetical group of s, which
// must start with '('. It returns false when the parentheses never balance.
func TrimSelection(s string) (string, bool) {
	if s == "" || s[0] != '(' {
		return "", false
	}
	depth := 1
	for c := 1; c < len(s); c++ {
		switch s[c] {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 {
			return s[:c+1], true
		}
	}
	return "", false
}

// matchValue matches a triple-quoted, single-quoted or double-quoted string,
// or a run of characters other than ',' and ';', and returns its end offset.
func matchValue(s string, i int) (int, bool) {
	rest := s[i:]
	if strings.HasPrefix(rest, "'''") {
		j := 3
		for j < len(rest) && rest[j] != '\'' {
			j++
		}
		if strings.HasPrefix(rest[j:], "'''") {
			return i + j + 3, true
		}
	}
	if len(rest) > 0 && (rest[0] == '\'' || rest[0] == '"') {
		if k := strings.IndexByte(rest[1:], rest[0]); k >= 0 {
			return i + k + 2, true
		}
	}
	j := 0
	for j < len(rest) && rest[j] != ',' && rest[j] != ';' {
		j++
	}
	if j == 0 {
		return i, false
	}
	return i + j, true
}

// matchComma matches `\s*,\s*` at i.
func matchComma(s string, i int) (int, bool) {
	j := skipSpace(s, i)
	if j >= len(s) || s[j] != ',' {
		return i, false
	}
	return skipSpace(s, j+1), true
}
