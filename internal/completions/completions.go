// Package completions completes prompt input: command keywords through
// the registry shortcut index, and the first argument through the
// command's own candidate list.
package completions

import (
	"strings"

	"github.com/dualword/PyMOL/internal/dispatchers"
	"github.com/dualword/PyMOL/internal/parsing"
)

// Completer completes against a command registry.
type Completer struct {
	registry *dispatchers.Registry
}

// New returns a Completer over registry.
func New(registry *dispatchers.Registry) *Completer {
	return &Completer{registry: registry}
}

// Result is the outcome of completing a line.
//
// Start is the byte offset in the line where the word being completed
// begins. Keyword is true when the word is a command keyword.
type Result struct {
	Candidates []string
	Start      int
	Keyword    bool
}

// Complete returns the candidates for the last word of line.
func (c *Completer) Complete(line string) Result {
	start := parsing.SkipSpace(line, statementStart(line))
	stmt := line[start:]

	_, end := parsing.KeywordSpan(stmt)
	if end == len(stmt) {
		return Result{Candidates: c.registry.Complete(stmt), Start: start, Keyword: true}
	}

	keyword := stmt[:end]
	rest := stmt[end:]
	if strings.ContainsAny(rest, ",=") {
		return Result{Start: len(line)}
	}

	argStart := parsing.SkipSpace(stmt, end)

	entry, ok := c.entry(keyword)
	if !ok || entry.Complete == nil {
		return Result{Start: start + argStart}
	}
	return Result{Candidates: entry.Complete(stmt[argStart:]), Start: start + argStart}
}

// Apply completes line in place. A single candidate replaces the word,
// followed by a space after a keyword. Several candidates extend the word
// to their common prefix. It returns the new line and the candidates.
func (c *Completer) Apply(line string) (string, []string) {
	res := c.Complete(line)
	switch len(res.Candidates) {
	case 0:
		return line, nil
	case 1:
		out := line[:res.Start] + res.Candidates[0]
		if res.Keyword {
			out += " "
		}
		return out, res.Candidates
	default:
		prefix := CommonPrefix(res.Candidates)
		if len(prefix) > len(line)-res.Start {
			return line[:res.Start] + prefix, res.Candidates
		}
		return line, res.Candidates
	}
}

func (c *Completer) entry(keyword string) (dispatchers.Entry, bool) {
	e, res := c.registry.Resolve(keyword)
	return e, res.Found()
}

// CommonPrefix returns the longest prefix shared by all of words.
func CommonPrefix(words []string) string {
	if len(words) == 0 {
		return ""
	}
	prefix := words[0]
	for _, w := range words[1:] {
		for !strings.HasPrefix(w, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}

// statementStart returns the offset just past the last semicolon that is
// not inside quotes, or 0.
func statementStart(line string) int {
	var quote byte
	start := 0
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"':
			quote = ch
		case ch == ';':
			start = i + 1
		}
	}
	return start
}
