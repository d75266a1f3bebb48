// Package shortcut resolves abbreviated keywords against a fixed set of
// candidate strings.
//
// A candidate resolves from any prefix that no other candidate shares. An
// exact match always wins, even when it is also a prefix of other
// candidates. Matching is case-sensitive.
package shortcut

import (
	"sort"
	"strings"

	"github.com/dualword/PyMOL/internal/usage"
)

// Index is an immutable-by-convention snapshot of candidate strings.
// Mutating methods rebuild the index wholesale. Index is not safe for
// concurrent mutation; owners that mutate it guard it themselves.
type Index struct {
	keys   []string
	exact  map[string]struct{}
	sorted []string
}

// New builds an index from candidates. Duplicates are dropped, keeping the
// first occurrence.
func New(candidates []string) *Index {
	idx := &Index{}
	idx.rebuild(candidates)
	return idx
}

func (idx *Index) rebuild(candidates []string) {
	keys := make([]string, 0, len(candidates))
	exact := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if _, dup := exact[c]; dup {
			continue
		}
		exact[c] = struct{}{}
		keys = append(keys, c)
	}

	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	idx.keys = keys
	idx.exact = exact
	idx.sorted = sorted
}

// Keys returns the candidates in insertion order.
func (idx *Index) Keys() []string {
	return append([]string(nil), idx.keys...)
}

// Len returns the number of candidates.
func (idx *Index) Len() int {
	return len(idx.keys)
}

// Has reports whether name is a candidate.
func (idx *Index) Has(name string) bool {
	_, ok := idx.exact[name]
	return ok
}

// Append adds a candidate.
func (idx *Index) Append(name string) {
	if idx.Has(name) {
		return
	}
	idx.rebuild(append(idx.Keys(), name))
}

// Remove drops a candidate. It is a no-op for unknown names.
func (idx *Index) Remove(name string) {
	if !idx.Has(name) {
		return
	}
	keys := make([]string, 0, len(idx.keys)-1)
	for _, k := range idx.keys {
		if k != name {
			keys = append(keys, k)
		}
	}
	idx.rebuild(keys)
}

// Interpret resolves s against the candidates.
func (idx *Index) Interpret(s string) Result {
	if idx.Has(s) {
		return Result{Kind: Unique, Match: s}
	}

	matches := idx.Complete(s)
	switch len(matches) {
	case 0:
		return Result{Kind: NotFound}
	case 1:
		return Result{Kind: Unique, Match: matches[0]}
	default:
		return Result{Kind: Ambiguous, Candidates: matches}
	}
}

// Complete returns every candidate starting with prefix, sorted.
func (idx *Index) Complete(prefix string) []string {
	start := sort.SearchStrings(idx.sorted, prefix)
	var out []string
	for _, k := range idx.sorted[start:] {
		if !strings.HasPrefix(k, prefix) {
			break
		}
		out = append(out, k)
	}
	return out
}

// Expand resolves an enumerated option value. what names the kind of value
// in diagnostics ("setting", "color", ...).
func (idx *Index) Expand(value, what string) (string, error) {
	res := idx.Interpret(value)
	switch res.Kind {
	case Unique:
		return res.Match, nil
	case Ambiguous:
		return "", usage.AmbiguousValue(what, value, res.Candidates)
	default:
		return "", usage.UnknownValue(what, value)
	}
}
