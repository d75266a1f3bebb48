package dispatchers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dualword/PyMOL/internal/binding"
	"github.com/dualword/PyMOL/internal/parsing"
	"github.com/dualword/PyMOL/internal/shortcut"
	"github.com/dualword/PyMOL/internal/usage"
)

// maxAliasDepth bounds alias expansion so a self-referencing alias fails
// instead of exhausting the stack.
const maxAliasDepth = 64

// RunFunc executes command text. Aliases call it at invocation time.
type RunFunc func(ctx context.Context, text string) error

// Registry maps command keywords to entries and keeps the shortcut index
// used to resolve abbreviated keywords. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
	index   *shortcut.Index
	run     RunFunc
}

// NewRegistry returns a registry holding entries.
func NewRegistry(entries ...Entry) *Registry {
	r := &Registry{
		entries: make(map[string]Entry),
		index:   shortcut.New(nil),
	}
	for _, e := range entries {
		r.Register(e)
	}
	return r
}

// Register adds e under e.Name. An existing entry with the same name is
// replaced.
func (r *Registry) Register(e Entry) {
	e = e.withDefaults()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[e.Name] = e
	r.index.Append(e.Name)
}

// Extend registers handler under name with strict binding.
func (r *Registry) Extend(name string, handler Handler, sig binding.Signature) {
	r.Register(Entry{
		Name:      name,
		Handler:   handler,
		Signature: sig,
		Mode:      parsing.Strict,
	})
}

// Alias binds name to a parameterless command that runs text through the
// registry's RunFunc each time it is invoked. The text is not expanded
// when the alias is defined.
func (r *Registry) Alias(name, text string) {
	r.Register(Entry{
		Name:     name,
		Mode:     parsing.Strict,
		Summary:  text,
		Category: CategoryAlias,
		Handler: func(ctx context.Context, _ binding.Call) error {
			depth := aliasDepth(ctx)
			if depth >= maxAliasDepth {
				return fmt.Errorf("alias %s: nested more than %d levels", name, maxAliasDepth)
			}
			run := r.runner()
			if run == nil {
				return errors.New("no command runner configured")
			}
			return run(withAliasDepth(ctx, depth+1), text)
		},
	})
}

// Remove deletes name from the table and the shortcut index.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
	r.index.Remove(name)
}

// RemoveFromShortcutIndex keeps name resolvable by exact lookup but drops
// it from abbreviation matching and completion.
func (r *Registry) RemoveFromShortcutIndex(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.index.Remove(name)
}

// Synonym registers name as a second keyword for target. Synonyms only
// resolve exactly.
func (r *Registry) Synonym(name, target string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[target]
	if !ok {
		return usage.UnknownCommand(target)
	}
	r.entries[name] = e
	r.index.Remove(name)
	return nil
}

// Lookup returns the entry registered under exactly name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e, ok
}

// Resolve resolves a possibly abbreviated keyword. Exact keywords win,
// including ones that were removed from the shortcut index.
func (r *Registry) Resolve(keyword string) (Entry, shortcut.Result) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, ok := r.entries[keyword]; ok {
		return e, shortcut.Result{Kind: shortcut.Unique, Match: keyword}
	}

	res := r.index.Interpret(keyword)
	if res.Kind != shortcut.Unique {
		return Entry{}, res
	}
	return r.entries[res.Match], res
}

// Names returns the keywords in the shortcut index, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index.Complete("")
}

// Complete returns the indexed keywords starting with prefix.
func (r *Registry) Complete(prefix string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index.Complete(prefix)
}

// Entries returns the entries reachable through the shortcut index,
// sorted by keyword.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := r.index.Complete("")
	out := make([]Entry, 0, len(names))
	for _, n := range names {
		out = append(out, r.entries[n])
	}
	return out
}

// Synonyms returns the keywords that resolve only exactly, sorted.
func (r *Registry) Synonyms() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for name := range r.entries {
		if !r.index.Has(name) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Suggest returns indexed keywords close to a mistyped one.
func (r *Registry) Suggest(keyword string, n int) []string {
	return FindSimilarCommands(keyword, r.Names(), n)
}

// SetRunner sets the function aliases run their text through.
func (r *Registry) SetRunner(run RunFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.run = run
}

func (r *Registry) runner() RunFunc {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.run
}

type aliasDepthKey struct{}

func aliasDepth(ctx context.Context) int {
	d, _ := ctx.Value(aliasDepthKey{}).(int)
	return d
}

func withAliasDepth(ctx context.Context, depth int) context.Context {
	return context.WithValue(ctx, aliasDepthKey{}, depth)
}
