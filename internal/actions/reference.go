package actions

import (
	"context"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/dualword/PyMOL/internal/binding"
	"github.com/dualword/PyMOL/internal/dispatchers"
	"github.com/dualword/PyMOL/internal/parsing"
)

// commandRef is one command in the exported reference.
type commandRef struct {
	Name     string     `yaml:"name"`
	Usage    string     `yaml:"usage"`
	Mode     string     `yaml:"mode"`
	Category string     `yaml:"category"`
	Summary  string     `yaml:"summary,omitempty"`
	Doc      string     `yaml:"doc,omitempty"`
	Params   []paramRef `yaml:"params,omitempty"`
	Variadic bool       `yaml:"variadic,omitempty"`
	Synonyms []string   `yaml:"synonyms,omitempty"`
}

type paramRef struct {
	Name     string `yaml:"name"`
	Required bool   `yaml:"required"`
}

type reference struct {
	Version  string       `yaml:"version"`
	Commands []commandRef `yaml:"commands"`
}

func writeRefEntry(deps Deps) dispatchers.Entry {
	return dispatchers.Entry{
		Name:      "write_ref",
		Signature: binding.Fixed(0, "filename"),
		Mode:      parsing.Strict,
		Category:  dispatchers.CategoryShell,
		Summary:   "Write the command reference as YAML",
		Doc:       "Writes every command with its usage line, binding mode and parameters.",
		Handler: func(_ context.Context, c binding.Call) error {
			filename := parsing.StripQuotes(c.Arg("filename", ""))
			data, err := buildReference(deps)
			if err != nil {
				return err
			}
			if err := deps.WriteFile(filename, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", filename, err)
			}
			_, _ = deps.Printf(" Reference: %d commands written to %s.\n", len(deps.Registry.Entries()), filename)
			return nil
		},
	}
}

func buildReference(deps Deps) ([]byte, error) {
	synonymsOf := make(map[string][]string)
	for _, name := range deps.Registry.Synonyms() {
		if e, ok := deps.Registry.Lookup(name); ok {
			synonymsOf[e.Name] = append(synonymsOf[e.Name], name)
		}
	}

	ref := reference{Version: deps.Version()}
	for _, e := range deps.Registry.Entries() {
		cr := commandRef{
			Name:     e.Name,
			Usage:    e.Usage(),
			Mode:     e.Mode.String(),
			Category: e.Category.String(),
			Summary:  e.Summary,
			Doc:      e.Doc,
			Variadic: e.Signature.Open(),
		}
		required := e.Signature.Required()
		for i, p := range e.Signature.Params {
			cr.Params = append(cr.Params, paramRef{Name: p, Required: i < required})
		}
		if syn := synonymsOf[e.Name]; len(syn) > 0 {
			sort.Strings(syn)
			cr.Synonyms = syn
		}
		ref.Commands = append(ref.Commands, cr)
	}

	return yaml.Marshal(ref)
}
