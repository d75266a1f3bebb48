package actions

import (
	"github.com/dualword/PyMOL/internal/dispatchers"
)

// synonyms maps second keywords to the command they stand for.
var synonyms = map[string]string{
	"set_colour": "set_color",
	"get_colour": "get_color",
}

// Entries returns every builtin command bound to deps.
func Entries(deps Deps) []dispatchers.Entry {
	return []dispatchers.Entry{
		helpEntry(deps),
		quitEntry(deps),
		versionEntry(deps),
		setEntry(deps),
		getEntry(deps),
		settingsEntry(deps),
		setColorEntry(deps),
		getColorEntry(deps),
		colorListEntry(deps),
		runEntry(deps),
		aliasEntry(deps),
		echoEntry(deps),
		systemEntry(deps),
		historyEntry(deps),
		writeRefEntry(deps),
	}
}

// Register adds the builtins, then extra, then the synonyms to r.
func Register(r *dispatchers.Registry, deps Deps, extra ...dispatchers.Entry) error {
	for _, e := range Entries(deps) {
		r.Register(e)
	}
	for _, e := range extra {
		r.Register(e)
	}
	for name, target := range synonyms {
		if err := r.Synonym(name, target); err != nil {
			return err
		}
	}
	return nil
}
