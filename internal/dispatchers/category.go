package dispatchers

import (
	"cmp"
	"slices"
)

// CommandCategory groups commands in the help index.
type CommandCategory int

const (
	CategoryUncategorized CommandCategory = iota
	CategoryGetStarted
	CategorySettings
	CategoryColors
	CategoryScripting
	CategoryShell
	CategoryAlias // user-defined aliases
)

// categories lists the help index sections in display order. The commands
// in lead open their section in that order and the rest follow by name.
var categories = []struct {
	cat   CommandCategory
	title string
	lead  []string
}{
	{CategoryGetStarted, "get started", []string{"help", "quit"}},
	{CategorySettings, "inspect and change settings", []string{"set", "get"}},
	{CategoryColors, "named colors", []string{"set_color", "get_color", "color_list"}},
	{CategoryScripting, "scripting", []string{"run", "alias", "echo"}},
	{CategoryShell, "configure the shell", []string{"history"}},
	{CategoryAlias, "aliases", nil},
	{CategoryUncategorized, "other commands", nil},
}

func (c CommandCategory) String() string {
	for _, s := range categories {
		if s.cat == c {
			return s.title
		}
	}
	return "other commands"
}

// sortSection orders one section's entries: lead names first, then the
// rest alphabetically.
func sortSection(lead []string, entries []Entry) {
	rank := func(name string) int {
		if i := slices.Index(lead, name); i >= 0 {
			return i
		}
		return len(lead)
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return cmp.Or(cmp.Compare(rank(a.Name), rank(b.Name)), cmp.Compare(a.Name, b.Name))
	})
}
