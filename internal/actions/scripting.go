package actions

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dualword/PyMOL/internal/binding"
	"github.com/dualword/PyMOL/internal/dispatchers"
	"github.com/dualword/PyMOL/internal/parsing"
)

var errSystemDisabled = errors.New("system commands are disabled (config_set allow_system, true)")

func runEntry(deps Deps) dispatchers.Entry {
	return dispatchers.Entry{
		Name:      "run",
		Signature: binding.Fixed(0, "filename"),
		Mode:      parsing.Strict,
		Category:  dispatchers.CategoryScripting,
		Summary:   "Run a command script",
		Doc: "Runs every statement of a script file. '@filename' is a shorter\n" +
			"form of the same.",
		Handler: func(ctx context.Context, c binding.Call) error {
			return deps.RunFile(ctx, parsing.StripQuotes(c.Arg("filename", "")))
		},
	}
}

func aliasEntry(deps Deps) dispatchers.Entry {
	return dispatchers.Entry{
		Name:      "alias",
		Signature: binding.Fixed(0, "name", "command"),
		Mode:      parsing.Literal1,
		Category:  dispatchers.CategoryScripting,
		Summary:   "Define a new command that runs a command line",
		Doc: "Everything after the first comma is kept verbatim, semicolons\n" +
			"included, and run each time the alias is called:\n" +
			"   alias reset_view, set auto_zoom, on; set orthoscopic, off",
		Handler: func(_ context.Context, c binding.Call) error {
			return alias(c, deps)
		},
	}
}

func alias(c binding.Call, deps Deps) error {
	name := strings.TrimSpace(c.Arg("name", ""))
	text := strings.TrimSpace(c.Arg("command", ""))

	if !isIdentifier(name) {
		return fmt.Errorf("invalid alias name '%s'", name)
	}
	if text == "" {
		return fmt.Errorf("alias %s has no command", name)
	}

	deps.Registry.Alias(name, text)
	return nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}

func echoEntry(deps Deps) dispatchers.Entry {
	return dispatchers.Entry{
		Name:      "echo",
		Signature: binding.Variadic(),
		Mode:      parsing.NoCheck,
		Category:  dispatchers.CategoryScripting,
		Summary:   "Print the arguments",
		Doc:       "Positional arguments print first, then name=value pairs in name order.",
		Handler: func(_ context.Context, c binding.Call) error {
			words := make([]string, 0, c.Len())
			for _, a := range c.Args {
				words = append(words, parsing.StripQuotes(a))
			}
			names := make([]string, 0, len(c.Kwargs))
			for k := range c.Kwargs {
				names = append(names, k)
			}
			sort.Strings(names)
			for _, k := range names {
				words = append(words, k+"="+parsing.StripQuotes(c.Kwargs[k]))
			}
			_, _ = deps.Println(strings.Join(words, " "))
			return nil
		},
	}
}

func systemEntry(deps Deps) dispatchers.Entry {
	return dispatchers.Entry{
		Name:      "system",
		Signature: binding.Fixed(0, "command"),
		Mode:      parsing.Literal,
		Category:  dispatchers.CategoryScripting,
		Summary:   "Run a command in the operating system shell",
		Doc: "The rest of the line is passed to sh -c unchanged. Disabled\n" +
			"unless allow_system is true in ~/.molshrc.",
		Handler: func(ctx context.Context, c binding.Call) error {
			if !deps.AllowSystem() {
				return errSystemDisabled
			}
			command := c.Arg("command", "")
			if command == "" {
				return nil
			}
			return deps.Exec(ctx, command)
		},
	}
}
