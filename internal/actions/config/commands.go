// Package config implements the commands that read and edit ~/.molshrc.
package config

import (
	"context"
	"sort"
	"strings"

	"github.com/dualword/PyMOL/internal/binding"
	"github.com/dualword/PyMOL/internal/config"
	"github.com/dualword/PyMOL/internal/dispatchers"
	"github.com/dualword/PyMOL/internal/domain"
	"github.com/dualword/PyMOL/internal/parsing"
	"github.com/dualword/PyMOL/internal/usage"
)

// Entries returns the config commands bound to deps.
func Entries(deps Deps) []dispatchers.Entry {
	completeKey := func(prefix string) []string {
		var out []string
		for _, k := range domain.ConfigKeys {
			if strings.HasPrefix(k.Name, prefix) {
				out = append(out, k.Name)
			}
		}
		sort.Strings(out)
		return out
	}

	return []dispatchers.Entry{
		{
			Name:      "config_get",
			Signature: binding.Fixed(0, "key"),
			Mode:      parsing.Strict,
			Category:  dispatchers.CategoryShell,
			Summary:   "Print a configuration value",
			Doc:       "Prints the value of key from ~/.molshrc, or its default.",
			Complete:  completeKey,
			Handler: func(_ context.Context, c binding.Call) error {
				return get(c, deps)
			},
		},
		{
			Name:      "config_set",
			Signature: binding.Fixed(0, "key", "value"),
			Mode:      parsing.Strict,
			Category:  dispatchers.CategoryShell,
			Summary:   "Write a configuration value",
			Doc:       "Writes key=value to ~/.molshrc. Only known keys are accepted.",
			Complete:  completeKey,
			Handler: func(_ context.Context, c binding.Call) error {
				return set(c, deps)
			},
		},
		{
			Name:      "config_unset",
			Signature: binding.Fixed(0, "key"),
			Mode:      parsing.Strict,
			Category:  dispatchers.CategoryShell,
			Summary:   "Remove a configuration value",
			Doc:       "Removes key from ~/.molshrc so its default applies again.",
			Complete:  completeKey,
			Handler: func(_ context.Context, c binding.Call) error {
				return unset(c, deps)
			},
		},
		{
			Name:      "config_list",
			Signature: binding.Fixed(0),
			Mode:      parsing.Strict,
			Category:  dispatchers.CategoryShell,
			Summary:   "List configuration values",
			Doc: "Prints every key with its effective value. The first call writes a\n" +
				"commented ~/.molshrc listing the defaults.",
			Handler: func(_ context.Context, c binding.Call) error {
				return list(c, deps)
			},
		},
	}
}

func get(c binding.Call, deps Deps) error {
	key := parsing.StripQuotes(c.Arg("key", ""))

	value, found := deps.Get(key)
	if !found {
		return usage.InvalidConfigKey(key)
	}

	_, _ = deps.Println(value)
	return nil
}

func set(c binding.Call, deps Deps) error {
	key := parsing.StripQuotes(c.Arg("key", ""))
	value := parsing.StripQuotes(c.Arg("value", ""))

	if !deps.IsValidKey(key) {
		return usage.InvalidConfigKey(key)
	}

	var updated bool
	err := deps.Edit(func(lines []string) ([]string, error) {
		lines, updated = config.Set(lines, key, value)
		return lines, nil
	})
	if err != nil {
		return err
	}

	action := "added"
	if updated {
		action = "updated"
	}
	_, _ = deps.Printf("%s %s=%s\n", action, key, value)

	if deps.Changed != nil {
		deps.Changed(key, value)
	}
	return nil
}

func unset(c binding.Call, deps Deps) error {
	key := parsing.StripQuotes(c.Arg("key", ""))

	err := deps.Edit(func(lines []string) ([]string, error) {
		lines, removed := config.Unset(lines, key)
		if !removed {
			return nil, usage.InvalidConfigKey(key)
		}
		return lines, nil
	})
	if err != nil {
		return err
	}

	_, _ = deps.Printf("unset %s\n", key)

	if deps.Changed != nil {
		value, _ := deps.Get(key)
		deps.Changed(key, value)
	}
	return nil
}

func list(_ binding.Call, deps Deps) error {
	path, wrote, err := deps.EnsureFile()
	if err != nil {
		return err
	}
	if wrote {
		_, _ = deps.Printf("wrote defaults to %s\n", path)
	}

	values, err := deps.GetAll()
	if err != nil {
		return err
	}
	for _, key := range domain.ConfigKeys {
		if value := values[key.Name]; value != "" || !key.Optional {
			_, _ = deps.Printf("%s=%s\n", key.Name, value)
		}
	}
	return nil
}
