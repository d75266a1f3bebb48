package actions

import (
	"context"

	"github.com/dualword/PyMOL/internal/binding"
	"github.com/dualword/PyMOL/internal/dispatchers"
	"github.com/dualword/PyMOL/internal/parsing"
)

func setEntry(deps Deps) dispatchers.Entry {
	return dispatchers.Entry{
		Name:      "set",
		Signature: binding.Fixed(1, "name", "value"),
		Mode:      parsing.Legacy,
		Category:  dispatchers.CategorySettings,
		Summary:   "Change a setting",
		Doc: "Setting names may be abbreviated. Booleans accept yes/no, on/off,\n" +
			"true/false and 1/0, abbreviated too. With no value the setting\n" +
			"is turned on. 'set name=value' is accepted.",
		Complete: deps.Session.CompleteSetting,
		Handler: func(_ context.Context, c binding.Call) error {
			def, v, err := deps.Session.Set(c.Arg("name", ""), c.Arg("value", "1"))
			if err != nil {
				return err
			}
			_, _ = deps.Printf(" Setting: %s set to %s.\n", def.Name, v)
			return nil
		},
	}
}

func getEntry(deps Deps) dispatchers.Entry {
	return dispatchers.Entry{
		Name:      "get",
		Signature: binding.Fixed(0, "name"),
		Mode:      parsing.Strict,
		Category:  dispatchers.CategorySettings,
		Summary:   "Print a setting",
		Complete:  deps.Session.CompleteSetting,
		Handler: func(_ context.Context, c binding.Call) error {
			def, v, err := deps.Session.Get(c.Arg("name", ""))
			if err != nil {
				return err
			}
			_, _ = deps.Printf(" %s = %s\n", def.Name, v)
			return nil
		},
	}
}

func settingsEntry(deps Deps) dispatchers.Entry {
	return dispatchers.Entry{
		Name:      "setting_list",
		Signature: binding.Fixed(0),
		Mode:      parsing.Strict,
		Category:  dispatchers.CategorySettings,
		Summary:   "List every setting with its type and value",
		Handler: func(context.Context, binding.Call) error {
			for _, def := range deps.Session.Settings() {
				_, v, err := deps.Session.Get(def.Name)
				if err != nil {
					return err
				}
				_, _ = deps.Printf(" %-22s %-7s %s\n", def.Name, def.Type, v)
			}
			return nil
		},
	}
}
