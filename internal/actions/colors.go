package actions

import (
	"context"

	"github.com/dualword/PyMOL/internal/binding"
	"github.com/dualword/PyMOL/internal/dispatchers"
	"github.com/dualword/PyMOL/internal/parsing"
	"github.com/dualword/PyMOL/internal/session"
)

func setColorEntry(deps Deps) dispatchers.Entry {
	return dispatchers.Entry{
		Name:      "set_color",
		Signature: binding.Fixed(0, "name", "rgb"),
		Mode:      parsing.Legacy,
		Category:  dispatchers.CategoryColors,
		Summary:   "Define or redefine a named color",
		Doc: "rgb is three components from 0 to 1, or 0 to 255, written as\n" +
			"(r, g, b) or \"r g b\":\n" +
			"   set_color teal, (0, 0.5, 0.5)",
		Complete: deps.Session.Palette().Complete,
		Handler: func(_ context.Context, c binding.Call) error {
			name := parsing.StripQuotes(c.Arg("name", ""))
			rgb, err := session.ParseRGB(c.Arg("rgb", ""))
			if err != nil {
				return err
			}
			if deps.Session.Palette().Set(name, rgb) {
				_, _ = deps.Printf(" Color: \"%s\" defined as %s.\n", name, rgb)
			} else {
				_, _ = deps.Printf(" Color: \"%s\" redefined as %s.\n", name, rgb)
			}
			return nil
		},
	}
}

func getColorEntry(deps Deps) dispatchers.Entry {
	return dispatchers.Entry{
		Name:      "get_color",
		Signature: binding.Fixed(0, "name"),
		Mode:      parsing.Strict,
		Category:  dispatchers.CategoryColors,
		Summary:   "Print the components of a named color",
		Complete:  deps.Session.Palette().Complete,
		Handler: func(_ context.Context, c binding.Call) error {
			name, rgb, err := deps.Session.Palette().Get(parsing.StripQuotes(c.Arg("name", "")))
			if err != nil {
				return err
			}
			_, _ = deps.Printf(" %s = %s\n", name, rgb)
			return nil
		},
	}
}

func colorListEntry(deps Deps) dispatchers.Entry {
	return dispatchers.Entry{
		Name:      "color_list",
		Signature: binding.Fixed(0),
		Mode:      parsing.Strict,
		Category:  dispatchers.CategoryColors,
		Summary:   "List the named colors",
		Handler: func(context.Context, binding.Call) error {
			p := deps.Session.Palette()
			for _, name := range p.Sorted() {
				_, rgb, err := p.Get(name)
				if err != nil {
					return err
				}
				_, _ = deps.Printf(" %-12s %s\n", name, rgb)
			}
			return nil
		},
	}
}
