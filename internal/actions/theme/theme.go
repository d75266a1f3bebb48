// Package theme implements the theme command.
package theme

import (
	"context"

	"github.com/charmbracelet/lipgloss"

	"github.com/dualword/PyMOL/internal/binding"
	"github.com/dualword/PyMOL/internal/config"
	"github.com/dualword/PyMOL/internal/dispatchers"
	"github.com/dualword/PyMOL/internal/parsing"
	"github.com/dualword/PyMOL/internal/shortcut"
	"github.com/dualword/PyMOL/internal/ui/style"
)

// Entry returns the theme command bound to deps.
func Entry(deps Deps) dispatchers.Entry {
	names := shortcut.New(deps.ThemeNames)
	return dispatchers.Entry{
		Name:      "theme",
		Signature: binding.Fixed(1, "name"),
		Mode:      parsing.Strict,
		Category:  dispatchers.CategoryShell,
		Summary:   "List or choose the color theme",
		Doc: "Without a name, lists the themes with a preview.\n" +
			"With a name, saves it as the theme key in ~/.molshrc. A base name\n" +
			"such as ocean follows the terminal background.",
		Complete: names.Complete,
		Handler: func(_ context.Context, c binding.Call) error {
			if name := c.Arg("name", ""); name != "" {
				return setTheme(parsing.StripQuotes(name), names, deps)
			}
			return list(deps)
		},
	}
}

func list(deps Deps) error {
	current, _ := deps.Get("theme")
	current = style.ResolveThemeName(current)

	_, _ = deps.Println("Available themes (* = current)")
	_, _ = deps.Println("")

	for _, name := range deps.ThemeNames {
		cfg, ok := deps.Themes[name]
		if !ok {
			continue
		}
		marker := "  "
		if name == current {
			marker = deps.Styler.Success("* ")
		}
		_, _ = deps.Printf("%s%-14s  %s\n", marker, name, renderColorPreview(cfg))
	}

	_, _ = deps.Println("")
	_, _ = deps.Println("Use 'theme <name>' to change")
	return nil
}

func setTheme(name string, names *shortcut.Index, deps Deps) error {
	full, err := names.Expand(name, "theme")
	if err != nil {
		return err
	}

	err = deps.Edit(func(lines []string) ([]string, error) {
		lines, _ = config.Set(lines, "theme", full)
		return lines, nil
	})
	if err != nil {
		return err
	}

	_, _ = deps.Printf("theme set to %s\n", deps.Styler.Success(full))
	if deps.Changed != nil {
		deps.Changed(full)
	}
	return nil
}

// renderColorPreview returns colored text samples for a theme.
func renderColorPreview(cfg style.ColorConfig) string {
	colorize := func(text, color string) string {
		if color == "" || color == "bold" {
			return lipgloss.NewStyle().Bold(true).Render(text)
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(text)
	}

	return colorize("success ", cfg.Success) +
		colorize("warning ", cfg.Warning) +
		colorize("error ", cfg.Error) +
		colorize("info ", cfg.Info) +
		colorize("muted ", cfg.Muted) +
		colorize("molsh>", cfg.Prompt)
}
