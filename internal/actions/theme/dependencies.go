package theme

import (
	"github.com/dualword/PyMOL/internal/config"
	"github.com/dualword/PyMOL/internal/domain"
	"github.com/dualword/PyMOL/internal/ui/style"
)

type Deps struct {
	Edit       func(fn func(lines []string) ([]string, error)) error
	Get        func(string) (string, bool)
	Printf     func(string, ...any) (int, error)
	Println    func(...any) (int, error)
	Styler     domain.Styler
	ThemeNames []string
	Themes     map[string]style.ColorConfig

	// Changed is called with the new theme name after it is saved.
	Changed func(name string)
}

func DefaultDeps(out domain.OutputWriter, s domain.Styler) Deps {
	return Deps{
		Edit:       config.Edit,
		Get:        config.Get,
		Printf:     out.Printf,
		Println:    out.Println,
		Styler:     s,
		ThemeNames: append(append([]string{}, style.BaseThemeNames...), style.ThemeNames...),
		Themes:     style.Themes,
	}
}
