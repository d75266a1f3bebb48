package style

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// ColorConfig holds a color per role: an ANSI color number (0-255) or
// "bold".
type ColorConfig struct {
	Success string
	Warning string
	Error   string
	Info    string
	Muted   string
	Header  string
	Prompt  string
}

// BaseThemeNames are the themes that follow the terminal background.
var BaseThemeNames = []string{"default", "mono", "ocean", "contrast"}

// ThemeNames are the explicit -dark and -light variants.
var ThemeNames = []string{
	"default-dark", "default-light",
	"mono-dark", "mono-light",
	"ocean-dark", "ocean-light",
	"contrast-dark", "contrast-light",
}

// Themes maps each variant to its colors. Dark variants use bright
// colors and light variants dark ones. default sticks to the 16 basic
// colors.
var Themes = map[string]ColorConfig{
	"default-dark":   {Success: "10", Warning: "11", Error: "9", Info: "14", Muted: "245", Header: "bold", Prompt: "12"},
	"default-light":  {Success: "28", Warning: "130", Error: "124", Info: "27", Muted: "243", Header: "bold", Prompt: "27"},
	"mono-dark":      {Success: "50", Warning: "229", Error: "210", Info: "50", Muted: "245", Header: "bold", Prompt: "50"},
	"mono-light":     {Success: "30", Warning: "136", Error: "124", Info: "30", Muted: "244", Header: "bold", Prompt: "30"},
	"ocean-dark":     {Success: "43", Warning: "221", Error: "174", Info: "75", Muted: "245", Header: "bold", Prompt: "39"},
	"ocean-light":    {Success: "30", Warning: "130", Error: "124", Info: "25", Muted: "244", Header: "bold", Prompt: "25"},
	"contrast-dark":  {Success: "46", Warning: "226", Error: "196", Info: "51", Muted: "250", Header: "bold", Prompt: "231"},
	"contrast-light": {Success: "22", Warning: "130", Error: "124", Info: "21", Muted: "240", Header: "bold", Prompt: "232"},
}

// colorKeys maps each color_* config key to the role it overrides.
var colorKeys = map[string]Role{
	"color_success": RoleSuccess,
	"color_warning": RoleWarning,
	"color_error":   RoleError,
	"color_info":    RoleInfo,
	"color_muted":   RoleMuted,
	"color_header":  RoleHeader,
	"color_prompt":  RolePrompt,
}

// field returns the ColorConfig slot holding role's color.
func (c *ColorConfig) field(role Role) *string {
	switch role {
	case RoleSuccess:
		return &c.Success
	case RoleWarning:
		return &c.Warning
	case RoleError:
		return &c.Error
	case RoleInfo:
		return &c.Info
	case RoleMuted:
		return &c.Muted
	case RoleHeader:
		return &c.Header
	case RolePrompt:
		return &c.Prompt
	}
	return nil
}

func (c ColorConfig) get(role Role) string {
	if f := c.field(role); f != nil {
		return *f
	}
	return ""
}

// darkBackground asks the terminal for its background; it is a variable
// so tests need no terminal.
var darkBackground = termenv.HasDarkBackground

// ResolveThemeName appends -dark or -light to a base theme name, picking
// the variant that suits the terminal background.
func ResolveThemeName(name string) string {
	if strings.HasSuffix(name, "-dark") || strings.HasSuffix(name, "-light") {
		return name
	}
	if darkBackground() {
		return name + "-dark"
	}
	return name + "-light"
}

// LoadColorConfig resolves the colors for cfg. MOLSH_THEME beats the theme
// key, and a MOLSH_COLOR_* variable beats its color_* key, which beats the
// theme. An unknown theme reads as default-dark.
func LoadColorConfig(cfg map[string]string) ColorConfig {
	name := os.Getenv(envPrefix + "THEME")
	if name == "" {
		name = cfg["theme"]
	}
	if name == "" {
		name = "default"
	}

	theme, ok := Themes[ResolveThemeName(name)]
	if !ok {
		theme = Themes["default-dark"]
	}

	for key, role := range colorKeys {
		v := os.Getenv(envPrefix + strings.ToUpper(key))
		if v == "" {
			v = cfg[key]
		}
		if v != "" {
			*theme.field(role) = v
		}
	}
	return theme
}
