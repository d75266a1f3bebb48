// Package style renders molsh's semantic colors with lipgloss.
//
// Text is colored by role (success, error, prompt and so on), never by a
// literal color. A disabled palette returns its input unchanged.
package style

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// envPrefix prefixes every environment override read by this package.
const envPrefix = "MOLSH_"

// Role names the purpose of a piece of text.
type Role int

const (
	RoleSuccess Role = iota
	RoleWarning
	RoleError
	RoleInfo
	RoleMuted
	RoleHeader
	RolePrompt
	numRoles
)

// Palette maps each role to a lipgloss style.
type Palette struct {
	enabled bool
	colors  ColorConfig
	styles  [numRoles]lipgloss.Style
}

// NewPalette builds a palette from the theme and color_* keys in cfg.
// NO_COLOR or MOLSH_NO_COLOR in the environment disable it whatever
// enable says.
func NewPalette(enable bool, cfg map[string]string) *Palette {
	p := &Palette{}
	if !enable || noColor() {
		return p
	}
	p.enabled = true
	p.colors = LoadColorConfig(cfg)

	// The palette always emits 256-color codes; the pager and the
	// prompt decide where they end up.
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI256)
	for role := Role(0); role < numRoles; role++ {
		p.styles[role] = makeStyle(r, p.colors.get(role))
	}
	return p
}

func noColor() bool {
	return os.Getenv("NO_COLOR") != "" || os.Getenv(envPrefix+"NO_COLOR") != ""
}

// makeStyle turns a color value into a style: "bold", or an ANSI color
// number from 0 to 255.
func makeStyle(r *lipgloss.Renderer, value string) lipgloss.Style {
	if value == "bold" {
		return r.NewStyle().Bold(true)
	}
	return r.NewStyle().Foreground(lipgloss.Color(value))
}

// Enabled reports whether the palette emits escape codes.
func (p *Palette) Enabled() bool { return p.enabled }

// Colors returns the resolved colors, or the zero value when disabled.
func (p *Palette) Colors() ColorConfig { return p.colors }

// Render styles text for role.
func (p *Palette) Render(role Role, text string) string {
	if !p.enabled || text == "" || role < 0 || role >= numRoles {
		return text
	}
	return p.styles[role].Render(text)
}

var current atomic.Pointer[Palette]

func init() {
	current.Store(&Palette{})
}

// Init installs the palette used by the package-level helpers and by
// Stylers created with NewStyler. It is called again whenever the theme
// changes.
func Init(enable bool, cfg map[string]string) {
	current.Store(NewPalette(enable, cfg))
}

// Current returns the installed palette.
func Current() *Palette { return current.Load() }

// Error styles text as an error with the installed palette.
func Error(text string) string { return Current().Render(RoleError, text) }

// Muted styles secondary text with the installed palette.
func Muted(text string) string { return Current().Render(RoleMuted, text) }

// Prompt styles the interactive prompt with the installed palette.
func Prompt(text string) string { return Current().Render(RolePrompt, text) }
