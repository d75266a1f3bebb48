package style

import "github.com/dualword/PyMOL/internal/domain"

// Styler adapts a Palette to domain.Styler.
type Styler struct {
	p *Palette
}

// NewStyler returns a Styler that follows the palette installed by Init,
// so a theme change reaches every command holding it.
func NewStyler() *Styler {
	return &Styler{}
}

// StylerFor returns a Styler pinned to p.
func StylerFor(p *Palette) *Styler {
	return &Styler{p: p}
}

func (s *Styler) palette() *Palette {
	if s.p != nil {
		return s.p
	}
	return Current()
}

func (s *Styler) Enabled() bool { return s.palette().Enabled() }

func (s *Styler) Success(text string) string { return s.palette().Render(RoleSuccess, text) }
func (s *Styler) Warning(text string) string { return s.palette().Render(RoleWarning, text) }
func (s *Styler) Error(text string) string   { return s.palette().Render(RoleError, text) }
func (s *Styler) Info(text string) string    { return s.palette().Render(RoleInfo, text) }
func (s *Styler) Muted(text string) string   { return s.palette().Render(RoleMuted, text) }
func (s *Styler) Header(text string) string  { return s.palette().Render(RoleHeader, text) }

// NopStyler returns text unchanged.
type NopStyler struct{}

func (NopStyler) Enabled() bool { return false }

func (NopStyler) Success(text string) string { return text }
func (NopStyler) Warning(text string) string { return text }
func (NopStyler) Error(text string) string   { return text }
func (NopStyler) Info(text string) string    { return text }
func (NopStyler) Muted(text string) string   { return text }
func (NopStyler) Header(text string) string  { return text }

var (
	_ domain.Styler = (*Styler)(nil)
	_ domain.Styler = NopStyler{}
)
