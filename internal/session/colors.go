package session

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/dualword/PyMOL/internal/parsing"
	"github.com/dualword/PyMOL/internal/shortcut"
)

// RGB is a color with components in [0, 1].
type RGB [3]float64

func (c RGB) String() string {
	return fmt.Sprintf("[%.3f, %.3f, %.3f]", c[0], c[1], c[2])
}

// ParseRGB reads three components separated by commas or spaces, with or
// without surrounding brackets. When any component exceeds 1 all of them
// are taken as 0-255 values.
func ParseRGB(s string) (RGB, error) {
	s = parsing.StripQuotes(strings.TrimSpace(s))
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 3 {
		return RGB{}, fmt.Errorf("expected three color components, got %d", len(fields))
	}

	var c RGB
	scale := false
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return RGB{}, fmt.Errorf("invalid color component '%s'", f)
		}
		if v < 0 {
			return RGB{}, fmt.Errorf("negative color component '%s'", f)
		}
		if v > 1 {
			scale = true
		}
		c[i] = v
	}
	if scale {
		for i := range c {
			c[i] /= 255
		}
	}
	return c, nil
}

var defaultColors = []struct {
	name string
	rgb  RGB
}{
	{"white", RGB{1, 1, 1}},
	{"black", RGB{0, 0, 0}},
	{"red", RGB{1, 0, 0}},
	{"green", RGB{0, 1, 0}},
	{"blue", RGB{0, 0, 1}},
	{"yellow", RGB{1, 1, 0}},
	{"cyan", RGB{0, 1, 1}},
	{"magenta", RGB{1, 0, 1}},
	{"orange", RGB{1, 0.5, 0}},
	{"grey", RGB{0.5, 0.5, 0.5}},
	{"gray", RGB{0.5, 0.5, 0.5}},
	{"salmon", RGB{1, 0.6, 0.6}},
	{"slate", RGB{0.5, 0.5, 1}},
	{"carbon", RGB{0.2, 1, 0.2}},
	{"nitrogen", RGB{0.2, 0.2, 1}},
	{"oxygen", RGB{1, 0.3, 0.3}},
}

// Palette holds named colors. Name lookups go through a shortcut index
// that is rebuilt after a new color is defined.
type Palette struct {
	mu     sync.RWMutex
	colors map[string]RGB
	order  []string
	index  *shortcut.Cache
}

// NewPalette returns a palette with the built-in colors.
func NewPalette() *Palette {
	p := &Palette{colors: make(map[string]RGB, len(defaultColors))}
	for _, c := range defaultColors {
		p.colors[c.name] = c.rgb
		p.order = append(p.order, c.name)
	}
	p.index = shortcut.NewCache(p.Names)
	return p
}

// Names returns the color names in definition order.
func (p *Palette) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Sorted returns the color names in alphabetical order.
func (p *Palette) Sorted() []string {
	names := p.Names()
	sort.Strings(names)
	return names
}

// Set defines or redefines a color. It reports whether the name is new.
func (p *Palette) Set(name string, c RGB) bool {
	p.mu.Lock()
	_, exists := p.colors[name]
	p.colors[name] = c
	if !exists {
		p.order = append(p.order, name)
	}
	p.mu.Unlock()

	if !exists {
		p.index.Invalidate()
	}
	return !exists
}

// Get resolves an abbreviated color name.
func (p *Palette) Get(name string) (string, RGB, error) {
	full, err := p.index.EnsureBuilt().Expand(name, "color")
	if err != nil {
		return "", RGB{}, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	return full, p.colors[full], nil
}

// Complete returns the color names starting with prefix.
func (p *Palette) Complete(prefix string) []string {
	return p.index.EnsureBuilt().Complete(prefix)
}
