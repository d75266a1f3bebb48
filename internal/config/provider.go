package config

import "github.com/dualword/PyMOL/internal/domain"

// Provider serves domain.ConfigProvider from an rc file. A nil File means
// the default rc file, looked up on every call.
type Provider struct {
	File *File
}

// NewProvider returns a Provider for the default rc file.
func NewProvider() *Provider {
	return &Provider{}
}

func (p *Provider) file() (*File, error) {
	if p.File != nil {
		return p.File, nil
	}
	return Default()
}

func (p *Provider) Get(key string) (string, bool) {
	f, err := p.file()
	if err != nil {
		return domain.GetDefaultValue(key)
	}
	return f.Get(key)
}

func (p *Provider) GetAll() (map[string]string, error) {
	f, err := p.file()
	if err != nil {
		return nil, err
	}
	return f.All()
}

func (p *Provider) Set(key, value string) error {
	return p.edit(func(lines []string) []string {
		lines, _ = Set(lines, key, value)
		return lines
	})
}

func (p *Provider) Unset(key string) error {
	return p.edit(func(lines []string) []string {
		lines, _ = Unset(lines, key)
		return lines
	})
}

func (p *Provider) edit(fn func([]string) []string) error {
	f, err := p.file()
	if err != nil {
		return err
	}
	return f.Edit(func(lines []string) ([]string, error) {
		return fn(lines), nil
	})
}

var _ domain.ConfigProvider = (*Provider)(nil)
