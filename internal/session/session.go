// Package session holds the mutable state commands operate on: the
// settings table, the color palette and the quit flag.
package session

import (
	"errors"
	"sort"
	"sync"

	"github.com/dualword/PyMOL/internal/shortcut"
)

// Session is safe for concurrent use.
type Session struct {
	mu       sync.RWMutex
	table    map[string]Setting
	values   map[string]string
	names    *shortcut.Index
	palette  *Palette
	quitting bool
}

// New returns a session with DefaultSettings and the built-in palette.
func New() *Session {
	s := &Session{
		table:   make(map[string]Setting, len(DefaultSettings)),
		values:  make(map[string]string, len(DefaultSettings)),
		palette: NewPalette(),
	}
	names := make([]string, 0, len(DefaultSettings))
	for _, def := range DefaultSettings {
		s.table[def.Name] = def
		s.values[def.Name] = def.Default
		names = append(names, def.Name)
	}
	s.names = shortcut.New(names)
	return s
}

// Palette returns the session colors.
func (s *Session) Palette() *Palette {
	return s.palette
}

// Set assigns a setting. Both the setting name and boolean values may be
// abbreviated. It returns the resolved setting and the stored value.
func (s *Session) Set(name, value string) (Setting, string, error) {
	full, err := s.names.Expand(name, "setting")
	if err != nil {
		return Setting{}, "", err
	}
	def := s.table[full]

	v, err := s.normalize(def, value)
	if err != nil {
		return def, "", err
	}

	s.mu.Lock()
	s.values[full] = v
	s.mu.Unlock()
	return def, v, nil
}

// Get returns a setting and its current value.
func (s *Session) Get(name string) (Setting, string, error) {
	full, err := s.names.Expand(name, "setting")
	if err != nil {
		return Setting{}, "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table[full], s.values[full], nil
}

// Bool returns the value of a boolean setting by exact name. Unknown or
// non-boolean settings read as false.
func (s *Session) Bool(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	def, ok := s.table[name]
	if !ok || def.Type != TypeBool {
		return false
	}
	return s.values[name] == "on"
}

// Settings returns the settings table sorted by name.
func (s *Session) Settings() []Setting {
	out := make([]Setting, 0, len(s.table))
	for _, def := range s.table {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CompleteSetting returns the setting names starting with prefix.
func (s *Session) CompleteSetting(prefix string) []string {
	return s.names.Complete(prefix)
}

// Seed applies every entry of values whose key is a setting name.
// Other keys are ignored. Invalid values are collected and skipped.
func (s *Session) Seed(values map[string]string) error {
	var errs []error
	for key, value := range values {
		if _, ok := s.table[key]; !ok {
			continue
		}
		if _, _, err := s.Set(key, value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RequestQuit asks the shell or script runner to stop after the current
// statement.
func (s *Session) RequestQuit() {
	s.mu.Lock()
	s.quitting = true
	s.mu.Unlock()
}

// QuitRequested reports whether RequestQuit was called.
func (s *Session) QuitRequested() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quitting
}
