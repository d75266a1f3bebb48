package config

import "github.com/dualword/PyMOL/internal/domain"

// Get returns the value of key from the rc file, or its default. It
// reports false only for keys molsh does not know and the file does not set.
func (f *File) Get(key string) (string, bool) {
	if values, err := f.Values(); err == nil {
		if v, ok := values[key]; ok {
			return v, true
		}
	}
	return domain.GetDefaultValue(key)
}

// All returns every known key's default overlaid with the file's values.
// The defaults are still returned when the file cannot be read.
func (f *File) All() (map[string]string, error) {
	out := make(map[string]string, len(domain.ConfigKeys))
	for _, k := range domain.ConfigKeys {
		out[k.Name] = k.Default
	}
	values, err := f.Values()
	for k, v := range values {
		out[k] = v
	}
	return out, err
}

// Get reads key from the default rc file.
func Get(key string) (string, bool) {
	f, err := Default()
	if err != nil {
		return domain.GetDefaultValue(key)
	}
	return f.Get(key)
}

// GetAll reads the default rc file merged over the defaults.
func GetAll() (map[string]string, error) {
	f, err := Default()
	if err != nil {
		return (&File{}).All()
	}
	return f.All()
}

// Bool interprets a config value as a boolean. Unknown values are false.
func Bool(value string) bool {
	switch value {
	case "true", "yes", "on", "1":
		return true
	}
	return false
}

// Edit rewrites the default rc file under its lock.
func Edit(fn func(lines []string) ([]string, error)) error {
	f, err := Default()
	if err != nil {
		return err
	}
	return f.Edit(fn)
}

// EnsureFile writes a starter default rc file when there is none, and
// returns its path.
func EnsureFile() (path string, wrote bool, err error) {
	f, err := Default()
	if err != nil {
		return "", false, err
	}
	wrote, err = f.EnsureDefaults()
	return f.Path, wrote, err
}
