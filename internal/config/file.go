// Package config reads and edits the molsh rc file: key=value lines with #
// comments. Edits keep every other line as it was.
package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dualword/PyMOL/internal/domain"
	"github.com/dualword/PyMOL/internal/paths"
)

// File is one rc file on disk.
type File struct {
	Path string
}

// Default returns the rc file named by paths.ConfigFilePath.
func Default() (*File, error) {
	p, err := paths.ConfigFilePath()
	if err != nil {
		return nil, err
	}
	return &File{Path: p}, nil
}

// Lines returns the file's lines. A missing file has none.
func (f *File) Lines() ([]string, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

// Values parses the file. Keys it does not set are absent.
func (f *File) Values() (map[string]string, error) {
	lines, err := f.Lines()
	if err != nil {
		return nil, err
	}
	return Parse(lines)
}

// Write replaces the file with lines. The new content is written to a
// sibling temp file and renamed over the old one.
func (f *File) Write(lines []string) error {
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.Path), "."+filepath.Base(f.Path)+".*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.Path)
}

// Edit rewrites the file under its lock. fn receives the current lines and
// returns the ones to write; an error from fn leaves the file untouched.
func (f *File) Edit(fn func(lines []string) ([]string, error)) error {
	return f.withLock(func() error {
		lines, err := f.Lines()
		if err != nil {
			return err
		}
		lines, err = fn(lines)
		if err != nil {
			return err
		}
		return f.Write(lines)
	})
}

// EnsureDefaults writes a commented file listing every visible key with
// its default when the file is missing or empty. It reports whether it
// wrote one.
func (f *File) EnsureDefaults() (bool, error) {
	wrote := false
	err := f.withLock(func() error {
		lines, err := f.Lines()
		if err != nil || len(lines) > 0 {
			return err
		}
		wrote = true
		return f.Write(DefaultLines())
	})
	return wrote, err
}

// DefaultLines renders a starter rc file. Optional overrides are left
// commented out.
func DefaultLines() []string {
	lines := []string{
		"# molsh configuration",
		"# Edit by hand or with: config_set key, value",
	}
	var section domain.Section
	for _, key := range domain.ConfigKeys {
		if key.Section != section {
			section = key.Section
			lines = append(lines, "", "# "+string(section))
		}
		if key.Optional {
			lines = append(lines, "# "+key.Name+"=")
			continue
		}
		lines = append(lines, key.Name+"="+quote(key.Default))
	}
	return lines
}
