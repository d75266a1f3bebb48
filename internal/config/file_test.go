package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dualword/PyMOL/internal/paths"
)

func tempFile(t *testing.T) *File {
	t.Helper()
	return &File{Path: filepath.Join(t.TempDir(), ".molshrc")}
}

func TestFile_MissingIsEmpty(t *testing.T) {
	f := tempFile(t)

	lines, err := f.Lines()
	require.NoError(t, err)
	require.Nil(t, lines)

	v, ok := f.Get("prompt")
	require.True(t, ok)
	require.Equal(t, "molsh> ", v)

	_, ok = f.Get("ray_trace_mode")
	require.False(t, ok, "session settings are not config keys")

	all, err := f.All()
	require.NoError(t, err)
	require.Equal(t, "false", all["allow_system"])
	require.Equal(t, "Jan 02 2006", all["display_date"])
}

func TestFile_WriteAndRead(t *testing.T) {
	f := tempFile(t)
	require.NoError(t, f.Write([]string{"# molsh", "theme=mono", "custom_key=1"}))

	info, err := os.Stat(f.Path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	require.NoError(t, os.WriteFile(f.Path, []byte("theme=mono\r\nhistory=false\r\n"), 0600))
	lines, err := f.Lines()
	require.NoError(t, err)
	require.Equal(t, []string{"theme=mono", "history=false"}, lines)

	all, err := f.All()
	require.NoError(t, err)
	require.Equal(t, "mono", all["theme"])
	require.Equal(t, "false", all["history"])
	require.Equal(t, "warn", all["log_level"])

	entries, err := os.ReadDir(filepath.Dir(f.Path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
}

func TestFile_Edit(t *testing.T) {
	f := tempFile(t)

	require.NoError(t, f.Edit(func(lines []string) ([]string, error) {
		require.Empty(t, lines)
		lines, _ = Set(lines, "raise_exceptions", "true")
		return lines, nil
	}))
	v, _ := f.Get("raise_exceptions")
	require.Equal(t, "true", v)

	boom := errors.New("boom")
	err := f.Edit(func(lines []string) ([]string, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	v, _ = f.Get("raise_exceptions")
	require.Equal(t, "true", v, "failed edit keeps the file")

	_, err = os.Stat(f.lockPath())
	require.True(t, os.IsNotExist(err), "lock released")
}

func TestFile_EditConcurrent(t *testing.T) {
	f := tempFile(t)
	keys := []string{"color_error", "color_info", "color_muted", "log_level", "pager", "theme"}

	var wg sync.WaitGroup
	errs := make(chan error, len(keys))
	for _, k := range keys {
		wg.Add(1)
		go func(k string) {
			defer wg.Done()
			errs <- f.Edit(func(lines []string) ([]string, error) {
				lines, _ = Set(lines, k, "x")
				return lines, nil
			})
		}(k)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	values, err := f.Values()
	require.NoError(t, err)
	require.Len(t, values, len(keys))
}

func TestFile_Lock(t *testing.T) {
	f := tempFile(t)
	oldWait := lockWait
	lockWait = 100 * time.Millisecond
	t.Cleanup(func() { lockWait = oldWait })

	require.NoError(t, os.WriteFile(f.lockPath(), []byte("4242"), 0600))
	err := f.Edit(func(lines []string) ([]string, error) { return lines, nil })
	require.ErrorIs(t, err, ErrLocked)

	old := time.Now().Add(-time.Minute)
	require.NoError(t, os.Chtimes(f.lockPath(), old, old))
	require.NoError(t, f.Edit(func(lines []string) ([]string, error) { return lines, nil }),
		"stale lock is taken over")
}

func TestFile_EnsureDefaults(t *testing.T) {
	f := tempFile(t)

	wrote, err := f.EnsureDefaults()
	require.NoError(t, err)
	require.True(t, wrote)

	lines, err := f.Lines()
	require.NoError(t, err)
	require.Equal(t, DefaultLines(), lines)
	require.Contains(t, lines, `prompt="molsh> "`)
	require.Contains(t, lines, "# color_error=")
	require.Contains(t, lines, "# Logging")

	values, err := Parse(lines)
	require.NoError(t, err)
	require.Equal(t, "molsh> ", values["prompt"])
	require.NotContains(t, values, "color_error")

	wrote, err = f.EnsureDefaults()
	require.NoError(t, err)
	require.False(t, wrote)
}

func TestDefaultFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(paths.EnvRC, "")

	path, wrote, err := EnsureFile()
	require.NoError(t, err)
	require.True(t, wrote)
	require.Equal(t, filepath.Join(home, ".molshrc"), path)

	require.NoError(t, Edit(func(lines []string) ([]string, error) {
		lines, _ = Set(lines, "theme", "contrast")
		return lines, nil
	}))
	v, ok := Get("theme")
	require.True(t, ok)
	require.Equal(t, "contrast", v)

	rc := filepath.Join(t.TempDir(), "site.rc")
	t.Setenv(paths.EnvRC, rc)
	require.NoError(t, NewProvider().Set("history", "false"))
	all, err := GetAll()
	require.NoError(t, err)
	require.Equal(t, "false", all["history"])
	require.Equal(t, "default", all["theme"])

	require.NoError(t, NewProvider().Unset("history"))
	v, _ = NewProvider().Get("history")
	require.Equal(t, "true", v)
}

func TestBool(t *testing.T) {
	for _, v := range []string{"true", "yes", "on", "1"} {
		require.True(t, Bool(v), v)
	}
	for _, v := range []string{"false", "", "TRUE", "off", "2"} {
		require.False(t, Bool(v), v)
	}
}
