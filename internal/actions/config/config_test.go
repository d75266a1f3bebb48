package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dualword/PyMOL/internal/binding"
	"github.com/dualword/PyMOL/internal/config"
	"github.com/dualword/PyMOL/internal/domain"
	"github.com/dualword/PyMOL/internal/usage"
)

func call(kv ...string) binding.Call {
	c := binding.Call{Kwargs: map[string]string{}}
	for i := 0; i+1 < len(kv); i += 2 {
		c.Kwargs[kv[i]] = kv[i+1]
	}
	return c
}

type fixture struct {
	rc      *config.File
	out     strings.Builder
	changed map[string]string
	deps    Deps
}

// newFixture points the commands at an rc file in a temp dir holding
// lines, or no file at all when lines is nil.
func newFixture(t *testing.T, lines ...string) *fixture {
	t.Helper()
	f := &fixture{
		rc:      &config.File{Path: filepath.Join(t.TempDir(), ".molshrc")},
		changed: map[string]string{},
	}
	if lines != nil {
		require.NoError(t, f.rc.Write(lines))
	}
	f.deps = Deps{
		Edit: f.rc.Edit,
		EnsureFile: func() (string, bool, error) {
			wrote, err := f.rc.EnsureDefaults()
			return f.rc.Path, wrote, err
		},
		Get:        f.rc.Get,
		GetAll:     f.rc.All,
		IsValidKey: domain.IsValidConfigKey,
		Printf: func(format string, a ...any) (int, error) {
			return fmt.Fprintf(&f.out, format, a...)
		},
		Println: func(a ...any) (int, error) {
			return fmt.Fprintln(&f.out, a...)
		},
		Changed: func(k, v string) { f.changed[k] = v },
	}
	return f
}

func (f *fixture) file(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(f.rc.Path)
	require.NoError(t, err)
	return string(data)
}

func TestGet(t *testing.T) {
	f := newFixture(t, "theme=ocean")

	require.NoError(t, get(call("key", "theme"), f.deps))
	require.NoError(t, get(call("key", "'display_time'"), f.deps))
	require.Equal(t, "ocean\n24h\n", f.out.String())

	err := get(call("key", "raytrace"), f.deps)
	require.Equal(t, usage.ErrInvalidConfigKey, usage.KindOf(err))
	require.Contains(t, err.Error(), "raytrace")
}

func TestSet(t *testing.T) {
	f := newFixture(t, "# my settings", "pager=more # local pager", "theme=mono")

	require.NoError(t, set(call("key", "pager", "value", `"less -R"`), f.deps))
	require.NoError(t, set(call("key", "allow_system", "value", "true"), f.deps))

	require.Equal(t,
		"updated pager=less -R\n"+
			"added allow_system=true\n",
		f.out.String())
	require.Equal(t,
		"# my settings\n"+
			"pager=\"less -R\" # local pager\n"+
			"theme=mono\n"+
			"allow_system=true\n",
		f.file(t))
	require.Equal(t, map[string]string{"pager": "less -R", "allow_system": "true"}, f.changed)

	v, ok := f.rc.Get("pager")
	require.True(t, ok)
	require.Equal(t, "less -R", v)
}

func TestSet_UnknownKeyLeavesFile(t *testing.T) {
	f := newFixture(t, "theme=mono")

	err := set(call("key", "color_theme", "value", "x"), f.deps)
	require.Equal(t, usage.ErrInvalidConfigKey, usage.KindOf(err))
	require.Equal(t, "theme=mono\n", f.file(t))
	require.Empty(t, f.changed)
}

func TestSet_EditError(t *testing.T) {
	f := newFixture(t)
	f.deps.Edit = func(func([]string) ([]string, error)) error {
		return errors.New("config: rc file is locked")
	}

	err := set(call("key", "theme", "value", "mono"), f.deps)
	require.ErrorContains(t, err, "locked")
	require.Empty(t, f.changed)
}

func TestUnset(t *testing.T) {
	f := newFixture(t, "theme=mono", "pager=cat")

	require.NoError(t, unset(call("key", "theme"), f.deps))
	require.Equal(t, "unset theme\n", f.out.String())
	require.Equal(t, "pager=cat\n", f.file(t))
	require.Equal(t, "default", f.changed["theme"], "default applies again")

	err := unset(call("key", "theme"), f.deps)
	require.Equal(t, usage.ErrInvalidConfigKey, usage.KindOf(err))
	require.Equal(t, "pager=cat\n", f.file(t))
}

func TestList_WritesDefaultsOnce(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, list(binding.Call{}, f.deps))
	out := f.out.String()
	require.True(t, strings.HasPrefix(out, "wrote defaults to "+f.rc.Path+"\n"), out)
	require.Contains(t, out, "prompt=molsh> \n")
	require.Contains(t, out, "raise_exceptions=false\n")
	require.NotContains(t, out, "color_error=")
	require.Contains(t, f.file(t), "# Shell\n")

	f.out.Reset()
	require.NoError(t, set(call("key", "color_error", "value", "196"), f.deps))
	f.out.Reset()
	require.NoError(t, list(binding.Call{}, f.deps))
	require.NotContains(t, f.out.String(), "wrote defaults")
	require.Contains(t, f.out.String(), "color_error=196\n")
}

func TestList_MalformedFile(t *testing.T) {
	f := newFixture(t, "theme=mono", "this line has no equals sign")

	err := list(binding.Call{}, f.deps)
	require.ErrorContains(t, err, "line 2")
}

func TestEntries(t *testing.T) {
	entries := Entries(Deps{})
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
		require.NotNil(t, e.Handler)
	}
	require.Equal(t, []string{"config_get", "config_set", "config_unset", "config_list"}, names)

	require.Equal(t, []string{"theme"}, entries[0].Complete("th"))
}
