package style

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func clearColorEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"NO_COLOR", "MOLSH_NO_COLOR", "MOLSH_THEME", "MOLSH_COLOR_ERROR"} {
		t.Setenv(k, "")
	}
	old := darkBackground
	darkBackground = func() bool { return true }
	t.Cleanup(func() { darkBackground = old })
}

var roles = []Role{RoleSuccess, RoleWarning, RoleError, RoleInfo, RoleMuted, RoleHeader, RolePrompt}

func TestPalette_Disabled(t *testing.T) {
	clearColorEnv(t)

	p := NewPalette(false, map[string]string{"theme": "ocean"})
	require.False(t, p.Enabled())
	require.Equal(t, ColorConfig{}, p.Colors())
	for _, r := range roles {
		require.Equal(t, "ObjMol", p.Render(r, "ObjMol"))
	}
}

func TestPalette_Enabled(t *testing.T) {
	clearColorEnv(t)

	p := NewPalette(true, map[string]string{"theme": "contrast", "color_prompt": "bold"})
	require.True(t, p.Enabled())
	require.Equal(t, "196", p.Colors().Error)

	for _, r := range roles {
		got := p.Render(r, "ObjMol")
		require.Contains(t, got, "ObjMol")
		require.Contains(t, got, "\x1b[", "role %d", r)
	}
	require.Contains(t, p.Render(RoleError, "x"), "38;5;196")
	require.Contains(t, p.Render(RolePrompt, "x"), "\x1b[1m")

	require.Equal(t, "", p.Render(RoleError, ""))
	require.Equal(t, "x", p.Render(numRoles, "x"))
}

func TestPalette_NoColorEnv(t *testing.T) {
	for _, k := range []string{"NO_COLOR", "MOLSH_NO_COLOR"} {
		t.Run(k, func(t *testing.T) {
			clearColorEnv(t)
			t.Setenv(k, "1")

			p := NewPalette(true, nil)
			require.False(t, p.Enabled())
			require.Equal(t, "pdb", p.Render(RoleWarning, "pdb"))
		})
	}
}

func TestInit_SwapsCurrentPalette(t *testing.T) {
	clearColorEnv(t)
	t.Cleanup(func() { Init(false, nil) })

	s := NewStyler()
	Init(false, nil)
	require.False(t, s.Enabled())
	require.Equal(t, "Error: boom", Error("Error: boom"))
	require.Equal(t, "PyMOL> ", Prompt("PyMOL> "))

	Init(true, map[string]string{"theme": "mono-light"})
	require.True(t, s.Enabled(), "existing stylers follow Init")
	require.Equal(t, Themes["mono-light"], Current().Colors())
	require.NotEqual(t, "12 atoms", Muted("12 atoms"))
	require.Equal(t, Current().Render(RoleSuccess, "ok"), s.Success("ok"))
}

func TestStylerFor(t *testing.T) {
	clearColorEnv(t)

	p := NewPalette(true, nil)
	s := StylerFor(p)
	Init(false, nil)

	require.True(t, s.Enabled())
	require.Equal(t, p.Render(RoleHeader, "Commands"), s.Header("Commands"))
	require.Equal(t, p.Render(RoleInfo, "i"), s.Info("i"))
	require.Equal(t, p.Render(RoleWarning, "w"), s.Warning("w"))
	require.Equal(t, p.Render(RoleError, "e"), s.Error("e"))
	require.Equal(t, p.Render(RoleMuted, "m"), s.Muted("m"))
}

func TestLoadColorConfig(t *testing.T) {
	t.Run("explicit variant", func(t *testing.T) {
		clearColorEnv(t)
		require.Equal(t, Themes["ocean-light"], LoadColorConfig(map[string]string{"theme": "ocean-light"}))
	})

	t.Run("base name follows background", func(t *testing.T) {
		clearColorEnv(t)
		require.Equal(t, Themes["ocean-dark"], LoadColorConfig(map[string]string{"theme": "ocean"}))
		darkBackground = func() bool { return false }
		require.Equal(t, Themes["ocean-light"], LoadColorConfig(map[string]string{"theme": "ocean"}))
		require.Equal(t, Themes["default-light"], LoadColorConfig(nil))
	})

	t.Run("unknown theme", func(t *testing.T) {
		clearColorEnv(t)
		require.Equal(t, Themes["default-dark"], LoadColorConfig(map[string]string{"theme": "rainbow"}))
	})

	t.Run("color key beats theme", func(t *testing.T) {
		clearColorEnv(t)
		got := LoadColorConfig(map[string]string{"theme": "mono-dark", "color_error": "196", "color_info": ""})
		require.Equal(t, "196", got.Error)
		require.Equal(t, Themes["mono-dark"].Info, got.Info)
	})

	t.Run("environment beats file", func(t *testing.T) {
		clearColorEnv(t)
		t.Setenv("MOLSH_THEME", "contrast")
		t.Setenv("MOLSH_COLOR_ERROR", "1")
		got := LoadColorConfig(map[string]string{"theme": "mono", "color_error": "196"})
		require.Equal(t, "1", got.Error)
		require.Equal(t, Themes["contrast-dark"].Success, got.Success)
	})
}

func TestThemeNamesCoverThemes(t *testing.T) {
	require.Len(t, Themes, len(ThemeNames))
	for _, base := range BaseThemeNames {
		require.Contains(t, Themes, base+"-dark")
		require.Contains(t, Themes, base+"-light")
	}
	for _, name := range ThemeNames {
		require.Contains(t, Themes, name)
	}
}

func TestNopStyler(t *testing.T) {
	var s NopStyler
	require.False(t, s.Enabled())
	require.Equal(t, "x", s.Error("x"))
	require.Equal(t, "x", s.Header("x"))
}
