package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		key     string
		value   string
		want    []string
		updated bool
	}{
		{
			name:  "appends to empty file",
			key:   "theme",
			value: "mono",
			want:  []string{"theme=mono"},
		},
		{
			name:    "rewrites in place",
			lines:   []string{"# molsh", "theme=default", "pager=cat"},
			key:     "theme",
			value:   "ocean",
			want:    []string{"# molsh", "theme=ocean", "pager=cat"},
			updated: true,
		},
		{
			name:    "keeps trailing comment",
			lines:   []string{"  log_level = warn # noisy otherwise"},
			key:     "log_level",
			value:   "debug",
			want:    []string{"log_level=debug # noisy otherwise"},
			updated: true,
		},
		{
			name:  "ignores commented out key",
			lines: []string{"# color_error="},
			key:   "color_error",
			value: "196",
			want:  []string{"# color_error=", "color_error=196"},
		},
		{
			name:    "quotes spaces",
			lines:   []string{"prompt=molsh>"},
			key:     "prompt",
			value:   "PyMOL> ",
			want:    []string{`prompt="PyMOL> "`},
			updated: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, updated := Set(tt.lines, tt.key, tt.value)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.updated, updated)
		})
	}
}

func TestUnset(t *testing.T) {
	lines := []string{"# keep", "theme=mono", "pager=cat", "theme = ocean", "bad line"}

	got, removed := Unset(lines, "theme")
	require.True(t, removed)
	require.Equal(t, []string{"# keep", "pager=cat", "bad line"}, got)
	require.Equal(t, "theme=mono", lines[1], "input is not modified")

	got, removed = Unset(got, "theme")
	require.False(t, removed)
	require.Len(t, got, 3)
}
