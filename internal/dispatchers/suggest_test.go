package dispatchers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"set_color", "set_color", 0},
		{"SET", "set", 0},
		{"colr", "color", 1},
		{"color", "colour", 1},
		{"hepl", "help", 2},
		{"", "quit", 4},
		{"ray", "", 3},
		{"orient", "orinet", 2},
		{"cartoon", "cartoonn", 1},
		{"bg_color", "bg_colour", 1},
		{"zoom", "delete", 6},
		// Runes, not bytes.
		{"ångström", "angstrom", 2},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			require.Equal(t, tt.want, editDistance(tt.a, tt.b))
			require.Equal(t, tt.want, editDistance(tt.b, tt.a), "symmetric")
		})
	}
}

func TestSuggestLimit(t *testing.T) {
	require.Equal(t, 1, suggestLimit("rg"))
	require.Equal(t, 2, suggestLimit("hepl"))
	require.Equal(t, 3, suggestLimit("set_colr"))
	require.Equal(t, 3, suggestLimit("set_sequence_colour"))
}

func TestFindSimilarCommands(t *testing.T) {
	names := []string{"set", "get", "set_color", "set_colour", "color", "hide", "show", "quit", "align", "alter"}

	tests := []struct {
		name  string
		input string
		max   int
		want  []string
	}{
		{"closest first", "colr", 3, []string{"color"}},
		{"both spellings", "set_colr", 3, []string{"set_color", "set_colour"}},
		{"capped", "set_colr", 1, []string{"set_color"}},
		{"ties sort by name", "het", 3, []string{"get", "set"}},
		{"swapped letters", "qiut", 3, []string{"quit"}},
		{"exact match is skipped", "set", 3, []string{"get"}},
		{"case does not matter", "SHWO", 3, []string{"show"}},
		{"too far", "fetch", 3, []string{}},
		{"zero results wanted", "colr", 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FindSimilarCommands(tt.input, names, tt.max))
		})
	}
}

func TestFindSimilarCommands_NoNames(t *testing.T) {
	require.Empty(t, FindSimilarCommands("set", nil, 3))
}
