package domain

import "strings"

// Section groups config keys in the default rc file and in config_list.
type Section string

const (
	SectionShell   Section = "Shell"
	SectionDisplay Section = "Display"
	SectionLogging Section = "Logging"
	SectionColors  Section = "Color Overrides"
)

// ConfigKey describes one ~/.molshrc key.
type ConfigKey struct {
	Name        string
	Default     string
	Description string
	Section     Section

	// Optional keys have no default. They are listed only once set, and
	// the default rc file carries them commented out.
	Optional bool
}

// ConfigKeys lists every key molsh reads, in display order.
var ConfigKeys = append([]ConfigKey{
	{"prompt", "molsh> ", "Prompt shown by the interactive shell", SectionShell, false},
	{"raise_exceptions", "false", "Abort scripts on the first failing command (true/false)", SectionShell, false},
	{"allow_system", "false", "Allow the system command to run shell commands (true/false)", SectionShell, false},
	{"history", "true", "Record dispatched commands in the history database (true/false)", SectionShell, false},

	{"pager", "less -FRSX", "Pager command for long output", SectionDisplay, false},
	{"theme", "default", "Color theme: default, mono, ocean, contrast, optionally with -dark or -light", SectionDisplay, false},
	{"display_date", "Jan 02 2006", "Date format in history: dd/mm/yyyy, mm/dd/yyyy, yyyy-mm-dd or a Go layout", SectionDisplay, false},
	{"display_time", "24h", "Time format in history: 24h or 12h", SectionDisplay, false},

	{"enable_log", "true", "Write a log file (true/false)", SectionLogging, false},
	{"log_level", "warn", "Minimum log level: debug, info, warn, error", SectionLogging, false},
}, colorKeys("success", "warning", "error", "info", "muted", "header", "prompt")...)

// colorKeys builds the color_<role> overrides of the theme.
func colorKeys(roles ...string) []ConfigKey {
	out := make([]ConfigKey, len(roles))
	for i, role := range roles {
		out[i] = ConfigKey{
			Name:        "color_" + role,
			Description: "Override the theme's " + strings.ReplaceAll(role, "_", " ") + " color (ANSI 0-255 or bold)",
			Section:     SectionColors,
			Optional:    true,
		}
	}
	return out
}

var configKeyIndex = func() map[string]int {
	m := make(map[string]int, len(ConfigKeys))
	for i, k := range ConfigKeys {
		m[k.Name] = i
	}
	return m
}()

// IsValidConfigKey reports whether name is a known key.
func IsValidConfigKey(name string) bool {
	_, ok := configKeyIndex[name]
	return ok
}

// GetDefaultValue returns the default of a known key.
func GetDefaultValue(name string) (string, bool) {
	i, ok := configKeyIndex[name]
	if !ok {
		return "", false
	}
	return ConfigKeys[i].Default, true
}
