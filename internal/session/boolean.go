package session

import "github.com/dualword/PyMOL/internal/shortcut"

var booleanValues = map[string]bool{
	"yes":   true,
	"on":    true,
	"true":  true,
	"1":     true,
	"no":    false,
	"off":   false,
	"false": false,
	"0":     false,
}

// booleans resolves abbreviated boolean words, so "y" means yes and "o"
// is ambiguous between on and off.
var booleans = shortcut.New([]string{"yes", "no", "on", "off", "true", "false", "1", "0"})

// ParseBool resolves value through the boolean shortcut index.
func ParseBool(value string) (bool, error) {
	word, err := booleans.Expand(value, "boolean")
	if err != nil {
		return false, err
	}
	return booleanValues[word], nil
}

// FormatBool renders a boolean the way settings print it.
func FormatBool(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
