package config

import "strings"

// keyOf returns the key a line assigns, or false for blank, comment and
// malformed lines.
func keyOf(line string) (string, bool) {
	t := strings.TrimSpace(line)
	if t == "" || t[0] == '#' {
		return "", false
	}
	k, _, ok := strings.Cut(t, "=")
	if !ok {
		return "", false
	}
	return strings.TrimSpace(k), true
}

// Set assigns value to key. The first line for key is rewritten in place,
// keeping a trailing "# comment"; otherwise a line is appended. It reports
// whether a line was rewritten.
func Set(lines []string, key, value string) ([]string, bool) {
	entry := key + "=" + quote(value)
	for i, l := range lines {
		if k, ok := keyOf(l); !ok || k != key {
			continue
		}
		if j := strings.Index(l, " #"); j >= 0 {
			entry += l[j:]
		}
		lines[i] = entry
		return lines, true
	}
	return append(lines, entry), false
}

// Unset drops every line assigning key. It reports whether any went.
func Unset(lines []string, key string) ([]string, bool) {
	out := lines[:0:0]
	for _, l := range lines {
		if k, ok := keyOf(l); ok && k == key {
			continue
		}
		out = append(out, l)
	}
	return out, len(out) != len(lines)
}
