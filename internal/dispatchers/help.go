package dispatchers

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dualword/PyMOL/internal/domain"
)

// formatUsage styles the usage line with the command in Info color and the
// parameter list muted.
func formatUsage(s domain.Styler, line string) string {
	line = strings.TrimPrefix(line, "Usage: ")
	cmd, rest, found := strings.Cut(line, " ")
	if !found {
		return s.Info(cmd)
	}
	return s.Info(cmd) + " " + s.Muted(rest)
}

// HelpText renders the help page of a single command.
func HelpText(s domain.Styler, keyword string, e Entry) string {
	var out bytes.Buffer

	out.WriteString(keyword)
	if e.Summary != "" {
		out.WriteString(" - ")
		out.WriteString(e.Summary)
	}
	out.WriteString("\n\n")

	out.WriteString(s.Header("USAGE"))
	out.WriteString("\n   ")
	usageLine := e.Usage()
	if e.Signature.Open() {
		usageLine += " ..."
	}
	out.WriteString(formatUsage(s, usageLine))
	out.WriteString("\n\n")

	if e.Doc != "" {
		out.WriteString(strings.TrimRight(e.Doc, "\n"))
		out.WriteString("\n\n")
	}

	if keyword != e.Name {
		fmt.Fprintf(&out, "%s is a synonym of %s.\n\n", keyword, e.Name)
	}

	out.WriteString("See 'help' for the list of commands.\n")
	return out.String()
}

// IndexText renders the command index grouped by category.
func IndexText(s domain.Styler, r *Registry) string {
	var out bytes.Buffer

	out.WriteString("molsh - command shell\n\n")
	out.WriteString(s.Header("USAGE"))
	out.WriteString("\n   ")
	out.WriteString(formatUsage(s, "command arg1, arg2, name=value"))
	out.WriteString("\n\n")

	grouped := make(map[CommandCategory][]Entry)
	for _, e := range r.Entries() {
		grouped[e.Category] = append(grouped[e.Category], e)
	}

	for _, section := range categories {
		cmds := grouped[section.cat]
		if len(cmds) == 0 {
			continue
		}
		sortSection(section.lead, cmds)

		out.WriteString(section.title)
		out.WriteString("\n")
		for _, e := range cmds {
			fmt.Fprintf(&out, "   %s  %s\n", s.Info(fmt.Sprintf("%-16s", e.Name)), e.Summary)
		}
		out.WriteString("\n")
	}

	out.WriteString("Commands may be abbreviated to any unambiguous prefix.\n")
	out.WriteString("See 'help <command>' for detailed help on a specific command.\n")
	out.WriteString("Type '<command> ?' to print its usage line.\n")
	return out.String()
}
