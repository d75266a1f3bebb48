package actions

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dualword/PyMOL/internal/binding"
	"github.com/dualword/PyMOL/internal/dispatchers"
	"github.com/dualword/PyMOL/internal/parsing"
	"github.com/dualword/PyMOL/internal/shortcut"
	"github.com/dualword/PyMOL/internal/usage"
)

const defaultHistoryLimit = 20

func helpEntry(deps Deps) dispatchers.Entry {
	return dispatchers.Entry{
		Name:      "help",
		Signature: binding.Fixed(1, "command"),
		Mode:      parsing.Strict,
		Category:  dispatchers.CategoryGetStarted,
		Summary:   "Show the command index or help for one command",
		Doc: "Commands may be abbreviated to any unique prefix.\n" +
			"'<command> ?' prints just the usage line.",
		Complete: func(prefix string) []string {
			return deps.Registry.Complete(prefix)
		},
		Handler: func(_ context.Context, c binding.Call) error {
			return help(c, deps)
		},
	}
}

func help(c binding.Call, deps Deps) error {
	keyword := parsing.StripQuotes(c.Arg("command", ""))
	if keyword == "" {
		deps.Pager(dispatchers.IndexText(deps.Styler, deps.Registry))
		return nil
	}

	entry, res := deps.Registry.Resolve(keyword)
	switch res.Kind {
	case shortcut.NotFound:
		return usage.UnknownCommand(keyword, deps.Registry.Suggest(keyword, 3)...)
	case shortcut.Ambiguous:
		return usage.AmbiguousCommand(keyword, res.Candidates)
	}

	deps.Pager(dispatchers.HelpText(deps.Styler, res.Match, entry))
	return nil
}

func quitEntry(deps Deps) dispatchers.Entry {
	return dispatchers.Entry{
		Name:      "quit",
		Signature: binding.Fixed(0),
		Mode:      parsing.Strict,
		Category:  dispatchers.CategoryGetStarted,
		Summary:   "Leave the shell",
		Doc:       "Stops the prompt or script after the current statement.",
		Handler: func(context.Context, binding.Call) error {
			deps.Session.RequestQuit()
			return nil
		},
	}
}

func versionEntry(deps Deps) dispatchers.Entry {
	return dispatchers.Entry{
		Name:      "version",
		Signature: binding.Fixed(0),
		Mode:      parsing.Strict,
		Category:  dispatchers.CategoryGetStarted,
		Summary:   "Print the molsh version",
		Handler: func(context.Context, binding.Call) error {
			_, _ = deps.Printf("molsh version %v\n", deps.Version())
			return nil
		},
	}
}

func historyEntry(deps Deps) dispatchers.Entry {
	return dispatchers.Entry{
		Name:      "history",
		Signature: binding.Fixed(1, "limit"),
		Mode:      parsing.Strict,
		Category:  dispatchers.CategoryShell,
		Summary:   "List recently dispatched commands",
		Doc: "Prints the last limit statements (20 by default, 0 for all), oldest\n" +
			"first. Failed statements are marked. 'history clear' empties the\n" +
			"history database.",
		Handler: func(ctx context.Context, c binding.Call) error {
			return history(ctx, c, deps)
		},
	}
}

func history(ctx context.Context, c binding.Call, deps Deps) error {
	if deps.History == nil {
		return errors.New("history is disabled")
	}

	limit := defaultHistoryLimit
	if v := parsing.StripQuotes(c.Arg("limit", "")); v == "clear" {
		removed, err := deps.History.Clear(ctx)
		if err != nil {
			return err
		}
		_, _ = deps.Printf("cleared %d statements\n", removed)
		return nil
	} else if v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return usage.UnknownValue("limit", v)
		}
		limit = n
	}

	entries, err := deps.History.Recent(ctx, limit)
	if err != nil {
		return err
	}
	total, err := deps.History.Count(ctx)
	if err != nil {
		return err
	}

	for _, e := range entries {
		stamp := deps.Styler.Muted(deps.Stamp(e.CreatedAt))
		if e.Failed() {
			_, _ = deps.Printf("%5d  %s  %s  %s\n", e.ID, stamp, e.Line, deps.Styler.Muted("(failed)"))
			continue
		}
		_, _ = deps.Printf("%5d  %s  %s\n", e.ID, stamp, e.Line)
	}
	if int64(len(entries)) < total {
		_, _ = deps.Println(deps.Styler.Muted(fmt.Sprintf("(%d of %d shown)", len(entries), total)))
	}
	return nil
}
