package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/shayne/yargs"
	"golang.org/x/term"

	"github.com/dualword/PyMOL/internal/app"
	"github.com/dualword/PyMOL/internal/log"
	"github.com/dualword/PyMOL/internal/ui/shell"
	"github.com/dualword/PyMOL/internal/ui/style"
	"github.com/dualword/PyMOL/internal/usage"
)

type flags struct {
	Command   string `flag:"command" short:"c" help:"Run statements and exit"`
	Quiet     bool   `flag:"quiet" short:"q" help:"Suppress command output"`
	NoColor   bool   `flag:"no-color" help:"Disable colored output"`
	Raise     bool   `flag:"raise" help:"Stop at the first failing command"`
	NoHistory bool   `flag:"no-history" help:"Do not record commands in the history database"`
	LogLevel  string `flag:"log-level" help:"Log level: debug, info, warn, error"`
	NoPager   bool   `flag:"no-pager" help:"Print long output directly"`
	Pager     string `flag:"pager" help:"Pager command for long output"`
	Version   bool   `flag:"version" short:"v" help:"Print the version and exit"`
	Help      bool   `flag:"help" short:"h" help:"Show this help"`
}

// exitUsage is returned for bad command-line flags.
const exitUsage = 2

// stdio bundles the process streams so tests can replace them.
type stdio struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], stdio{in: os.Stdin, out: os.Stdout, err: os.Stderr})
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, std stdio) int {
	res, err := yargs.ParseFlags[flags](args)
	if err != nil {
		fmt.Fprintln(std.err, err)
		fmt.Fprintln(std.err, "Run 'molsh --help' for usage.")
		return exitUsage
	}
	f := res.Flags
	scripts := append(append([]string{}, res.Args...), res.RemainingArgs...)

	if f.Help {
		fmt.Fprint(std.out, helpText())
		return 0
	}
	if f.Version {
		fmt.Fprintf(std.out, "molsh version %s\n", app.Version)
		return 0
	}

	opts := app.DefaultOptions()
	opts.Stdout = std.out
	opts.Stderr = std.err
	opts.StyleEnabled = isTerminal(std.out) && !f.NoColor
	opts.Quiet = f.Quiet
	opts.PagerDisabled = f.NoPager
	opts.PagerOverride = f.Pager
	if f.Raise {
		raise := true
		opts.Raise = &raise
	}
	if f.NoHistory {
		opts.HistoryEnabled = false
	}
	if f.LogLevel != "" {
		opts.LogLevel = log.ParseLevel(f.LogLevel)
	}

	batch := f.Command != "" || len(scripts) > 0
	interactive := !batch && isTerminal(std.in)
	if batch {
		opts.Stdin = std.in
	}

	var buf *shell.Buffer
	if interactive {
		buf = &shell.Buffer{}
		opts.Stdout = buf
		opts.Stderr = buf
		opts.PagerDisabled = true
	}

	a, err := app.New(ctx, opts)
	if err != nil {
		fmt.Fprintln(std.err, style.Error(err.Error()))
		return 1
	}
	defer func() { _ = a.Close() }()

	switch {
	case interactive:
		err = shell.Run(ctx, shell.Config{
			Prompt:   a.Prompt(),
			Run:      a.Runner.Run,
			Output:   buf,
			Complete: a.Completer.Apply,
			Done:     a.Session.QuitRequested,
			History:  a.RecentLines(ctx, historyRecall),
		})
	case batch:
		err = runBatch(ctx, a, scripts, f.Command)
	default:
		err = a.Runner.RunReader(ctx, std.in)
	}
	return report(std.err, err)
}

// historyRecall is how many past lines the prompt can recall.
const historyRecall = 500

// runBatch runs each script file in order, then the -c statements.
func runBatch(ctx context.Context, a *app.App, scripts []string, command string) error {
	for _, path := range scripts {
		if err := a.Runner.RunFile(ctx, path); err != nil {
			return err
		}
		if a.Session.QuitRequested() {
			return nil
		}
	}
	if command != "" {
		return a.Runner.Run(ctx, command)
	}
	return nil
}

// report prints err unless the dispatcher already did and returns the
// exit code for it.
func report(w io.Writer, err error) int {
	if err == nil || errors.Is(err, context.Canceled) {
		return 0
	}
	if !usage.IsQuiet(err) {
		fmt.Fprintln(w, style.Error("Error: "+err.Error()))
	}
	if ue, ok := usage.As(err); ok {
		return ue.GetExitCode()
	}
	return 1
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func helpText() string {
	return yargs.GenerateGlobalHelp(yargs.HelpConfig{
		Command: yargs.CommandInfo{
			Name:        "molsh",
			Description: "Interactive shell for the molecular viewer command language",
			Examples: []string{
				"molsh",
				"molsh setup.pml render.pml",
				"molsh -c 'set sphere_scale, 0.5; get sphere_scale'",
				"molsh --raise < batch.pml",
			},
		},
	}, flags{})
}
