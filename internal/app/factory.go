package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dualword/PyMOL/internal/actions"
	configactions "github.com/dualword/PyMOL/internal/actions/config"
	"github.com/dualword/PyMOL/internal/actions/theme"
	"github.com/dualword/PyMOL/internal/completions"
	"github.com/dualword/PyMOL/internal/config"
	"github.com/dualword/PyMOL/internal/dispatchers"
	"github.com/dualword/PyMOL/internal/domain"
	"github.com/dualword/PyMOL/internal/log"
	"github.com/dualword/PyMOL/internal/paths"
	"github.com/dualword/PyMOL/internal/script"
	"github.com/dualword/PyMOL/internal/session"
	"github.com/dualword/PyMOL/internal/store"
	"github.com/dualword/PyMOL/internal/ui"
	"github.com/dualword/PyMOL/internal/ui/style"
)

// Version is stamped at build time.
var Version = "dev"

// Options configures the application factory.
type Options struct {
	// Pager options
	PagerDisabled bool
	PagerOverride string

	// Log options
	LogEnabled bool
	LogLevel   log.Level

	// Style options
	StyleEnabled bool

	// Config is the effective configuration, defaults merged with ~/.molshrc.
	Config map[string]string

	// History options
	HistoryEnabled bool
	HistoryPath    string

	// Raise overrides the raise_exceptions setting when non-nil.
	Raise *bool

	// Quiet suppresses command output. Errors are still reported.
	Quiet bool

	// Stdin feeds the system command. Leave it nil when the prompt or a
	// script owns standard input.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultOptions returns the options the config file asks for.
func DefaultOptions() Options {
	cfg, _ := config.GetAll()

	return Options{
		LogEnabled:     config.Bool(cfg["enable_log"]),
		LogLevel:       log.ParseLevel(cfg["log_level"]),
		StyleEnabled:   true,
		Config:         cfg,
		HistoryEnabled: config.Bool(cfg["history"]),
		HistoryPath:    paths.HistoryDBPath(),
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
	}
}

// App is a wired command shell.
type App struct {
	domain.Application

	Session    *session.Session
	Registry   *dispatchers.Registry
	Dispatcher *dispatchers.Dispatcher
	Runner     *script.Runner
	Completer  *completions.Completer

	opts      Options
	store     *store.Store
	logFile   *log.Logger
	sessionID string
}

// New creates an App with all dependencies wired up.
func New(ctx context.Context, opts Options) (*App, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	a := &App{opts: opts}
	a.Logger = log.NopLogger{}
	if opts.LogEnabled {
		l, err := log.New(paths.LogFilePath(), opts.LogLevel)
		if err != nil {
			log.NewWriter(opts.Stderr, log.LevelWarn).Warn("logging disabled: %v", err)
		} else {
			a.logFile = l
			a.Logger = l
		}
	}

	if opts.HistoryEnabled && opts.HistoryPath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.HistoryPath), 0700); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
		s, err := store.New(opts.HistoryPath)
		if err != nil {
			return nil, err
		}
		id, err := s.BeginSession(ctx)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		a.store = s
		a.sessionID = id
		a.History = s
	}

	style.Init(opts.StyleEnabled, opts.Config)

	var writerOpts []ui.WriterOption
	if opts.PagerDisabled {
		writerOpts = append(writerOpts, ui.WithPagerDisabled())
	}
	if opts.PagerOverride != "" {
		writerOpts = append(writerOpts, ui.WithPagerOverride(opts.PagerOverride))
	}
	if opts.Quiet {
		writerOpts = append(writerOpts, ui.WithQuiet())
	}
	writerOpts = append(writerOpts, ui.WithConfigGetter(config.Get))

	a.Output = ui.NewWriterTo(opts.Stdout, writerOpts...)
	a.Styler = style.NewStyler()
	a.Config = config.NewProvider()

	a.wire(opts.Config)
	return a, nil
}

// NewForTesting creates an App writing to out with no history, no log
// file and no styling.
func NewForTesting(out io.Writer) *App {
	a := &App{opts: Options{Stdout: out, Stderr: out}}
	a.Logger = log.NopLogger{}
	a.Output = ui.NewWriterTo(out, ui.WithPagerDisabled())
	a.Styler = style.NopStyler{}
	a.Config = config.NewProvider()
	a.wire(nil)
	return a
}

func (a *App) wire(cfg map[string]string) {
	a.Session = session.New()
	if err := a.Session.Seed(cfg); err != nil {
		a.Logger.Warn("config: %v", err)
	}
	if a.opts.Raise != nil {
		_, _, _ = a.Session.Set("raise_exceptions", session.FormatBool(*a.opts.Raise))
	}

	a.Registry = dispatchers.NewRegistry()

	var mu sync.Mutex
	a.Dispatcher = dispatchers.NewDispatcher(a.Registry,
		dispatchers.WithInvoker(dispatchers.NewLockedInvoker(&mu)),
		dispatchers.WithOutput(a.Output),
		dispatchers.WithDiagnostics(a.opts.Stderr),
		dispatchers.WithStyler(a.Styler),
		dispatchers.WithLogger(a.Logger),
		dispatchers.WithRaiseOnError(func() bool { return a.Session.Bool("raise_exceptions") }),
		dispatchers.WithObserver(a.record),
	)
	a.Runner = script.New(a.Dispatcher,
		script.WithQuit(a.Session.QuitRequested),
		script.WithLogger(a.Logger),
	)
	a.Registry.SetRunner(a.Runner.Run)
	a.Completer = completions.New(a.Registry)

	deps := actions.DefaultDeps(a.Output, a.Styler)
	deps.Session = a.Session
	deps.Registry = a.Registry
	deps.History = a.History
	deps.RunFile = a.Runner.RunFile
	deps.Exec = a.systemExec()
	deps.AllowSystem = func() bool {
		v, _ := a.Config.Get("allow_system")
		return config.Bool(v)
	}
	deps.Version = func() string { return Version }

	cfgDeps := configactions.DefaultDeps(a.Output)
	cfgDeps.Changed = a.configChanged

	themeDeps := theme.DefaultDeps(a.Output, a.Styler)
	themeDeps.Changed = func(string) { a.restyle() }

	if err := actions.Register(a.Registry, deps,
		append(configactions.Entries(cfgDeps), theme.Entry(themeDeps))...,
	); err != nil {
		a.Logger.Error("register builtins: %v", err)
	}
}

// systemExec runs system commands, copying their stderr into the log file
// when there is one.
func (a *App) systemExec() func(ctx context.Context, command string) error {
	if a.logFile == nil {
		return actions.ShellExec(a.opts.Stdin, a.Output, a.opts.Stderr)
	}
	return func(ctx context.Context, command string) error {
		tee := a.logFile.Writer(log.LevelWarn, "system")
		defer tee.Flush()
		return actions.ShellExec(a.opts.Stdin, a.Output, io.MultiWriter(a.opts.Stderr, tee))(ctx, command)
	}
}

// record stores a finished statement in the history.
func (a *App) record(ctx context.Context, o *dispatchers.Outcome) {
	if a.store == nil {
		return
	}
	e := domain.HistoryEntry{
		SessionID: a.sessionID,
		Keyword:   o.Keyword,
		Command:   o.Command,
		Line:      strings.TrimSpace(o.Line),
		State:     o.State.String(),
	}
	if o.Err != nil {
		e.Error = o.Err.Error()
	}
	if err := a.store.Record(ctx, e); err != nil {
		a.Logger.Warn("history: %v", err)
	}
}

// configChanged keeps the session and styling in step with config_set
// and config_unset.
func (a *App) configChanged(key, value string) {
	switch {
	case key == "theme" || strings.HasPrefix(key, "color_"):
		a.restyle()
	case isSetting(key):
		if _, _, err := a.Session.Set(key, value); err != nil {
			a.Logger.Warn("config %s: %v", key, err)
		}
	}
}

func isSetting(key string) bool {
	for _, s := range session.DefaultSettings {
		if s.Name == key {
			return true
		}
	}
	return false
}

func (a *App) restyle() {
	if !a.opts.StyleEnabled {
		return
	}
	cfg, _ := config.GetAll()
	style.Init(true, cfg)
}

// Prompt returns the configured prompt text.
func (a *App) Prompt() string {
	if p, ok := a.Config.Get("prompt"); ok && p != "" {
		return p
	}
	return "molsh> "
}

// RecentLines returns up to n history lines, oldest first.
func (a *App) RecentLines(ctx context.Context, n int) []string {
	if a.store == nil {
		return nil
	}
	entries, err := a.store.Recent(ctx, n)
	if err != nil {
		a.Logger.Warn("history: %v", err)
		return nil
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.Line)
	}
	return lines
}

// SessionID returns the history session of this run, or "" when history
// is disabled.
func (a *App) SessionID() string {
	return a.sessionID
}

// Close cleans up application resources.
func (a *App) Close() error {
	if a.store != nil {
		if err := a.store.EndSession(context.Background(), a.sessionID); err != nil {
			a.Logger.Warn("history: %v", err)
		}
		_ = a.store.Close()
	}
	if a.Logger != nil {
		_ = a.Logger.Close()
	}
	return nil
}
