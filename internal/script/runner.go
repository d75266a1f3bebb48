// Package script runs command text made of several statements: script
// files, piped input, alias bodies and prompt lines.
//
// A physical line ending in a backslash continues on the next line. Lines
// whose first non-blank character is # are comments. A line starting with
// @ runs the named file. Every other line is split into statements on
// semicolons outside quotes and brackets, except that once a statement
// names a literal-mode command the rest of the line belongs to it.
package script

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dualword/PyMOL/internal/dispatchers"
	"github.com/dualword/PyMOL/internal/domain"
	"github.com/dualword/PyMOL/internal/log"
	"github.com/dualword/PyMOL/internal/parsing"
	"github.com/dualword/PyMOL/internal/shortcut"
)

const maxFileDepth = 32

// Dispatcher runs single statements.
type Dispatcher interface {
	Dispatch(ctx context.Context, line string) (*dispatchers.Outcome, error)
	Registry() *dispatchers.Registry
}

// Runner feeds statements to a Dispatcher.
type Runner struct {
	disp   Dispatcher
	quit   func() bool
	open   func(path string) (io.ReadCloser, error)
	logger domain.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithQuit sets the function checked after every statement. Running
// stops once it returns true.
func WithQuit(fn func() bool) Option {
	return func(r *Runner) {
		r.quit = fn
	}
}

// WithOpener sets how script files are opened.
func WithOpener(fn func(path string) (io.ReadCloser, error)) Option {
	return func(r *Runner) {
		r.open = fn
	}
}

// WithLogger sets the logger.
func WithLogger(l domain.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// New returns a Runner over disp.
func New(disp Dispatcher, opts ...Option) *Runner {
	r := &Runner{
		disp: disp,
		quit: func() bool { return false },
		open: func(path string) (io.ReadCloser, error) {
			return os.Open(path)
		},
		logger: log.NopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run runs text. It has the dispatcher's failure policy: with raising
// enabled the first failing statement stops the run and its error is
// returned.
func (r *Runner) Run(ctx context.Context, text string) error {
	return r.RunReader(ctx, strings.NewReader(text))
}

// RunFile runs the statements of a script file.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	depth := fileDepth(ctx)
	if depth >= maxFileDepth {
		return fmt.Errorf("run %s: scripts nested more than %d levels", path, maxFileDepth)
	}

	f, err := r.open(path)
	if err != nil {
		return fmt.Errorf("run %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r.logger.Debug("script: running %s", path)
	return r.RunReader(withFileDepth(ctx, depth+1), f)
}

// RunReader runs statements read from rd until it is exhausted, a
// statement fails under the raising policy, quit is requested or ctx is
// done.
func (r *Runner) RunReader(ctx context.Context, rd io.Reader) error {
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var pending strings.Builder
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.HasSuffix(line, "\\") {
			pending.WriteString(strings.TrimSuffix(line, "\\"))
			continue
		}
		pending.WriteString(line)
		logical := pending.String()
		pending.Reset()

		stop, err := r.runLine(ctx, logical)
		if err != nil || stop {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}

	if pending.Len() > 0 {
		_, err := r.runLine(ctx, pending.String())
		return err
	}
	return nil
}

// runLine runs one logical line. stop reports that the caller should not
// read further.
func (r *Runner) runLine(ctx context.Context, line string) (stop bool, err error) {
	line = strings.TrimSpace(line)
	switch {
	case line == "", strings.HasPrefix(line, "#"):
		return false, nil
	case strings.HasPrefix(line, "@"):
		path := parsing.StripQuotes(strings.TrimSpace(line[1:]))
		if err := r.RunFile(ctx, path); err != nil {
			return true, err
		}
		return r.quit(), nil
	}

	for _, stmt := range r.Statements(line) {
		if err := ctx.Err(); err != nil {
			return true, err
		}
		if _, err := r.disp.Dispatch(ctx, stmt); err != nil {
			return true, err
		}
		if r.quit() {
			return true, nil
		}
	}
	return false, nil
}

// Statements splits a logical line into the statements it holds.
func (r *Runner) Statements(line string) []string {
	var out []string
	rest := strings.TrimSpace(line)
	for rest != "" {
		if r.isLiteral(rest) {
			out = append(out, rest)
			break
		}
		parts := parsing.Split(rest, ";", 1)
		if len(parts) == 0 {
			break
		}
		if parts[0] != "" {
			out = append(out, parts[0])
		}
		rest = ""
		if len(parts) == 2 {
			rest = parts[1]
		}
	}
	return out
}

// isLiteral reports whether stmt starts with a command whose arguments
// swallow the rest of the line.
func (r *Runner) isLiteral(stmt string) bool {
	entry, res := r.disp.Registry().Resolve(parsing.Keyword(stmt))
	return res.Kind == shortcut.Unique && entry.Mode.IsLiteral()
}

type fileDepthKey struct{}

func fileDepth(ctx context.Context) int {
	d, _ := ctx.Value(fileDepthKey{}).(int)
	return d
}

func withFileDepth(ctx context.Context, depth int) context.Context {
	return context.WithValue(ctx, fileDepthKey{}, depth)
}
