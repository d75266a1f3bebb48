// Package ui provides terminal output and the interactive shell.
//
// The pager runs an arbitrary command taken from the pager config key or
// $PAGER. Users should only configure pagers they trust.
package ui

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"

	"github.com/dualword/PyMOL/internal/domain"
)

// defaultPager is used when neither the flags, the config nor $PAGER name one.
var defaultPager = []string{"less", "-FRSX"}

// Writer is the command output stream. Long output such as help goes
// through Pager.
type Writer struct {
	out      io.Writer
	quiet    bool
	noPager  bool
	override string
	config   func(string) (string, bool)
	env      func(string) string

	terminal func(io.Writer) bool
	run      func(argv []string, content string, out io.Writer) error
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithPagerDisabled makes Pager print directly.
func WithPagerDisabled() WriterOption {
	return func(w *Writer) { w.noPager = true }
}

// WithQuiet suppresses Printf, Println and Pager output. Raw writes through
// Write are kept so command results that the caller asked for still appear.
func WithQuiet() WriterOption {
	return func(w *Writer) { w.quiet = true }
}

// WithPagerOverride sets the pager command given on the command line.
func WithPagerOverride(cmd string) WriterOption {
	return func(w *Writer) { w.override = cmd }
}

// WithConfigGetter reads the pager config key through fn.
func WithConfigGetter(fn func(string) (string, bool)) WriterOption {
	return func(w *Writer) { w.config = fn }
}

// WithEnvGetter reads $PAGER through fn instead of os.Getenv.
func WithEnvGetter(fn func(string) string) WriterOption {
	return func(w *Writer) { w.env = fn }
}

// NewWriterTo returns a Writer printing to out.
func NewWriterTo(out io.Writer, opts ...WriterOption) *Writer {
	w := &Writer{
		out:      out,
		env:      os.Getenv,
		terminal: isTerminal,
		run:      runPager,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Writer) Write(p []byte) (int, error) {
	return w.out.Write(p)
}

func (w *Writer) Printf(format string, args ...any) (int, error) {
	if w.quiet {
		return 0, nil
	}
	return fmt.Fprintf(w.out, format, args...)
}

func (w *Writer) Println(args ...any) (int, error) {
	if w.quiet {
		return 0, nil
	}
	return fmt.Fprintln(w.out, args...)
}

// Quiet reports whether non-essential output is suppressed.
func (w *Writer) Quiet() bool {
	return w.quiet
}

// Pager shows content through the pager when the output is a terminal,
// and prints it directly otherwise or when the pager fails to start.
func (w *Writer) Pager(content string) {
	if w.quiet {
		return
	}
	if !w.noPager && w.terminal(w.out) {
		if argv := w.pagerArgv(); argv != nil && w.run(argv, content, w.out) == nil {
			return
		}
	}
	_, _ = io.WriteString(w.out, content)
}

// pagerArgv returns the pager to run, or nil to print directly. The first
// non-empty of the override, the pager key and $PAGER wins, and a cat
// pager means none.
func (w *Writer) pagerArgv() []string {
	choice := w.override
	if choice == "" && w.config != nil {
		choice, _ = w.config("pager")
	}
	if choice == "" && w.env != nil {
		choice = w.env("PAGER")
	}
	if choice == "" {
		return defaultPager
	}

	argv := strings.Fields(choice)
	if len(argv) == 0 || argv[0] == "cat" {
		return nil
	}
	return argv
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runPager(argv []string, content string, out io.Writer) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(content)
	cmd.Stdout = out
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

var _ domain.OutputWriter = (*Writer)(nil)
