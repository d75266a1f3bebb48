package actions

import (
	"context"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/dualword/PyMOL/internal/config"
	"github.com/dualword/PyMOL/internal/dispatchers"
	"github.com/dualword/PyMOL/internal/domain"
	"github.com/dualword/PyMOL/internal/format"
	"github.com/dualword/PyMOL/internal/session"
)

// Deps carries what the builtin commands touch. Function fields are
// swapped out in tests.
type Deps struct {
	Session  *session.Session
	Registry *dispatchers.Registry
	Styler   domain.Styler
	History  domain.HistoryStore

	Printf  func(format string, a ...any) (n int, err error)
	Println func(a ...any) (n int, err error)
	Pager   func(content string)

	RunFile     func(ctx context.Context, path string) error
	Exec        func(ctx context.Context, command string) error
	AllowSystem func() bool
	WriteFile   func(path string, data []byte, perm os.FileMode) error
	Version     func() string
	Stamp       func(t time.Time) string
}

// DefaultDeps wires the output side of Deps to out. The caller fills in
// Session, Registry, History and RunFile.
func DefaultDeps(out domain.OutputWriter, s domain.Styler) Deps {
	return Deps{
		Styler:      s,
		Printf:      out.Printf,
		Println:     out.Println,
		Pager:       out.Pager,
		Exec:        ShellExec(nil, out, os.Stderr),
		AllowSystem: func() bool { return false },
		WriteFile:   os.WriteFile,
		Version:     func() string { return "dev" },
		Stamp: func(t time.Time) string {
			return format.LayoutFrom(config.Get).Since(t.Local(), time.Now())
		},
	}
}

// ShellExec returns an Exec that runs command through sh -c. A nil stdin
// gives the child an empty input, so it never competes with the prompt
// or a script read from standard input.
func ShellExec(stdin io.Reader, stdout, stderr io.Writer) func(ctx context.Context, command string) error {
	return func(ctx context.Context, command string) error {
		cmd := exec.CommandContext(ctx, "sh", "-c", command)
		cmd.Stdin = stdin
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		return cmd.Run()
	}
}
