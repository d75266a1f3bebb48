package actions

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dualword/PyMOL/internal/dispatchers"
	"github.com/dualword/PyMOL/internal/domain"
	"github.com/dualword/PyMOL/internal/session"
	"github.com/dualword/PyMOL/internal/testutil"
	"github.com/dualword/PyMOL/internal/ui/style"
	"github.com/dualword/PyMOL/internal/usage"
)

type harness struct {
	out      bytes.Buffer
	diag     bytes.Buffer
	paged    string
	deps     Deps
	session  *session.Session
	registry *dispatchers.Registry
	disp     *dispatchers.Dispatcher
	files    map[string][]byte
	ran      []string
	execs    []string
	system   bool
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		session:  session.New(),
		registry: dispatchers.NewRegistry(),
		files:    make(map[string][]byte),
	}
	h.deps = Deps{
		Session:  h.session,
		Registry: h.registry,
		Styler:   style.NopStyler{},
		Printf: func(format string, a ...any) (int, error) {
			return fmt.Fprintf(&h.out, format, a...)
		},
		Println: func(a ...any) (int, error) {
			return fmt.Fprintln(&h.out, a...)
		},
		Pager: func(content string) {
			h.paged = content
		},
		RunFile: func(_ context.Context, path string) error {
			h.ran = append(h.ran, path)
			return nil
		},
		Exec: func(_ context.Context, command string) error {
			h.execs = append(h.execs, command)
			return nil
		},
		AllowSystem: func() bool { return h.system },
		WriteFile: func(path string, data []byte, _ os.FileMode) error {
			h.files[path] = data
			return nil
		},
		Version: func() string { return "1.2.3" },
		Stamp:   func(t time.Time) string { return t.UTC().Format("Jan 02 15:04") },
	}
	require.NoError(t, Register(h.registry, h.deps))

	h.disp = dispatchers.NewDispatcher(h.registry,
		dispatchers.WithOutput(&h.out),
		dispatchers.WithDiagnostics(&h.diag),
	)
	return h
}

func (h *harness) run(t *testing.T, line string) error {
	t.Helper()
	_, err := h.disp.Dispatch(context.Background(), line)
	return err
}

func TestRegister_Synonyms(t *testing.T) {
	h := newHarness(t)

	e, ok := h.registry.Lookup("set_colour")
	require.True(t, ok)
	require.Equal(t, "set_color", e.Name)

	require.NotContains(t, h.registry.Names(), "set_colour")
	require.NotContains(t, h.registry.Names(), "get_colour")
	require.Contains(t, h.registry.Names(), "set_color")
}

func TestSet(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "set ray_trace_mode, 1"))
	require.Equal(t, " Setting: ray_trace_mode set to 1.\n", h.out.String())

	h.out.Reset()
	require.NoError(t, h.run(t, "set ortho"))
	require.Equal(t, " Setting: orthoscopic set to on.\n", h.out.String())

	h.out.Reset()
	require.NoError(t, h.run(t, "set auto_zoom=of"))
	require.Equal(t, " Setting: auto_zoom set to off.\n", h.out.String())

	h.out.Reset()
	require.NoError(t, h.run(t, "get ray"))
	require.Equal(t, " ray_trace_mode = 1\n", h.out.String())
}

func TestSet_Errors(t *testing.T) {
	h := newHarness(t)

	err := h.run(t, "set s, 1")
	require.Equal(t, usage.ErrAmbiguousValue, usage.KindOf(err))
	require.Contains(t, h.diag.String(), "ambiguous setting 's'")

	err = h.run(t, "set ray_trace_mode, fast")
	require.Equal(t, usage.ErrHandler, usage.KindOf(err))
	require.Contains(t, h.diag.String(), "expects an integer")
}

func TestSettingList(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "setting_list"))
	lines := strings.Split(strings.TrimRight(h.out.String(), "\n"), "\n")
	require.Len(t, lines, len(session.DefaultSettings))
	require.Contains(t, lines[0], "auto_zoom")
	require.Contains(t, lines[0], "bool")
}

func TestColors(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "set_color teal, (0, 128, 128)"))
	require.Contains(t, h.out.String(), `Color: "teal" defined as [0.000, 0.502, 0.502].`)

	h.out.Reset()
	require.NoError(t, h.run(t, "set_colour teal, \"0 0.5 0.5\""))
	require.Contains(t, h.out.String(), "redefined as [0.000, 0.500, 0.500]")

	h.out.Reset()
	require.NoError(t, h.run(t, "get_color tea"))
	require.Equal(t, " teal = [0.000, 0.500, 0.500]\n", h.out.String())

	h.out.Reset()
	require.NoError(t, h.run(t, "color_list"))
	require.Contains(t, h.out.String(), " teal ")
	require.Contains(t, h.out.String(), " white ")

	err := h.run(t, "get_color gr")
	require.Equal(t, usage.ErrAmbiguousValue, usage.KindOf(err))

	err = h.run(t, "set_color bad, (1, 2)")
	require.Equal(t, usage.ErrHandler, usage.KindOf(err))

	err = h.run(t, "set_color weird, nan nan nan")
	require.Equal(t, usage.ErrHandler, usage.KindOf(err))
	require.Contains(t, h.diag.String(), "invalid color component 'nan'")
	require.NotContains(t, h.session.Palette().Names(), "weird")
}

func TestHelp(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "help"))
	require.Contains(t, h.paged, "get started")
	require.Contains(t, h.paged, "set_color")
	require.NotContains(t, h.paged, "set_colour")

	require.NoError(t, h.run(t, "help set_c"))
	require.Contains(t, h.paged, "set_color - Define or redefine a named color")
	require.Contains(t, h.paged, "set_color name, rgb")

	require.NoError(t, h.run(t, "help set_colour"))
	require.Contains(t, h.paged, "set_colour is a synonym of set_color.")

	err := h.run(t, "help s")
	require.Equal(t, usage.ErrAmbiguousCommand, usage.KindOf(err))

	err = h.run(t, "help hepl")
	require.Equal(t, usage.ErrUnknownCommand, usage.KindOf(err))
	require.Contains(t, h.diag.String(), "Did you mean: help")
}

func TestUsageQuery(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "set_color ?"))
	require.Equal(t, "Usage: set_color name, rgb\n", h.out.String())
}

func TestAlias(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "alias hi, echo hello; echo world"))

	e, ok := h.registry.Lookup("hi")
	require.True(t, ok)
	require.Equal(t, dispatchers.CategoryAlias, e.Category)
	require.Equal(t, "echo hello; echo world", e.Summary)

	err := h.run(t, "alias 9-x, echo")
	require.Equal(t, usage.ErrHandler, usage.KindOf(err))

	err = h.run(t, "alias empty")
	require.Equal(t, usage.ErrHandler, usage.KindOf(err))
	require.Contains(t, h.diag.String(), "alias empty has no command")
}

func TestAlias_RunsThroughRunner(t *testing.T) {
	h := newHarness(t)
	var got []string
	h.registry.SetRunner(func(_ context.Context, text string) error {
		got = append(got, text)
		return nil
	})

	require.NoError(t, h.run(t, "alias go, set auto_zoom, off; get auto_zoom"))
	require.NoError(t, h.run(t, "go"))
	require.Equal(t, []string{"set auto_zoom, off; get auto_zoom"}, got)
}

func TestEcho(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "echo 'hello, world', (chain A), z=2, a=\"1\""))
	require.Equal(t, "hello, world (chain A) a=1 z=2\n", h.out.String())

	h.out.Reset()
	require.NoError(t, h.run(t, "echo"))
	require.Equal(t, "\n", h.out.String())
}

func TestSystem(t *testing.T) {
	h := newHarness(t)

	err := h.run(t, "system ls -l; echo $HOME")
	require.Equal(t, usage.ErrHandler, usage.KindOf(err))
	require.Empty(t, h.execs)

	h.system = true
	require.NoError(t, h.run(t, "system ls -l, -a; echo $HOME"))
	require.Equal(t, []string{"ls -l, -a; echo $HOME"}, h.execs)
}

func TestRun(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "run 'setup script.pml'"))
	require.Equal(t, []string{"setup script.pml"}, h.ran)

}

func TestQuitAndVersion(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "version"))
	require.Equal(t, "molsh version 1.2.3\n", h.out.String())

	require.False(t, h.session.QuitRequested())
	require.NoError(t, h.run(t, "qu"))
	require.True(t, h.session.QuitRequested())
}

func TestHistory(t *testing.T) {
	h := newHarness(t)

	err := h.run(t, "history")
	require.Equal(t, usage.ErrHandler, usage.KindOf(err))
	require.Contains(t, h.diag.String(), "history is disabled")

	at := time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC)
	s, sessionID := testutil.NewTestStore(t)
	testutil.SeedHistory(t, s, []domain.HistoryEntry{
		{SessionID: sessionID, Line: "set ray_trace_mode, 1", State: "done", CreatedAt: at},
		{SessionID: sessionID, Line: "qiut", State: "failed", Error: "unknown command", CreatedAt: at},
		{SessionID: sessionID, Line: "get ray", State: "done", CreatedAt: at.Add(time.Hour)},
	})

	deps := h.deps
	deps.History = s
	h.registry.Register(historyEntry(deps))

	h.out.Reset()
	require.NoError(t, h.run(t, "history"))
	require.Equal(t,
		"    1  Mar 04 09:30  set ray_trace_mode, 1\n"+
			"    2  Mar 04 09:30  qiut  (failed)\n"+
			"    3  Mar 04 10:30  get ray\n",
		h.out.String())

	h.out.Reset()
	require.NoError(t, h.run(t, "history 1"))
	require.Equal(t, "    3  Mar 04 10:30  get ray\n(1 of 3 shown)\n", h.out.String())

	err = h.run(t, "history lots")
	require.Equal(t, usage.ErrUnknownValue, usage.KindOf(err))

	h.out.Reset()
	require.NoError(t, h.run(t, "history clear"))
	require.Equal(t, "cleared 3 statements\n", h.out.String())

	h.out.Reset()
	require.NoError(t, h.run(t, "history"))
	require.Empty(t, h.out.String())
}

func TestWriteRef(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "write_ref ref.yaml"))
	data, ok := h.files["ref.yaml"]
	require.True(t, ok)
	require.Contains(t, h.out.String(), "written to ref.yaml")

	var ref reference
	require.NoError(t, yaml.Unmarshal(data, &ref))
	require.Equal(t, "1.2.3", ref.Version)

	byName := make(map[string]commandRef)
	for _, c := range ref.Commands {
		byName[c.Name] = c
	}

	sc := byName["set_color"]
	require.Equal(t, "Usage: set_color name, rgb", sc.Usage)
	require.Equal(t, "legacy", sc.Mode)
	require.Equal(t, []string{"set_colour"}, sc.Synonyms)
	require.Equal(t, []paramRef{{Name: "name", Required: true}, {Name: "rgb", Required: true}}, sc.Params)

	require.True(t, byName["echo"].Variadic)
	require.False(t, byName["set"].Params[1].Required)
	_, hasSynonym := byName["set_colour"]
	require.False(t, hasSynonym)
}

func TestWriteRef_WriteError(t *testing.T) {
	h := newHarness(t)
	deps := h.deps
	deps.WriteFile = func(string, []byte, os.FileMode) error { return errors.New("read-only") }
	h.registry.Register(writeRefEntry(deps))

	err := h.run(t, "write_ref /ref.yaml")
	require.Equal(t, usage.ErrHandler, usage.KindOf(err))
	require.Contains(t, h.diag.String(), "read-only")
}
