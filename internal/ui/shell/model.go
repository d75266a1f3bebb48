// Package shell is the interactive prompt.
package shell

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dualword/PyMOL/internal/ui/style"
)

// Config wires the prompt to the command layer.
type Config struct {
	// Prompt is shown before the input.
	Prompt string

	// Run executes one submitted line. Its error has already been reported
	// through Output, so the prompt only keeps going.
	Run func(ctx context.Context, line string) error

	// Output is drained after every line and printed above the prompt.
	Output *Buffer

	// Complete returns the completed line and the candidates for line.
	Complete func(line string) (string, []string)

	// Done reports whether the session asked to quit.
	Done func() bool

	// History seeds the recall list, oldest first.
	History []string
}

type lineDoneMsg struct {
	output string
}

// Model is the bubbletea model of the prompt.
type Model struct {
	ctx   context.Context
	cfg   Config
	keys  KeyMap
	input textinput.Model

	history []string
	histPos int
	draft   string

	candidates []string
	running    bool
	quitting   bool
}

// NewModel returns a prompt model.
func NewModel(ctx context.Context, cfg Config) *Model {
	ti := textinput.New()
	ti.Prompt = style.Prompt(cfg.Prompt)
	ti.CharLimit = 0
	ti.Focus()

	if cfg.Output == nil {
		cfg.Output = &Buffer{}
	}

	history := append([]string(nil), cfg.History...)
	return &Model{
		ctx:     ctx,
		cfg:     cfg,
		keys:    DefaultKeyMap(),
		input:   ti,
		history: history,
		histPos: len(history),
	}
}

// Init starts the cursor blinking.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-lipgloss.Width(m.input.Prompt)-1, 0)
		return m, nil

	case lineDoneMsg:
		m.running = false
		var cmds []tea.Cmd
		if out := strings.TrimRight(msg.output, "\n"); out != "" {
			cmds = append(cmds, tea.Println(out))
		}
		if m.cfg.Done != nil && m.cfg.Done() {
			m.quitting = true
			cmds = append(cmds, tea.Quit)
		}
		if len(cmds) == 0 {
			return m, nil
		}
		return m, tea.Sequence(cmds...)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		if m.input.Value() != "" {
			m.input.SetValue("")
			m.candidates = nil
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Exit):
		if m.input.Value() == "" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if m.running {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()

	case key.Matches(msg, m.keys.Complete):
		m.complete()
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.recall(-1)
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.recall(1)
		return m, nil
	}

	m.candidates = nil
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit() tea.Cmd {
	line := m.input.Value()
	m.input.SetValue("")
	m.candidates = nil
	m.draft = ""

	echo := tea.Println(m.input.Prompt + line)
	if strings.TrimSpace(line) == "" {
		return echo
	}

	if n := len(m.history); n == 0 || m.history[n-1] != line {
		m.history = append(m.history, line)
	}
	m.histPos = len(m.history)

	if m.cfg.Run == nil {
		return echo
	}
	m.running = true
	return tea.Sequence(echo, m.run(line))
}

func (m *Model) run(line string) tea.Cmd {
	return func() tea.Msg {
		_ = m.cfg.Run(m.ctx, line)
		return lineDoneMsg{output: m.cfg.Output.Drain()}
	}
}

func (m *Model) complete() {
	if m.cfg.Complete == nil {
		return
	}
	line, cands := m.cfg.Complete(m.input.Value())
	m.input.SetValue(line)
	m.input.CursorEnd()
	if len(cands) > 1 {
		m.candidates = cands
	} else {
		m.candidates = nil
	}
}

// recall moves through history. Leaving the newest entry restores the
// line that was being typed.
func (m *Model) recall(delta int) {
	if len(m.history) == 0 {
		return
	}
	if m.histPos == len(m.history) {
		m.draft = m.input.Value()
	}
	pos := min(max(m.histPos+delta, 0), len(m.history))
	if pos == m.histPos {
		return
	}
	m.histPos = pos
	if pos == len(m.history) {
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(m.history[pos])
	}
	m.input.CursorEnd()
}

// View renders the prompt and any pending completion candidates.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.running {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.input.View())
	if len(m.candidates) > 0 {
		b.WriteString("\n")
		b.WriteString(style.Muted(strings.Join(m.candidates, "  ")))
	}
	return b.String()
}

// History returns the recall list, oldest first.
func (m *Model) History() []string {
	return append([]string(nil), m.history...)
}

// Run starts the prompt and blocks until the user quits.
func Run(ctx context.Context, cfg Config, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(NewModel(ctx, cfg), opts...).Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
