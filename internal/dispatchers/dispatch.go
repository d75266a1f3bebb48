package dispatchers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dualword/PyMOL/internal/binding"
	"github.com/dualword/PyMOL/internal/domain"
	"github.com/dualword/PyMOL/internal/log"
	"github.com/dualword/PyMOL/internal/parsing"
	"github.com/dualword/PyMOL/internal/shortcut"
	"github.com/dualword/PyMOL/internal/ui/style"
	"github.com/dualword/PyMOL/internal/usage"
)

const defaultSuggestionsCount = 3

// State is a stage of dispatching one command line.
type State int

const (
	AwaitingCommand State = iota
	ResolvingName
	Parsing
	Binding
	Invoking
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case AwaitingCommand:
		return "awaiting command"
	case ResolvingName:
		return "resolving name"
	case Parsing:
		return "parsing"
	case Binding:
		return "binding"
	case Invoking:
		return "invoking"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Outcome describes what happened to one command line.
//
// Keyword is the leading token as typed and Command the keyword it
// resolved to. On failure State is Failed, Stage is the stage that
// failed and Err holds the reported error.
type Outcome struct {
	Line    string
	Keyword string
	Command string
	State   State
	Stage   State
	Args    []parsing.Argument
	Call    binding.Call
	Err     error
}

// Ok reports whether the command completed.
func (o *Outcome) Ok() bool {
	return o.State == Done
}

// Dispatcher turns command lines into handler calls.
type Dispatcher struct {
	registry *Registry
	invoker  Invoker
	out      io.Writer
	diag     io.Writer
	styler   domain.Styler
	logger   domain.Logger
	raise    func() bool
	observe  func(ctx context.Context, o *Outcome)
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithInvoker sets how handlers are called.
func WithInvoker(inv Invoker) Option {
	return func(d *Dispatcher) {
		d.invoker = inv
	}
}

// WithOutput sets where usage queries are printed.
func WithOutput(w io.Writer) Option {
	return func(d *Dispatcher) {
		d.out = w
	}
}

// WithDiagnostics sets where errors are reported.
func WithDiagnostics(w io.Writer) Option {
	return func(d *Dispatcher) {
		d.diag = w
	}
}

// WithStyler sets the styler used for diagnostics.
func WithStyler(s domain.Styler) Option {
	return func(d *Dispatcher) {
		d.styler = s
	}
}

// WithLogger sets the logger.
func WithLogger(l domain.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// WithRaiseOnError sets the failure policy. When fn returns true a failed
// command returns its error; otherwise Dispatch returns a failed Outcome
// and a nil error.
func WithRaiseOnError(fn func() bool) Option {
	return func(d *Dispatcher) {
		d.raise = fn
	}
}

// WithObserver registers a function called with every finished Outcome.
func WithObserver(fn func(ctx context.Context, o *Outcome)) Option {
	return func(d *Dispatcher) {
		d.observe = fn
	}
}

// NewDispatcher returns a dispatcher over registry. Unless the registry
// already has one, the dispatcher becomes the registry's alias runner.
func NewDispatcher(registry *Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		invoker:  DirectInvoker{},
		out:      os.Stdout,
		diag:     os.Stderr,
		styler:   style.NopStyler{},
		logger:   log.NopLogger{},
		raise:    func() bool { return true },
	}
	for _, opt := range opts {
		opt(d)
	}
	if registry.runner() == nil {
		registry.SetRunner(func(ctx context.Context, text string) error {
			_, err := d.Dispatch(ctx, text)
			return err
		})
	}
	return d
}

// Registry returns the command table the dispatcher reads.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// RaiseOnError reports the current failure policy.
func (d *Dispatcher) RaiseOnError() bool {
	return d.raise()
}

// Dispatch runs one command line. Errors are written to the diagnostic
// writer when detected and come back marked quiet.
func (d *Dispatcher) Dispatch(ctx context.Context, line string) (*Outcome, error) {
	o := &Outcome{Line: line, State: AwaitingCommand}

	keyword := parsing.Keyword(line)
	if keyword == "" {
		o.State = Done
		return o, nil
	}
	o.Keyword = keyword
	d.logger.Debug("dispatch: %s", line)

	o.State = ResolvingName
	entry, res := d.registry.Resolve(keyword)
	switch res.Kind {
	case shortcut.NotFound:
		return d.fail(ctx, o, usage.UnknownCommand(keyword, d.registry.Suggest(keyword, defaultSuggestionsCount)...))
	case shortcut.Ambiguous:
		return d.fail(ctx, o, usage.AmbiguousCommand(keyword, res.Candidates))
	}
	o.Command = res.Match

	o.State = Parsing
	args, err := parsing.Parse(line, entry.Mode)
	if err != nil {
		return d.fail(ctx, o, asUsageError(o.Command, err))
	}
	o.Args = args

	if isUsageQuery(args) {
		fmt.Fprintln(d.out, entry.Usage())
		return d.finish(ctx, o)
	}

	o.State = Binding
	call, err := binding.Bind(entry.Name, args, entry.Signature, entry.Mode)
	if err != nil {
		return d.fail(ctx, o, asUsageError(o.Command, err))
	}
	o.Call = call

	o.State = Invoking
	if err := d.invoke(ctx, entry, call); err != nil {
		return d.fail(ctx, o, asUsageError(o.Command, err))
	}
	return d.finish(ctx, o)
}

func (d *Dispatcher) invoke(ctx context.Context, e Entry, call binding.Call) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	if e.Handler == nil {
		return fmt.Errorf("command %s has no handler", e.Name)
	}
	return d.invoker.Invoke(ctx, e, call)
}

func (d *Dispatcher) finish(ctx context.Context, o *Outcome) (*Outcome, error) {
	o.State = Done
	if d.observe != nil {
		d.observe(ctx, o)
	}
	return o, nil
}

func (d *Dispatcher) fail(ctx context.Context, o *Outcome, ue *usage.Error) (*Outcome, error) {
	o.Stage = o.State
	o.State = Failed

	if !ue.Quiet {
		d.report(ue)
		d.logger.Warn("%s failed while %s: %s", o.Keyword, o.Stage, ue.Message)
		ue.MarkQuiet()
	}
	o.Err = ue

	if d.observe != nil {
		d.observe(ctx, o)
	}
	if d.raise() {
		return o, ue
	}
	return o, nil
}

func (d *Dispatcher) report(ue *usage.Error) {
	lines := ue.Lines()
	fmt.Fprintln(d.diag, d.styler.Error(lines[0]))
	for _, l := range lines[1:] {
		if ue.Kind == usage.ErrSyntax {
			fmt.Fprintln(d.diag, d.styler.Error(l))
			continue
		}
		fmt.Fprintln(d.diag, d.styler.Muted(l))
	}
}

// asUsageError keeps usage errors raised by any stage as they are and
// wraps everything else as a handler failure.
func asUsageError(command string, err error) *usage.Error {
	if ue, ok := usage.As(err); ok {
		return ue
	}
	return usage.Handler(command, err)
}

// isUsageQuery reports whether the arguments are a lone "?".
func isUsageQuery(args []parsing.Argument) bool {
	return len(args) == 1 && !args[0].IsNamed() && args[0].Value == "?"
}
