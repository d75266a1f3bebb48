package dispatchers

import (
	"context"
	"sync"

	"github.com/dualword/PyMOL/internal/binding"
)

// Invoker calls a resolved handler. Implementations decide what
// discipline handlers run under.
type Invoker interface {
	Invoke(ctx context.Context, e Entry, call binding.Call) error
}

// InvokerFunc adapts a function to Invoker.
type InvokerFunc func(ctx context.Context, e Entry, call binding.Call) error

func (f InvokerFunc) Invoke(ctx context.Context, e Entry, call binding.Call) error {
	return f(ctx, e, call)
}

// DirectInvoker calls handlers on the caller's goroutine with no locking.
type DirectInvoker struct{}

func (DirectInvoker) Invoke(ctx context.Context, e Entry, call binding.Call) error {
	return e.Handler(ctx, call)
}

// LockedInvoker serializes handlers behind a single lock. A handler that
// dispatches further commands on the same context (an alias, a script)
// does not take the lock again.
type LockedInvoker struct {
	mu sync.Locker
}

// NewLockedInvoker returns an invoker that holds mu while a handler runs.
func NewLockedInvoker(mu sync.Locker) *LockedInvoker {
	return &LockedInvoker{mu: mu}
}

type heldKey struct{}

func (l *LockedInvoker) Invoke(ctx context.Context, e Entry, call binding.Call) error {
	if held, _ := ctx.Value(heldKey{}).(*LockedInvoker); held == l {
		return e.Handler(ctx, call)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return e.Handler(context.WithValue(ctx, heldKey{}, l), call)
}

var (
	_ Invoker = DirectInvoker{}
	_ Invoker = (*LockedInvoker)(nil)
	_ Invoker = InvokerFunc(nil)
)
