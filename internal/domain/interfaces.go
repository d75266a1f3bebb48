// Package domain holds the types and interfaces shared by molsh's packages.
package domain

import (
	"context"
	"io"
)

// HistoryStore records dispatched statements. Recent returns entries
// oldest first, and Clear reports how many it deleted.
type HistoryStore interface {
	Record(ctx context.Context, entry HistoryEntry) error
	Recent(ctx context.Context, limit int) ([]HistoryEntry, error)
	Count(ctx context.Context) (int64, error)
	Clear(ctx context.Context) (int64, error)
	Close() error
}

// ConfigProvider reads and edits ~/.molshrc. Get falls back to the key's
// default.
type ConfigProvider interface {
	Get(key string) (string, bool)
	GetAll() (map[string]string, error)
	Set(key, value string) error
	Unset(key string) error
}

// Logger takes printf-style messages at four levels.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	Close() error
}

// OutputWriter is where commands print. Pager is for output long enough
// to scroll, such as help.
type OutputWriter interface {
	io.Writer
	Printf(format string, args ...any) (int, error)
	Println(args ...any) (int, error)
	Pager(content string)
}

// Styler colors text by its role. A disabled Styler returns text as is.
type Styler interface {
	Enabled() bool
	Success(text string) string
	Warning(text string) string
	Error(text string) string
	Info(text string) string
	Muted(text string) string
	Header(text string) string
}

// Application bundles the services every command layer shares.
type Application struct {
	History HistoryStore
	Config  ConfigProvider
	Logger  Logger
	Output  OutputWriter
	Styler  Styler
}
