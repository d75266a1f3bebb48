// Package log writes molsh's diagnostic log: one line per event, filtered
// by level, to a size-rotated file under the application data directory.
package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dualword/PyMOL/internal/domain"
)

// Level is the severity of a log message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel maps the log_level config value to a Level. Anything it does
// not recognise is LevelWarn.
func ParseLevel(s string) Level {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i)
		}
	}
	return LevelWarn
}

// Rotation limits for the log file.
const (
	maxSizeMB  = 5
	maxBackups = 3
	maxAgeDays = 28
)

// Logger writes leveled lines to out. It is safe for concurrent use.
type Logger struct {
	mu  sync.Mutex
	out io.WriteCloser
	min Level
	now func() time.Time
}

// New opens a rotating log at path, creating its directory.
func New(path string, min Level) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("log: create directory: %w", err)
	}
	if info, err := os.Stat(path); err == nil && info.Mode().Perm() != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return nil, fmt.Errorf("log: chmod: %w", err)
		}
	}

	return newLogger(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}, min), nil
}

// NewWriter logs to w. Close closes w if it is an io.Closer.
func NewWriter(w io.Writer, min Level) *Logger {
	wc, ok := w.(io.WriteCloser)
	if !ok {
		wc = nopCloser{w}
	}
	return newLogger(wc, min)
}

func newLogger(out io.WriteCloser, min Level) *Logger {
	return &Logger{out: out, min: min, now: time.Now}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// Close closes the underlying file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.out.Close()
}

func (l *Logger) write(level Level, msg string) {
	if level < l.min {
		return
	}
	line := fmt.Sprintf("%s %-5s %s\n", l.now().Format("2006-01-02T15:04:05"), level, msg)

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := io.WriteString(l.out, line); err != nil && level >= LevelError {
		fmt.Fprintf(os.Stderr, "molsh: log write failed: %v\n", err)
	}
}

func (l *Logger) Debug(format string, args ...any) { l.write(LevelDebug, fmt.Sprintf(format, args...)) }
func (l *Logger) Info(format string, args ...any)  { l.write(LevelInfo, fmt.Sprintf(format, args...)) }
func (l *Logger) Warn(format string, args ...any)  { l.write(LevelWarn, fmt.Sprintf(format, args...)) }
func (l *Logger) Error(format string, args ...any) { l.write(LevelError, fmt.Sprintf(format, args...)) }

// Writer returns an io.Writer that logs each complete line written to it
// at level, prefixed with tag. A trailing partial line is held until the
// next newline or Flush.
func (l *Logger) Writer(level Level, tag string) *LineWriter {
	return &LineWriter{logger: l, level: level, tag: tag}
}

// LineWriter is returned by Logger.Writer.
type LineWriter struct {
	mu     sync.Mutex
	logger *Logger
	level  Level
	tag    string
	buf    bytes.Buffer
}

func (w *LineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		i := bytes.IndexByte(w.buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		line := string(w.buf.Next(i + 1))
		w.emit(strings.TrimRight(line, "\r\n"))
	}
	return len(p), nil
}

// Flush logs any buffered partial line.
func (w *LineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.buf.Len() > 0 {
		w.emit(w.buf.String())
		w.buf.Reset()
	}
}

func (w *LineWriter) emit(line string) {
	if line == "" {
		return
	}
	w.logger.write(w.level, w.tag+": "+line)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
func (NopLogger) Close() error         { return nil }

var (
	_ domain.Logger = (*Logger)(nil)
	_ domain.Logger = NopLogger{}
)
