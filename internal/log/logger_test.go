package log

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixedClock(l *Logger) *Logger {
	l.now = func() time.Time { return time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC) }
	return l
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"Warn":    LevelWarn,
		"error":   LevelError,
		"":        LevelWarn,
		"verbose": LevelWarn,
	}
	for in, want := range tests {
		require.Equal(t, want, ParseLevel(in), in)
	}
}

func TestLevel_String(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "ERROR", LevelError.String())
	require.Equal(t, "UNKNOWN", Level(9).String())
	require.Equal(t, "UNKNOWN", Level(-1).String())
}

func TestLogger_FiltersAndFormats(t *testing.T) {
	var buf bytes.Buffer
	l := fixedClock(NewWriter(&buf, LevelInfo))

	l.Debug("resolved %q", "se")
	l.Info("dispatch command=%s", "set")
	l.Warn("history: %v", errors.New("disk full"))
	l.Error("register builtins: %v", "duplicate")

	require.Equal(t,
		"2026-03-04T09:30:00 INFO  dispatch command=set\n"+
			"2026-03-04T09:30:00 WARN  history: disk full\n"+
			"2026-03-04T09:30:00 ERROR register builtins: duplicate\n",
		buf.String())
}

func TestLineWriter(t *testing.T) {
	var buf bytes.Buffer
	l := fixedClock(NewWriter(&buf, LevelDebug))
	w := l.Writer(LevelWarn, "system")

	_, _ = w.Write([]byte("sh: 1: pymol"))
	require.Empty(t, buf.String(), "partial line is held")

	_, _ = w.Write([]byte(": not found\r\n\nsecond\nthi"))
	require.Equal(t,
		"2026-03-04T09:30:00 WARN  system: sh: 1: pymol: not found\n"+
			"2026-03-04T09:30:00 WARN  system: second\n",
		buf.String())

	w.Flush()
	require.True(t, strings.HasSuffix(buf.String(), "WARN  system: thi\n"))

	buf.Reset()
	w.Flush()
	require.Empty(t, buf.String())
}

func TestLineWriter_RespectsMinLevel(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, LevelError).Writer(LevelWarn, "system")
	n, err := w.Write([]byte("ignored\n"))
	require.NoError(t, err)
	require.Equal(t, 8, n)
	require.Empty(t, buf.String())
}

func TestNew_RotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "molsh", "molsh.log")

	l, err := New(path, LevelDebug)
	require.NoError(t, err)
	l.Info("session started")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "INFO  session started")

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestNew_TightensExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "molsh.log")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0644))

	l, err := New(path, LevelWarn)
	require.NoError(t, err)
	defer func() { _ = l.Close() }()

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestNopLogger(t *testing.T) {
	var l NopLogger
	l.Debug("x")
	l.Error("y %d", 1)
	require.NoError(t, l.Close())
}
