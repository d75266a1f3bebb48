// Package paths locates the files molsh reads and writes. Each location
// can be moved with an environment variable.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "molsh"

// Environment variables that relocate molsh's files.
const (
	EnvRC      = "MOLSH_RC"       // the rc file, normally ~/.molshrc
	EnvDataDir = "MOLSH_DATA_DIR" // the directory holding history.db
	EnvLogFile = "MOLSH_LOG_FILE" // the diagnostic log
)

// ConfigFilePath returns the rc file: $MOLSH_RC, or ~/.molshrc.
func ConfigFilePath() (string, error) {
	if p := os.Getenv(EnvRC); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "."+appName+"rc"), nil
}

// DataDir returns where the history database lives: $MOLSH_DATA_DIR, or
// the platform's per-user data directory.
//   - macOS: ~/Library/Application Support/molsh
//   - Windows: %LOCALAPPDATA%\molsh
//   - elsewhere: $XDG_DATA_HOME/molsh or ~/.local/share/molsh
func DataDir() string {
	if d := os.Getenv(EnvDataDir); d != "" {
		return d
	}
	return filepath.Join(dataBase(runtime.GOOS), appName)
}

func dataBase(goos string) string {
	home, _ := os.UserHomeDir()
	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support")
	case "windows":
		if d := os.Getenv("LOCALAPPDATA"); d != "" {
			return d
		}
		return filepath.Join(home, "AppData", "Local")
	default:
		if d := os.Getenv("XDG_DATA_HOME"); d != "" {
			return d
		}
		return filepath.Join(home, ".local", "share")
	}
}

// HistoryDBPath returns the command history database.
func HistoryDBPath() string {
	return filepath.Join(DataDir(), "history.db")
}

// LogFilePath returns the diagnostic log: $MOLSH_LOG_FILE, or molsh.log in
// the user config directory ($XDG_CONFIG_HOME/molsh on Linux).
func LogFilePath() string {
	if p := os.Getenv(EnvLogFile); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = DataDir()
	} else {
		dir = filepath.Join(dir, appName)
	}
	return filepath.Join(dir, appName+".log")
}
