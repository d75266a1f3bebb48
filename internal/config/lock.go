package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// ErrLocked is returned when another process holds the rc file lock for
// longer than lockWait.
var ErrLocked = errors.New("config: rc file is locked")

var (
	lockWait  = 5 * time.Second
	lockStale = 30 * time.Second
	lockPoll  = 50 * time.Millisecond
)

// lockPath is the lock file guarding f: the rc path with ".lock" appended.
func (f *File) lockPath() string {
	return f.Path + ".lock"
}

// withLock runs fn while holding f's lock file. A lock older than
// lockStale is taken over.
func (f *File) withLock(fn func() error) error {
	path := f.lockPath()
	deadline := time.Now().Add(lockWait)

	for {
		lf, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			_, _ = lf.WriteString(strconv.Itoa(os.Getpid()))
			_ = lf.Close()
			defer func() { _ = os.Remove(path) }()
			return fn()
		}
		if !errors.Is(err, os.ErrExist) {
			return fmt.Errorf("config: lock: %w", err)
		}

		if info, statErr := os.Stat(path); statErr == nil && time.Since(info.ModTime()) > lockStale {
			_ = os.Remove(path)
			continue
		}
		if time.Now().After(deadline) {
			return ErrLocked
		}
		time.Sleep(lockPoll)
	}
}
