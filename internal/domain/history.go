package domain

import "time"

// HistoryEntry is one dispatched statement.
type HistoryEntry struct {
	ID        int64
	SessionID string
	Keyword   string
	Command   string
	Line      string
	State     string
	Error     string
	CreatedAt time.Time
}

// Failed reports whether the statement did not complete.
func (e HistoryEntry) Failed() bool {
	return e.Error != ""
}
