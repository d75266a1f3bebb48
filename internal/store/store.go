package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/dualword/PyMOL/internal/domain"
	"github.com/dualword/PyMOL/internal/store/migrations"
)

// Store is the SQLite command history. Several molsh processes may share
// one database, so it runs in WAL mode and waits on a busy database.
type Store struct {
	db *sql.DB
}

// dsnParams are go-sqlite3 connection options.
const dsnParams = "?_busy_timeout=5000&_journal_mode=WAL"

// New opens the database at path, creating it if needed, and migrates it.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+dsnParams)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	setDBPermissions(path)

	if err = migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// NewWithDB wraps an already migrated database.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// setDBPermissions makes the database and its WAL files private.
func setDBPermissions(path string) {
	if path == ":memory:" {
		return
	}
	_ = os.Chmod(path, 0600)
	_ = os.Chmod(path+"-wal", 0600)
	_ = os.Chmod(path+"-shm", 0600)
}

// BeginSession registers a new session and returns its ID.
func (s *Store) BeginSession(ctx context.Context) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, started_at) VALUES (?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("begin session: %w", err)
	}
	return id, nil
}

// EndSession stamps the end time of a session.
func (s *Store) EndSession(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET ended_at = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), id,
	)
	return err
}

// Record adds a dispatched statement to the history.
func (s *Store) Record(ctx context.Context, e domain.HistoryEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO history
		 (session_id, keyword, command, line, state, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.SessionID,
		e.Keyword,
		e.Command,
		e.Line,
		e.State,
		e.Error,
		e.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// Recent returns up to limit entries, oldest first. A non-positive limit
// returns the whole history.
func (s *Store) Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = -1 // no limit in SQLite
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, keyword, command, line, state, error, created_at
		FROM (SELECT * FROM history ORDER BY id DESC LIMIT ?)
		ORDER BY id`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []domain.HistoryEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count returns the number of recorded statements.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM history").Scan(&n)
	return n, err
}

// Clear deletes all recorded statements and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM history")
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func scanEntry(rows *sql.Rows) (domain.HistoryEntry, error) {
	var (
		e  domain.HistoryEntry
		ts string
	)
	err := rows.Scan(&e.ID, &e.SessionID, &e.Keyword, &e.Command, &e.Line, &e.State, &e.Error, &ts)
	if err == nil {
		e.CreatedAt, err = time.Parse(time.RFC3339Nano, ts)
	}
	if err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("scan history: %w", err)
	}
	return e, nil
}

var _ domain.HistoryStore = (*Store)(nil)
