package testutil

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/dualword/PyMOL/internal/domain"
	"github.com/dualword/PyMOL/internal/store"
	"github.com/dualword/PyMOL/internal/store/migrations"
)

// NewTestDB creates an in-memory SQLite database with migrations applied.
// The database is automatically closed when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err, "failed to open in-memory database")

	// Each pooled connection to :memory: is its own database.
	db.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = db.Close()
	})

	err = migrations.Run(db)
	require.NoError(t, err, "failed to run migrations")

	return db
}

// NewTestStore wraps NewTestDB in a store with an open session.
func NewTestStore(t *testing.T) (*store.Store, string) {
	t.Helper()

	s := store.NewWithDB(NewTestDB(t))
	id, err := s.BeginSession(context.Background())
	require.NoError(t, err, "failed to begin session")

	return s, id
}

// SeedHistory records a slice of entries into the test store.
func SeedHistory(t *testing.T, s domain.HistoryStore, entries []domain.HistoryEntry) {
	t.Helper()

	for _, e := range entries {
		err := s.Record(context.Background(), e)
		require.NoError(t, err, "failed to seed entry: %+v", e)
	}
}
