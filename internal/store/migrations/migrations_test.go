package migrations

import (
	"database/sql"
	"testing"
	"testing/fstest"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func memDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestLoad_Embedded(t *testing.T) {
	steps, err := Load()
	require.NoError(t, err)
	require.Len(t, steps, 2)
	require.Equal(t, 1, steps[0].Version)
	require.Equal(t, "sessions", steps[0].Name)
	require.Equal(t, 2, steps[1].Version)
	require.Equal(t, "history", steps[1].Name)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		files fstest.MapFS
	}{
		{"no number", fstest.MapFS{"sql/history.sql": {Data: []byte("")}}},
		{"zero version", fstest.MapFS{"sql/00_history.sql": {Data: []byte("")}}},
		{"duplicate", fstest.MapFS{
			"sql/01_sessions.sql": {Data: []byte("")},
			"sql/1_history.sql":   {Data: []byte("")},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(tt.files, "sql")
			require.Error(t, err)
		})
	}
}

func TestLoad_OrdersNumerically(t *testing.T) {
	steps, err := load(fstest.MapFS{
		"sql/10_later.sql": {Data: []byte("SELECT 1")},
		"sql/9_sooner.sql": {Data: []byte("SELECT 1")},
	}, "sql")
	require.NoError(t, err)
	require.Equal(t, []int{9, 10}, []int{steps[0].Version, steps[1].Version})
}

func TestRun_CreatesSchema(t *testing.T) {
	db := memDB(t)
	require.NoError(t, Run(db))

	v, err := Version(db)
	require.NoError(t, err)
	require.Equal(t, 2, v)

	for _, table := range []string{"sessions", "history"} {
		var n int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&n)
		require.NoError(t, err)
		require.Equal(t, 1, n, table)
	}
}

func TestRun_Idempotent(t *testing.T) {
	db := memDB(t)
	require.NoError(t, Run(db))

	_, err := db.Exec("INSERT INTO sessions (id, started_at) VALUES ('s1', 'now')")
	require.NoError(t, err)

	require.NoError(t, Run(db))

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&n))
	require.Equal(t, 1, n)
}

func TestApply_SkipsAppliedAndRollsBack(t *testing.T) {
	db := memDB(t)

	ok := []Step{{Version: 1, Name: "one", SQL: "CREATE TABLE one (x INTEGER)"}}
	require.NoError(t, apply(db, ok))

	bad := append(ok, Step{Version: 2, Name: "two", SQL: "CREATE TABLE two (x INTEGER); NOT SQL"})
	err := apply(db, bad)
	require.ErrorContains(t, err, "02_two")

	v, err := Version(db)
	require.NoError(t, err)
	require.Equal(t, 1, v)

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE name='two'").Scan(&n))
	require.Zero(t, n)
}
