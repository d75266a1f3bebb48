// Package migrations holds the history database schema. Each file under
// sql/ is named NN_name.sql and is applied once, in order; the applied
// version is kept in SQLite's user_version pragma.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
)

//go:embed sql/*.sql
var sqlFiles embed.FS

// Step is one schema change.
type Step struct {
	Version int
	Name    string
	SQL     string
}

// Load returns the embedded steps ordered by version.
func Load() ([]Step, error) {
	return load(sqlFiles, "sql")
}

func load(fsys fs.FS, dir string) ([]Step, error) {
	names, err := fs.Glob(fsys, dir+"/*.sql")
	if err != nil {
		return nil, err
	}

	steps := make([]Step, 0, len(names))
	byVersion := make(map[int]string, len(names))
	for _, path := range names {
		base := strings.TrimSuffix(path[len(dir)+1:], ".sql")
		num, name, ok := strings.Cut(base, "_")
		version, err := strconv.Atoi(num)
		if !ok || err != nil || version <= 0 {
			return nil, fmt.Errorf("migrations: %s: want NN_name.sql", path)
		}
		if prev, dup := byVersion[version]; dup {
			return nil, fmt.Errorf("migrations: version %d used by %s and %s", version, prev, name)
		}
		byVersion[version] = name

		body, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, err
		}
		steps = append(steps, Step{Version: version, Name: name, SQL: string(body)})
	}

	sort.Slice(steps, func(i, j int) bool { return steps[i].Version < steps[j].Version })
	return steps, nil
}

// Version returns the schema version recorded in db.
func Version(db *sql.DB) (int, error) {
	var v int
	if err := db.QueryRow("PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("migrations: read user_version: %w", err)
	}
	return v, nil
}

// Run brings db up to the newest embedded version.
func Run(db *sql.DB) error {
	steps, err := Load()
	if err != nil {
		return err
	}
	return apply(db, steps)
}

func apply(db *sql.DB, steps []Step) error {
	current, err := Version(db)
	if err != nil {
		return err
	}

	for _, s := range steps {
		if s.Version <= current {
			continue
		}
		if err := applyStep(db, s); err != nil {
			return fmt.Errorf("migrations: %02d_%s: %w", s.Version, s.Name, err)
		}
		current = s.Version
	}
	return nil
}

func applyStep(db *sql.DB, s Step) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(s.SQL); err != nil {
		_ = tx.Rollback()
		return err
	}
	// PRAGMA does not take bind parameters.
	if _, err := tx.Exec("PRAGMA user_version = " + strconv.Itoa(s.Version)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
