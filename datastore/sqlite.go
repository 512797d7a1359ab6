package datastore

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

// Fixed width UTC layout, so text order equals time order.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

type sqliteDialect struct{}

func (sqliteDialect) placeholder(int) string { return "?" }

func (sqliteDialect) encode(_ string, v any) any {
	if t, ok := v.(time.Time); ok {
		return t.UTC().Format(sqliteTimeLayout)
	}
	return v
}

func (sqliteDialect) decode(column string, v any) any {
	s, ok := v.(string)
	if !ok || !timeColumns[column] {
		return v
	}
	if t, err := time.Parse(sqliteTimeLayout, s); err == nil {
		return t
	}
	return v
}

// OpenSQLite opens the embedded store at path (":memory:" works) and creates
// the tables it needs.
func OpenSQLite(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One connection: sqlite serializes writers, and each ":memory:"
	// connection would otherwise see its own database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}
	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	slog.Info("Database connection successful", "driver", "sqlite", "path", path)
	return newSQLStore(db, sqliteDialect{}), nil
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT,
			name TEXT,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS shifts (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			type TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_shifts_user_start ON shifts(user_id, start_time);`,
		`CREATE TABLE IF NOT EXISTS moods (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			mood_level INTEGER NOT NULL,
			note TEXT,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_moods_user_created ON moods(user_id, created_at);`,
		`CREATE TABLE IF NOT EXISTS hydration_events (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			amount_ml REAL NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_hydration_user_created ON hydration_events(user_id, created_at);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
