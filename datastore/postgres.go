package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	_ "github.com/lib/pq"
)

const (
	dbPingTimeout     = 5 * time.Second
	dbMaxOpenConns    = 25
	dbMaxIdleConns    = 25
	dbConnMaxLifetime = 5 * time.Minute
)

type postgresDialect struct{}

func (postgresDialect) placeholder(n int) string    { return "$" + strconv.Itoa(n) }
func (postgresDialect) encode(_ string, v any) any { return v }
func (postgresDialect) decode(_ string, v any) any { return v }

// NewPostgresStore wraps an open Postgres pool. The tables must already exist.
func NewPostgresStore(db *sql.DB) *SQLStore {
	return newSQLStore(db, postgresDialect{})
}

// OpenPostgres opens and pings a Postgres pool.
func OpenPostgres(connStr string) (*SQLStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(dbMaxOpenConns)
	db.SetMaxIdleConns(dbMaxIdleConns)
	db.SetConnMaxLifetime(dbConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		db.Close() // Close unusable connection pool
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Database connection successful", "driver", "postgres")
	return NewPostgresStore(db), nil
}
