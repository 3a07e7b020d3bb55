// Package store persists screening history in PostgreSQL. The engine
// itself is stateless; persistence is a service-layer convenience and the
// whole package is optional at runtime.
package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool *pgxpool.Pool
	once sync.Once
)

// InitDB initializes the connection pool and ensures the schema exists. An
// empty databaseURL falls back to the DATABASE_URL environment variable.
func InitDB(ctx context.Context, databaseURL string) error {
	var err error
	once.Do(func() {
		if databaseURL == "" {
			databaseURL = os.Getenv("DATABASE_URL")
		}
		if databaseURL == "" {
			err = fmt.Errorf("no database URL configured (set DATABASE_URL)")
			return
		}

		config, parseErr := pgxpool.ParseConfig(databaseURL)
		if parseErr != nil {
			err = fmt.Errorf("failed to parse database config: %w", parseErr)
			return
		}

		pool, err = pgxpool.NewWithConfig(ctx, config)
		if err != nil {
			return
		}

		err = migrate(ctx)
	})
	return err
}

// migrate creates the screening-history table if needed.
func migrate(ctx context.Context) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS merger_screenings (
			id            UUID PRIMARY KEY,
			ticker1       TEXT NOT NULL,
			ticker2       TEXT NOT NULL,
			analysis_json JSONB NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create merger_screenings table: %w", err)
	}
	return nil
}

// Enabled reports whether a pool has been initialized.
func Enabled() bool {
	return pool != nil
}

// GetPool returns the database connection pool, nil before InitDB.
func GetPool() *pgxpool.Pool {
	return pool
}

// Close closes the database connection pool.
func Close() {
	if pool != nil {
		pool.Close()
	}
}
