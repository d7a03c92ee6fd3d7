// pkg/db/postgres.go
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// schemaStatements create the tables the PostgreSQL repositories expect.
// seq preserves insertion order for listings.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		seq        BIGSERIAL NOT NULL,
		username   TEXT NOT NULL CHECK (username <> ''),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS exercises (
		id          TEXT PRIMARY KEY,
		seq         BIGSERIAL NOT NULL,
		user_id     TEXT NOT NULL,
		description TEXT NOT NULL CHECK (description <> ''),
		duration    DOUBLE PRECISION NOT NULL,
		date        TIMESTAMPTZ NOT NULL DEFAULT now(),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS exercises_user_date_idx ON exercises (user_id, date)`,
	`CREATE INDEX IF NOT EXISTS exercises_user_seq_idx ON exercises (user_id, seq)`,
}

// NewPostgresDB initializes and returns a new PostgreSQL database connection.
func NewPostgresDB(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(connectCtx, "postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxOpenConns / 2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.PingContext(connectCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	return db, nil
}

// EnsureSchema creates missing tables and indexes in a single transaction.
func EnsureSchema(ctx context.Context, dbConn DBTxBeginner) error {
	tx, err := BeginTx(ctx, dbConn)
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer RollbackTx(tx)

	for _, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	if err := CommitTx(tx); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}
	return nil
}
