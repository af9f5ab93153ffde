// Package database opens the Postgres pool and applies schema migrations.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/pressly/goose/v3"

	"github.com/tide-outfitters/tide/backend/migrations"
)

// Connection attempts made by Open before giving up.
const (
	maxAttempts  = 10
	retryBackoff = 2 * time.Second
)

// Open creates a pool capped at maxConns and waits until the database answers
// a ping. It retries while the server is still starting, which is common when
// the API and Postgres come up together under docker compose.
func Open(ctx context.Context, url string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("database.Open: parse url: %w", err)
	}
	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("database.Open: create pool: %w", err)
	}

	for attempt := 1; ; attempt++ {
		err = pool.Ping(ctx)
		if err == nil {
			return pool, nil
		}
		if attempt == maxAttempts {
			break
		}
		slog.WarnContext(ctx, "database not ready", "attempt", attempt, "max_attempts", maxAttempts, "error", err)

		select {
		case <-ctx.Done():
			pool.Close()
			return nil, fmt.Errorf("database.Open: %w", ctx.Err())
		case <-time.After(retryBackoff):
		}
	}

	pool.Close()
	return nil, fmt.Errorf("database.Open: ping after %d attempts: %w", maxAttempts, err)
}

// Migrate applies every pending migration embedded in the migrations package.
// goose drives database/sql, so it gets a short-lived *sql.DB of its own.
func Migrate(ctx context.Context, url string) error {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return fmt.Errorf("database.Migrate: open: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("database.Migrate: create provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("database.Migrate: %w", err)
	}
	for _, r := range results {
		slog.InfoContext(ctx, "migration applied",
			"version", r.Source.Version,
			"path", r.Source.Path,
			"duration", r.Duration,
		)
	}
	return nil
}
