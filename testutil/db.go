// Package testutil provides shared helpers for integration tests.
// Helpers in this package skip automatically when no test database is
// configured, so unit tests can run without a running database.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql

	"github.com/tide-outfitters/tide/backend/internal/database"
)

// testMaxConns mirrors the small fixed pool the server runs with.
const testMaxConns = 4

// NewPool opens a *pgxpool.Pool against TEST_DATABASE_URL, capped like the
// production pool. The pool is closed when the test and its subtests finish.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	cfg, err := pgxpool.ParseConfig(requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewPool: parse dsn: %v", err)
	}
	cfg.MaxConns = testMaxConns

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		t.Fatalf("testutil.NewPool: open pool: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Fatalf("testutil.NewPool: ping: %v", err)
	}

	t.Cleanup(pool.Close)
	return pool
}

// NewTx begins a transaction that is rolled back when the test finishes.
// Repositories built on it see their own writes while nothing is committed,
// and Begin on it opens a savepoint instead of a new transaction.
func NewTx(t *testing.T) pgx.Tx {
	t.Helper()

	tx, err := NewPool(t).Begin(context.Background())
	if err != nil {
		t.Fatalf("testutil.NewTx: begin: %v", err)
	}
	// Registered after the pool's Close, so it runs first.
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })
	return tx
}

// NewSQLDB opens a *sql.DB against TEST_DATABASE_URL using the pgx
// database/sql driver, for code that drives goose directly.
// The connection is closed automatically when the test finishes.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: open: %v", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		t.Fatalf("testutil.NewSQLDB: ping: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// MigrateForMain resolves the test database and brings its schema up to date
// for a whole test binary. It returns the exit code of m.Run. With no database
// configured it just runs the tests, which then skip themselves.
func MigrateForMain(m *testing.M) int {
	ctx := context.Background()

	dsn, stop, err := ResolveDSN(ctx)
	if err != nil {
		panic("testutil.MigrateForMain: " + err.Error())
	}
	defer stop()

	if dsn != "" {
		if err := database.Migrate(ctx, dsn); err != nil {
			panic("testutil.MigrateForMain: " + err.Error())
		}
	}
	return m.Run()
}

// requireDSN returns the TEST_DATABASE_URL environment variable value,
// skipping the test if it is not set.
func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}
	return dsn
}
