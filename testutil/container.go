package testutil

import (
	"context"
	"fmt"
	"os"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	dsnEnv       = "TEST_DATABASE_URL"
	containerEnv = "TEST_POSTGRES_CONTAINER"

	postgresImage = "postgres:16-alpine"
)

// ResolveDSN returns the test database connection string for a TestMain.
//
// TEST_DATABASE_URL wins when set. Otherwise, if TEST_POSTGRES_CONTAINER is
// set, a throwaway Postgres container is started, TEST_DATABASE_URL is pointed
// at it for the rest of the process, and stop terminates it. With neither set
// the DSN is empty and integration tests skip.
func ResolveDSN(ctx context.Context) (dsn string, stop func(), err error) {
	noop := func() {}

	if dsn := os.Getenv(dsnEnv); dsn != "" {
		return dsn, noop, nil
	}
	if os.Getenv(containerEnv) == "" {
		return "", noop, nil
	}

	ctr, err := postgres.Run(ctx, postgresImage,
		postgres.WithDatabase("tide_test"),
		postgres.WithUsername("tide"),
		postgres.WithPassword("tide"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return "", noop, fmt.Errorf("testutil.ResolveDSN: start postgres: %w", err)
	}
	stop = func() { _ = testcontainers.TerminateContainer(ctr) }

	dsn, err = ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		stop()
		return "", noop, fmt.Errorf("testutil.ResolveDSN: connection string: %w", err)
	}
	if err := os.Setenv(dsnEnv, dsn); err != nil {
		stop()
		return "", noop, fmt.Errorf("testutil.ResolveDSN: export dsn: %w", err)
	}
	return dsn, stop, nil
}
