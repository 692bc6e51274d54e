package testutil

import (
	"context"
	"io/fs"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	pgpkg "github.com/loanflow/loanflow/pkg/postgres"
)

const postgresImage = "postgres:16-alpine"

// StartPostgres runs a throwaway PostgreSQL container, applies the migrations
// found under dir in fsys and returns a pool connected to it. Container and
// pool are released through t.Cleanup. Skipped under -short.
func StartPostgres(t *testing.T, fsys fs.FS, dir string) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container skipped in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ctr, err := postgres.Run(ctx, postgresImage,
		postgres.WithDatabase("loanflow_test"),
		postgres.WithUsername("loanflow"),
		postgres.WithPassword("loanflow"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	if ctr != nil {
		t.Cleanup(func() { terminate(t, "postgres", ctr) })
	}
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("postgres dsn: %v", err)
	}
	if fsys != nil {
		if err := pgpkg.RunMigrations(dsn, fsys, dir); err != nil {
			t.Fatalf("migrate: %v", err)
		}
	}

	pool, err := pgpkg.NewPoolFromDSN(ctx, dsn, 4, 0)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func terminate(t *testing.T, name string, ctr testcontainers.Container) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := ctr.Terminate(ctx); err != nil {
		t.Logf("terminate %s container: %v", name, err)
	}
}
