//go:build integration

package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// testPool is shared by every test in the package.
var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	os.Exit(runWithContainer(m))
}

func runWithContainer(m *testing.M) int {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	// TerminateContainer is nil-safe and also removes a container that failed to start.
	defer func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			log.Printf("terminating postgres container: %v", err)
		}
	}()
	if err != nil {
		log.Printf("starting postgres container: %v", err)
		return 1
	}

	host, err := container.Host(ctx)
	if err != nil {
		log.Printf("getting container host: %v", err)
		return 1
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		log.Printf("getting container port: %v", err)
		return 1
	}
	dsn := fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	if err := RunMigrations(ctx, dsn); err != nil {
		log.Printf("running migrations: %v", err)
		return 1
	}

	d, err := New(ctx, dsn)
	if err != nil {
		log.Printf("connecting to test db: %v", err)
		return 1
	}
	defer d.Close()
	testPool = d.Pool()

	return m.Run()
}

// setupTestDB returns the shared pool with every table truncated.
func setupTestDB(tb testing.TB) *pgxpool.Pool {
	tb.Helper()

	ctx := context.Background()
	for _, query := range []string{"TRUNCATE effects", "TRUNCATE attack_power"} {
		if _, err := testPool.Exec(ctx, query); err != nil {
			tb.Fatalf("truncating: %v", err)
		}
	}
	return testPool
}
