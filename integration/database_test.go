//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// runSnapshotRoundTrip records a KPI run and reads it back through the CLI.
func runSnapshotRoundTrip(t *testing.T, backend, connStr string) {
	projectsFile, qualityFile := writeFixtureExports(t, t.TempDir())

	// Set environment variables
	_ = os.Setenv("MIRADOR_SNAPSHOT_BACKEND", backend)
	_ = os.Setenv("MIRADOR_SNAPSHOT_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("MIRADOR_SNAPSHOT_BACKEND") }()
	defer func() { _ = os.Unsetenv("MIRADOR_SNAPSHOT_DB_CONNECT") }()

	// Run migrations on the fresh database
	_, err := runMiradorCommand(t, "snapshot", "migrate")
	require.NoError(t, err)

	// Record a KPI run
	_, err = runMiradorCommand(t,
		"kpi",
		"--projects", projectsFile,
		"--quality", qualityFile,
		"--record",
	)
	require.NoError(t, err)

	// Check store status
	output, err := runMiradorCommand(t, "snapshot", "status")
	require.NoError(t, err)
	assert.Contains(t, output, "Total Runs: 1")
	assert.Contains(t, output, "Total KPI Values: 6")

	// Read the run back
	output, err = runMiradorCommand(t, "snapshot", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "completion_rate")
	assert.Contains(t, output, "defect_density")
}

// TestMiradorWithMySQL tests the mirador CLI with a MySQL backend.
func TestMiradorWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "mirador",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/mirador?parseTime=true", host, port.Port())
	runSnapshotRoundTrip(t, "mysql", connStr)
}

// TestMiradorWithPostgres tests the mirador CLI with a PostgreSQL backend.
func TestMiradorWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	runSnapshotRoundTrip(t, "postgresql", connStr)
}
