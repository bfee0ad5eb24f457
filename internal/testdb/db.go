//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasker-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// Environment variables consulted for the test database, in order.
const (
	EnvTestDBURL   = "TASKER_TEST_DB_URL"
	EnvDatabaseURL = "DATABASE_URL"
)

var (
	schemaOnce sync.Once
	schemaErr  error
)

// GetTestDatabaseURL returns the first non-empty test database URL.
func GetTestDatabaseURL() string {
	for _, name := range []string{EnvTestDBURL, EnvDatabaseURL} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// ShouldSkipDatabaseTest reports whether no database is configured.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

// GetTestDBWithT opens a connection to the test database, applies the
// embedded migrations once per process, and closes the connection when the
// test finishes. The test is skipped if no database is configured.
func GetTestDBWithT(t *testing.T) *sqlx.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skipf("%s or %s not set - skipping integration test", EnvTestDBURL, EnvDatabaseURL)
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "failed to open database %s", maskDatabaseURL(dbURL))

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		t.Fatalf("database connection failed (%s): %v", maskDatabaseURL(dbURL), err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("warning: failed to close database connection: %v", err)
		}
	})

	require.NoError(t, setupSchema(db), "failed to apply migrations")
	return sqlx.NewDb(db, "pgx")
}

// setupSchema migrates the database to the latest version. goose keeps
// global state, so migrations run at most once per test binary.
func setupSchema(db *sql.DB) error {
	schemaOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
		if err := postgres.Migrate(ctx, db, "up", quiet); err != nil {
			schemaErr = fmt.Errorf("migrate up: %w", err)
		}
	})
	return schemaErr
}

// maskDatabaseURL hides the password in a database URL for safe logging.
func maskDatabaseURL(dbURL string) string {
	u, err := url.Parse(dbURL)
	if err != nil {
		return "<unparseable database url>"
	}
	return u.Redacted()
}
