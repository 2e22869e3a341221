// Package testutil holds helpers shared by repository tests.
package testutil

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"bookstore-ranking/internal/infrastructure/database"
)

// DatabaseURLEnv names the connection string of a disposable PostgreSQL.
const DatabaseURLEnv = "TEST_DATABASE_URL"

// NewPostgres connects to TEST_DATABASE_URL and creates the schema inside a fresh,
// uniquely named PostgreSQL schema that is dropped when the test ends.
// The test is skipped when the variable is unset.
func NewPostgres(t *testing.T) *database.PostgresDB {
	t.Helper()

	url := os.Getenv(DatabaseURLEnv)
	if url == "" {
		t.Skipf("%s not set, skipping PostgreSQL test", DatabaseURLEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	admin, err := pgx.Connect(ctx, url)
	require.NoError(t, err)
	_, err = admin.Exec(ctx, "CREATE SCHEMA "+pgx.Identifier{schema}.Sanitize())
	require.NoError(t, err)
	require.NoError(t, admin.Close(ctx))

	db := database.NewPostgresDB(&database.DBConfig{
		URL:            url,
		SearchPath:     schema,
		MaxConns:       4,
		MaxRetries:     1,
		ConnectTimeout: 10 * time.Second,
	})
	require.NoError(t, db.Connect(ctx))
	require.NoError(t, db.EnsureSchema(ctx))

	t.Cleanup(func() {
		db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		conn, err := pgx.Connect(ctx, url)
		if err != nil {
			t.Logf("drop schema %s: %v", schema, err)
			return
		}
		defer conn.Close(ctx)
		if _, err := conn.Exec(ctx, "DROP SCHEMA "+pgx.Identifier{schema}.Sanitize()+" CASCADE"); err != nil {
			t.Logf("drop schema %s: %v", schema, err)
		}
	})

	return db
}
