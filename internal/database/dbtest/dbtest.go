// Package dbtest opens throwaway databases for tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/fkhayef/splitledger/internal/database"
)

// New returns a migrated in-memory SQLite database that is closed when the
// test ends.
func New(t testing.TB) *sql.DB {
	t.Helper()

	db, err := database.Open(context.Background(), database.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}
