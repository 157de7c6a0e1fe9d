package testutil

import (
	"regexp"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/joestump/bookmarks-api/internal/db"
	_ "modernc.org/sqlite"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_]`)

// NewTestDB opens an in-memory SQLite DB and runs all goose migrations.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	// A named shared-cache memory DB lets every pool connection see the same
	// schema. Subtest names may contain characters SQLite reads as URI syntax.
	name := unsafeName.ReplaceAllString(t.Name(), "_")
	dsn := "file:" + name + "?mode=memory&cache=shared&_pragma=busy_timeout(5000)"
	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open in-memory sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := db.Migrate(conn, "sqlite3"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	return conn
}
