// Package repotest provides migrated in-memory databases for tests.
package repotest

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/cesmanager/cesmanager-go/internal/repository"
)

var seq atomic.Int64

// SQLiteDSN returns a DSN for a private in-memory SQLite database.
func SQLiteDSN(name string) string {
	name = strings.NewReplacer("/", "_", " ", "_").Replace(name)
	return fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)&_time_format=sqlite", name, seq.Add(1))
}

// NewSQLite opens and migrates an in-memory SQLite database that is closed
// when the test finishes.
func NewSQLite(tb testing.TB) *sql.DB {
	tb.Helper()

	ctx := context.Background()
	db, err := repository.NewDB(ctx, repository.SQLite, SQLiteDSN(tb.Name()))
	if err != nil {
		tb.Fatalf("opening sqlite: %v", err)
	}
	tb.Cleanup(func() { _ = db.Close() })

	if err := repository.Migrate(ctx, db, repository.SQLite); err != nil {
		tb.Fatalf("migrating sqlite: %v", err)
	}
	return db
}
