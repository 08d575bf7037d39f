package repository

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect captures the differences between the supported SQL backends.
type Dialect struct {
	// Name is the value accepted in configuration and the migrations subdirectory.
	Name string
	// Driver is the database/sql driver name.
	Driver string
	// Goose is the goose dialect name.
	Goose string

	numbered   bool // $1, $2 placeholders instead of ?
	returning  bool // INSERT ... RETURNING id instead of LastInsertId
	singleConn bool
}

var (
	MySQL    = Dialect{Name: "mysql", Driver: "mysql", Goose: "mysql"}
	Postgres = Dialect{Name: "postgres", Driver: "pgx", Goose: "postgres", numbered: true, returning: true}
	SQLite   = Dialect{Name: "sqlite", Driver: "sqlite", Goose: "sqlite3", singleConn: true}
)

// DialectFor resolves a configured driver name.
func DialectFor(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "mysql", "":
		return MySQL, nil
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver %q", name)
	}
}

// rebind rewrites ? placeholders for dialects using numbered parameters.
func (d Dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isDuplicateEntryError reports whether err is a unique constraint violation
// on any of the supported backends.
func isDuplicateEntryError(err error) bool {
	if err == nil {
		return false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch code := liteErr.Code(); {
		case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE, code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case code&0xff == sqlite3.SQLITE_CONSTRAINT:
			// primary result code only
			return strings.Contains(liteErr.Error(), "UNIQUE")
		}
	}

	return false
}
