package sqlite

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"perishables/internal/domain"
	"perishables/internal/repository/sqlstore"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// busyTimeoutMS is how long SQLite waits on a locked database before failing
const busyTimeoutMS = 5000

// lowerFunc is registered on every connection. The built-in LOWER only
// folds ASCII.
const lowerFunc = "unicode_lower"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(lowerFunc, 1, unicodeLower)
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// Open opens (creating if needed) the SQLite database at path and returns a
// store over it. The parent directory is created when absent. The schema is
// not provisioned; call Initialize on the returned store.
func Open(path string, opts ...sqlstore.Option) (*sqlstore.Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite: %w: empty database path", domain.ErrStorageUnavailable)
	}

	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create data directory: %w: %w", domain.ErrStorageUnavailable, err)
		}
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("sqlite: open database: %w: %w", domain.ErrStorageUnavailable, err)
	}

	// One connection: pragmas are per connection, an in-memory database
	// exists only on the connection that created it, and SQLite has a
	// single writer anyway.
	db.SetMaxOpenConns(1)

	return sqlstore.New(db, Dialect{}, opts...), nil
}

// dsn builds the driver connection string with the pragmas every
// connection needs
func dsn(path string) string {
	pragmas := []string{
		"_pragma=foreign_keys(1)",
		fmt.Sprintf("_pragma=busy_timeout(%d)", busyTimeoutMS),
	}
	if path != MemoryPath {
		pragmas = append(pragmas, "_pragma=journal_mode(WAL)")
	}
	return path + "?" + strings.Join(pragmas, "&")
}

// Dialect is the SQLite flavour of sqlstore.Dialect
type Dialect struct{}

// Name implements sqlstore.Dialect
func (Dialect) Name() string {
	return "sqlite"
}

// Schema implements sqlstore.Dialect
func (Dialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL CHECK (length(trim(name)) > 0),
			quantity INTEGER NOT NULL CHECK (quantity >= 0),
			price REAL NOT NULL CHECK (price >= 0),
			storage_location TEXT NOT NULL DEFAULT '',
			expiry_date TEXT,
			added_date TEXT NOT NULL DEFAULT CURRENT_DATE
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE CHECK (length(trim(name)) > 0)
		)`,
		`CREATE TABLE IF NOT EXISTS item_categories (
			item_id INTEGER NOT NULL,
			category_id INTEGER NOT NULL,
			PRIMARY KEY (item_id, category_id),
			FOREIGN KEY (item_id) REFERENCES items (id) ON DELETE CASCADE,
			FOREIGN KEY (category_id) REFERENCES categories (id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_name ON items(name)`,
		`CREATE INDEX IF NOT EXISTS idx_items_expiry ON items(expiry_date)`,
		`CREATE INDEX IF NOT EXISTS idx_item_categories_category ON item_categories(category_id)`,
	}
}

// Lower implements sqlstore.Dialect
func (Dialect) Lower(expr string) string {
	return lowerFunc + "(" + expr + ")"
}

// Classify implements sqlstore.Dialect using SQLite result codes
func (Dialect) Classify(err error) sqlstore.Violation {
	if err == nil {
		return sqlstore.ViolationNone
	}

	var se *sqlite.Error
	if !errors.As(err, &se) {
		return sqlstore.ViolationNone
	}

	code := se.Code()
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return sqlstore.ViolationUnique
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return sqlstore.ViolationForeignKey
	}

	switch code & 0xff {
	case sqlite3.SQLITE_CONSTRAINT:
		// Extended codes are not always reported; fall back to the message
		msg := se.Error()
		switch {
		case strings.Contains(msg, "FOREIGN KEY constraint failed"):
			return sqlstore.ViolationForeignKey
		case strings.Contains(msg, "UNIQUE constraint failed"):
			return sqlstore.ViolationUnique
		}
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_CANTOPEN,
		sqlite3.SQLITE_READONLY, sqlite3.SQLITE_FULL, sqlite3.SQLITE_IOERR,
		sqlite3.SQLITE_INTERRUPT, sqlite3.SQLITE_NOTADB:
		return sqlstore.ViolationUnavailable
	}
	return sqlstore.ViolationNone
}
