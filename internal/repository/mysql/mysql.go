package mysql

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"

	"perishables/internal/domain"
	"perishables/internal/repository/sqlstore"
)

// MySQL server error numbers the store cares about
const (
	errDupEntry          = 1062
	errNoReferencedRow   = 1216
	errRowIsReferenced   = 1217
	errNoReferencedRow2  = 1452
	errConCount          = 1040
	errAccessDenied      = 1045
	errBadDB             = 1049
	errLockWaitTimeout   = 1205
	errLockDeadlock      = 1213
	errServerShutdown    = 1053
	errQueryInterrupted  = 1317
	errMaxExecutionLimit = 3024
)

// dialTimeout bounds connection setup independently of the per-call timeout
const dialTimeout = 5 * time.Second

// Open connects to the MySQL database described by dsn (go-sql-driver
// format, e.g. "user:pass@tcp(host:3306)/perishables") and returns a store
// over it. The schema is not provisioned; call Initialize on the store.
func Open(dsn string, opts ...sqlstore.Option) (*sqlstore.Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("mysql: %w: empty dsn", domain.ErrStorageUnavailable)
	}

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql: parse dsn: %w: %w", domain.ErrStorageUnavailable, err)
	}
	configure(cfg)

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("mysql: %w: %w", domain.ErrStorageUnavailable, err)
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return sqlstore.New(db, Dialect{}, opts...), nil
}

// configure forces the connection settings the store relies on
func configure(cfg *mysql.Config) {
	// RowsAffected must count matched rows, otherwise an update that
	// changes nothing would look like a missing row
	cfg.ClientFoundRows = true
	if cfg.Timeout == 0 {
		cfg.Timeout = dialTimeout
	}
	if cfg.Params == nil {
		cfg.Params = map[string]string{}
	}
	if _, ok := cfg.Params["charset"]; !ok {
		cfg.Params["charset"] = "utf8mb4"
	}
}

// Dialect is the MySQL flavour of sqlstore.Dialect
type Dialect struct{}

// Name implements sqlstore.Dialect
func (Dialect) Name() string {
	return "mysql"
}

// Schema implements sqlstore.Dialect. Dates are kept as YYYY-MM-DD strings
// so range queries behave the same as on SQLite.
func (Dialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS items (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL COLLATE utf8mb4_bin,
			quantity INT NOT NULL,
			price DOUBLE NOT NULL,
			storage_location VARCHAR(255) NOT NULL DEFAULT '',
			expiry_date VARCHAR(10) NULL,
			added_date VARCHAR(10) NOT NULL,
			CONSTRAINT chk_items_quantity CHECK (quantity >= 0),
			CONSTRAINT chk_items_price CHECK (price >= 0),
			INDEX idx_items_name (name),
			INDEX idx_items_expiry (expiry_date)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS categories (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL COLLATE utf8mb4_bin,
			UNIQUE KEY uq_categories_name (name)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS item_categories (
			item_id BIGINT NOT NULL,
			category_id BIGINT NOT NULL,
			PRIMARY KEY (item_id, category_id),
			INDEX idx_item_categories_category (category_id),
			CONSTRAINT fk_item_categories_item FOREIGN KEY (item_id)
				REFERENCES items (id) ON DELETE CASCADE,
			CONSTRAINT fk_item_categories_category FOREIGN KEY (category_id)
				REFERENCES categories (id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}
}

// Lower implements sqlstore.Dialect; MySQL's LOWER is already Unicode-aware
func (Dialect) Lower(expr string) string {
	return "LOWER(" + expr + ")"
}

// Classify implements sqlstore.Dialect using MySQL error numbers and the
// driver's connection errors
func (Dialect) Classify(err error) sqlstore.Violation {
	if err == nil {
		return sqlstore.ViolationNone
	}

	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case errDupEntry:
			return sqlstore.ViolationUnique
		case errNoReferencedRow, errNoReferencedRow2, errRowIsReferenced:
			return sqlstore.ViolationForeignKey
		case errConCount, errAccessDenied, errBadDB, errLockWaitTimeout, errLockDeadlock,
			errServerShutdown, errQueryInterrupted, errMaxExecutionLimit:
			return sqlstore.ViolationUnavailable
		}
		return sqlstore.ViolationNone
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return sqlstore.ViolationUnavailable
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return sqlstore.ViolationUnavailable
	}
	return sqlstore.ViolationNone
}
