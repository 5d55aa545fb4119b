package mysql

import (
	"database/sql/driver"
	"fmt"
	"net"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perishables/internal/domain"
	"perishables/internal/repository/sqlstore"
)

func TestOpen_RejectsBadDSN(t *testing.T) {
	_, err := Open("")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)

	_, err = Open("no-slash-here")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestOpen_DoesNotDial(t *testing.T) {
	store, err := Open("user:pass@tcp(127.0.0.1:1)/perishables")
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

func TestConfigure(t *testing.T) {
	cfg, err := mysql.ParseDSN("user:pass@tcp(db:3306)/perishables")
	require.NoError(t, err)

	configure(cfg)
	assert.True(t, cfg.ClientFoundRows)
	assert.Equal(t, dialTimeout, cfg.Timeout)
	assert.Equal(t, "utf8mb4", cfg.Params["charset"])
	assert.Contains(t, cfg.FormatDSN(), "clientFoundRows=true")
}

func TestConfigure_KeepsExplicitSettings(t *testing.T) {
	cfg, err := mysql.ParseDSN("user:pass@tcp(db:3306)/perishables?timeout=2s&charset=latin1")
	require.NoError(t, err)

	configure(cfg)
	assert.Equal(t, "2s", cfg.Timeout.String())
	assert.Equal(t, "latin1", cfg.Params["charset"])
}

func TestSchema(t *testing.T) {
	stmts := Dialect{}.Schema()
	require.Len(t, stmts, 3)
	for _, stmt := range stmts {
		assert.True(t, strings.HasPrefix(strings.TrimSpace(stmt), "CREATE TABLE IF NOT EXISTS"))
	}
	assert.Contains(t, stmts[0], "name VARCHAR(255) NOT NULL COLLATE utf8mb4_bin")
	assert.Contains(t, stmts[1], "name VARCHAR(255) NOT NULL COLLATE utf8mb4_bin")
	assert.Equal(t, 2, strings.Count(stmts[2], "ON DELETE CASCADE"))
}

func TestLower(t *testing.T) {
	assert.Equal(t, "LOWER(name)", Dialect{}.Lower("name"))
}

func TestClassify(t *testing.T) {
	d := Dialect{}
	tests := []struct {
		name string
		err  error
		want sqlstore.Violation
	}{
		{"nil", nil, sqlstore.ViolationNone},
		{"duplicate entry", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, sqlstore.ViolationUnique},
		{"missing parent", &mysql.MySQLError{Number: 1452}, sqlstore.ViolationForeignKey},
		{"wrapped", fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1062}), sqlstore.ViolationUnique},
		{"lock wait", &mysql.MySQLError{Number: 1205}, sqlstore.ViolationUnavailable},
		{"syntax", &mysql.MySQLError{Number: 1064}, sqlstore.ViolationNone},
		{"bad conn", driver.ErrBadConn, sqlstore.ViolationUnavailable},
		{"invalid conn", mysql.ErrInvalidConn, sqlstore.ViolationUnavailable},
		{"dial", &net.OpError{Op: "dial", Net: "tcp", Err: fmt.Errorf("refused")}, sqlstore.ViolationUnavailable},
		{"other", fmt.Errorf("boom"), sqlstore.ViolationNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Classify(tt.err))
		})
	}
}
