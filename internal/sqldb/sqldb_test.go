package sqldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/slotpulse/schema"
)

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		wantErr bool
	}{
		{"simple", "slotpulse_result_cache", false},
		{"leading underscore", "_tmp", false},
		{"empty", "", true},
		{"leading digit", "1cache", true},
		{"injection", "cache; DROP TABLE x", true},
		{"dash", "result-cache", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTableName(tt.table)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`cache`", QuoteTableName("cache", schema.MySQLBackend))
	assert.Equal(t, `"cache"`, QuoteTableName("cache", schema.PostgreSQLBackend))
	assert.Equal(t, `"cache"`, QuoteTableName("cache", schema.SQLiteBackend))
}

func TestRebind(t *testing.T) {
	q := "SELECT a FROM t WHERE x = ? AND y = ?"
	assert.Equal(t, q, Rebind(schema.SQLiteBackend, q))
	assert.Equal(t, q, Rebind(schema.MySQLBackend, q))
	assert.Equal(t, "SELECT a FROM t WHERE x = $1 AND y = $2", Rebind(schema.PostgreSQLBackend, q))
}

func TestDriverName(t *testing.T) {
	for backend, want := range map[schema.DatabaseBackend]string{
		schema.SQLiteBackend:     "sqlite",
		schema.MySQLBackend:      "mysql",
		schema.PostgreSQLBackend: "pgx",
	} {
		got, err := DriverName(backend)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := DriverName(schema.FileBackend)
	assert.Error(t, err)
	_, err = DriverName(schema.NoneBackend)
	assert.Error(t, err)
}

func TestOpenSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(schema.SQLiteBackend, "", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.Exec(`CREATE TABLE t (id INTEGER PRIMARY KEY)`)
	require.NoError(t, err)
	assert.Positive(t, TableSize(db, schema.SQLiteBackend, "", "t", 0))
}

func TestOpenRejectsBadMySQLDSN(t *testing.T) {
	_, err := Open(schema.MySQLBackend, "not a dsn", "")
	assert.Error(t, err)
}
