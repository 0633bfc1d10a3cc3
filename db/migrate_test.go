package db_test

import (
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nhtransport/db"
	sqlitedb "nhtransport/db/sqlite"
)

func TestRunMigrationsSQLite(t *testing.T) {
	conn, err := sql.Open("sqlite", sqlitedb.DSN(filepath.Join(t.TempDir(), "m.db")))
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, db.RunMigrations(conn, db.SQLite, logger))
	// a second run has nothing to do
	require.NoError(t, db.RunMigrations(conn, db.SQLite, logger))

	for _, table := range []string{"bookings", "vehicle_payments", "parties", "vehicles", "company_profile"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		assert.NoError(t, err, table)
	}

	assert.Error(t, db.RunMigrations(conn, db.Mongo, logger))
}
