package database

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "intake.db")
	db, err := New(Config{Path: path, Name: "intake"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewAndMigrate(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrate())

	// Migrations are idempotent
	require.NoError(t, db.Migrate())

	for _, table := range []string{"household_snapshot", "snapshot_history", "attachments"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestSingleRowConstraint(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrate())

	_, err := db.Exec("INSERT INTO household_snapshot (id, household_id, data, updated_at) VALUES (1, 'h1', x'00', 0)")
	require.NoError(t, err)

	// The live snapshot table only ever holds row 1
	_, err = db.Exec("INSERT INTO household_snapshot (id, household_id, data, updated_at) VALUES (2, 'h2', x'00', 0)")
	assert.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrate())

	assert.NoError(t, db.HealthCheck(context.Background()))
}

func TestWALCheckpoint(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrate())

	assert.NoError(t, db.WALCheckpoint("TRUNCATE"))
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrate())

	err := WithTransaction(db.Conn(), func(tx *sql.Tx) error {
		if _, err := tx.Exec("INSERT INTO attachments (ref, original_name, size_bytes, created_at) VALUES ('r1', 'a.pdf', 1, 0)"); err != nil {
			return err
		}
		return os.ErrInvalid
	})
	require.Error(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM attachments").Scan(&count))
	assert.Zero(t, count)
}
