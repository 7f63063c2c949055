package database

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, Migrate(db))
	return db
}

func count(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	assert.NoError(t, Migrate(db))
}

func TestForeignKeysEnforced(t *testing.T) {
	db := newTestDB(t)

	// A product cannot reference a missing category or user.
	_, err := db.Exec("INSERT INTO products(name, category_id, user_id) VALUES('Hammer', 1, 1)")
	assert.Error(t, err)
}

func TestSeed(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Seed(db))

	assert.Equal(t, 5, count(t, db, "categories"))
	assert.Equal(t, 3, count(t, db, "users"))
	assert.Equal(t, 18, count(t, db, "products"))

	// Seed passwords are stored hashed.
	var hash string
	require.NoError(t, db.QueryRow("SELECT password_hash FROM users WHERE name = 'alice'").Scan(&hash))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("password123")))

	// Re-seeding wipes and reloads rather than accumulating.
	require.NoError(t, Seed(db))
	assert.Equal(t, 18, count(t, db, "products"))
}

func TestSeedCascade(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Seed(db))

	_, err := db.Exec("DELETE FROM users WHERE name = 'alice'")
	require.NoError(t, err)

	// Alice owned 5 of the 18 products.
	assert.Equal(t, 13, count(t, db, "products"))
	assert.Equal(t, 5, count(t, db, "categories"))
}
