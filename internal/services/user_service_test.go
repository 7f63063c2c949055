package services

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/mblanco/stockroom-be/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func mustCreateCategory(t *testing.T, db *sql.DB, name string) int64 {
	t.Helper()
	cat, err := NewCategoryService(db).CreateCategory(name)
	require.NoError(t, err)
	return cat.ID
}

func TestCreateUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user, err := svc.CreateUser("alice", "pw")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Name)
	assert.Empty(t, user.PasswordHash)
	assert.Empty(t, user.Categories)

	// The stored hash is never the plaintext password.
	var hash string
	require.NoError(t, db.QueryRow("SELECT password_hash FROM users WHERE id = ?", user.ID).Scan(&hash))
	assert.NotEqual(t, "pw", hash)
	assert.NotEmpty(t, hash)
}

func TestCreateUserDuplicateName(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	_, err := svc.CreateUser("alice", "pw")
	require.NoError(t, err)

	_, err = svc.CreateUser("alice", "other")
	assert.ErrorIs(t, err, ErrConflict)

	// The collision must not have created a row.
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestAuthenticateUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	created, err := svc.CreateUser("alice", "pw")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.AuthenticateUser("alice", "pw")
		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.AuthenticateUser("alice", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.AuthenticateUser("mallory", "pw")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUserDerivedCategories(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	products := NewProductService(db)

	alice, err := users.CreateUser("alice", "pw")
	require.NoError(t, err)
	bob, err := users.CreateUser("bob", "pw")
	require.NoError(t, err)

	tools := mustCreateCategory(t, db, "Tools")
	office := mustCreateCategory(t, db, "Office Supplies")

	_, err = products.CreateProduct(alice.ID, "Hammer", tools, nil, nil)
	require.NoError(t, err)
	_, err = products.CreateProduct(alice.ID, "Wrench", tools, nil, nil)
	require.NoError(t, err)
	_, err = products.CreateProduct(bob.ID, "Stapler", office, nil, nil)
	require.NoError(t, err)

	got, err := users.GetUserByID(alice.ID)
	require.NoError(t, err)

	// Only categories alice has products in, with only alice's products.
	require.Len(t, got.Categories, 1)
	assert.Equal(t, "Tools", got.Categories[0].Name)
	require.Len(t, got.Categories[0].Products, 2)
	assert.Equal(t, "Hammer", got.Categories[0].Products[0].Name)
	assert.Equal(t, "Wrench", got.Categories[0].Products[1].Name)
	for _, p := range got.Categories[0].Products {
		assert.Equal(t, alice.ID, p.UserID)
	}
}

func TestGetUserByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := NewUserService(db).GetUserByID(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	products := NewProductService(db)
	sessions := NewSessionService(db, testSessionTTL)

	alice, err := users.CreateUser("alice", "pw")
	require.NoError(t, err)
	tools := mustCreateCategory(t, db, "Tools")
	_, err = products.CreateProduct(alice.ID, "Hammer", tools, nil, nil)
	require.NoError(t, err)
	_, err = sessions.CreateSession(alice.ID)
	require.NoError(t, err)

	require.NoError(t, users.DeleteUser(alice.ID))

	_, err = users.GetUserByID(alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var productCount, sessionCount int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM products WHERE user_id = ?", alice.ID).Scan(&productCount))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sessions WHERE user_id = ?", alice.ID).Scan(&sessionCount))
	assert.Zero(t, productCount)
	assert.Zero(t, sessionCount)

	// Categories are shared and survive the owner's deletion.
	var categoryCount int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&categoryCount))
	assert.Equal(t, 1, categoryCount)

	assert.ErrorIs(t, users.DeleteUser(alice.ID), ErrNotFound)
}
