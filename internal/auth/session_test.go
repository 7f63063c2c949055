package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mblanco/stockroom-be/internal/models"
	"github.com/mblanco/stockroom-be/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSessionStore struct {
	sessions map[string]models.Session
}

func (m *mockSessionStore) CreateSession(userID int64) (models.Session, error) {
	panic("not used")
}

func (m *mockSessionStore) GetSession(token string) (models.Session, error) {
	session, ok := m.sessions[token]
	if !ok {
		return models.Session{}, services.ErrInvalidCredentials
	}
	return session, nil
}

func (m *mockSessionStore) DeleteSession(token string) error { return nil }

func (m *mockSessionStore) DeleteExpired() (int64, error) { return 0, nil }

func TestRequireSession(t *testing.T) {
	store := &mockSessionStore{sessions: map[string]models.Session{
		"good-token": {Token: "good-token", UserID: 7, ExpiresAt: time.Now().Add(time.Hour)},
	}}

	var gotUserID int64
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireSession(store)(next)

	t.Run("missing cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profile", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error": "Login required"}`, rec.Body.String())
	})

	t.Run("unknown token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "bad-token"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "good-token"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, gotOK)
		assert.Equal(t, int64(7), gotUserID)
	})
}
