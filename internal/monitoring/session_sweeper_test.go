package monitoring

import (
	"testing"
	"time"

	"github.com/mblanco/stockroom-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSessionStore struct {
	swept chan struct{}
}

func (m *mockSessionStore) CreateSession(userID int64) (models.Session, error) {
	panic("not used")
}

func (m *mockSessionStore) GetSession(token string) (models.Session, error) {
	panic("not used")
}

func (m *mockSessionStore) DeleteSession(token string) error { return nil }

func (m *mockSessionStore) DeleteExpired() (int64, error) {
	m.swept <- struct{}{}
	return 1, nil
}

func TestNewSessionSweeperRejectsBadSchedule(t *testing.T) {
	_, err := NewSessionSweeper(&mockSessionStore{}, "not a cron expression")
	assert.Error(t, err)
}

func TestSessionSweeperSweepsOnStart(t *testing.T) {
	store := &mockSessionStore{swept: make(chan struct{}, 1)}
	sweeper, err := NewSessionSweeper(store, "@hourly")
	require.NoError(t, err)

	go sweeper.Run()
	defer sweeper.Stop()

	select {
	case <-store.swept:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not prune on startup")
	}
}
