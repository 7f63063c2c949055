package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mblanco/stockroom-be/internal/models"
)

// SessionServiceProvider defines the interface for session services.
type SessionServiceProvider interface {
	CreateSession(userID int64) (models.Session, error)
	GetSession(token string) (models.Session, error)
	DeleteSession(token string) error
	DeleteExpired() (int64, error)
}

// SessionService manages server-side login sessions. Each session is a row
// keyed by an opaque token; the client only ever holds the token.
type SessionService struct {
	db  *sql.DB
	ttl time.Duration
}

// NewSessionService creates a new SessionService with the given session TTL.
func NewSessionService(db *sql.DB, ttl time.Duration) *SessionService {
	return &SessionService{db: db, ttl: ttl}
}

// CreateSession establishes a new session for the given user.
func (s *SessionService) CreateSession(userID int64) (models.Session, error) {
	session := models.Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(s.ttl),
	}

	stmt, err := s.db.Prepare("INSERT INTO sessions(token, user_id, created_at, expires_at) VALUES(?, ?, ?, ?)")
	if err != nil {
		return models.Session{}, err
	}
	defer stmt.Close()

	if _, err := stmt.Exec(session.Token, session.UserID, session.CreatedAt, session.ExpiresAt); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

// GetSession looks up a session by token. Missing and expired sessions both
// come back as ErrInvalidCredentials; an expired row is removed on sight.
func (s *SessionService) GetSession(token string) (models.Session, error) {
	var session models.Session
	row := s.db.QueryRow("SELECT token, user_id, created_at, expires_at FROM sessions WHERE token = ?", token)
	err := row.Scan(&session.Token, &session.UserID, &session.CreatedAt, &session.ExpiresAt)
	if err == sql.ErrNoRows {
		return models.Session{}, fmt.Errorf("%w: no such session", ErrInvalidCredentials)
	}
	if err != nil {
		return models.Session{}, err
	}

	if session.Expired(time.Now().UTC()) {
		_ = s.DeleteSession(token)
		return models.Session{}, fmt.Errorf("%w: session expired", ErrInvalidCredentials)
	}
	return session, nil
}

// DeleteSession removes a session. Deleting an unknown token is not an error;
// logout always succeeds.
func (s *SessionService) DeleteSession(token string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE token = ?", token)
	return err
}

// DeleteExpired prunes all expired sessions and reports how many were removed.
func (s *SessionService) DeleteExpired() (int64, error) {
	res, err := s.db.Exec("DELETE FROM sessions WHERE expires_at < ?", time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
