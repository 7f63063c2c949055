package models

import "time"

// Session is a server-side login session. The opaque token is distributed to
// the client in a cookie; only the token ever leaves the server.
type Session struct {
	Token     string    `json:"-"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at time now.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
