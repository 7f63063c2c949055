package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mblanco/stockroom-be/internal/models"
	"github.com/mblanco/stockroom-be/internal/services"
)

// CookieName is the name of the session cookie.
const CookieName = "session_token"

type contextKey string

const userIDKey = contextKey("sessionUserID")

// WithUserID returns a context carrying the authenticated user's id.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext extracts the authenticated user's id from the context.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// SessionFromRequest resolves the request's session cookie against the
// session store. Used by routes that want to know about a session without
// requiring one.
func SessionFromRequest(r *http.Request, sessions services.SessionServiceProvider) (models.Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return models.Session{}, err
	}
	return sessions.GetSession(cookie.Value)
}

// RequireSession creates a middleware that rejects requests without a valid
// session and passes the session user's id down via the request context.
func RequireSession(sessions services.SessionServiceProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := SessionFromRequest(r, sessions)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := WithUserID(r.Context(), session.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "Login required"})
}
