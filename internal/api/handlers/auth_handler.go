package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mblanco/stockroom-be/internal/auth"
	"github.com/mblanco/stockroom-be/internal/services"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles signup, login and session lifecycle requests.
type AuthHandler struct {
	users         services.UserServiceProvider
	sessions      services.SessionServiceProvider
	secureCookies bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, sessions services.SessionServiceProvider, secureCookies bool) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, secureCookies: secureCookies}
}

// CredentialsPayload defines the structure for signup and login requests.
type CredentialsPayload struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// sessionStatusResponse is the body of GET /check_session.
type sessionStatusResponse struct {
	LoggedIn bool `json:"loggedIn"`
	User     any  `json:"user,omitempty"`
}

// Signup handles new user registration. The new user is not logged in.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Name == "" || payload.Password == "" {
		respondError(w, http.StatusBadRequest, "name & password required")
		return
	}

	user, err := h.users.CreateUser(payload.Name, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			respondError(w, http.StatusConflict, "Username taken")
			return
		}
		log.Error().Err(err).Str("name", payload.Name).Msg("Failed to create user")
		respondError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// Login authenticates a user and establishes a server-side session. The
// response body never says whether the name or the password was wrong.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Name == "" || payload.Password == "" {
		respondError(w, http.StatusBadRequest, "name & password required")
		return
	}

	user, err := h.users.AuthenticateUser(payload.Name, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Str("name", payload.Name).Msg("Failed authentication attempt")
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Error().Err(err).Str("name", payload.Name).Msg("Failed to authenticate user")
		respondError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	session, err := h.sessions.CreateSession(user.ID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to create session")
		respondError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    session.Token,
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	respondJSON(w, http.StatusOK, user)
}

// Logout clears the session. It succeeds whether or not one was active.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		if err := h.sessions.DeleteSession(cookie.Value); err != nil {
			log.Error().Err(err).Msg("Failed to delete session on logout")
		}
	}
	h.clearCookie(w)
	respondMessage(w, http.StatusOK, "Logout successful")
}

// CheckSession reports the current session state without side effects.
func (h *AuthHandler) CheckSession(w http.ResponseWriter, r *http.Request) {
	session, err := auth.SessionFromRequest(r, h.sessions)
	if err != nil {
		respondJSON(w, http.StatusOK, sessionStatusResponse{LoggedIn: false})
		return
	}

	user, err := h.users.GetUserByID(session.UserID)
	if err != nil {
		respondJSON(w, http.StatusOK, sessionStatusResponse{LoggedIn: false})
		return
	}

	respondJSON(w, http.StatusOK, sessionStatusResponse{LoggedIn: true, User: user})
}

// Profile returns the session user's representation, including the derived
// category view.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Login required")
		return
	}

	user, err := h.users.GetUserByID(userID)
	if err != nil {
		// The session outlived the account; treat it as logged out.
		respondError(w, http.StatusUnauthorized, "Login required")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// DeleteAccount removes the session user's account. Owned products and
// sessions cascade away with it.
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Login required")
		return
	}

	if err := h.users.DeleteUser(userID); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to delete account")
		respondError(w, http.StatusInternalServerError, "Failed to delete account")
		return
	}

	h.clearCookie(w)
	respondMessage(w, http.StatusOK, "Account deleted")
}

// Index is a small landing route that greets the session user by name.
func (h *AuthHandler) Index(w http.ResponseWriter, r *http.Request) {
	name := "world"
	if session, err := auth.SessionFromRequest(r, h.sessions); err == nil {
		if user, err := h.users.GetUserByID(session.UserID); err == nil {
			name = user.Name
		}
	}
	respondMessage(w, http.StatusOK, fmt.Sprintf("Hello, %s!", name))
}

func (h *AuthHandler) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
}
