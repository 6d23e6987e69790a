package auth

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"sync"
	"time"
)

var (
	CookieName     = "hostwatch-auth"
	cookieLifespan = 24 * time.Hour
)

// SessionStore holds active dashboard sessions
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]SessionData
}

// SessionData contains user session information
type SessionData struct {
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Sessions is the process-wide store. Sessions do not survive a restart.
var Sessions = &SessionStore{
	sessions: make(map[string]SessionData),
}

// GenerateToken creates a random token
func GenerateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// CreateSession creates a new session for the user and returns a token.
// Expired sessions are dropped on the way.
func CreateSession(username string) (string, error) {
	token, err := GenerateToken()
	if err != nil {
		return "", err
	}

	Sessions.mu.Lock()
	defer Sessions.mu.Unlock()

	now := time.Now()
	for t, s := range Sessions.sessions {
		if now.After(s.ExpiresAt) {
			delete(Sessions.sessions, t)
		}
	}
	Sessions.sessions[token] = SessionData{
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(cookieLifespan),
	}

	return token, nil
}

// ValidateSession checks if a token is valid and returns the username
func ValidateSession(token string) (string, bool) {
	Sessions.mu.Lock()
	defer Sessions.mu.Unlock()

	session, exists := Sessions.sessions[token]
	if !exists {
		return "", false
	}
	if time.Now().After(session.ExpiresAt) {
		delete(Sessions.sessions, token)
		return "", false
	}
	return session.Username, true
}

// DeleteSession removes a session (logout)
func DeleteSession(token string) {
	Sessions.mu.Lock()
	defer Sessions.mu.Unlock()
	delete(Sessions.sessions, token)
}

// SetCookie sets an HTTP cookie with the session token
func SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(cookieLifespan),
	})
}

// GetTokenFromCookie extracts the session token from HTTP request cookies
func GetTokenFromCookie(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	return cookie.Value, true
}

// ClearCookie removes the session cookie
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
	})
}

// GetTokenFromHeader extracts the session token from the Authorization
// header, with or without the Bearer prefix
func GetTokenFromHeader(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	return strings.TrimPrefix(header, "Bearer "), true
}

// IsAuthenticated checks if the request has a valid session (cookie or header)
func IsAuthenticated(r *http.Request) (string, bool) {
	token, exists := GetTokenFromCookie(r)
	if !exists {
		token, exists = GetTokenFromHeader(r)
		if !exists {
			return "", false
		}
	}
	return ValidateSession(token)
}
