package web

import (
	"encoding/json"
	"net/http"

	"hostwatch/internal/auth"
	"hostwatch/internal/netx"
)

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// StartLogin registers all login-related routes with the given mux
func StartLogin(mux *http.ServeMux, users *auth.Users) {
	mux.HandleFunc("/login", handleLogin(users))
	mux.HandleFunc("/logout", handleLogout)
	mux.HandleFunc("/check-auth", handleCheckAuth)
}

// handleLogin processes login requests
func handleLogin(users *auth.Users) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			netx.WriteMethodNotAllowed(w)
			return
		}

		var loginReq LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
			netx.WriteBadRequest(w, "Invalid request format")
			return
		}

		if !users.VerifyPassword(loginReq.Username, loginReq.Password) {
			netx.WriteUnauthorized(w, "Invalid username or password")
			return
		}

		token, err := auth.CreateSession(loginReq.Username)
		if err != nil {
			netx.WriteInternalServerError(w, "Failed to create session", err)
			return
		}

		// Cookie for the browser, token for the Socket.IO handshake
		auth.SetCookie(w, token)
		netx.WriteAuthSuccessWithToken(w, "Login successful", loginReq.Username, token)
	}
}

// handleLogout processes logout requests
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		netx.WriteMethodNotAllowed(w)
		return
	}

	if token, exists := auth.GetTokenFromCookie(r); exists {
		auth.DeleteSession(token)
	}
	auth.ClearCookie(w)

	netx.WriteAuthSuccess(w, "Logout successful", "")
}

// handleCheckAuth checks if the user is authenticated
func handleCheckAuth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		netx.WriteMethodNotAllowed(w)
		return
	}

	username, authenticated := auth.IsAuthenticated(r)
	if !authenticated {
		netx.WriteUnauthorized(w, "Not authenticated")
		return
	}

	netx.WriteAuthSuccess(w, "Authenticated", username)
}
