package auth

import (
	"net/http"
	"strings"

	"github.com/spf13/cast"
	"github.com/zishang520/socket.io/servers/socket/v3"
)

// RequireAuth is a middleware that checks authentication for protected routes
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, authenticated := IsAuthenticated(r)
		if !authenticated {
			http.Redirect(w, r, "/pages/login.html", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// RequireAuthSocketIO is a middleware that checks authentication for protected Socket.IO endpoints
func RequireAuthSocketIO(client *socket.Socket, next func(*socket.ExtendedError)) {
	if _, ok := SocketUser(client); ok {
		next(nil)
	} else {
		next(socket.NewExtendedError("Unauthorized", ""))
	}
}

// SocketUser returns the user behind a Socket.IO handshake. The token is
// taken from the session cookie, or from the handshake auth payload for
// clients that cannot send cookies.
func SocketUser(client *socket.Socket) (string, bool) {
	handshake := client.Handshake()
	if token := tokenFromCookieHeader(handshake.Headers["Cookie"]); token != "" {
		if username, ok := ValidateSession(token); ok {
			return username, true
		}
	}
	if token := cast.ToString(cast.ToStringMap(handshake.Auth)["token"]); token != "" {
		return ValidateSession(token)
	}
	return "", false
}

func tokenFromCookieHeader(header any) string {
	for _, cookies := range cast.ToStringSlice(header) {
		for _, p := range strings.Split(cookies, ";") {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, CookieName+"=") {
				return strings.TrimPrefix(p, CookieName+"=")
			}
		}
	}
	return ""
}
