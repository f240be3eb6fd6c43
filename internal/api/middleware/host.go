package middleware

import (
	"net/http"
	"strings"

	"github.com/mcoot/quizbingo/internal/api/apierr"
	"github.com/mcoot/quizbingo/internal/services/host"
)

// HostCookie is the cookie set by host login
const HostCookie = "host_session"

// HostOnly rejects requests that do not carry the host password or a host
// session token. It lets everything through when host auth is disabled.
func HostOnly(hostService *host.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := hostService.Authorize(HostCredential(r)); err != nil {
				apierr.WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// HostCredential extracts the host credential from the Authorization header
// or the host_session cookie
func HostCredential(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Fall back to cookie
	cookie, err := r.Cookie(HostCookie)
	if err == nil {
		return cookie.Value
	}

	return ""
}
