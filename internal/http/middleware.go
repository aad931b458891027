package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/prajwal2403/fintrack/internal/auth"
	"github.com/prajwal2403/fintrack/internal/http/respond"
	"github.com/prajwal2403/fintrack/internal/user"
)

// Authenticator resolves the requesting user from a bearer token.
// Satisfied by auth.Gate.
type Authenticator interface {
	Authenticate(r *http.Request) (*user.User, error)
}

func authenticated(gate Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, err := gate.Authenticate(r)
			if err != nil {
				// token failures are 401, a token for a since-deleted
				// user resolves to 404
				respond.DomainError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), u)))
		})
	}
}

func adminOnly(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-Admin-Token")
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				respond.Error(w, http.StatusForbidden, "admin token required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
