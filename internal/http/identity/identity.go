// Package identity resolves the requesting identity for identity-scoped
// routes. The mode is a startup decision: either the verified token subject
// (default) or the legacy `email` query parameter the original API trusted.
package identity

import (
	"net/http"

	"github.com/prajwal2403/fintrack/internal/auth"
	"github.com/prajwal2403/fintrack/internal/http/respond"
)

// Resolver yields the requesting user's email for a scoped route.
type Resolver func(r *http.Request) (string, error)

// FromToken reads the user stored by the authentication gate middleware.
func FromToken(r *http.Request) (string, error) {
	u, ok := auth.UserFrom(r.Context())
	if !ok {
		return "", auth.ErrUnauthenticated
	}

	return u.Email, nil
}

// FromQuery trusts the `email` query parameter. Legacy behavior: any caller
// can name any identity. Only enabled via AUTH_LEGACY_QUERY_IDENTITY.
func FromQuery(r *http.Request) (string, error) {
	email := r.URL.Query().Get("email")
	if email == "" {
		return "", respond.ErrMissingEmail
	}

	return email, nil
}
