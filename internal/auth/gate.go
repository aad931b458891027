package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/prajwal2403/fintrack/internal/user"
)

// ErrUnauthenticated indicates a missing, malformed, or unverifiable
// bearer credential.
var ErrUnauthenticated = errors.New("not authenticated")

// UserDirectory resolves verified token subjects to user records.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

// Gate authenticates inbound requests: bearer header, token verification,
// then user resolution. Every protected operation goes through it.
type Gate struct {
	tokens *TokenIssuer
	users  UserDirectory
}

func NewGate(tokens *TokenIssuer, users UserDirectory) *Gate {
	return &Gate{tokens: tokens, users: users}
}

// Authenticate extracts and verifies the bearer token and returns the full
// user record. A token that verifies but resolves to no user (the user was
// deleted after issuance) surfaces as user.ErrNotFound.
func (g *Gate) Authenticate(r *http.Request) (*user.User, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, ErrUnauthenticated
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || token == "" || !strings.EqualFold(scheme, "Bearer") {
		return nil, ErrUnauthenticated
	}

	subject, err := g.tokens.Verify(strings.TrimSpace(token))
	if err != nil {
		return nil, ErrUnauthenticated
	}

	u, err := g.users.FindByEmail(r.Context(), subject)
	if err != nil {
		return nil, err
	}

	return u, nil
}

type userCtxKey struct{}

// WithUser stores an authenticated user in the context.
func WithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFrom returns the authenticated user stored by the gate middleware.
func UserFrom(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(*user.User)
	return u, ok
}
