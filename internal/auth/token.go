package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken covers malformed, forged, and expired tokens. The
	// three cases are deliberately indistinguishable to the caller.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMissingSubject indicates a well-signed token without an identity claim.
	ErrMissingSubject = errors.New("token has no subject")
)

const (
	// DefaultTokenTTL is the lifetime configured for login-issued tokens.
	DefaultTokenTTL = 30 * time.Minute

	// fallbackTokenTTL applies when an issuer is built without an explicit TTL.
	fallbackTokenTTL = 15 * time.Minute

	secretLen = 32
)

// NewSecret generates a random signing secret. A process restarted with a
// generated secret invalidates every outstanding token; set JWT_SECRET to
// carry tokens across restarts.
func NewSecret() ([]byte, error) {
	secret := make([]byte, secretLen)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generating signing secret: %w", err)
	}

	return secret, nil
}

// TokenIssuer mints and verifies HS256 bearer tokens binding a subject
// (the user's email) to an expiry. The secret is fixed at construction and
// never mutated afterwards.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, ttl: ttl}
}

// Issue signs a token for the subject expiring after the configured TTL.
func (t *TokenIssuer) Issue(subject string) (string, error) {
	ttl := t.ttl
	if ttl <= 0 {
		ttl = fallbackTokenTTL
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

// Verify checks the signature and expiry and returns the subject claim.
func (t *TokenIssuer) Verify(token string) (string, error) {
	parsed, err := jwt.Parse(token,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrMissingSubject
	}

	return subject, nil
}
