package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prajwal2403/fintrack/internal/auth"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	secret, err := auth.NewSecret()
	require.NoError(t, err)
	require.Len(t, secret, 32)

	issuer := auth.NewTokenIssuer(secret, auth.DefaultTokenTTL)

	token, err := issuer.Issue("ada@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", subject)
}

func TestTokenIssuer_FallbackTTL(t *testing.T) {
	secret, err := auth.NewSecret()
	require.NoError(t, err)

	// A zero TTL falls back to the internal default rather than issuing
	// already-expired tokens.
	issuer := auth.NewTokenIssuer(secret, 0)

	token, err := issuer.Issue("ada@example.com")
	require.NoError(t, err)

	subject, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", subject)
}

func TestTokenIssuer_Verify_Failures(t *testing.T) {
	secret, err := auth.NewSecret()
	require.NoError(t, err)

	otherSecret, err := auth.NewSecret()
	require.NoError(t, err)

	issuer := auth.NewTokenIssuer(secret, auth.DefaultTokenTTL)

	sign := func(signWith []byte, claims jwt.MapClaims) string {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signWith)
		require.NoError(t, err)

		return signed
	}

	now := time.Now()

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name:    "Malformed",
			token:   "not.a.token",
			wantErr: auth.ErrInvalidToken,
		},
		{
			name: "WrongSecret",
			token: sign(otherSecret, jwt.MapClaims{
				"sub": "ada@example.com",
				"exp": now.Add(time.Hour).Unix(),
			}),
			wantErr: auth.ErrInvalidToken,
		},
		{
			name: "Expired",
			token: sign(secret, jwt.MapClaims{
				"sub": "ada@example.com",
				"exp": now.Add(-time.Minute).Unix(),
			}),
			// Expired and forged are indistinguishable on purpose.
			wantErr: auth.ErrInvalidToken,
		},
		{
			name: "NoSubject",
			token: sign(secret, jwt.MapClaims{
				"exp": now.Add(time.Hour).Unix(),
			}),
			wantErr: auth.ErrMissingSubject,
		},
		{
			name: "NoExpiry",
			token: sign(secret, jwt.MapClaims{
				"sub": "ada@example.com",
			}),
			wantErr: auth.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, err := issuer.Verify(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, subject)
		})
	}
}
