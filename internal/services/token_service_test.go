package services_test

import (
	"errors"
	"testing"
	"time"

	"blog/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test_jwt_secret"

func signClaims(t *testing.T, claims jwt.Claims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func assertReason(t *testing.T, err error, reason services.AuthReason) {
	t.Helper()
	var authErr *services.AuthError
	require.True(t, errors.As(err, &authErr), "expected *AuthError, got %v", err)
	assert.Equal(t, reason, authErr.Reason)
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	tokens := services.NewTokenService(testJWTSecret, 30*time.Minute)

	token, err := tokens.Issue(42, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)

	var claims services.TokenClaims
	_, err = jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.InDelta(t, time.Now().Add(30*time.Minute).Unix(), claims.ExpiresAt, 5)
}

func TestTokenService_IssueWithExplicitTTL(t *testing.T) {
	tokens := services.NewTokenService(testJWTSecret, 30*time.Minute)

	token, err := tokens.Issue(7, 2*time.Hour)
	require.NoError(t, err)

	var claims services.TokenClaims
	_, err = jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	assert.InDelta(t, time.Now().Add(2*time.Hour).Unix(), claims.ExpiresAt, 5)
}

func TestTokenService_IssueRequiresUser(t *testing.T) {
	tokens := services.NewTokenService(testJWTSecret, time.Minute)

	_, err := tokens.Issue(0, 0)
	assert.True(t, errors.Is(err, services.ErrInvalidInput))
}

func TestTokenService_ValidateRejections(t *testing.T) {
	tokens := services.NewTokenService(testJWTSecret, time.Minute)
	now := time.Now()

	tests := []struct {
		name   string
		token  string
		reason services.AuthReason
	}{
		{
			name:   "garbage",
			token:  "invalid.token.string",
			reason: services.ReasonMalformed,
		},
		{
			name:   "wrong segment count",
			token:  "abc",
			reason: services.ReasonMalformed,
		},
		{
			name: "expired",
			token: signClaims(t, jwt.StandardClaims{
				Subject:   "1",
				ExpiresAt: now.Add(-time.Hour).Unix(),
			}, testJWTSecret),
			reason: services.ReasonExpired,
		},
		{
			name: "wrong secret",
			token: signClaims(t, jwt.StandardClaims{
				Subject:   "1",
				ExpiresAt: now.Add(time.Hour).Unix(),
			}, "another_secret"),
			reason: services.ReasonBadSignature,
		},
		{
			name: "expired and wrong secret",
			token: signClaims(t, jwt.StandardClaims{
				Subject:   "1",
				ExpiresAt: now.Add(-time.Hour).Unix(),
			}, "another_secret"),
			reason: services.ReasonBadSignature,
		},
		{
			name: "missing subject",
			token: signClaims(t, jwt.StandardClaims{
				ExpiresAt: now.Add(time.Hour).Unix(),
			}, testJWTSecret),
			reason: services.ReasonMissingSubject,
		},
		{
			name: "non numeric subject",
			token: signClaims(t, jwt.StandardClaims{
				Subject:   "alice",
				ExpiresAt: now.Add(time.Hour).Unix(),
			}, testJWTSecret),
			reason: services.ReasonMalformed,
		},
		{
			name:   "no expiry",
			token:  signClaims(t, jwt.StandardClaims{Subject: "1"}, testJWTSecret),
			reason: services.ReasonMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, err := tokens.Validate(tt.token)
			assert.Zero(t, userID)
			assertReason(t, err, tt.reason)
		})
	}
}

func TestTokenService_RejectsUnsignedTokens(t *testing.T) {
	tokens := services.NewTokenService(testJWTSecret, time.Minute)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.StandardClaims{
		Subject:   "1",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tokens.Validate(unsigned)
	assertReason(t, err, services.ReasonBadSignature)
}
