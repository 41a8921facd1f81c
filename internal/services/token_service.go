package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// TokenClaims is the payload of every access token: the user ID as subject plus
// expiry and issue time.
type TokenClaims struct {
	jwt.StandardClaims
}

// Valid rejects tokens without an expiry before applying the standard checks.
func (c TokenClaims) Valid() error {
	if c.ExpiresAt == 0 {
		return jwt.NewValidationError("token has no expiry", jwt.ValidationErrorClaimsInvalid)
	}
	return c.StandardClaims.Valid()
}

// TokenService issues and validates HS256 access tokens. It keeps no session
// state: a token is valid as long as its signature and expiry are.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService. ttl is the lifetime used when Issue is
// called without one.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL returns the default token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for userID that expires after ttl, or after the default
// lifetime when ttl is not positive.
func (s *TokenService) Issue(userID uint, ttl time.Duration) (string, error) {
	if userID == 0 {
		return "", newError(ErrInvalidInput, "user ID is required to create a token")
	}
	if ttl <= 0 {
		ttl = s.ttl
	}

	now := jwt.TimeFunc()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: now.Add(ttl).Unix(),
			IssuedAt:  now.Unix(),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}

// Validate checks the signature and expiry of tokenString and returns the user
// ID it was issued for. Every failure is an *AuthError.
func (s *TokenService) Validate(tokenString string) (uint, error) {
	var claims TokenClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return 0, &AuthError{Reason: reasonFor(err), Err: err}
	}

	if claims.Subject == "" {
		return 0, &AuthError{Reason: ReasonMissingSubject}
	}
	id, err := strconv.ParseUint(claims.Subject, 10, strconv.IntSize)
	if err != nil || id == 0 {
		return 0, &AuthError{Reason: ReasonMalformed, Err: fmt.Errorf("invalid subject %q", claims.Subject)}
	}
	return uint(id), nil
}

// reasonFor classifies a jwt-go parse error. A bad signature wins over expiry.
func reasonFor(err error) AuthReason {
	var ve *jwt.ValidationError
	if errors.As(err, &ve) {
		switch {
		case ve.Errors&(jwt.ValidationErrorSignatureInvalid|jwt.ValidationErrorUnverifiable) != 0:
			return ReasonBadSignature
		case ve.Errors&jwt.ValidationErrorExpired != 0:
			return ReasonExpired
		}
	}
	return ReasonMalformed
}
