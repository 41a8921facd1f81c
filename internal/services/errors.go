package services

import (
	"errors"
	"fmt"
)

// Error kinds returned by the services. Use errors.Is to test for them; the
// concrete error carries a message meant for the API caller.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInvalidInput       = errors.New("invalid input")
)

type domainError struct {
	kind error
	msg  string
}

func (e *domainError) Error() string { return e.msg }
func (e *domainError) Unwrap() error { return e.kind }

func newError(kind error, format string, args ...interface{}) error {
	return &domainError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// AuthReason says why a bearer token was rejected. It is logged, never returned
// to the client.
type AuthReason string

const (
	ReasonMalformed      AuthReason = "malformed"
	ReasonExpired        AuthReason = "expired"
	ReasonBadSignature   AuthReason = "bad-signature"
	ReasonMissingSubject AuthReason = "missing-subject"
	// ReasonUnknownSubject is reported when a valid token names a user that no longer exists.
	ReasonUnknownSubject AuthReason = "unknown-subject"
)

// AuthError is returned for every rejected bearer token. Callers must answer all
// reasons the same way.
type AuthError struct {
	Reason AuthReason
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token rejected (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("token rejected (%s)", e.Reason)
}

func (e *AuthError) Unwrap() error { return e.Err }
