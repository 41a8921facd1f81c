package services

import (
	"context"
	"errors"

	"blog/internal/models"
	"blog/internal/repositories"
	"blog/pkg/password"
)

// AuthService handles business logic for authentication.
type AuthService struct {
	store  repositories.Store
	tokens *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(store repositories.Store, tokens *TokenService) *AuthService {
	return &AuthService{
		store:  store,
		tokens: tokens,
	}
}

// Login checks the credentials and returns a fresh access token. An unknown email
// and a wrong password both fail with ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, plain string) (string, error) {
	var user *models.User
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		var err error
		user, err = tx.Users().GetByEmail(email)
		return err
	})
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !password.Verify(plain, user.Password) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID, 0)
}

// Authenticate validates a bearer token and loads the user it was issued for.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	var user *models.User
	err = s.store.WithinTx(ctx, func(tx repositories.Store) error {
		var err error
		user, err = tx.Users().GetByID(userID)
		return err
	})
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, &AuthError{Reason: ReasonUnknownSubject, Err: err}
		}
		return nil, err
	}
	return user, nil
}
