package services

import (
	"context"
	"errors"

	"blog/internal/models"
	"blog/internal/repositories"
	"blog/pkg/password"

	"go.uber.org/zap"
)

// UserService handles registration and lookup of users.
type UserService struct {
	store  repositories.Store
	events eventEmitter
}

// NewUserService creates a new UserService. publisher may be nil.
func NewUserService(store repositories.Store, publisher EventPublisher, log *zap.Logger) *UserService {
	return &UserService{
		store:  store,
		events: eventEmitter{publisher: publisher, log: log},
	}
}

// Register stores a new user with a hashed password.
func (s *UserService) Register(ctx context.Context, email, plain string, phone *string) (*models.User, error) {
	digest, err := password.Hash(plain)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return nil, newError(ErrInvalidInput, "Password must be at most %d bytes", password.MaxLength)
		}
		return nil, err
	}

	user := &models.User{Email: email, Password: digest, PhoneNumber: phone}
	err = s.store.WithinTx(ctx, func(tx repositories.Store) error {
		return tx.Users().Create(user)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, newError(ErrConflict, "User with email %s already exists", email)
		}
		return nil, err
	}

	s.events.emit(ctx, EventUserRegistered, user.ID, 0)
	return user, nil
}

// List returns a page of users. The page is clamped to MaxPageSize.
func (s *UserService) List(ctx context.Context, offset, limit int) ([]models.User, error) {
	offset, limit = clampPage(offset, limit)

	var users []models.User
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		var err error
		users, err = tx.Users().List(offset, limit)
		return err
	})
	return users, err
}

// Get returns user id to the caller. Users may only read themselves: this is a
// same-user rule, not a general permission model.
func (s *UserService) Get(ctx context.Context, callerID, id uint) (*models.User, error) {
	if callerID != id {
		return nil, newError(ErrForbidden, "Not enough permissions")
	}

	var user *models.User
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		var err error
		user, err = tx.Users().GetByID(id)
		return err
	})
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, newError(ErrNotFound, "User with user_id of %d not found", id)
		}
		return nil, err
	}
	return user, nil
}
