package repositories

import "blog/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	GetByIDs(ids []uint) ([]models.User, error)
	List(offset, limit int) ([]models.User, error)
}
