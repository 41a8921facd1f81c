package repositories

import (
	"blog/internal/models"
)

// PostQuery selects a page of the post listing.
type PostQuery struct {
	Offset int
	Limit  int
	// Search is matched as a case-insensitive literal substring of title or content.
	// Empty matches every post.
	Search string
}

// PostRepository defines the interface for post data access.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id uint) (*models.Post, error)
	Update(post *models.Post) error
	Delete(id uint) error
	// ListWithVotes returns one row per post with its vote count. Owners are not loaded.
	ListWithVotes(q PostQuery) ([]models.PostWithVotes, error)
	GetWithVotes(id uint) (*models.PostWithVotes, error)
}
