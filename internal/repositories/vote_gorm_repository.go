package repositories

import (
	"fmt"

	"blog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMVoteRepository is a GORM implementation of VoteRepository.
type GORMVoteRepository struct {
	db *gorm.DB
}

// NewGORMVoteRepository creates a new instance of GORMVoteRepository.
func NewGORMVoteRepository(db *gorm.DB) *GORMVoteRepository {
	return &GORMVoteRepository{db: db}
}

// Create inserts a vote. There is no existence check first: the composite primary
// key rejects a concurrent duplicate and that rejection is reported as ErrDuplicate.
func (r *GORMVoteRepository) Create(vote *models.Vote) error {
	if err := r.db.Omit(clause.Associations).Create(vote).Error; err != nil {
		return fmt.Errorf("failed to create vote by user %d on post %d: %w", vote.UserID, vote.PostID, translate(err))
	}
	return nil
}

// Delete removes the vote of userID on postID.
func (r *GORMVoteRepository) Delete(userID, postID uint) error {
	res := r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Vote{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete vote: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("vote by user %d on post %d not found: %w", userID, postID, ErrRecordNotFound)
	}
	return nil
}
