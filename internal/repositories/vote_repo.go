package repositories

import "blog/internal/models"

// VoteRepository defines the interface for vote data access.
type VoteRepository interface {
	// Create inserts the vote. A second vote by the same user on the same post
	// fails with ErrDuplicate.
	Create(vote *models.Vote) error
	// Delete removes the vote, failing with ErrRecordNotFound when there is none.
	Delete(userID, postID uint) error
}
