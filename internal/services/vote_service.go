package services

import (
	"context"
	"errors"

	"blog/internal/models"
	"blog/internal/repositories"

	"go.uber.org/zap"
)

// VoteService adds and removes votes on posts.
type VoteService struct {
	store  repositories.Store
	events eventEmitter
}

// NewVoteService creates a new VoteService. publisher may be nil.
func NewVoteService(store repositories.Store, publisher EventPublisher, log *zap.Logger) *VoteService {
	return &VoteService{
		store:  store,
		events: eventEmitter{publisher: publisher, log: log},
	}
}

// Vote adds (dir == 1) or removes (dir == -1) the vote of voterID on postID.
// Adding twice fails with ErrConflict; removing a vote that does not exist fails
// with ErrNotFound.
func (s *VoteService) Vote(ctx context.Context, voterID, postID uint, dir int) error {
	if dir != models.VoteAdd && dir != models.VoteRemove {
		return newError(ErrInvalidInput, "Vote direction must be 1 or -1, got %d", dir)
	}

	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		if _, err := tx.Posts().GetByID(postID); err != nil {
			if errors.Is(err, repositories.ErrRecordNotFound) {
				return newError(ErrNotFound, "Post with id %d does not exist", postID)
			}
			return err
		}

		if dir == models.VoteAdd {
			err := tx.Votes().Create(&models.Vote{UserID: voterID, PostID: postID})
			switch {
			case errors.Is(err, repositories.ErrDuplicate):
				return newError(ErrConflict, "You have already voted on post %d", postID)
			case errors.Is(err, repositories.ErrMissingReference):
				// The post was deleted between the lookup and the insert.
				return newError(ErrNotFound, "Post with id %d does not exist", postID)
			}
			return err
		}

		err := tx.Votes().Delete(voterID, postID)
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return newError(ErrNotFound, "Vote on post %d does not exist", postID)
		}
		return err
	})
	if err != nil {
		return err
	}

	if dir == models.VoteAdd {
		s.events.emit(ctx, EventVoteAdded, voterID, postID)
	} else {
		s.events.emit(ctx, EventVoteRemoved, voterID, postID)
	}
	return nil
}
