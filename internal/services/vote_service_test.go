package services_test

import (
	"context"
	"errors"
	"testing"

	"blog/internal/models"
	"blog/internal/repositories"
	"blog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestVoteService_RejectsUnknownDirection(t *testing.T) {
	store := newMockStore()
	voteService := services.NewVoteService(store, nil, zap.NewNop())

	for _, dir := range []int{0, 2, -2} {
		err := voteService.Vote(context.Background(), 1, 1, dir)
		assert.True(t, errors.Is(err, services.ErrInvalidInput), "dir %d", dir)
	}
	store.posts.AssertNotCalled(t, "GetByID", mock.Anything)
}

func TestVoteService_PostMustExist(t *testing.T) {
	store := newMockStore()
	voteService := services.NewVoteService(store, nil, zap.NewNop())

	store.posts.On("GetByID", uint(5)).Return(nil, repositories.ErrRecordNotFound).Twice()
	for _, dir := range []int{models.VoteAdd, models.VoteRemove} {
		err := voteService.Vote(context.Background(), 1, 5, dir)
		assert.True(t, errors.Is(err, services.ErrNotFound))
		assert.Equal(t, "Post with id 5 does not exist", err.Error())
	}
	store.votes.AssertNotCalled(t, "Create", mock.Anything)
	store.votes.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestVoteService_AddTwiceConflicts(t *testing.T) {
	store := newMockStore()
	publisher := new(MockPublisher)
	voteService := services.NewVoteService(store, publisher, zap.NewNop())

	store.posts.On("GetByID", uint(5)).Return(&models.Post{ID: 5}, nil)
	store.votes.On("Create", &models.Vote{UserID: 1, PostID: 5}).Return(nil).Once()
	publisher.On("Publish", mock.Anything, services.EventVoteAdded, mock.Anything).Return(nil).Once()
	require.NoError(t, voteService.Vote(context.Background(), 1, 5, models.VoteAdd))

	store.votes.On("Create", &models.Vote{UserID: 1, PostID: 5}).Return(repositories.ErrDuplicate).Once()
	err := voteService.Vote(context.Background(), 1, 5, models.VoteAdd)
	assert.True(t, errors.Is(err, services.ErrConflict))
	assert.Equal(t, "You have already voted on post 5", err.Error())

	store.votes.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestVoteService_AddOnPostDeletedMeanwhile(t *testing.T) {
	store := newMockStore()
	voteService := services.NewVoteService(store, nil, zap.NewNop())

	store.posts.On("GetByID", uint(5)).Return(&models.Post{ID: 5}, nil).Once()
	store.votes.On("Create", mock.Anything).Return(repositories.ErrMissingReference).Once()
	err := voteService.Vote(context.Background(), 1, 5, models.VoteAdd)
	assert.True(t, errors.Is(err, services.ErrNotFound))
}

func TestVoteService_Remove(t *testing.T) {
	store := newMockStore()
	publisher := new(MockPublisher)
	voteService := services.NewVoteService(store, publisher, zap.NewNop())

	store.posts.On("GetByID", uint(5)).Return(&models.Post{ID: 5}, nil)
	store.votes.On("Delete", uint(1), uint(5)).Return(repositories.ErrRecordNotFound).Once()
	err := voteService.Vote(context.Background(), 1, 5, models.VoteRemove)
	assert.True(t, errors.Is(err, services.ErrNotFound))
	assert.Equal(t, "Vote on post 5 does not exist", err.Error())

	store.votes.On("Delete", uint(1), uint(5)).Return(nil).Once()
	publisher.On("Publish", mock.Anything, services.EventVoteRemoved, mock.Anything).Return(nil).Once()
	require.NoError(t, voteService.Vote(context.Background(), 1, 5, models.VoteRemove))

	store.votes.AssertExpectations(t)
	publisher.AssertExpectations(t)
}
