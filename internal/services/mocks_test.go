package services_test

import (
	"context"

	"blog/internal/models"
	"blog/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ids []uint) ([]models.User, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) List(offset, limit int) ([]models.User, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// MockPostRepository is a mock implementation of repositories.PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(post *models.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(id uint) (*models.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) Update(post *models.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPostRepository) ListWithVotes(q repositories.PostQuery) ([]models.PostWithVotes, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PostWithVotes), args.Error(1)
}

func (m *MockPostRepository) GetWithVotes(id uint) (*models.PostWithVotes, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PostWithVotes), args.Error(1)
}

// MockVoteRepository is a mock implementation of repositories.VoteRepository
type MockVoteRepository struct {
	mock.Mock
}

func (m *MockVoteRepository) Create(vote *models.Vote) error {
	args := m.Called(vote)
	return args.Error(0)
}

func (m *MockVoteRepository) Delete(userID, postID uint) error {
	args := m.Called(userID, postID)
	return args.Error(0)
}

// MockStore hands out the mock repositories and runs transactions inline.
type MockStore struct {
	users *MockUserRepository
	posts *MockPostRepository
	votes *MockVoteRepository
}

func newMockStore() *MockStore {
	return &MockStore{
		users: new(MockUserRepository),
		posts: new(MockPostRepository),
		votes: new(MockVoteRepository),
	}
}

func (s *MockStore) Users() repositories.UserRepository { return s.users }
func (s *MockStore) Posts() repositories.PostRepository { return s.posts }
func (s *MockStore) Votes() repositories.VoteRepository { return s.votes }

func (s *MockStore) WithinTx(ctx context.Context, fn func(tx repositories.Store) error) error {
	return fn(s)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, messageID, eventType string, body interface{}) error {
	args := m.Called(messageID, eventType, body)
	return args.Error(0)
}
