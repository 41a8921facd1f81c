package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that share one database handle.
type Store interface {
	Users() UserRepository
	Posts() PostRepository
	Votes() VoteRepository
	// WithinTx runs fn inside a transaction. The transaction commits when fn returns
	// nil and rolls back when it returns an error or panics.
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}

// GORMStore is the GORM implementation of Store.
type GORMStore struct {
	db *gorm.DB
}

// NewGORMStore creates a new GORMStore.
func NewGORMStore(db *gorm.DB) *GORMStore {
	return &GORMStore{db: db}
}

func (s *GORMStore) Users() UserRepository { return NewGORMUserRepository(s.db) }
func (s *GORMStore) Posts() PostRepository { return NewGORMPostRepository(s.db) }
func (s *GORMStore) Votes() VoteRepository { return NewGORMVoteRepository(s.db) }

// WithinTx implements Store.
func (s *GORMStore) WithinTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMStore(tx))
	})
}
