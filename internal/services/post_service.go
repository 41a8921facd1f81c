package services

import (
	"context"
	"errors"

	"blog/internal/models"
	"blog/internal/repositories"

	"go.uber.org/zap"
)

// PostFields are the fields a client writes on a post. Published defaults to true
// when nil.
type PostFields struct {
	Title     string
	Content   string
	Published *bool
}

// PostPatch changes only the fields that are set.
type PostPatch struct {
	Title     *string
	Content   *string
	Published *bool
}

func (f PostFields) published() bool {
	return f.Published == nil || *f.Published
}

// patch turns a full replacement into a patch that sets every field.
func (f PostFields) patch() PostPatch {
	published := f.published()
	return PostPatch{Title: &f.Title, Content: &f.Content, Published: &published}
}

func (p PostPatch) apply(post *models.Post) {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Content != nil {
		post.Content = *p.Content
	}
	if p.Published != nil {
		post.Published = *p.Published
	}
}

// PostService handles business logic related to posts.
type PostService struct {
	store  repositories.Store
	events eventEmitter
	log    *zap.Logger
}

// NewPostService creates a new PostService. publisher may be nil.
func NewPostService(store repositories.Store, publisher EventPublisher, log *zap.Logger) *PostService {
	return &PostService{
		store:  store,
		events: eventEmitter{publisher: publisher, log: log},
		log:    log,
	}
}

// Create stores a new post owned by ownerID.
func (s *PostService) Create(ctx context.Context, ownerID uint, fields PostFields) (*models.Post, error) {
	post := &models.Post{
		Title:     fields.Title,
		Content:   fields.Content,
		Published: fields.published(),
		OwnerID:   &ownerID,
	}
	if err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		return tx.Posts().Create(post)
	}); err != nil {
		return nil, err
	}

	s.events.emit(ctx, EventPostCreated, ownerID, post.ID)
	return post, nil
}

// List returns a page of posts with their vote counts and owners. q.Limit is
// clamped to MaxPageSize.
func (s *PostService) List(ctx context.Context, q repositories.PostQuery) ([]models.PostWithVotes, error) {
	q.Offset, q.Limit = clampPage(q.Offset, q.Limit)

	var rows []models.PostWithVotes
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		var err error
		rows, err = tx.Posts().ListWithVotes(q)
		if err != nil {
			return err
		}
		s.attachOwners(ctx, tx, rows)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Get returns one post with its vote count and owner.
func (s *PostService) Get(ctx context.Context, id uint) (*models.PostWithVotes, error) {
	var row *models.PostWithVotes
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		var err error
		row, err = tx.Posts().GetWithVotes(id)
		if err != nil {
			return err
		}
		rows := []models.PostWithVotes{*row}
		s.attachOwners(ctx, tx, rows)
		row = &rows[0]
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, postNotFound(id)
		}
		return nil, err
	}
	return row, nil
}

// attachOwners resolves the owner of every row in one lookup. The lookup runs in a
// nested transaction so a failure leaves the outer one usable; owners are then
// left out instead of failing the listing.
func (s *PostService) attachOwners(ctx context.Context, tx repositories.Store, rows []models.PostWithVotes) {
	seen := make(map[uint]bool)
	var ids []uint
	for _, row := range rows {
		if row.Post.OwnerID != nil && !seen[*row.Post.OwnerID] {
			seen[*row.Post.OwnerID] = true
			ids = append(ids, *row.Post.OwnerID)
		}
	}
	if len(ids) == 0 {
		return
	}

	var users []models.User
	err := tx.WithinTx(ctx, func(inner repositories.Store) error {
		var err error
		users, err = inner.Users().GetByIDs(ids)
		return err
	})
	if err != nil {
		s.log.Warn("owner lookup failed, listing posts without owners", zap.Error(err))
		return
	}

	byID := make(map[uint]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	for i := range rows {
		if rows[i].Post.OwnerID != nil {
			rows[i].Owner = byID[*rows[i].Post.OwnerID]
		}
	}
}

// Replace overwrites every editable field of a post owned by callerID.
func (s *PostService) Replace(ctx context.Context, callerID, id uint, fields PostFields) (*models.Post, error) {
	return s.Update(ctx, callerID, id, fields.patch())
}

// Update applies patch to a post owned by callerID.
func (s *PostService) Update(ctx context.Context, callerID, id uint, patch PostPatch) (*models.Post, error) {
	var post *models.Post
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		var err error
		post, err = loadOwned(tx, id, callerID)
		if err != nil {
			return err
		}
		patch.apply(post)
		return tx.Posts().Update(post)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, postNotFound(id)
		}
		return nil, err
	}

	s.events.emit(ctx, EventPostUpdated, callerID, id)
	return post, nil
}

// Delete removes a post owned by callerID.
func (s *PostService) Delete(ctx context.Context, callerID, id uint) error {
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		if _, err := loadOwned(tx, id, callerID); err != nil {
			return err
		}
		return tx.Posts().Delete(id)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return postNotFound(id)
		}
		return err
	}

	s.events.emit(ctx, EventPostDeleted, callerID, id)
	return nil
}

// loadOwned fetches post id and checks that callerID owns it.
func loadOwned(tx repositories.Store, id, callerID uint) (*models.Post, error) {
	post, err := tx.Posts().GetByID(id)
	if err != nil {
		return nil, err
	}
	if post.OwnerID == nil || *post.OwnerID != callerID {
		return nil, newError(ErrForbidden, "Not authorized to perform requested action")
	}
	return post, nil
}

func postNotFound(id uint) error {
	return newError(ErrNotFound, "Post with post_id of %d not found", id)
}
