package repositories

import (
	"fmt"
	"strings"
	"time"

	"blog/internal/models"

	"gorm.io/gorm"
)

// GORMPostRepository is a GORM implementation of PostRepository.
type GORMPostRepository struct {
	db *gorm.DB
}

// NewGORMPostRepository creates a new instance of GORMPostRepository.
func NewGORMPostRepository(db *gorm.DB) *GORMPostRepository {
	return &GORMPostRepository{
		db: db,
	}
}

// Create creates a new post in the database.
func (r *GORMPostRepository) Create(post *models.Post) error {
	if err := r.db.Omit("Owner").Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", translate(err))
	}
	return nil
}

// GetByID retrieves a single post by its ID from the database.
func (r *GORMPostRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get post by ID %d: %w", id, translate(err))
	}
	return &post, nil
}

// Update writes the editable columns of an existing post, zero values included.
func (r *GORMPostRepository) Update(post *models.Post) error {
	res := r.db.Model(post).Select("title", "content", "published").Updates(post)
	if res.Error != nil {
		return fmt.Errorf("failed to update post: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post with ID %d not found for update: %w", post.ID, ErrRecordNotFound)
	}
	return nil
}

// Delete deletes a post by its ID from the database. Votes on it are removed by
// the foreign key cascade.
func (r *GORMPostRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Post{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete post: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post with ID %d not found for deletion: %w", id, ErrRecordNotFound)
	}
	return nil
}

type postVoteRow struct {
	ID        uint
	Title     string
	Content   string
	Published bool
	CreatedAt time.Time
	OwnerID   *uint
	Votes     int64
}

func (row postVoteRow) toModel() models.PostWithVotes {
	return models.PostWithVotes{
		Post: models.Post{
			ID:        row.ID,
			Title:     row.Title,
			Content:   row.Content,
			Published: row.Published,
			CreatedAt: row.CreatedAt,
			OwnerID:   row.OwnerID,
		},
		Votes: row.Votes,
	}
}

// withVotes left-joins votes so posts without votes are kept with a count of 0.
func (r *GORMPostRepository) withVotes() *gorm.DB {
	return r.db.Model(&models.Post{}).
		Select("posts.id, posts.title, posts.content, posts.published, posts.created_at, posts.owner_id, COUNT(votes.post_id) AS votes").
		Joins("LEFT JOIN votes ON votes.post_id = posts.id").
		Group("posts.id")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern that matches search as a literal substring.
func containsPattern(search string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
}

// ListWithVotes filters, groups and then paginates, so Offset and Limit count posts
// rather than vote rows.
func (r *GORMPostRepository) ListWithVotes(q PostQuery) ([]models.PostWithVotes, error) {
	query := r.withVotes()
	if q.Search != "" {
		pattern := containsPattern(q.Search)
		query = query.Where(`LOWER(posts.title) LIKE ? ESCAPE '\' OR LOWER(posts.content) LIKE ? ESCAPE '\'`, pattern, pattern)
	}

	var rows []postVoteRow
	err := query.Order("posts.id ASC").Offset(q.Offset).Limit(q.Limit).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", translate(err))
	}

	out := make([]models.PostWithVotes, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

// GetWithVotes retrieves a single post together with its vote count.
func (r *GORMPostRepository) GetWithVotes(id uint) (*models.PostWithVotes, error) {
	var rows []postVoteRow
	if err := r.withVotes().Where("posts.id = ?", id).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get post by ID %d: %w", id, translate(err))
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("post with ID %d not found: %w", id, ErrRecordNotFound)
	}
	post := rows[0].toModel()
	return &post, nil
}
