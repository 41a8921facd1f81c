package models

import "time"

// MaxContentLength bounds Post.Content.
const MaxContentLength = 254

// Post is a blog entry. OwnerID is nullable; deleting the owner deletes the post.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null;index"`
	Content   string    `json:"content" gorm:"type:varchar(254);not null;index"`
	Published bool      `json:"published" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	OwnerID   *uint     `json:"owner_id" gorm:"index"`
	Owner     *User     `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

// PostPublic is the response shape of a single post.
type PostPublic struct {
	ID        uint        `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Published bool        `json:"published"`
	CreatedAt time.Time   `json:"created_at"`
	OwnerID   *uint       `json:"owner_id"`
	Owner     *UserPublic `json:"owner,omitempty"`
}

// PostWithVotes is one row of the post listing: a post, its owner when known, and
// the number of votes cast on it.
type PostWithVotes struct {
	Post  Post
	Owner *User
	Votes int64
}

// PostVote is the response shape of PostWithVotes.
type PostVote struct {
	Post  PostPublic `json:"post"`
	Votes int64      `json:"votes"`
}

// Public converts the post to its response shape. owner may be nil.
func (p *Post) Public(owner *User) PostPublic {
	out := PostPublic{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Published: p.Published,
		CreatedAt: p.CreatedAt,
		OwnerID:   p.OwnerID,
	}
	if owner != nil {
		pub := owner.Public()
		out.Owner = &pub
	}
	return out
}

// Response converts a listing row to its response shape.
func (p PostWithVotes) Response() PostVote {
	return PostVote{Post: p.Post.Public(p.Owner), Votes: p.Votes}
}
