package models

import "time"

// Vote records that a user upvoted a post. The composite primary key allows at most
// one vote per (user, post) pair; removing a vote deletes the row.
type Vote struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	PostID    uint      `json:"post_id" gorm:"primaryKey;autoIncrement:false;index"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Post      *Post     `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

// Vote directions accepted by the API. Direction only expresses intent; nothing but
// the presence of a row is stored.
const (
	VoteAdd    = 1
	VoteRemove = -1
)
