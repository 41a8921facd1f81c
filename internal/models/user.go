package models

import "time"

// User represents a registered author.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Email       string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password    string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt digest, never serialized
	PhoneNumber *string   `json:"phone_number,omitempty" gorm:"column:phone_num;type:varchar(32)"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserPublic is the view of a user that is safe to return to any caller.
type UserPublic struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Public strips the user down to its public fields.
func (u *User) Public() UserPublic {
	return UserPublic{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}
