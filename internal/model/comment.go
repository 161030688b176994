package model

import "time"

type Comment struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID  uint   `gorm:"index;not null" json:"post_id"`
	UserID  string `gorm:"index;not null" json:"user_id"`
	Content string `gorm:"not null" json:"content"`
	// At most one comment per post may be pinned. The pin operation
	// enforces this inside a transaction scoped to the post.
	Pinned bool `gorm:"default:false" json:"pinned"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
