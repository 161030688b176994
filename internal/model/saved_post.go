package model

import "time"

type SavedPost struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"uniqueIndex:idx_saved_posts_user_post;not null" json:"user_id"`
	PostID    uint      `gorm:"uniqueIndex:idx_saved_posts_user_post;index;not null" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	Post Post `gorm:"foreignKey:PostID" json:"-"`
}
