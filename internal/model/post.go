package model

import "time"

type Post struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  string `gorm:"index;not null" json:"user_id"`
	Caption string `json:"caption"`
	// Key of the post image in the blob store. The public URL is built
	// on the way out instead of being stored next to the key.
	ImageKey *string     `json:"-"`
	Location string      `json:"location"`
	Tags     StringSlice `json:"tags"`
	Private  bool        `gorm:"default:false" json:"private"`

	CreatedAt time.Time `gorm:"index;not null" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User     User       `gorm:"foreignKey:UserID" json:"-"`
	Comments []Comment  `gorm:"foreignKey:PostID" json:"-"`
	Likes    []PostLike `gorm:"foreignKey:PostID" json:"-"`
}

type PostLike struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID    string    `gorm:"uniqueIndex:idx_post_likes_user_post;not null" json:"user_id"`
	PostID    uint      `gorm:"uniqueIndex:idx_post_likes_user_post;index;not null" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
