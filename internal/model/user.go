// Package model defines database models
package model

import "time"

type User struct {
	ID           string  `gorm:"primaryKey" json:"id"`
	Username     string  `gorm:"uniqueIndex;not null" json:"username"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	Name         string  `json:"name"`
	Bio          string  `json:"bio"`
	Location     string  `json:"location"`
	IsPrivate    bool    `gorm:"default:false" json:"is_private"`
	PasswordHash string  `gorm:"not null" json:"-"`
	ImageKey     *string `json:"-"`

	// Single-use password reset pair. Both are nil unless a reset
	// is pending and both are cleared together on consumption.
	ResetToken     *string    `gorm:"uniqueIndex" json:"-"`
	ResetExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Posts      []Post      `gorm:"foreignKey:UserID" json:"-"`
	Comments   []Comment   `gorm:"foreignKey:UserID" json:"-"`
	SavedPosts []SavedPost `gorm:"foreignKey:UserID" json:"-"`
}
