package service

import "gorm.io/gorm"

// Visible restricts a posts query to what viewerID may see: the owner
// sees their own content unconditionally, everyone else only sees posts
// that are public on both the post and the owning profile. An anonymous
// viewer passes an empty ID, which never matches an owner.
//
// This is computed per read and never written back to stored rows.
func Visible(viewerID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN users ON users.id = posts.user_id").
			Where("posts.user_id = ? OR (posts.private = ? AND users.is_private = ?)",
				viewerID, false, false)
	}
}
