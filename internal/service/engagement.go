package service

import (
	"errors"
	"fmt"

	"snapgram/social-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Engagement implements likes, comments (including the pin invariant)
// and saved-post bookmarks.
type Engagement struct {
	DB *gorm.DB
}

func (e *Engagement) postExists(db *gorm.DB, postID uint) error {
	var found bool

	err := db.Model(model.Post{}).
		Select("count(*) > 0").
		Where("id = ?", postID).
		Find(&found).
		Error
	if err != nil {
		return fmt.Errorf("failed to check if post exists, %w", err)
	}

	if !found {
		return fmt.Errorf("%w, post %d", ErrNotFound, postID)
	}

	return nil
}

// ToggleLike flips the viewer's membership in the post's like set and
// returns the new state with the recomputed count. The delete decides
// membership atomically via its affected-row count; the composite
// unique index absorbs the insert race, so two interleaved toggles for
// the same pair can't double-count.
func (e *Engagement) ToggleLike(userID string, postID uint) (liked bool, count int64, err error) {
	if err := e.postExists(e.DB, postID); err != nil {
		return false, 0, err
	}

	res := e.DB.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&model.PostLike{})
	if res.Error != nil {
		return false, 0, fmt.Errorf("failed to remove like, %w", res.Error)
	}

	if res.RowsAffected == 0 {
		err := e.DB.Create(&model.PostLike{UserID: userID, PostID: postID}).Error
		if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, 0, fmt.Errorf("failed to add like, %w", err)
		}

		liked = true
	}

	err = e.DB.Model(model.PostLike{}).
		Where("post_id = ?", postID).
		Count(&count).
		Error
	if err != nil {
		return false, 0, fmt.Errorf("failed to count likes, %w", err)
	}

	return liked, count, nil
}

func (e *Engagement) CreateComment(postID uint, userID, content string) (*model.Comment, error) {
	if content == "" {
		return nil, fmt.Errorf("%w, comment content can't be empty", ErrValidation)
	}

	if err := e.postExists(e.DB, postID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}

	if err := e.DB.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment, %w", err)
	}

	return comment, nil
}

// ListComments returns a post's comments, pinned first, then newest
// first.
func (e *Engagement) ListComments(postID uint) ([]model.Comment, error) {
	if err := e.postExists(e.DB, postID); err != nil {
		return nil, err
	}

	var comments []model.Comment

	err := e.DB.Preload("User").
		Where("post_id = ?", postID).
		Order("pinned desc, created_at desc").
		Find(&comments).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments, %w", err)
	}

	return comments, nil
}

// DeleteComment allows the comment author or the post owner to remove a
// comment.
func (e *Engagement) DeleteComment(commentID uint, requesterID string) error {
	var comment model.Comment

	err := e.DB.First(&comment, commentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w, comment %d", ErrNotFound, commentID)
		}

		return fmt.Errorf("failed to fetch comment, %w", err)
	}

	if comment.UserID != requesterID {
		var post model.Post

		if err := e.DB.Select("user_id").First(&post, comment.PostID).Error; err != nil {
			return fmt.Errorf("failed to fetch parent post, %w", err)
		}

		if post.UserID != requesterID {
			return fmt.Errorf("%w, only the author or the post owner may delete a comment", ErrPermissionDenied)
		}
	}

	if err := e.DB.Delete(&model.Comment{}, commentID).Error; err != nil {
		return fmt.Errorf("failed to delete comment, %w", err)
	}

	return nil
}

// PinComment toggles the pin state of a comment. Pinning unpins every
// other comment on the same post first; both writes run in one
// transaction scoped to the post so two racing pin requests can't leave
// two comments pinned. Returns the resulting state of the target.
func (e *Engagement) PinComment(commentID uint, requesterID string) (pinned bool, err error) {
	err = e.DB.Transaction(func(tx *gorm.DB) error {
		var comment model.Comment

		q := tx
		// sqlite has no FOR UPDATE and serializes writers on its own
		if tx.Dialector.Name() != "sqlite" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		err := q.First(&comment, commentID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w, comment %d", ErrNotFound, commentID)
			}

			return fmt.Errorf("failed to fetch comment, %w", err)
		}

		var post model.Post

		// Lock the parent post row for the duration of the pair of
		// writes. Pin requests for the same post queue up behind it.
		pq := tx
		if tx.Dialector.Name() != "sqlite" {
			pq = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		if err := pq.Select("id", "user_id").First(&post, comment.PostID).Error; err != nil {
			return fmt.Errorf("failed to fetch parent post, %w", err)
		}

		if post.UserID != requesterID {
			return fmt.Errorf("%w, only the post owner may pin comments", ErrPermissionDenied)
		}

		if comment.Pinned {
			pinned = false
			return tx.Model(&comment).Update("pinned", false).Error
		}

		err = tx.Model(model.Comment{}).
			Where("post_id = ? AND pinned = ?", comment.PostID, true).
			Update("pinned", false).
			Error
		if err != nil {
			return fmt.Errorf("failed to unpin previous comment, %w", err)
		}

		pinned = true
		return tx.Model(&comment).Update("pinned", true).Error
	})
	if err != nil {
		return false, err
	}

	return pinned, nil
}

// SavePost bookmarks a post for the user. The insert itself is the
// uniqueness check; a duplicate is a caller-visible conflict.
func (e *Engagement) SavePost(userID string, postID uint) (*model.SavedPost, error) {
	if err := e.postExists(e.DB, postID); err != nil {
		return nil, err
	}

	saved := &model.SavedPost{
		UserID: userID,
		PostID: postID,
	}

	if err := e.DB.Create(saved).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w, post already saved", ErrAlreadyExists)
		}

		return nil, fmt.Errorf("failed to save post, %w", err)
	}

	return saved, nil
}

// UnsavePost removes a bookmark. Removing one that doesn't exist is
// reported, not ignored, since it means the caller's state drifted.
func (e *Engagement) UnsavePost(userID string, postID uint) error {
	res := e.DB.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&model.SavedPost{})
	if res.Error != nil {
		return fmt.Errorf("failed to unsave post, %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("%w, post %d is not saved", ErrNotFound, postID)
	}

	return nil
}

// ListSaved returns the user's bookmarks newest-first. Posts that went
// private since they were saved are filtered out at read time like any
// other cross-user listing.
func (e *Engagement) ListSaved(userID string) ([]model.SavedPost, error) {
	var saved []model.SavedPost

	err := e.DB.Preload("Post").Preload("Post.User").Preload("Post.Likes").
		Joins("JOIN posts ON posts.id = saved_posts.post_id").
		Joins("JOIN users ON users.id = posts.user_id").
		Where("saved_posts.user_id = ?", userID).
		Where("posts.user_id = ? OR (posts.private = ? AND users.is_private = ?)", userID, false, false).
		Order("saved_posts.created_at desc").
		Find(&saved).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list saved posts, %w", err)
	}

	return saved, nil
}
