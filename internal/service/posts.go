package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"snapgram/social-api/internal/model"

	"gorm.io/gorm"
)

// Posts implements the content store: post creation, editing and the
// cascading delete.
type Posts struct {
	DB    *gorm.DB
	Media *Media
}

type PostInput struct {
	Caption  *string
	Location *string
	Tags     *string
	Private  *bool
}

func splitTags(raw string) model.StringSlice {
	var tags model.StringSlice

	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}

	return tags
}

func (p *Posts) Create(ctx context.Context, ownerID string, in PostInput, image *MediaUpload) (*model.Post, error) {
	post := &model.Post{
		UserID: ownerID,
	}

	if in.Caption != nil {
		post.Caption = *in.Caption
	}
	if in.Location != nil {
		post.Location = *in.Location
	}
	if in.Tags != nil {
		post.Tags = splitTags(*in.Tags)
	}
	if in.Private != nil {
		post.Private = *in.Private
	}

	// Upload before the insert so the record never references a blob
	// that doesn't exist
	if image != nil {
		key, err := p.Media.Attach(ctx, p.Media.PostFolder, nil,
			image.Name, image.Reader, image.Size, image.ContentType)
		if err != nil {
			return nil, err
		}

		post.ImageKey = &key
	}

	if err := p.DB.Create(post).Error; err != nil {
		return nil, fmt.Errorf("failed to create post, %w", err)
	}

	return post, nil
}

func (p *Posts) Update(ctx context.Context, postID uint, editorID string, in PostInput, image *MediaUpload) (*model.Post, error) {
	var post model.Post

	err := p.DB.First(&post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w, post %d", ErrNotFound, postID)
		}

		return nil, fmt.Errorf("failed to fetch post, %w", err)
	}

	if post.UserID != editorID {
		return nil, fmt.Errorf("%w, only the owner may edit a post", ErrPermissionDenied)
	}

	if in.Caption != nil {
		post.Caption = *in.Caption
	}
	if in.Location != nil {
		post.Location = *in.Location
	}
	if in.Tags != nil {
		post.Tags = splitTags(*in.Tags)
	}
	if in.Private != nil {
		post.Private = *in.Private
	}

	if image != nil {
		key, err := p.Media.Attach(ctx, p.Media.PostFolder, post.ImageKey,
			image.Name, image.Reader, image.Size, image.ContentType)
		if err != nil {
			return nil, err
		}

		post.ImageKey = &key
	}

	if err := p.DB.Save(&post).Error; err != nil {
		return nil, fmt.Errorf("failed to update post, %w", err)
	}

	return &post, nil
}

// Delete removes a post with its comments, likes and bookmarks in one
// transaction, children first. The blob delete runs after the commit
// and is non-fatal.
func (p *Posts) Delete(ctx context.Context, postID uint, requesterID string) error {
	var post model.Post

	err := p.DB.First(&post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w, post %d", ErrNotFound, postID)
		}

		return fmt.Errorf("failed to fetch post, %w", err)
	}

	if post.UserID != requesterID {
		return fmt.Errorf("%w, only the owner may delete a post", ErrPermissionDenied)
	}

	err = p.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("post_id = ?", postID).Delete(&model.SavedPost{}).Error; err != nil {
			return err
		}

		if err := tx.Where("post_id = ?", postID).Delete(&model.PostLike{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Post{}, postID).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete post, %w", err)
	}

	p.Media.Detach(ctx, post.ImageKey)

	return nil
}

// Get fetches a single post the viewer is allowed to see. An invisible
// post is reported as absent, not as forbidden.
func (p *Posts) Get(postID uint, viewerID string) (*model.Post, error) {
	var post model.Post

	err := p.DB.Preload("User").Preload("Likes").
		Scopes(Visible(viewerID)).
		First(&post, "posts.id = ?", postID).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w, post %d", ErrNotFound, postID)
		}

		return nil, fmt.Errorf("failed to fetch post, %w", err)
	}

	return &post, nil
}

// ListByUser returns a profile's posts, newest first, visibility
// filtered for the viewer.
func (p *Posts) ListByUser(profileID, viewerID string) ([]model.Post, error) {
	var posts []model.Post

	err := p.DB.Preload("User").Preload("Likes").
		Scopes(Visible(viewerID)).
		Where("posts.user_id = ?", profileID).
		Order("posts.created_at desc").
		Find(&posts).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list posts, %w", err)
	}

	return posts, nil
}
