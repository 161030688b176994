package service

import (
	"fmt"
	"strings"

	"snapgram/social-api/internal/model"

	"gorm.io/gorm"
)

// Server-side page ceiling, applied regardless of caller input
const pageLimit = 20

const recentLimit = 10

// Query implements text search and offset pagination over posts. Every
// path goes through the visibility scope before results leave the core.
type Query struct {
	DB *gorm.DB
}

// likeEscaper quotes LIKE wildcards so a search term always matches as
// a literal substring
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search matches posts whose caption, tags or location contain the term,
// case-insensitively. An empty term yields an empty result set rather
// than everything.
func (q *Query) Search(term, viewerID string) ([]model.Post, error) {
	term = strings.TrimSpace(strings.ToLower(term))
	if term == "" {
		return []model.Post{}, nil
	}

	pattern := "%" + likeEscaper.Replace(term) + "%"

	var posts []model.Post

	err := q.DB.Preload("User").Preload("Likes").
		Scopes(Visible(viewerID)).
		Where(`LOWER(posts.caption) LIKE ? ESCAPE '\' OR LOWER(posts.tags) LIKE ? ESCAPE '\' OR LOWER(posts.location) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern).
		Order("posts.created_at desc").
		Limit(pageLimit).
		Find(&posts).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to search posts, %w", err)
	}

	return posts, nil
}

// List pages through visible posts newest-first. The limit is fixed.
func (q *Query) List(viewerID string, offset int) ([]model.Post, error) {
	if offset < 0 {
		offset = 0
	}

	var posts []model.Post

	err := q.DB.Preload("User").Preload("Likes").
		Scopes(Visible(viewerID)).
		Order("posts.created_at desc").
		Offset(offset).
		Limit(pageLimit).
		Find(&posts).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list posts, %w", err)
	}

	return posts, nil
}

// Recent returns the newest visible posts for the home feed.
func (q *Query) Recent(viewerID string) ([]model.Post, error) {
	var posts []model.Post

	err := q.DB.Preload("User").Preload("Likes").
		Scopes(Visible(viewerID)).
		Order("posts.created_at desc").
		Limit(recentLimit).
		Find(&posts).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent posts, %w", err)
	}

	return posts, nil
}
