package service

import (
	"fmt"
	"time"

	"snapgram/social-api/internal/model"
	"snapgram/social-api/internal/storage"

	"gorm.io/gorm"
)

// Threshold under which an update is considered write-path timestamp
// jitter rather than a real edit. Approximate on purpose; there is no
// edit audit log.
const editedThreshold = time.Second

// UserView is the outward shape of a profile. Derived fields are
// computed here on every read, never stored.
type UserView struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio"`
	Location  string    `json:"location"`
	IsPrivate bool      `json:"is_private"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type PostView struct {
	ID         uint      `json:"id"`
	Caption    string    `json:"caption"`
	ImageURL   string    `json:"image_url,omitempty"`
	Location   string    `json:"location"`
	Tags       []string  `json:"tags"`
	Private    bool      `json:"private"`
	LikesCount int       `json:"likes_count"`
	Liked      bool      `json:"liked"`
	Saved      bool      `json:"saved"`
	Edited     bool      `json:"edited"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	User       UserView  `json:"user"`
}

type CommentView struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"post_id"`
	Content   string    `json:"content"`
	Pinned    bool      `json:"pinned"`
	CreatedAt time.Time `json:"created_at"`
	User      UserView  `json:"user"`
}

type SavedPostView struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Post      PostView  `json:"post"`
}

// RenderUser builds the public view of a user. The email is only
// included when the user is looking at themselves.
func RenderUser(u *model.User, viewerID string, store storage.Store) UserView {
	v := UserView{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Bio:       u.Bio,
		Location:  u.Location,
		IsPrivate: u.IsPrivate,
		CreatedAt: u.CreatedAt,
	}

	if u.ID == viewerID {
		v.Email = u.Email
	}

	if u.ImageKey != nil && *u.ImageKey != "" {
		v.ImageURL = store.URL(*u.ImageKey)
	}

	return v
}

// RenderPost computes the derived post fields for a viewer. savedIDs
// holds the viewer's bookmarked post IDs so list renders don't query
// per row; nil means "don't report saved state".
func RenderPost(p *model.Post, viewerID string, savedIDs map[uint]bool, store storage.Store) PostView {
	v := PostView{
		ID:         p.ID,
		Caption:    p.Caption,
		Location:   p.Location,
		Tags:       p.Tags,
		Private:    p.Private,
		LikesCount: len(p.Likes),
		Edited:     p.UpdatedAt.Sub(p.CreatedAt) > editedThreshold,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		User:       RenderUser(&p.User, viewerID, store),
	}

	if v.Tags == nil {
		v.Tags = []string{}
	}

	for _, l := range p.Likes {
		if l.UserID == viewerID {
			v.Liked = true
			break
		}
	}

	if savedIDs != nil {
		v.Saved = savedIDs[p.ID]
	}

	if p.ImageKey != nil && *p.ImageKey != "" {
		v.ImageURL = store.URL(*p.ImageKey)
	}

	return v
}

func RenderComment(c *model.Comment, viewerID string, store storage.Store) CommentView {
	return CommentView{
		ID:        c.ID,
		PostID:    c.PostID,
		Content:   c.Content,
		Pinned:    c.Pinned,
		CreatedAt: c.CreatedAt,
		User:      RenderUser(&c.User, viewerID, store),
	}
}

// SavedPostIDs loads the viewer's bookmark set once so batch renders
// don't hit the table per row.
func SavedPostIDs(db *gorm.DB, userID string) (map[uint]bool, error) {
	var ids []uint

	err := db.Model(model.SavedPost{}).
		Where("user_id = ?", userID).
		Pluck("post_id", &ids).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to load saved post ids, %w", err)
	}

	m := make(map[uint]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}

	return m, nil
}
