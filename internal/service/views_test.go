package service

import (
	"context"
	"testing"
	"time"

	"snapgram/social-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderUserHidesEmailFromOthers(t *testing.T) {
	store := &stubStore{}
	key := "profiles/abc.jpg"
	u := &model.User{
		ID:       "alice-id",
		Username: "alice",
		Email:    "alice@example.com",
		ImageKey: &key,
	}

	own := RenderUser(u, "alice-id", store)
	assert.Equal(t, "alice@example.com", own.Email)
	assert.Equal(t, "https://cdn.test/profiles/abc.jpg", own.ImageURL)

	other := RenderUser(u, "bob-id", store)
	assert.Empty(t, other.Email)
}

func TestRenderPostDerivedFields(t *testing.T) {
	store := &stubStore{}
	now := time.Now()
	p := &model.Post{
		ID:        7,
		Caption:   "sunset",
		Tags:      model.StringSlice{"beach"},
		CreatedAt: now,
		UpdatedAt: now.Add(5 * time.Minute),
		User:      model.User{ID: "alice-id", Username: "alice"},
		Likes: []model.PostLike{
			{UserID: "alice-id", PostID: 7},
			{UserID: "bob-id", PostID: 7},
		},
	}

	v := RenderPost(p, "bob-id", map[uint]bool{7: true}, store)
	assert.Equal(t, 2, v.LikesCount)
	assert.True(t, v.Liked)
	assert.True(t, v.Saved)
	assert.True(t, v.Edited)

	v = RenderPost(p, "carol-id", nil, store)
	assert.False(t, v.Liked)
	assert.False(t, v.Saved)
}

func TestRenderPostEditedIgnoresWriteJitter(t *testing.T) {
	now := time.Now()
	p := &model.Post{
		CreatedAt: now,
		UpdatedAt: now.Add(200 * time.Millisecond),
	}

	v := RenderPost(p, "", nil, &stubStore{})
	assert.False(t, v.Edited)
	assert.NotNil(t, v.Tags)
	assert.Empty(t, v.Tags)
}

func TestSavedPostIDs(t *testing.T) {
	eng, p, a := newTestEngagement(t)
	alice := mustRegister(t, a, "alice")
	bob := mustRegister(t, a, "bob")

	p1, err := p.Create(context.Background(), alice.ID, PostInput{Caption: str("one")}, nil)
	require.NoError(t, err)
	p2, err := p.Create(context.Background(), alice.ID, PostInput{Caption: str("two")}, nil)
	require.NoError(t, err)

	_, err = eng.SavePost(bob.ID, p1.ID)
	require.NoError(t, err)

	ids, err := SavedPostIDs(a.DB, bob.ID)
	require.NoError(t, err)
	assert.True(t, ids[p1.ID])
	assert.False(t, ids[p2.ID])
}
