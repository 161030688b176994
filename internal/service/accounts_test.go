package service

import (
	"context"
	"testing"
	"time"

	"snapgram/social-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	a, _ := newTestAccounts(t)

	user := mustRegister(t, a, "alice")
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	got, err := a.Authenticate("alice@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = a.Authenticate("alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// The login field is the email, never the display username
	_, err = a.Authenticate("alice", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRejectsDuplicatesAndWeakInput(t *testing.T) {
	a, _ := newTestAccounts(t)
	mustRegister(t, a, "alice")

	_, err := a.Register(RegisterInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = a.Register(RegisterInput{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = a.Register(RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "short",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = a.Register(RegisterInput{
		Username: "Bob!",
		Email:    "bob@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSetPrivacy(t *testing.T) {
	a, _ := newTestAccounts(t)
	user := mustRegister(t, a, "alice")

	require.NoError(t, a.SetPrivacy(user.ID, true))
	got, err := a.Get(user.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPrivate)

	// Idempotent
	require.NoError(t, a.SetPrivacy(user.ID, true))
	got, err = a.Get(user.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPrivate)

	assert.ErrorIs(t, a.SetPrivacy("nobody", true), ErrNotFound)
}

func TestPasswordResetFlow(t *testing.T) {
	a, _ := newTestAccounts(t)
	user := mustRegister(t, a, "alice")

	require.NoError(t, a.RequestPasswordReset("alice@example.com"))

	var stored model.User
	require.NoError(t, a.DB.First(&stored, "id = ?", user.ID).Error)
	require.NotNil(t, stored.ResetToken)
	require.NotNil(t, stored.ResetExpiresAt)

	token := *stored.ResetToken

	require.NoError(t, a.ResetPassword(token, "new-password-1"))

	_, err := a.Authenticate("alice@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Authenticate("alice@example.com", "new-password-1")
	assert.NoError(t, err)

	// Single use: the same token is gone after consumption
	assert.ErrorIs(t, a.ResetPassword(token, "new-password-2"), ErrTokenInvalid)

	// Fresh struct: re-scanning into the populated one leaves stale
	// pointer fields in place when the column is NULL
	stored = model.User{}
	require.NoError(t, a.DB.First(&stored, "id = ?", user.ID).Error)
	assert.Nil(t, stored.ResetToken)
	assert.Nil(t, stored.ResetExpiresAt)
}

func TestPasswordResetExpiredToken(t *testing.T) {
	a, _ := newTestAccounts(t)
	user := mustRegister(t, a, "alice")

	require.NoError(t, a.RequestPasswordReset("alice@example.com"))

	expired := time.Now().Add(-time.Minute)
	require.NoError(t, a.DB.Model(model.User{}).
		Where("id = ?", user.ID).
		Update("reset_expires_at", expired).
		Error)

	var stored model.User
	require.NoError(t, a.DB.First(&stored, "id = ?", user.ID).Error)

	token := *stored.ResetToken

	assert.ErrorIs(t, a.ResetPassword(token, "new-password-1"), ErrTokenExpired)

	// The old credential still works
	_, err := a.Authenticate("alice@example.com", "correct-horse")
	assert.NoError(t, err)

	// The dead token was cleared; probing it again reads as unknown
	require.NoError(t, a.DB.First(&stored, "id = ?", user.ID).Error)
	assert.Nil(t, stored.ResetToken)
	assert.ErrorIs(t, a.ResetPassword(token, "new-password-1"), ErrTokenInvalid)
}

func TestPasswordResetUnknownInputs(t *testing.T) {
	a, _ := newTestAccounts(t)
	mustRegister(t, a, "alice")

	// No enumeration signal for unknown emails
	assert.NoError(t, a.RequestPasswordReset("nobody@example.com"))

	assert.ErrorIs(t, a.ResetPassword("bogus-token", "new-password-1"), ErrTokenInvalid)
	assert.ErrorIs(t, a.ResetPassword("", "new-password-1"), ErrTokenInvalid)
}

func TestUpdateProfileWithImage(t *testing.T) {
	a, store := newTestAccounts(t)
	user := mustRegister(t, a, "alice")
	ctx := context.Background()

	got, err := a.Update(ctx, user.ID, ProfileUpdate{Bio: str("hello")}, upload("first"))
	require.NoError(t, err)
	require.NotNil(t, got.ImageKey)
	assert.Equal(t, "hello", got.Bio)
	require.Len(t, store.uploads, 1)

	firstKey := *got.ImageKey

	// Replacing the image leaves exactly one reference and deletes the
	// prior blob
	got, err = a.Update(ctx, user.ID, ProfileUpdate{}, upload("second"))
	require.NoError(t, err)
	require.NotNil(t, got.ImageKey)
	assert.NotEqual(t, firstKey, *got.ImageKey)

	require.Len(t, store.deletes, 1)
	assert.Equal(t, firstKey, store.deletes[0])
	assert.Equal(t, []string{*got.ImageKey}, store.stored())
}

func TestDeleteUserCascades(t *testing.T) {
	a, store := newTestAccounts(t)
	ctx := context.Background()

	alice := mustRegister(t, a, "alice")
	bob := mustRegister(t, a, "bob")

	posts := &Posts{DB: a.DB, Media: a.Media}
	eng := &Engagement{DB: a.DB}

	post, err := posts.Create(ctx, alice.ID, PostInput{Caption: str("mine")}, upload("img"))
	require.NoError(t, err)

	_, err = eng.CreateComment(post.ID, bob.ID, "nice")
	require.NoError(t, err)
	_, err = eng.SavePost(bob.ID, post.ID)
	require.NoError(t, err)
	_, _, err = eng.ToggleLike(bob.ID, post.ID)
	require.NoError(t, err)

	_, err = a.Update(ctx, alice.ID, ProfileUpdate{}, upload("avatar"))
	require.NoError(t, err)

	require.NoError(t, a.Delete(ctx, alice.ID))

	var count int64
	require.NoError(t, a.DB.Model(model.Post{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, a.DB.Model(model.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, a.DB.Model(model.SavedPost{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, a.DB.Model(model.PostLike{}).Count(&count).Error)
	assert.Zero(t, count)

	// Both the post image and the avatar got detached
	assert.Empty(t, store.stored())

	_, err = a.Get(alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Bystanders survive
	_, err = a.Get(bob.ID)
	assert.NoError(t, err)
}
