package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"snapgram/social-api/internal/model"
	"snapgram/social-api/pkg/security"
	"snapgram/social-api/util"
	"snapgram/social-api/validators"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	idCharset      = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	idLength       = 16
	resetTokenSize = 32
	resetTokenTTL  = time.Hour
)

// MediaUpload carries an incoming file from the HTTP layer into the
// media synchronizer without dragging multipart types into the core.
type MediaUpload struct {
	Name        string
	Reader      io.Reader
	Size        int64
	ContentType string
}

// Accounts implements user registration, authentication, profile
// management and the password reset flow.
type Accounts struct {
	DB    *gorm.DB
	Argon *security.ArgonHash
	Media *Media
	Mail  Mailer
}

type RegisterInput struct {
	Username string
	Email    string
	Name     string
	Password string
}

func (a *Accounts) Register(in RegisterInput) (*model.User, error) {
	if err := validators.UsernameValidator(in.Username); err != nil {
		return nil, fmt.Errorf("%w, %v", ErrValidation, err)
	}

	if err := validators.EmailValidator(in.Email); err != nil {
		return nil, fmt.Errorf("%w, %v", ErrValidation, err)
	}

	if err := validators.PasswordValidator(in.Password); err != nil {
		return nil, fmt.Errorf("%w, %v", ErrValidation, err)
	}

	var taken bool

	err := a.DB.Model(model.User{}).
		Select("count(*) > 0").
		Where("username = ? OR email = ?", in.Username, in.Email).
		Find(&taken).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to check if user is registered, %w", err)
	}

	if taken {
		return nil, fmt.Errorf("%w, username or email already registered", ErrValidation)
	}

	hash, err := a.Argon.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password, %w", err)
	}

	userID, err := gonanoid.Generate(idCharset, idLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID, %w", err)
	}

	user := &model.User{
		ID:           userID,
		Username:     in.Username,
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
	}

	if err := a.DB.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w, username or email already registered", ErrValidation)
		}

		return nil, fmt.Errorf("failed to create user, %w", err)
	}

	if a.Mail != nil {
		if err := a.Mail.SendWelcome(user.Email, user.Username); err != nil {
			zap.L().Warn("Failed to send welcome mail", zap.Error(err))
		}
	}

	return user, nil
}

// Authenticate matches the login email, never the display username.
// A missing user and a wrong password are indistinguishable to the
// caller.
func (a *Accounts) Authenticate(email, password string) (*model.User, error) {
	var user model.User

	err := a.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, fmt.Errorf("failed to fetch user, %w", err)
	}

	ok, err := a.Argon.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password, %w", err)
	}

	if !ok {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

func (a *Accounts) Get(userID string) (*model.User, error) {
	var user model.User

	err := a.DB.First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w, user %s", ErrNotFound, userID)
		}

		return nil, fmt.Errorf("failed to fetch user, %w", err)
	}

	return &user, nil
}

func (a *Accounts) List(limit int) ([]model.User, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	var users []model.User

	err := a.DB.Order("created_at desc").Limit(limit).Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users, %w", err)
	}

	return users, nil
}

type ProfileUpdate struct {
	Name     *string
	Bio      *string
	Location *string
}

// Update writes the given profile fields. A new image goes through the
// media synchronizer, which also disposes of the previous blob.
func (a *Accounts) Update(ctx context.Context, userID string, in ProfileUpdate, image *MediaUpload) (*model.User, error) {
	user, err := a.Get(userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.Location != nil {
		user.Location = *in.Location
	}

	if image != nil {
		key, err := a.Media.Attach(ctx, a.Media.ProfileFolder, user.ImageKey,
			image.Name, image.Reader, image.Size, image.ContentType)
		if err != nil {
			return nil, err
		}

		user.ImageKey = &key
	}

	if err := a.DB.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user, %w", err)
	}

	return user, nil
}

// SetPrivacy flips the profile flag. Existing content is untouched;
// visibility is recomputed at read time.
func (a *Accounts) SetPrivacy(userID string, private bool) error {
	res := a.DB.Model(model.User{}).
		Where("id = ?", userID).
		Update("is_private", private)
	if res.Error != nil {
		return fmt.Errorf("failed to update privacy flag, %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("%w, user %s", ErrNotFound, userID)
	}

	return nil
}

// Delete removes the user and everything they own. DB writes happen in
// one transaction, children before parents; blob deletes run after the
// commit since a stale orphan beats a dangling reference.
func (a *Accounts) Delete(ctx context.Context, userID string) error {
	user, err := a.Get(userID)
	if err != nil {
		return err
	}

	var keys []*string

	err = a.DB.Transaction(func(tx *gorm.DB) error {
		var posts []model.Post

		if err := tx.Select("id", "image_key").Where("user_id = ?", userID).Find(&posts).Error; err != nil {
			return err
		}

		postIDs := make([]uint, 0, len(posts))
		for _, p := range posts {
			postIDs = append(postIDs, p.ID)
			keys = append(keys, p.ImageKey)
		}

		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&model.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&model.SavedPost{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&model.PostLike{}).Error; err != nil {
				return err
			}
		}

		// Rows the user left on other people's posts
		if err := tx.Where("user_id = ?", userID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.SavedPost{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.PostLike{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&model.Post{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.User{}, "id = ?", userID).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete user, %w", err)
	}

	for _, key := range keys {
		a.Media.Detach(ctx, key)
	}
	a.Media.Detach(ctx, user.ImageKey)

	return nil
}

// RequestPasswordReset issues a single-use token with a fixed expiry
// and hands it to the mail dispatcher. The result never reveals whether
// the email matched an account.
func (a *Accounts) RequestPasswordReset(email string) error {
	var user model.User

	err := a.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}

		return fmt.Errorf("failed to fetch user, %w", err)
	}

	token, err := util.GenerateToken(resetTokenSize)
	if err != nil {
		return fmt.Errorf("failed to generate reset token, %w", err)
	}

	expires := time.Now().Add(resetTokenTTL)

	err = a.DB.Model(&user).Updates(map[string]any{
		"reset_token":      token,
		"reset_expires_at": expires,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to store reset token, %w", err)
	}

	if a.Mail != nil {
		if err := a.Mail.SendPasswordReset(user.Email, token); err != nil {
			zap.L().Warn("Failed to send password reset mail", zap.Error(err))
		}
	}

	return nil
}

// ResetPassword consumes a reset token. The credential write and the
// token clear happen in the same transaction so a token can never be
// replayed, even by two racing reset attempts.
func (a *Accounts) ResetPassword(token, newPassword string) error {
	if token == "" {
		return ErrTokenInvalid
	}

	if err := validators.PasswordValidator(newPassword); err != nil {
		return fmt.Errorf("%w, %v", ErrValidation, err)
	}

	hash, err := a.Argon.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password, %w", err)
	}

	var expired bool

	err = a.DB.Transaction(func(tx *gorm.DB) error {
		var user model.User

		err := tx.Where("reset_token = ?", token).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTokenInvalid
			}

			return fmt.Errorf("failed to fetch user by token, %w", err)
		}

		if user.ResetExpiresAt == nil || time.Now().After(*user.ResetExpiresAt) {
			// Clear the dead token so it can't be probed again; the
			// commit must survive the rejection
			expired = true

			return tx.Model(&user).Updates(map[string]any{
				"reset_token":      nil,
				"reset_expires_at": nil,
			}).Error
		}

		// The WHERE on reset_token makes the consumption conditional:
		// whichever racing attempt commits second matches zero rows.
		res := tx.Model(model.User{}).
			Where("id = ? AND reset_token = ?", user.ID, token).
			Updates(map[string]any{
				"password_hash":    hash,
				"reset_token":      nil,
				"reset_expires_at": nil,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to reset password, %w", res.Error)
		}

		if res.RowsAffected == 0 {
			return ErrTokenInvalid
		}

		return nil
	})
	if err != nil {
		return err
	}

	if expired {
		return ErrTokenExpired
	}

	return nil
}
