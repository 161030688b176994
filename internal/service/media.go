package service

import (
	"context"
	"fmt"
	"io"
	"path"

	"snapgram/social-api/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Media keeps a record's stored image key consistent with the blob
// store. Ordering is always upload first, swap second, old delete last:
// a crash in between leaves an orphaned blob at worst, never a record
// pointing at a missing object.
type Media struct {
	Store         storage.Store
	ProfileFolder string
	PostFolder    string
}

func NewMedia(s storage.Store, profileFolder, postFolder string) *Media {
	return &Media{
		Store:         s,
		ProfileFolder: profileFolder,
		PostFolder:    postFolder,
	}
}

// Attach uploads a new object under folder and returns the key the
// caller must write onto the owning record. If current is non-nil the
// old object is deleted after the upload succeeds; a failed delete is
// logged and swallowed since a stale orphan must not block the update.
//
// Concurrent Attach calls for the same owner are not serialized. The
// outcome is last-writer-wins and the losing upload may leak as an
// orphan.
func (m *Media) Attach(ctx context.Context, folder string, current *string, name string, r io.Reader, size int64, contentType string) (string, error) {
	objName := uuid.NewString() + path.Ext(name)

	key, err := m.Store.Upload(ctx, folder, objName, r, size, contentType)
	if err != nil {
		return "", fmt.Errorf("%w, %v", ErrExternalStorage, err)
	}

	if current != nil && *current != "" {
		if err := m.Store.Delete(ctx, *current); err != nil {
			zap.L().Warn("Failed to delete replaced media, leaving orphan",
				zap.String("key", *current),
				zap.Error(err))
		}
	}

	return key, nil
}

// Detach deletes the owner's current object. An absent or foreign
// reference is a no-op, not an error; the owning record is going away
// either way.
func (m *Media) Detach(ctx context.Context, current *string) {
	if current == nil || *current == "" {
		return
	}

	if err := m.Store.Delete(ctx, *current); err != nil {
		zap.L().Warn("Failed to delete media of destroyed record, leaving orphan",
			zap.String("key", *current),
			zap.Error(err))
	}
}
