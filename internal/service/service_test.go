package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"snapgram/social-api/internal/model"
	"snapgram/social-api/pkg/security"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Each test gets its own named in-memory database. cache=shared keeps
// all pooled connections pointed at the same instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		model.User{},
		model.Post{},
		model.PostLike{},
		model.Comment{},
		model.SavedPost{},
	))

	return db
}

// stubStore is an in-memory blob store that records every call so
// tests can assert on the upload/delete traffic.
type stubStore struct {
	mu         sync.Mutex
	objects    map[string]bool
	uploads    []string
	deletes    []string
	failUpload bool
	failDelete bool
}

func newStubStore() *stubStore {
	return &stubStore{objects: map[string]bool{}}
}

func (s *stubStore) Upload(_ context.Context, folder, name string, r io.Reader, _ int64, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failUpload {
		return "", errors.New("stub upload failure")
	}

	io.Copy(io.Discard, r)

	key := folder + "/" + name
	s.objects[key] = true
	s.uploads = append(s.uploads, key)

	return key, nil
}

func (s *stubStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failDelete {
		return errors.New("stub delete failure")
	}

	delete(s.objects, key)
	s.deletes = append(s.deletes, key)

	return nil
}

func (s *stubStore) URL(key string) string {
	return "https://cdn.test/" + key
}

func (s *stubStore) stored() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var keys []string
	for k := range s.objects {
		keys = append(keys, k)
	}

	return keys
}

func newTestMedia(store *stubStore) *Media {
	return NewMedia(store, "profiles", "posts")
}

func newTestAccounts(t *testing.T) (*Accounts, *stubStore) {
	t.Helper()

	store := newStubStore()

	return &Accounts{
		DB:    newTestDB(t),
		Argon: security.New(),
		Media: newTestMedia(store),
	}, store
}

func mustRegister(t *testing.T, a *Accounts, username string) *model.User {
	t.Helper()

	user, err := a.Register(RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Name:     strings.ToUpper(username[:1]) + username[1:],
		Password: "correct-horse",
	})
	require.NoError(t, err)

	return user
}

func upload(content string) *MediaUpload {
	return &MediaUpload{
		Name:        "photo.jpg",
		Reader:      strings.NewReader(content),
		Size:        int64(len(content)),
		ContentType: "image/jpeg",
	}
}

func str(s string) *string { return &s }

func boolp(b bool) *bool { return &b }
