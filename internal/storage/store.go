// Package storage wraps the external blob store behind a small
// interface so the media synchronizer can be exercised against a stub.
package storage

import (
	"context"
	"io"
)

type Store interface {
	// Upload writes the object and returns the key it was stored under.
	Upload(ctx context.Context, folder, name string, r io.Reader, size int64, contentType string) (string, error)

	// Delete removes an object. Deleting a key that is already absent
	// must succeed.
	Delete(ctx context.Context, key string) error

	// URL renders the public URL for a stored key.
	URL(key string) string
}
