package storage

import (
	"context"
	"errors"
	"io"
)

var ErrObjectNotFound = errors.New("object not found")

// Storage defines the interface for media object storage.
type Storage interface {
	// Save writes content under key. contentType may be empty.
	Save(ctx context.Context, key string, content io.Reader, contentType string) error

	// Get retrieves an object. Returns ErrObjectNotFound when the key is absent.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes an object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// URL returns the public URL the object is served from.
	URL(key string) string
}
