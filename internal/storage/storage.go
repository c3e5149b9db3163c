// Package storage abstracts where product images live. The default backend
// writes to the local filesystem; an object store can slot in behind the
// same interface.
package storage

import (
	"context"
	"io"
)

// UploadInput describes one incoming image.
type UploadInput struct {
	Key         string
	ContentType string
	Size        int64
	Data        io.Reader
}

// UploadResult is returned after a successful upload. URL is what gets
// persisted on the product.
type UploadResult struct {
	Key string
	URL string
}

// Storage stores and removes product images by key.
type Storage interface {
	Upload(ctx context.Context, input *UploadInput) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
}
