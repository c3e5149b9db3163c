package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tarmachan/storefront/internal/storage"
)

// Storage implements storage.Storage on the local filesystem. Files are
// written under root and served under baseURL by the web server or a CDN.
type Storage struct {
	root    string
	baseURL string
}

// New creates a filesystem storage rooted at the given directory.
func New(root, baseURL string) (*Storage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}

	return &Storage{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload writes the file under the storage root and returns its public URL.
// Keys are cleaned so they cannot escape the root.
func (s *Storage) Upload(_ context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	key := path(input.Key)
	dst := filepath.Join(s.root, key)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, input.Data); err != nil {
		return nil, fmt.Errorf("write upload file: %w", err)
	}

	return &storage.UploadResult{
		Key: key,
		URL: s.baseURL + "/" + key,
	}, nil
}

// Delete removes a file from the storage root.
func (s *Storage) Delete(_ context.Context, key string) error {
	dst := filepath.Join(s.root, path(key))

	if err := os.Remove(dst); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", key)
		}
		return fmt.Errorf("delete file: %w", err)
	}

	return nil
}

// path normalizes a key to a safe relative path.
func path(key string) string {
	key = filepath.ToSlash(filepath.Clean("/" + key))
	return strings.TrimPrefix(key, "/")
}
