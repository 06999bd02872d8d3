package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/utafrali/catalog-admin/internal/storage"
)

// Storage implements storage.Storage on the local filesystem. Keys are
// slash-separated paths relative to the root directory; public URLs are built
// by prefixing the key with urlPrefix.
type Storage struct {
	root      string
	urlPrefix string
}

// New creates a local-disk storage rooted at root. The root directory is
// created if it does not exist. urlPrefix should end with a slash.
func New(root, urlPrefix string) (*Storage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &Storage{root: root, urlPrefix: urlPrefix}, nil
}

// Upload writes the file under the root directory, creating intermediate
// directories as needed.
func (s *Storage) Upload(_ context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	path, err := s.resolve(input.Key)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create directory for %s: %w", input.Key, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create file %s: %w", input.Key, err)
	}

	if _, err := io.Copy(f, input.Data); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("write file %s: %w", input.Key, err)
	}

	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close file %s: %w", input.Key, err)
	}

	return &storage.UploadResult{
		Key: input.Key,
		URL: s.urlPrefix + input.Key,
	}, nil
}

// Delete removes the file for the given key. A missing file is not an error:
// records can outlive their files and cleanup must stay idempotent.
func (s *Storage) Delete(_ context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove file %s: %w", key, err)
	}
	return nil
}

// GetURL returns the public URL for the given key.
func (s *Storage) GetURL(_ context.Context, key string) (string, error) {
	return s.urlPrefix + key, nil
}

// resolve maps a key to an absolute path under the root, rejecting keys that
// would escape it.
func (s *Storage) resolve(key string) (string, error) {
	path := filepath.Join(s.root, filepath.FromSlash(key))
	if !strings.HasPrefix(path, filepath.Clean(s.root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid storage key: %s", key)
	}
	return path, nil
}
