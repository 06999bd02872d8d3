package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/catalog-admin/internal/storage"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(t.TempDir(), "/storage/")
	require.NoError(t, err)
	return s
}

func TestNew_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "storage")
	_, err := New(root, "/storage/")
	require.NoError(t, err)

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStorage_Upload_WritesFile(t *testing.T) {
	root := t.TempDir()
	s, err := New(root, "/storage/")
	require.NoError(t, err)

	result, err := s.Upload(context.Background(), &storage.UploadInput{
		Key:         "category_images/chairs1718452800.jpg",
		ContentType: "image/jpeg",
		Size:        9,
		Data:        strings.NewReader("jpeg-body"),
	})
	require.NoError(t, err)
	assert.Equal(t, "category_images/chairs1718452800.jpg", result.Key)
	assert.Equal(t, "/storage/category_images/chairs1718452800.jpg", result.URL)

	body, err := os.ReadFile(filepath.Join(root, "category_images", "chairs1718452800.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-body", string(body))
}

func TestStorage_Upload_RejectsEscapingKey(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Upload(context.Background(), &storage.UploadInput{
		Key:  "../outside.jpg",
		Data: strings.NewReader("x"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid storage key")
}

func TestStorage_Delete_RemovesFile(t *testing.T) {
	root := t.TempDir()
	s, err := New(root, "/storage/")
	require.NoError(t, err)

	_, err = s.Upload(context.Background(), &storage.UploadInput{
		Key:  "product_images/a.jpg",
		Data: strings.NewReader("x"),
	})
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), "product_images/a.jpg"))

	_, err = os.Stat(filepath.Join(root, "product_images", "a.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestStorage_Delete_MissingFileIsNoError(t *testing.T) {
	s := newTestStorage(t)
	assert.NoError(t, s.Delete(context.Background(), "product_images/never-uploaded.jpg"))
}

func TestStorage_GetURL(t *testing.T) {
	s := newTestStorage(t)
	url, err := s.GetURL(context.Background(), "category_images/a.png")
	require.NoError(t, err)
	assert.Equal(t, "/storage/category_images/a.png", url)
}
