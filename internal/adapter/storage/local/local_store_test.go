package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sachin24864/RealEstate-Website/internal/port/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) (*DiskStore, string) {
	t.Helper()
	root := t.TempDir()
	s, err := NewDiskStore(root, zap.NewNop())
	require.NoError(t, err)
	return s, root
}

func TestDiskStore_SaveOpenRemove(t *testing.T) {
	s, root := newTestStore(t)
	ctx := context.Background()

	p, err := s.Save(ctx, storage.KindGallery, "a.png", strings.NewReader("png-bytes"), 9, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/gallery/a.png", p)

	_, err = os.Stat(filepath.Join(root, "uploads", "gallery", "a.png"))
	require.NoError(t, err)

	obj, err := s.Open(ctx, p)
	require.NoError(t, err)
	data, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	require.NoError(t, obj.Body.Close())
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, int64(9), obj.Size)
	assert.Equal(t, "image/png", obj.ContentType)

	require.NoError(t, s.Remove(ctx, p))
	_, err = s.Open(ctx, p)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDiskStore_RemoveMissingIsNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	err := s.Remove(context.Background(), "/uploads/blogs/missing.jpg")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDiskStore_AcceptsLegacyPaths(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, storage.KindBlogs, "b.jpg", strings.NewReader("x"), 1, "image/jpeg")
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, `public\uploads\blogs\b.jpg`))
}

func TestDiskStore_RejectsTraversal(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Open(ctx, "/uploads/../../etc/passwd")
	assert.ErrorIs(t, err, storage.ErrInvalidPath)

	_, err = s.Save(ctx, storage.KindGallery, "../x.png", strings.NewReader("x"), 1, "image/png")
	assert.ErrorIs(t, err, storage.ErrInvalidPath)
}

func TestDiskStore_SaveDoesNotOverwrite(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, storage.KindGallery, "dup.png", strings.NewReader("1"), 1, "image/png")
	require.NoError(t, err)
	_, err = s.Save(ctx, storage.KindGallery, "dup.png", strings.NewReader("2"), 1, "image/png")
	assert.Error(t, err)
}
