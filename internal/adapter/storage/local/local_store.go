package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/sachin24864/RealEstate-Website/internal/port/storage"
	"go.uber.org/zap"
)

// DiskStore keeps assets under <root>/uploads/<kind>/<name>, so root can be
// served directly as the site's public directory.
type DiskStore struct {
	root   string
	logger *zap.Logger
}

func NewDiskStore(root string, logger *zap.Logger) (*DiskStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage root %s: %w", root, err)
	}
	for _, kind := range []storage.Kind{storage.KindProperties, storage.KindBlogs, storage.KindGallery} {
		if err := os.MkdirAll(filepath.Join(abs, "uploads", string(kind)), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory for %s: %w", kind, err)
		}
	}
	logger.Info("Disk asset store ready", zap.String("root", abs))
	return &DiskStore{root: abs, logger: logger.Named("DiskStore")}, nil
}

// resolve maps a public path onto a file under root, refusing anything that
// would escape it.
func (s *DiskStore) resolve(publicPath string) (string, error) {
	normalized, err := storage.NormalizePublicPath(publicPath)
	if err != nil {
		return "", err
	}
	full := filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(normalized, "/")))
	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", storage.ErrInvalidPath
	}
	return full, nil
}

func (s *DiskStore) Save(ctx context.Context, kind storage.Kind, name string, body io.Reader, size int64, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", storage.ErrInvalidPath
	}

	publicPath := storage.PublicPath(kind, name)
	full, err := s.resolve(publicPath)
	if err != nil {
		return "", err
	}

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("DiskStore.Save: failed to create %s: %w", publicPath, err)
	}

	written, copyErr := io.Copy(f, body)
	closeErr := f.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(full)
		return "", fmt.Errorf("DiskStore.Save: failed to write %s: %w", publicPath, errors.Join(copyErr, closeErr))
	}

	s.logger.Debug("Asset written",
		zap.String("path", publicPath),
		zap.Int64("bytes", written),
		zap.Int64("declared_size", size),
		zap.String("content_type", contentType),
	)
	return publicPath, nil
}

func (s *DiskStore) Remove(ctx context.Context, publicPath string) error {
	full, err := s.resolve(publicPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("DiskStore.Remove: %w", err)
	}
	return nil
}

func (s *DiskStore) Open(ctx context.Context, publicPath string) (*storage.Object, error) {
	full, err := s.resolve(publicPath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("DiskStore.Open: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("DiskStore.Open: %w", err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, storage.ErrNotFound
	}
	return &storage.Object{
		Body:        f,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		ContentType: mime.TypeByExtension(filepath.Ext(full)),
	}, nil
}
