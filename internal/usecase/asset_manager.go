package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sachin24864/RealEstate-Website/internal/platform/metrics"
	"github.com/sachin24864/RealEstate-Website/internal/port/storage"
	"go.uber.org/zap"
)

const (
	MaxImageSize          = 5 << 20
	MaxPropertyImages     = 10
	defaultImageExtension = ".jpg"
)

// AllowedImageTypes maps accepted upload MIME types to the extension used
// for the stored file.
var AllowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadFile is one validated image from a request. Open is called once.
type UploadFile struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// AssetManager owns the life of uploaded files: naming, writing and
// best-effort removal once the owning record no longer needs them.
type AssetManager struct {
	store   storage.AssetStore
	metrics *metrics.MetricsManager
	logger  *zap.Logger
	newName func() string
}

func NewAssetManager(store storage.AssetStore, m *metrics.MetricsManager, logger *zap.Logger) *AssetManager {
	return &AssetManager{
		store:   store,
		metrics: m,
		logger:  logger.Named("AssetManager"),
		newName: uuid.NewString,
	}
}

func (a *AssetManager) validate(f UploadFile) error {
	if _, ok := AllowedImageTypes[f.ContentType]; !ok {
		return NewValidationError("Only .jpeg, .jpg, .png and .webp images are allowed")
	}
	if f.Size > MaxImageSize {
		return NewValidationError("Image %q exceeds the %d MB limit", f.Filename, MaxImageSize>>20)
	}
	return nil
}

func (a *AssetManager) fileName(f UploadFile) string {
	ext, ok := AllowedImageTypes[f.ContentType]
	if !ok {
		ext = strings.ToLower(filepath.Ext(f.Filename))
	}
	if ext == "" {
		ext = defaultImageExtension
	}
	return a.newName() + ext
}

// StoreOne writes f under kind and returns its public path.
func (a *AssetManager) StoreOne(ctx context.Context, kind storage.Kind, f UploadFile) (string, error) {
	if err := a.validate(f); err != nil {
		return "", err
	}

	body, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("AssetManager.StoreOne: failed to open upload %q: %w", f.Filename, err)
	}
	defer body.Close()

	publicPath, err := a.store.Save(ctx, kind, a.fileName(f), body, f.Size, f.ContentType)
	if err != nil {
		a.logger.Error("Failed to store asset", zap.String("kind", string(kind)), zap.String("filename", f.Filename), zap.Error(err))
		return "", fmt.Errorf("AssetManager.StoreOne: %w", err)
	}

	a.metrics.AssetStored(string(kind))
	a.logger.Debug("Asset stored", zap.String("path", publicPath), zap.String("original_name", f.Filename))
	return publicPath, nil
}

// Store writes all files or none: on failure the files already written are
// discarded before the error is returned.
func (a *AssetManager) Store(ctx context.Context, kind storage.Kind, files []UploadFile) ([]string, error) {
	for _, f := range files {
		if err := a.validate(f); err != nil {
			return nil, err
		}
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		p, err := a.StoreOne(ctx, kind, f)
		if err != nil {
			a.Discard(ctx, paths...)
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// Discard removes files that are no longer referenced. It never fails:
// missing files are ignored and other errors are logged and counted.
func (a *AssetManager) Discard(ctx context.Context, paths ...string) {
	ctx = context.WithoutCancel(ctx)
	for _, p := range paths {
		if p == "" {
			continue
		}
		err := a.store.Remove(ctx, p)
		switch {
		case err == nil:
			a.logger.Debug("Asset removed", zap.String("path", p))
		case errors.Is(err, storage.ErrNotFound):
			a.logger.Info("Asset already gone", zap.String("path", p))
		case errors.Is(err, storage.ErrInvalidPath):
			a.logger.Warn("Refusing to remove asset with invalid path", zap.String("path", p))
			a.metrics.AssetCleanupFailed("invalid_path")
		default:
			a.logger.Warn("Failed to remove asset", zap.String("path", p), zap.Error(err))
			a.metrics.AssetCleanupFailed("remove_error")
		}
	}
}
