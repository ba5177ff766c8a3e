package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sachin24864/RealEstate-Website/internal/entity"
	"github.com/sachin24864/RealEstate-Website/internal/platform/metrics"
	"github.com/sachin24864/RealEstate-Website/internal/port/repository"
	"github.com/sachin24864/RealEstate-Website/internal/port/storage"
	"go.uber.org/zap"
)

const galleryLockPrefix = "gallery:category:"

type GalleryUseCase struct {
	repo      repository.GalleryRepository
	assets    *AssetManager
	locker    Locker
	publisher EventPublisher
	metrics   *metrics.MetricsManager
	logger    *zap.Logger
}

func NewGalleryUseCase(
	repo repository.GalleryRepository,
	assets *AssetManager,
	locker Locker,
	pub EventPublisher,
	m *metrics.MetricsManager,
	log *zap.Logger,
) *GalleryUseCase {
	if locker == nil {
		locker = NewLocalLocker()
	}
	return &GalleryUseCase{
		repo:      repo,
		assets:    assets,
		locker:    locker,
		publisher: pub,
		metrics:   m,
		logger:    log.Named("GalleryUseCase"),
	}
}

type CreateGalleryImageInput struct {
	Title       string
	Description string
	Category    string
}

func (uc *GalleryUseCase) CreateImage(ctx context.Context, in CreateGalleryImageInput, image *UploadFile) (*entity.GalleryImage, error) {
	if image == nil {
		return nil, NewValidationError("No image uploaded")
	}
	category := strings.TrimSpace(in.Category)
	if !entity.IsValidGalleryCategory(category) {
		return nil, NewValidationError("Invalid category. Allowed: %s", strings.Join(entity.GalleryCategories(), ", "))
	}

	path, err := uc.assets.StoreOne(ctx, storage.KindGallery, *image)
	if err != nil {
		return nil, fmt.Errorf("GalleryUseCase.CreateImage: failed to store image: %w", err)
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = image.Filename
	}
	now := time.Now().UTC()
	img := &entity.GalleryImage{
		Title:       title,
		Description: in.Description,
		Image:       path,
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if entity.IsUniqueGalleryCategory(category) {
		if err := uc.insertReplacing(ctx, img); err != nil {
			uc.assets.Discard(ctx, path)
			return nil, fmt.Errorf("GalleryUseCase.CreateImage: %w", err)
		}
	} else {
		id, err := uc.repo.Create(ctx, img)
		if err != nil {
			uc.logger.Error("Failed to create gallery image in repository", zap.Error(err))
			uc.assets.Discard(ctx, path)
			return nil, fmt.Errorf("GalleryUseCase.CreateImage: failed to create gallery image in repo: %w", err)
		}
		img.ID = id
	}

	publishEvent(ctx, uc.publisher, uc.logger, GalleryImageCreatedSubject, img)
	return img, nil
}

// insertReplacing stores img as the only holder of its category. Callers
// own img's file; on error nothing from img remains in the repository.
func (uc *GalleryUseCase) insertReplacing(ctx context.Context, img *entity.GalleryImage) error {
	unlock, err := uc.locker.Lock(ctx, galleryLockPrefix+img.Category)
	if err != nil {
		return fmt.Errorf("failed to lock category %q: %w", img.Category, err)
	}
	defer unlock()

	previous, err := uc.evictHolder(ctx, img.Category, img.ID)
	if err != nil {
		return err
	}

	if img.ID == "" {
		id, err := uc.repo.Create(ctx, img)
		if err != nil {
			uc.logger.Error("Failed to insert replacement gallery image", zap.String("category", img.Category), zap.Error(err))
			uc.restore(ctx, previous)
			return fmt.Errorf("failed to create gallery image in repo: %w", err)
		}
		img.ID = id
	} else if err := uc.repo.Update(ctx, img); err != nil {
		uc.logger.Error("Failed to move gallery image into category", zap.String("category", img.Category), zap.Error(err))
		uc.restore(ctx, previous)
		return fmt.Errorf("failed to update gallery image in repo: %w", err)
	}

	if previous != nil {
		uc.assets.Discard(ctx, previous.Image)
		uc.metrics.CategoryReplaced(img.Category)
		uc.logger.Info("Replaced gallery image in single-image category",
			zap.String("category", img.Category),
			zap.String("previous_id", previous.ID),
			zap.String("new_id", img.ID),
		)
		publishEvent(ctx, uc.publisher, uc.logger, GalleryImageReplacedSubject, map[string]string{
			"category":    img.Category,
			"previous_id": previous.ID,
			"new_id":      img.ID,
		})
	}
	return nil
}

// evictHolder deletes the record currently holding category unless it is
// keepID, and returns it so it can be restored or its file discarded.
func (uc *GalleryUseCase) evictHolder(ctx context.Context, category, keepID string) (*entity.GalleryImage, error) {
	existing, err := uc.repo.FindOneByCategory(ctx, category)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		uc.logger.Error("Failed to look up current category holder", zap.String("category", category), zap.Error(err))
		return nil, fmt.Errorf("failed to find gallery image by category: %w", err)
	}
	if existing.ID == keepID {
		return nil, nil
	}

	if err := uc.repo.Delete(ctx, existing.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		uc.logger.Error("Failed to delete current category holder", zap.String("id", existing.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to delete previous gallery image: %w", err)
	}
	return existing, nil
}

func (uc *GalleryUseCase) restore(ctx context.Context, previous *entity.GalleryImage) {
	if previous == nil {
		return
	}
	if _, err := uc.repo.Create(context.WithoutCancel(ctx), previous); err != nil {
		uc.logger.Error("Failed to restore previous gallery image after failed replacement",
			zap.String("id", previous.ID),
			zap.String("image", previous.Image),
			zap.Error(err),
		)
	}
}

// ListImages returns images newest first. An unknown or empty category lists
// every image.
func (uc *GalleryUseCase) ListImages(ctx context.Context, category string) ([]*entity.GalleryImage, error) {
	category = strings.TrimSpace(category)
	if !entity.IsValidGalleryCategory(category) {
		category = ""
	}
	images, err := uc.repo.List(ctx, category)
	if err != nil {
		uc.logger.Error("Failed to list gallery images", zap.Error(err))
		return nil, fmt.Errorf("GalleryUseCase.ListImages: %w", err)
	}
	return images, nil
}

type UpdateGalleryImageInput struct {
	Title       string
	Description string
	Category    string
}

// UpdateImage changes non-empty fields and optionally swaps the file.
func (uc *GalleryUseCase) UpdateImage(ctx context.Context, id string, in UpdateGalleryImageInput, image *UploadFile) (*entity.GalleryImage, error) {
	img, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			uc.logger.Error("Failed to get gallery image for update", zap.String("id", id), zap.Error(err))
		}
		return nil, fmt.Errorf("GalleryUseCase.UpdateImage: %w", err)
	}

	if c := strings.TrimSpace(in.Category); c != "" {
		if !entity.IsValidGalleryCategory(c) {
			return nil, NewValidationError("Invalid category. Allowed: %s", strings.Join(entity.GalleryCategories(), ", "))
		}
		img.Category = c
	}
	if t := strings.TrimSpace(in.Title); t != "" {
		img.Title = t
	}
	if in.Description != "" {
		img.Description = in.Description
	}

	oldImage := img.Image
	newImage := ""
	if image != nil {
		newImage, err = uc.assets.StoreOne(ctx, storage.KindGallery, *image)
		if err != nil {
			return nil, fmt.Errorf("GalleryUseCase.UpdateImage: failed to store image: %w", err)
		}
		img.Image = newImage
	}
	img.UpdatedAt = time.Now().UTC()

	if entity.IsUniqueGalleryCategory(img.Category) {
		err = uc.insertReplacing(ctx, img)
	} else {
		err = uc.repo.Update(ctx, img)
	}
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			uc.logger.Error("Failed to update gallery image", zap.String("id", id), zap.Error(err))
		}
		if newImage != "" {
			uc.assets.Discard(ctx, newImage)
		}
		return nil, fmt.Errorf("GalleryUseCase.UpdateImage: %w", err)
	}

	if newImage != "" {
		uc.assets.Discard(ctx, oldImage)
	}
	publishEvent(ctx, uc.publisher, uc.logger, GalleryImageUpdatedSubject, img)
	return img, nil
}

// DeleteImage removes the record, then its file (best effort).
func (uc *GalleryUseCase) DeleteImage(ctx context.Context, id string) error {
	img, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			uc.logger.Error("Failed to get gallery image for delete", zap.String("id", id), zap.Error(err))
		}
		return fmt.Errorf("GalleryUseCase.DeleteImage: %w", err)
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			uc.logger.Error("Failed to delete gallery image", zap.String("id", id), zap.Error(err))
		}
		return fmt.Errorf("GalleryUseCase.DeleteImage: %w", err)
	}

	uc.assets.Discard(ctx, img.Image)
	publishEvent(ctx, uc.publisher, uc.logger, GalleryImageDeletedSubject, DeletedEventPayload{ID: id})
	return nil
}
