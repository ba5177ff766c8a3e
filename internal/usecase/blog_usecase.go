package usecase

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sachin24864/RealEstate-Website/internal/entity"
	"github.com/sachin24864/RealEstate-Website/internal/port/repository"
	"github.com/sachin24864/RealEstate-Website/internal/port/storage"
	"go.uber.org/zap"
)

type BlogUseCase struct {
	repo      repository.BlogRepository
	assets    *AssetManager
	publisher EventPublisher
	logger    *zap.Logger
}

func NewBlogUseCase(repo repository.BlogRepository, assets *AssetManager, pub EventPublisher, log *zap.Logger) *BlogUseCase {
	return &BlogUseCase{
		repo:      repo,
		assets:    assets,
		publisher: pub,
		logger:    log.Named("BlogUseCase"),
	}
}

type BlogInput struct {
	Title           string
	Description     string
	Slug            string
	MetaTitle       string
	MetaDescription string
	MetaKeywords    string
}

func (uc *BlogUseCase) CreatePost(ctx context.Context, in BlogInput, image *UploadFile) (*entity.BlogPost, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || strings.TrimSpace(in.Description) == "" || image == nil {
		return nil, NewValidationError("Title, description, and image are required")
	}

	slug := entity.Slugify(in.Slug)
	if slug == "" {
		slug = entity.Slugify(title)
	}

	path, err := uc.assets.StoreOne(ctx, storage.KindBlogs, *image)
	if err != nil {
		return nil, fmt.Errorf("BlogUseCase.CreatePost: failed to store image: %w", err)
	}

	now := time.Now().UTC()
	post := &entity.BlogPost{
		Title:           title,
		Description:     in.Description,
		Image:           path,
		Slug:            slug,
		MetaTitle:       strings.TrimSpace(in.MetaTitle),
		MetaDescription: strings.TrimSpace(in.MetaDescription),
		MetaKeywords:    strings.TrimSpace(in.MetaKeywords),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	id, err := uc.repo.Create(ctx, post)
	if err != nil {
		if !errors.Is(err, repository.ErrDuplicateKey) {
			uc.logger.Error("Failed to create blog in repository", zap.Error(err))
		}
		uc.assets.Discard(ctx, path)
		return nil, fmt.Errorf("BlogUseCase.CreatePost: failed to create blog in repo: %w", err)
	}
	post.ID = id

	publishEvent(ctx, uc.publisher, uc.logger, BlogCreatedSubject, post)
	return post, nil
}

func (uc *BlogUseCase) ListPosts(ctx context.Context) ([]*entity.BlogPost, error) {
	posts, err := uc.repo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list blogs", zap.Error(err))
		return nil, fmt.Errorf("BlogUseCase.ListPosts: %w", err)
	}
	return posts, nil
}

// GetPost accepts either an ObjectID hex string or a slug.
func (uc *BlogUseCase) GetPost(ctx context.Context, idOrSlug string) (*entity.BlogPost, error) {
	var (
		post *entity.BlogPost
		err  error
	)
	if looksLikeID(idOrSlug) {
		post, err = uc.repo.GetByID(ctx, idOrSlug)
		if errors.Is(err, repository.ErrNotFound) {
			post, err = uc.repo.GetBySlug(ctx, idOrSlug)
		}
	} else {
		post, err = uc.repo.GetBySlug(ctx, idOrSlug)
	}
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			uc.logger.Error("Failed to get blog", zap.String("key", idOrSlug), zap.Error(err))
		}
		return nil, fmt.Errorf("BlogUseCase.GetPost: %w", err)
	}
	return post, nil
}

// UpdatePost overwrites non-empty fields; a new image replaces the old file.
func (uc *BlogUseCase) UpdatePost(ctx context.Context, id string, in BlogInput, image *UploadFile) (*entity.BlogPost, error) {
	post, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			uc.logger.Error("Failed to get blog for update", zap.String("id", id), zap.Error(err))
		}
		return nil, fmt.Errorf("BlogUseCase.UpdatePost: %w", err)
	}

	if t := strings.TrimSpace(in.Title); t != "" {
		post.Title = t
	}
	if strings.TrimSpace(in.Description) != "" {
		post.Description = in.Description
	}
	if s := entity.Slugify(in.Slug); s != "" {
		post.Slug = s
	}
	if v := strings.TrimSpace(in.MetaTitle); v != "" {
		post.MetaTitle = v
	}
	if v := strings.TrimSpace(in.MetaDescription); v != "" {
		post.MetaDescription = v
	}
	if v := strings.TrimSpace(in.MetaKeywords); v != "" {
		post.MetaKeywords = v
	}

	oldImage := post.Image
	newImage := ""
	if image != nil {
		newImage, err = uc.assets.StoreOne(ctx, storage.KindBlogs, *image)
		if err != nil {
			return nil, fmt.Errorf("BlogUseCase.UpdatePost: failed to store image: %w", err)
		}
		post.Image = newImage
	}
	post.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, post); err != nil {
		if !errors.Is(err, repository.ErrNotFound) && !errors.Is(err, repository.ErrDuplicateKey) {
			uc.logger.Error("Failed to update blog", zap.String("id", id), zap.Error(err))
		}
		if newImage != "" {
			uc.assets.Discard(ctx, newImage)
		}
		return nil, fmt.Errorf("BlogUseCase.UpdatePost: %w", err)
	}

	if newImage != "" {
		uc.assets.Discard(ctx, oldImage)
	}
	publishEvent(ctx, uc.publisher, uc.logger, BlogUpdatedSubject, post)
	return post, nil
}

// DeletePost removes the record, then its image (best effort). A missing
// image file does not fail the delete.
func (uc *BlogUseCase) DeletePost(ctx context.Context, id string) error {
	post, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			uc.logger.Error("Failed to get blog for delete", zap.String("id", id), zap.Error(err))
		}
		return fmt.Errorf("BlogUseCase.DeletePost: %w", err)
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			uc.logger.Error("Failed to delete blog", zap.String("id", id), zap.Error(err))
		}
		return fmt.Errorf("BlogUseCase.DeletePost: %w", err)
	}

	uc.assets.Discard(ctx, post.Image)
	publishEvent(ctx, uc.publisher, uc.logger, BlogDeletedSubject, DeletedEventPayload{ID: id})
	return nil
}

// looksLikeID reports whether s has the shape of a 12-byte hex record id.
func looksLikeID(s string) bool {
	if len(s) != 24 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
