package usecase

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sachin24864/RealEstate-Website/internal/entity"
	"github.com/sachin24864/RealEstate-Website/internal/port/cache"
	"github.com/sachin24864/RealEstate-Website/internal/port/repository"
	"github.com/sachin24864/RealEstate-Website/internal/port/storage"
	"go.uber.org/zap"
)

const (
	propertyCacheKeyPrefix     = "property:"
	propertyListCacheKeyPrefix = "properties:list"
	propertyPicturesCacheKey   = "properties:pictures"
	defaultPropertyCacheTTL    = 5 * time.Minute
)

func propertyCacheKey(id string) string {
	return propertyCacheKeyPrefix + id
}

// generateQueryCacheKey derives a stable key from query parameters.
func generateQueryCacheKey(prefix string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for i, k := range keys {
		if i > 0 {
			builder.WriteString(":")
		}
		builder.WriteString(k)
		builder.WriteString("=")
		builder.WriteString(params[k])
	}

	hash := md5.Sum([]byte(builder.String()))
	return prefix + ":" + hex.EncodeToString(hash[:])
}

type PropertyUseCase struct {
	repo      repository.PropertyRepository
	assets    *AssetManager
	cacheRepo cache.CacheRepository
	publisher EventPublisher
	cacheTTL  time.Duration
	logger    *zap.Logger
}

func NewPropertyUseCase(
	repo repository.PropertyRepository,
	assets *AssetManager,
	cr cache.CacheRepository,
	pub EventPublisher,
	cacheTTL time.Duration,
	log *zap.Logger,
) *PropertyUseCase {
	if cacheTTL <= 0 {
		cacheTTL = defaultPropertyCacheTTL
	}
	return &PropertyUseCase{
		repo:      repo,
		assets:    assets,
		cacheRepo: cr,
		publisher: pub,
		cacheTTL:  cacheTTL,
		logger:    log.Named("PropertyUseCase"),
	}
}

type CreatePropertyInput struct {
	Title           string
	Description     string
	Price           *float64
	PriceUnit       string
	Location        string
	PropertyType    string
	SubType         string
	Status          string
	Bedrooms        int
	Bathrooms       int
	AreaSqft        float64
	Unit            string
	Slug            string
	MetaTitle       string
	MetaDescription string
	MetaTags        string
}

func (in CreatePropertyInput) validate() error {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if in.Price == nil {
		missing = append(missing, "price")
	}
	if strings.TrimSpace(in.Location) == "" {
		missing = append(missing, "location")
	}
	if strings.TrimSpace(in.PropertyType) == "" {
		missing = append(missing, "property_type")
	}
	if strings.TrimSpace(in.Status) == "" {
		missing = append(missing, "status")
	}
	if len(missing) > 0 {
		return NewValidationError("Missing required fields: %s", strings.Join(missing, ", "))
	}
	if *in.Price < 0 || in.Bedrooms < 0 || in.Bathrooms < 0 || in.AreaSqft < 0 {
		return NewValidationError("Numeric fields must not be negative")
	}
	return nil
}

func (uc *PropertyUseCase) CreateProperty(ctx context.Context, in CreatePropertyInput, images []UploadFile) (*entity.Property, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if len(images) > MaxPropertyImages {
		return nil, NewValidationError("A property can have at most %d images", MaxPropertyImages)
	}

	paths, err := uc.assets.Store(ctx, storage.KindProperties, images)
	if err != nil {
		return nil, fmt.Errorf("PropertyUseCase.CreateProperty: failed to store images: %w", err)
	}

	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = entity.DefaultAreaUnit
	}
	now := time.Now().UTC()
	property := &entity.Property{
		Title:           strings.TrimSpace(in.Title),
		Description:     in.Description,
		Price:           *in.Price,
		PriceUnit:       strings.TrimSpace(in.PriceUnit),
		Location:        strings.TrimSpace(in.Location),
		PropertyType:    strings.TrimSpace(in.PropertyType),
		SubType:         strings.TrimSpace(in.SubType),
		Status:          strings.TrimSpace(in.Status),
		Bedrooms:        in.Bedrooms,
		Bathrooms:       in.Bathrooms,
		AreaSqft:        in.AreaSqft,
		Unit:            unit,
		Images:          paths,
		Slug:            strings.TrimSpace(in.Slug),
		MetaTitle:       strings.TrimSpace(in.MetaTitle),
		MetaDescription: strings.TrimSpace(in.MetaDescription),
		MetaTags:        strings.TrimSpace(in.MetaTags),
		IsStatus:        entity.PropertyActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	id, err := uc.repo.Create(ctx, property)
	if err != nil {
		uc.logger.Error("Failed to create property in repository", zap.Error(err), zap.String("title", property.Title))
		uc.assets.Discard(ctx, paths...)
		return nil, fmt.Errorf("PropertyUseCase.CreateProperty: failed to create property in repo: %w", err)
	}
	property.ID = id

	uc.invalidateLists(ctx)
	publishEvent(ctx, uc.publisher, uc.logger, PropertyCreatedSubject, property)

	return property, nil
}

func (uc *PropertyUseCase) GetProperty(ctx context.Context, id string) (*entity.Property, error) {
	key := propertyCacheKey(id)
	var cached entity.Property
	if uc.getCached(ctx, key, &cached) {
		return &cached, nil
	}

	property, err := uc.repo.GetActiveByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			uc.logger.Error("Failed to get property by ID from repository", zap.Error(err), zap.String("property_id", id))
		}
		return nil, fmt.Errorf("PropertyUseCase.GetProperty: %w", err)
	}

	uc.setCached(ctx, key, property)
	return property, nil
}

func (uc *PropertyUseCase) ListProperties(ctx context.Context, q entity.PropertyQuery) ([]*entity.Property, error) {
	key := generateQueryCacheKey(propertyListCacheKeyPrefix, q.CacheKeyParams())
	var cached []*entity.Property
	if uc.getCached(ctx, key, &cached) {
		return cached, nil
	}

	properties, err := uc.repo.ListActive(ctx, q)
	if err != nil {
		uc.logger.Error("Failed to list properties from repository", zap.Error(err))
		return nil, fmt.Errorf("PropertyUseCase.ListProperties: %w", err)
	}

	uc.setCached(ctx, key, properties)
	return properties, nil
}

// ListPictures returns active properties that have at least one image.
func (uc *PropertyUseCase) ListPictures(ctx context.Context) ([]*entity.Property, error) {
	var cached []*entity.Property
	if uc.getCached(ctx, propertyPicturesCacheKey, &cached) {
		return cached, nil
	}

	properties, err := uc.repo.ListActiveWithImages(ctx)
	if err != nil {
		uc.logger.Error("Failed to list property pictures from repository", zap.Error(err))
		return nil, fmt.Errorf("PropertyUseCase.ListPictures: %w", err)
	}

	uc.setCached(ctx, propertyPicturesCacheKey, properties)
	return properties, nil
}

// UpdateProperty changes only price, status and SEO fields of an active property.
func (uc *PropertyUseCase) UpdateProperty(ctx context.Context, id string, u entity.PropertyUpdate) (*entity.Property, error) {
	if u.Price != nil && *u.Price < 0 {
		return nil, NewValidationError("price must not be negative")
	}
	if u.Status != nil {
		trimmed := strings.TrimSpace(*u.Status)
		if trimmed == "" {
			return nil, NewValidationError("status must not be empty")
		}
		u.Status = &trimmed
	}

	property, err := uc.repo.Update(ctx, id, u)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			uc.logger.Error("Failed to update property in repository", zap.Error(err), zap.String("property_id", id))
		}
		return nil, fmt.Errorf("PropertyUseCase.UpdateProperty: %w", err)
	}

	uc.invalidate(ctx, id)
	publishEvent(ctx, uc.publisher, uc.logger, PropertyUpdatedSubject, property)
	return property, nil
}

// DeleteProperty is a soft delete; image files stay in place.
func (uc *PropertyUseCase) DeleteProperty(ctx context.Context, id string) error {
	if err := uc.repo.SoftDelete(ctx, id); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			uc.logger.Error("Failed to soft-delete property", zap.Error(err), zap.String("property_id", id))
		}
		return fmt.Errorf("PropertyUseCase.DeleteProperty: %w", err)
	}

	uc.invalidate(ctx, id)
	publishEvent(ctx, uc.publisher, uc.logger, PropertyDeletedSubject, DeletedEventPayload{ID: id})
	return nil
}

func (uc *PropertyUseCase) getCached(ctx context.Context, key string, dst any) bool {
	if uc.cacheRepo == nil {
		return false
	}
	data, err := uc.cacheRepo.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			uc.logger.Warn("Failed to read from cache (not a cache miss)", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		uc.logger.Error("Failed to unmarshal cached value", zap.String("key", key), zap.Error(err))
		if delErr := uc.cacheRepo.Delete(ctx, key); delErr != nil {
			uc.logger.Warn("Failed to delete corrupted data from cache", zap.String("key", key), zap.Error(delErr))
		}
		return false
	}
	uc.logger.Debug("Served from cache", zap.String("key", key))
	return true
}

func (uc *PropertyUseCase) setCached(ctx context.Context, key string, v any) {
	if uc.cacheRepo == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		uc.logger.Warn("Failed to marshal value for caching", zap.String("key", key), zap.Error(err))
		return
	}
	if err := uc.cacheRepo.Set(ctx, key, data, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to set value in cache", zap.String("key", key), zap.Error(err))
	}
}

func (uc *PropertyUseCase) invalidate(ctx context.Context, id string) {
	if uc.cacheRepo == nil {
		return
	}
	if err := uc.cacheRepo.Delete(ctx, propertyCacheKey(id)); err != nil {
		uc.logger.Warn("Failed to delete property from cache", zap.String("property_id", id), zap.Error(err))
	}
	uc.invalidateLists(ctx)
}

func (uc *PropertyUseCase) invalidateLists(ctx context.Context) {
	if uc.cacheRepo == nil {
		return
	}
	if err := uc.cacheRepo.DeleteByPrefix(ctx, propertyListCacheKeyPrefix); err != nil {
		uc.logger.Warn("Failed to invalidate property lists in cache", zap.Error(err))
	}
	if err := uc.cacheRepo.Delete(ctx, propertyPicturesCacheKey); err != nil {
		uc.logger.Warn("Failed to invalidate property pictures in cache", zap.Error(err))
	}
}
