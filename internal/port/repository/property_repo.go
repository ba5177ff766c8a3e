package repository

import (
	"context"

	"github.com/sachin24864/RealEstate-Website/internal/entity"
)

type PropertyRepository interface {
	Create(ctx context.Context, p *entity.Property) (string, error)
	// GetActiveByID returns ErrNotFound for missing, soft-deleted, or malformed ids.
	GetActiveByID(ctx context.Context, id string) (*entity.Property, error)
	ListActive(ctx context.Context, q entity.PropertyQuery) ([]*entity.Property, error)
	ListActiveWithImages(ctx context.Context) ([]*entity.Property, error)
	// Update applies u to an active property and returns the updated record.
	Update(ctx context.Context, id string, u entity.PropertyUpdate) (*entity.Property, error)
	SoftDelete(ctx context.Context, id string) error
	CountActive(ctx context.Context) (int64, error)
	ListSlugs(ctx context.Context) ([]SlugEntry, error)
}
