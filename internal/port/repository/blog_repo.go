package repository

import (
	"context"
	"time"

	"github.com/sachin24864/RealEstate-Website/internal/entity"
)

// SlugEntry is the minimal projection used to build the sitemap.
type SlugEntry struct {
	Slug      string
	UpdatedAt time.Time
}

type BlogRepository interface {
	Create(ctx context.Context, post *entity.BlogPost) (string, error)
	GetByID(ctx context.Context, id string) (*entity.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*entity.BlogPost, error)
	List(ctx context.Context) ([]*entity.BlogPost, error)
	Update(ctx context.Context, post *entity.BlogPost) error
	Delete(ctx context.Context, id string) error
	ListSlugs(ctx context.Context) ([]SlugEntry, error)
}
