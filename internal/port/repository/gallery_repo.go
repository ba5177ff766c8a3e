package repository

import (
	"context"

	"github.com/sachin24864/RealEstate-Website/internal/entity"
)

type GalleryRepository interface {
	Create(ctx context.Context, img *entity.GalleryImage) (string, error)
	GetByID(ctx context.Context, id string) (*entity.GalleryImage, error)
	// FindOneByCategory returns ErrNotFound when the category is empty.
	FindOneByCategory(ctx context.Context, category string) (*entity.GalleryImage, error)
	// List returns newest first; an empty category lists everything.
	List(ctx context.Context, category string) ([]*entity.GalleryImage, error)
	Update(ctx context.Context, img *entity.GalleryImage) error
	Delete(ctx context.Context, id string) error
}
