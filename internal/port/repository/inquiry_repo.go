package repository

import (
	"context"

	"github.com/sachin24864/RealEstate-Website/internal/entity"
)

type InquiryRepository interface {
	Create(ctx context.Context, in *entity.Inquiry) (string, error)
	List(ctx context.Context) ([]*entity.Inquiry, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
