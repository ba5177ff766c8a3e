package repository

import (
	"context"

	"github.com/sachin24864/RealEstate-Website/internal/entity"
)

type AdminRepository interface {
	Create(ctx context.Context, a *entity.Admin) (string, error)
	GetByEmail(ctx context.Context, email string) (*entity.Admin, error)
	GetByID(ctx context.Context, id string) (*entity.Admin, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
