package repository

import (
	"context"

	"jobportal-api/internal/domain/entity"
)

type AdminRepository interface {
	Create(ctx context.Context, a *entity.Admin) error
	GetByEmail(ctx context.Context, email string) (*entity.Admin, error)
}
