package repository

import (
	"context"

	"jobportal-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Entity projections include the password hash for credential checks but not
// the OTP columns; the recovery flow reads those through the
// application.AccountStore capability.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id string) error
}
