package repository

import (
	"context"

	"jobportal-api/internal/domain/entity"
)

// RecruiterRepository defines the interface for recruiter-related database operations.
type RecruiterRepository interface {
	Create(ctx context.Context, r *entity.Recruiter) error
	GetByID(ctx context.Context, id string) (*entity.Recruiter, error)
	GetByEmail(ctx context.Context, email string) (*entity.Recruiter, error)
	Update(ctx context.Context, r *entity.Recruiter) error
	UpdatePassword(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id string) error
}
