package repository

import (
	"context"

	"jobportal-api/internal/domain/entity"
)

// JobRepository defines the interface for job postings.
type JobRepository interface {
	Create(ctx context.Context, j *entity.Job) error
	GetByID(ctx context.Context, id string) (*entity.Job, error)
	ListByRecruiter(ctx context.Context, recruiterID string) ([]entity.Job, error)
	ListByStatus(ctx context.Context, status string) ([]entity.Job, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
