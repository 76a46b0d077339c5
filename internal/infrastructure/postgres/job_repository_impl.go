package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jobportal-api/internal/domain/entity"
	"jobportal-api/internal/domain/repository"
)

type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

func (r *JobRepository) Create(ctx context.Context, j *entity.Job) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO jobs (title, description, company, location, salary, posted_by, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, j.Title, j.Description, j.Company, j.Location, j.Salary, j.PostedBy, j.Status)

	return row.Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt)
}

func (r *JobRepository) GetByID(ctx context.Context, id string) (*entity.Job, error) {
	j := &entity.Job{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, title, description, company, location, salary, posted_by, status, created_at, updated_at
		FROM jobs
		WHERE id = $1
	`, id)

	if err := row.Scan(&j.ID, &j.Title, &j.Description, &j.Company, &j.Location,
		&j.Salary, &j.PostedBy, &j.Status, &j.CreatedAt, &j.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return j, nil
}

func (r *JobRepository) ListByRecruiter(ctx context.Context, recruiterID string) ([]entity.Job, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, company, location, salary, posted_by, status, created_at, updated_at
		FROM jobs
		WHERE posted_by = $1
		ORDER BY created_at DESC
	`, recruiterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanJobs(rows)
}

func (r *JobRepository) ListByStatus(ctx context.Context, status string) ([]entity.Job, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, company, location, salary, posted_by, status, created_at, updated_at
		FROM jobs
		WHERE status = $1
		ORDER BY created_at DESC
	`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanJobs(rows)
}

func (r *JobRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE jobs
		SET status = $1, updated_at = now()
		WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanJobs(rows pgx.Rows) ([]entity.Job, error) {
	jobs := make([]entity.Job, 0)
	for rows.Next() {
		var j entity.Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Description, &j.Company, &j.Location,
			&j.Salary, &j.PostedBy, &j.Status, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

var _ repository.JobRepository = (*JobRepository)(nil)
