package application

import (
	"context"
	"errors"

	"jobportal-api/internal/domain/entity"
	repo "jobportal-api/internal/domain/repository"
)

// JobService implements the posting/approval workflow: recruiters create
// pending jobs, an admin approves or rejects them, and only approved jobs are
// publicly listed. Transitions happen exactly once, out of pending.
type JobService struct {
	Repo repo.JobRepository
}

func NewJobService(r repo.JobRepository) *JobService {
	return &JobService{Repo: r}
}

type PostJobInput struct {
	Title       string
	Description string
	Company     string
	Location    string
	Salary      string
}

func (s *JobService) Post(ctx context.Context, recruiterID string, in PostJobInput) (*entity.Job, error) {
	j := &entity.Job{
		Title:       in.Title,
		Description: in.Description,
		Company:     in.Company,
		Location:    in.Location,
		Salary:      in.Salary,
		PostedBy:    recruiterID,
		Status:      entity.JobStatusPending,
	}
	if err := s.Repo.Create(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

// MyJobs lists a recruiter's own postings, newest first.
func (s *JobService) MyJobs(ctx context.Context, recruiterID string) ([]entity.Job, error) {
	return s.Repo.ListByRecruiter(ctx, recruiterID)
}

func (s *JobService) PendingJobs(ctx context.Context) ([]entity.Job, error) {
	return s.Repo.ListByStatus(ctx, entity.JobStatusPending)
}

func (s *JobService) ApprovedJobs(ctx context.Context) ([]entity.Job, error) {
	return s.Repo.ListByStatus(ctx, entity.JobStatusApproved)
}

func (s *JobService) Approve(ctx context.Context, id string) (*entity.Job, error) {
	return s.transition(ctx, id, entity.JobStatusApproved)
}

func (s *JobService) Reject(ctx context.Context, id string) (*entity.Job, error) {
	return s.transition(ctx, id, entity.JobStatusRejected)
}

func (s *JobService) transition(ctx context.Context, id, status string) (*entity.Job, error) {
	j, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	if j.Status != entity.JobStatusPending {
		return nil, ErrJobNotPending
	}
	if err := s.Repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	j.Status = status
	return j, nil
}
