package application

import (
	"context"

	"jobportal-api/internal/domain/entity"
	repo "jobportal-api/internal/domain/repository"
	"jobportal-api/pkg/helpers"
)

// AdminService only authenticates; admin accounts are seeded, not registered.
type AdminService struct {
	Repo repo.AdminRepository
	JWT  *helpers.JWTManager
}

func NewAdminService(r repo.AdminRepository, jwt *helpers.JWTManager) *AdminService {
	return &AdminService{Repo: r, JWT: jwt}
}

func (s *AdminService) Login(ctx context.Context, email, password string) (*entity.Admin, LoginResult, error) {
	a, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, LoginResult{}, asNotFound(err)
	}
	if !helpers.CompareHashAndPassword(a.Password, password) {
		return nil, LoginResult{}, ErrInvalidCredentials
	}
	token, exp, err := s.JWT.GenerateToken(a.ID, RoleAdmin)
	if err != nil {
		return nil, LoginResult{}, err
	}
	return a, LoginResult{Token: token, ExpiresAt: exp}, nil
}
