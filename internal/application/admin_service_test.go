package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobportal-api/internal/domain/entity"
	repo "jobportal-api/internal/domain/repository"
	"jobportal-api/pkg/helpers"
)

type fakeAdminRepo struct {
	admin *entity.Admin
}

func (f *fakeAdminRepo) Create(ctx context.Context, a *entity.Admin) error {
	a.ID = "a1"
	f.admin = a
	return nil
}

func (f *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	if f.admin == nil || f.admin.Email != email {
		return nil, repo.ErrNotFound
	}
	cp := *f.admin
	return &cp, nil
}

func TestAdminLogin(t *testing.T) {
	hash, err := helpers.HashPassword("admin12345")
	require.NoError(t, err)
	adminRepo := &fakeAdminRepo{admin: &entity.Admin{ID: "a1", Name: "Administrator", Email: "admin@jobportal.local", Password: hash}}
	svc := NewAdminService(adminRepo, helpers.NewJWTManager("test-secret", time.Hour))
	ctx := context.Background()

	a, res, err := svc.Login(ctx, "admin@jobportal.local", "admin12345")
	require.NoError(t, err)
	assert.Equal(t, "a1", a.ID)

	claims, err := svc.JWT.ParseToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)

	_, _, err = svc.Login(ctx, "admin@jobportal.local", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "other@jobportal.local", "admin12345")
	assert.ErrorIs(t, err, ErrNotFound)
}
