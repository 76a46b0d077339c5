package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"jobportal-api/internal/domain/entity"
	repo "jobportal-api/internal/domain/repository"
	"jobportal-api/pkg/helpers"
)

// Role claims carried in issued tokens.
const (
	RoleUser      = "user"
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"
)

// UserService handles job-seeker accounts. Users have no email-verification
// gate; only the password-reset recovery flow applies to them.
type UserService struct {
	Repo     repo.UserRepository
	Recovery *RecoveryMachine
	JWT      *helpers.JWTManager
	Logger   *logrus.Logger
}

func NewUserService(r repo.UserRepository, rec *RecoveryMachine, jwt *helpers.JWTManager, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, Recovery: rec, JWT: jwt, Logger: logger}
}

type RegisterUserInput struct {
	Name      string
	Email     string
	Password  string
	ContactNo string
}

func (s *UserService) Register(ctx context.Context, in RegisterUserInput) (*entity.User, error) {
	if existing, _ := s.Repo.GetByEmail(ctx, in.Email); existing != nil {
		return nil, ErrEmailTaken
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Name:      in.Name,
		Email:     in.Email,
		Password:  hash,
		ContactNo: in.ContactNo,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
}

// Login preserves the distinct not-found / bad-password behavior of the
// observed system: an unknown email yields ErrNotFound, a wrong password
// ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, LoginResult, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, LoginResult{}, asNotFound(err)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, LoginResult{}, ErrInvalidCredentials
	}
	token, exp, err := s.JWT.GenerateToken(u.ID, RoleUser)
	if err != nil {
		return nil, LoginResult{}, err
	}
	return u, LoginResult{Token: token, ExpiresAt: exp}, nil
}

func (s *UserService) GetProfile(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return u, nil
}

type UpdateUserProfileInput struct {
	Name      string
	Email     string
	ContactNo string
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, in UpdateUserProfileInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if in.ContactNo != "" {
		u.ContactNo = in.ContactNo
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) ChangePassword(ctx context.Context, id, current, newPassword string) error {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return asNotFound(err)
	}
	if !helpers.CompareHashAndPassword(u.Password, current) {
		return ErrWrongPassword
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Repo.UpdatePassword(ctx, id, hash)
}

// DeleteAccount removes the user record; this is terminal.
func (s *UserService) DeleteAccount(ctx context.Context, id string) error {
	_, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return asNotFound(err)
	}
	return s.Repo.Delete(ctx, id)
}

func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	return s.Recovery.Request(ctx, email, PurposePasswordReset)
}

func (s *UserService) VerifyResetOTP(ctx context.Context, email, code string) error {
	return s.Recovery.Verify(ctx, email, PurposePasswordReset, code)
}

func (s *UserService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	return s.Recovery.ConsumeReset(ctx, email, code, newPassword)
}
