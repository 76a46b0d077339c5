package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"jobportal-api/internal/domain/entity"
	repo "jobportal-api/internal/domain/repository"
	"jobportal-api/pkg/helpers"
)

// RecruiterService handles employer accounts. Recruiters must verify their
// email before they can log in, so registration kicks off the verification
// cycle and is all-or-nothing with respect to a reachable mailbox.
type RecruiterService struct {
	Repo     repo.RecruiterRepository
	Recovery *RecoveryMachine
	JWT      *helpers.JWTManager
	Logger   *logrus.Logger
}

func NewRecruiterService(r repo.RecruiterRepository, rec *RecoveryMachine, jwt *helpers.JWTManager, logger *logrus.Logger) *RecruiterService {
	return &RecruiterService{Repo: r, Recovery: rec, JWT: jwt, Logger: logger}
}

type RegisterRecruiterInput struct {
	Name      string
	Email     string
	Password  string
	ContactNo string
	Address   string
}

// Register creates the unverified recruiter and sends the verification OTP.
// If delivery fails the just-created record is deleted and ErrDeliveryFailed
// is returned, so no account exists without a reachable email.
func (s *RecruiterService) Register(ctx context.Context, in RegisterRecruiterInput) (*entity.Recruiter, error) {
	if existing, _ := s.Repo.GetByEmail(ctx, in.Email); existing != nil {
		return nil, ErrEmailTaken
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	r := &entity.Recruiter{
		Name:      in.Name,
		Email:     in.Email,
		Password:  hash,
		ContactNo: in.ContactNo,
		Address:   in.Address,
	}
	if err := s.Repo.Create(ctx, r); err != nil {
		return nil, err
	}

	if err := s.Recovery.Request(ctx, r.Email, PurposeEmailVerification); err != nil {
		if delErr := s.Repo.Delete(ctx, r.ID); delErr != nil && s.Logger != nil {
			s.Logger.WithError(delErr).WithField("email", r.Email).Error("rollback of registration failed")
		}
		return nil, err
	}
	return r, nil
}

func (s *RecruiterService) VerifyEmail(ctx context.Context, email, code string) error {
	return s.Recovery.ConsumeVerification(ctx, email, code)
}

func (s *RecruiterService) ResendVerificationOTP(ctx context.Context, email string) error {
	return s.Recovery.Request(ctx, email, PurposeEmailVerification)
}

// Login checks the verification gate before the password, matching the
// observed system: unknown email is ErrNotFound, an unverified account is
// ErrEmailNotVerified regardless of the submitted password.
func (s *RecruiterService) Login(ctx context.Context, email, password string) (*entity.Recruiter, LoginResult, error) {
	r, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, LoginResult{}, asNotFound(err)
	}
	if !r.IsEmailVerified {
		return r, LoginResult{}, ErrEmailNotVerified
	}
	if !helpers.CompareHashAndPassword(r.Password, password) {
		return nil, LoginResult{}, ErrInvalidCredentials
	}
	token, exp, err := s.JWT.GenerateToken(r.ID, RoleRecruiter)
	if err != nil {
		return nil, LoginResult{}, err
	}
	return r, LoginResult{Token: token, ExpiresAt: exp}, nil
}

func (s *RecruiterService) GetProfile(ctx context.Context, id string) (*entity.Recruiter, error) {
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return r, nil
}

type UpdateRecruiterProfileInput struct {
	Name      string
	ContactNo string
	Address   string
}

func (s *RecruiterService) UpdateProfile(ctx context.Context, id string, in UpdateRecruiterProfileInput) (*entity.Recruiter, error) {
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	if in.Name != "" {
		r.Name = in.Name
	}
	if in.ContactNo != "" {
		r.ContactNo = in.ContactNo
	}
	if in.Address != "" {
		r.Address = in.Address
	}
	if err := s.Repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *RecruiterService) ChangePassword(ctx context.Context, id, current, newPassword string) error {
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return asNotFound(err)
	}
	if !helpers.CompareHashAndPassword(r.Password, current) {
		return ErrWrongPassword
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Repo.UpdatePassword(ctx, id, hash)
}

func (s *RecruiterService) ForgotPassword(ctx context.Context, email string) error {
	return s.Recovery.Request(ctx, email, PurposePasswordReset)
}

func (s *RecruiterService) VerifyResetOTP(ctx context.Context, email, code string) error {
	return s.Recovery.Verify(ctx, email, PurposePasswordReset, code)
}

func (s *RecruiterService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	return s.Recovery.ConsumeReset(ctx, email, code, newPassword)
}
