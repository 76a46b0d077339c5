package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobportal-api/internal/domain/entity"
	repo "jobportal-api/internal/domain/repository"
	"jobportal-api/pkg/helpers"
)

type fakeRecruiterRepo struct {
	seq        int
	recruiters map[string]*entity.Recruiter // by id
}

func newFakeRecruiterRepo() *fakeRecruiterRepo {
	return &fakeRecruiterRepo{recruiters: map[string]*entity.Recruiter{}}
}

func (f *fakeRecruiterRepo) Create(ctx context.Context, r *entity.Recruiter) error {
	f.seq++
	r.ID = fmt.Sprintf("r%d", f.seq)
	r.CreatedAt = time.Now()
	cp := *r
	f.recruiters[r.ID] = &cp
	return nil
}

func (f *fakeRecruiterRepo) GetByID(ctx context.Context, id string) (*entity.Recruiter, error) {
	r, ok := f.recruiters[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRecruiterRepo) GetByEmail(ctx context.Context, email string) (*entity.Recruiter, error) {
	for _, r := range f.recruiters {
		if r.Email == email {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeRecruiterRepo) Update(ctx context.Context, r *entity.Recruiter) error {
	cur, ok := f.recruiters[r.ID]
	if !ok {
		return repo.ErrNotFound
	}
	cur.Name, cur.ContactNo, cur.Address = r.Name, r.ContactNo, r.Address
	return nil
}

func (f *fakeRecruiterRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	r, ok := f.recruiters[id]
	if !ok {
		return repo.ErrNotFound
	}
	r.Password = hash
	return nil
}

func (f *fakeRecruiterRepo) Delete(ctx context.Context, id string) error {
	delete(f.recruiters, id)
	return nil
}

// AccountStore, covering both the verification and the reset purpose.

func (f *fakeRecruiterRepo) FindByEmail(ctx context.Context, email string) (*Account, error) {
	r, err := f.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &Account{ID: r.ID, Email: r.Email, Name: r.Name, PasswordHash: r.Password, EmailVerified: r.IsEmailVerified}, nil
}

func (f *fakeRecruiterRepo) otpFields(r *entity.Recruiter, p Purpose) (**string, **time.Time) {
	if p == PurposeEmailVerification {
		return &r.VerifyOTPHash, &r.VerifyOTPExpiresAt
	}
	return &r.ResetOTPHash, &r.ResetOTPExpiresAt
}

func (f *fakeRecruiterRepo) GetOTP(ctx context.Context, id string, p Purpose) (*OTPState, error) {
	r, ok := f.recruiters[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	hash, exp := f.otpFields(r, p)
	if *hash == nil {
		return nil, nil
	}
	return &OTPState{Hash: **hash, ExpiresAt: **exp}, nil
}

func (f *fakeRecruiterRepo) PutOTP(ctx context.Context, id string, p Purpose, st OTPState) error {
	r, ok := f.recruiters[id]
	if !ok {
		return repo.ErrNotFound
	}
	hash, exp := f.otpFields(r, p)
	*hash, *exp = &st.Hash, &st.ExpiresAt
	return nil
}

func (f *fakeRecruiterRepo) ClearOTP(ctx context.Context, id string, p Purpose) error {
	r, ok := f.recruiters[id]
	if !ok {
		return repo.ErrNotFound
	}
	hash, exp := f.otpFields(r, p)
	*hash, *exp = nil, nil
	return nil
}

func (f *fakeRecruiterRepo) MarkEmailVerified(ctx context.Context, id string) error {
	r, ok := f.recruiters[id]
	if !ok {
		return repo.ErrNotFound
	}
	r.IsEmailVerified = true
	r.VerifyOTPHash, r.VerifyOTPExpiresAt = nil, nil
	return nil
}

func (f *fakeRecruiterRepo) ResetPassword(ctx context.Context, id, passwordHash string) error {
	r, ok := f.recruiters[id]
	if !ok {
		return repo.ErrNotFound
	}
	r.Password = passwordHash
	r.ResetOTPHash, r.ResetOTPExpiresAt = nil, nil
	return nil
}

func newRecruiterService(repo *fakeRecruiterRepo, notifier *memNotifier) *RecruiterService {
	machine := NewRecoveryMachine(repo, notifier, quietLogger(), 10*time.Minute)
	machine.GenCode = func() (string, error) { return "123456", nil }
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	return NewRecruiterService(repo, machine, jwt, quietLogger())
}

func registerRecruiter(t *testing.T, svc *RecruiterService, email string) *entity.Recruiter {
	t.Helper()
	r, err := svc.Register(context.Background(), RegisterRecruiterInput{
		Name: "Acme HR", Email: email, Password: "secret1", ContactNo: "555-0100", Address: "1 Main St",
	})
	require.NoError(t, err)
	return r
}

func TestRecruiterRegisterSendsVerificationOTP(t *testing.T) {
	notifier := &memNotifier{}
	svc := newRecruiterService(newFakeRecruiterRepo(), notifier)

	r := registerRecruiter(t, svc, "hire@corp.com")
	assert.False(t, r.IsEmailVerified)
	require.Len(t, notifier.verifications, 1)
	assert.Equal(t, "hire@corp.com", notifier.verifications[0].to)
	assert.Equal(t, "123456", notifier.verifications[0].code)
}

func TestRecruiterRegisterRollbackOnDeliveryFailure(t *testing.T) {
	repo := newFakeRecruiterRepo()
	notifier := &memNotifier{verifyErr: errors.New("smtp down")}
	svc := newRecruiterService(repo, notifier)

	_, err := svc.Register(context.Background(), RegisterRecruiterInput{
		Name: "Acme HR", Email: "hire@corp.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrDeliveryFailed)

	// No half-created account survives.
	assert.Empty(t, repo.recruiters)
}

func TestRecruiterLoginRequiresVerification(t *testing.T) {
	svc := newRecruiterService(newFakeRecruiterRepo(), &memNotifier{})
	ctx := context.Background()
	registerRecruiter(t, svc, "hire@corp.com")

	// Gate fires before the password check, even for a correct password.
	r, _, err := svc.Login(ctx, "hire@corp.com", "secret1")
	assert.ErrorIs(t, err, ErrEmailNotVerified)
	require.NotNil(t, r)
	assert.Equal(t, "hire@corp.com", r.Email)

	_, _, err = svc.Login(ctx, "hire@corp.com", "wrong")
	assert.ErrorIs(t, err, ErrEmailNotVerified)
}

func TestRecruiterVerifyThenLogin(t *testing.T) {
	notifier := &memNotifier{}
	svc := newRecruiterService(newFakeRecruiterRepo(), notifier)
	ctx := context.Background()
	registerRecruiter(t, svc, "hire@corp.com")

	code := notifier.verifications[0].code
	require.NoError(t, svc.VerifyEmail(ctx, "hire@corp.com", code))

	r, res, err := svc.Login(ctx, "hire@corp.com", "secret1")
	require.NoError(t, err)
	assert.True(t, r.IsEmailVerified)
	assert.NotEmpty(t, res.Token)

	claims, err := svc.JWT.ParseToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, RoleRecruiter, claims.Role)

	// Verification is one-shot.
	assert.ErrorIs(t, svc.VerifyEmail(ctx, "hire@corp.com", code), ErrAlreadyVerified)
}

func TestRecruiterResendVerificationOTP(t *testing.T) {
	repo := newFakeRecruiterRepo()
	notifier := &memNotifier{}
	svc := newRecruiterService(repo, notifier)
	ctx := context.Background()
	registerRecruiter(t, svc, "hire@corp.com")

	require.NoError(t, svc.ResendVerificationOTP(ctx, "hire@corp.com"))
	assert.Len(t, notifier.verifications, 2)

	// Resend after verification is refused.
	require.NoError(t, svc.VerifyEmail(ctx, "hire@corp.com", "123456"))
	assert.ErrorIs(t, svc.ResendVerificationOTP(ctx, "hire@corp.com"), ErrAlreadyVerified)
}

func TestRecruiterPasswordResetFlow(t *testing.T) {
	notifier := &memNotifier{}
	svc := newRecruiterService(newFakeRecruiterRepo(), notifier)
	ctx := context.Background()
	registerRecruiter(t, svc, "hire@corp.com")
	require.NoError(t, svc.VerifyEmail(ctx, "hire@corp.com", "123456"))

	require.NoError(t, svc.ForgotPassword(ctx, "hire@corp.com"))
	require.Len(t, notifier.resets, 1)

	require.NoError(t, svc.VerifyResetOTP(ctx, "hire@corp.com", "123456"))
	require.NoError(t, svc.ResetPassword(ctx, "hire@corp.com", "123456", "brandnew"))

	_, _, err := svc.Login(ctx, "hire@corp.com", "brandnew")
	assert.NoError(t, err)
}

func TestRecruiterUpdateProfile(t *testing.T) {
	svc := newRecruiterService(newFakeRecruiterRepo(), &memNotifier{})
	ctx := context.Background()
	r := registerRecruiter(t, svc, "hire@corp.com")

	got, err := svc.UpdateProfile(ctx, r.ID, UpdateRecruiterProfileInput{Address: "2 Broad St"})
	require.NoError(t, err)
	assert.Equal(t, "Acme HR", got.Name)
	assert.Equal(t, "2 Broad St", got.Address)
}

func TestRecruiterChangePassword(t *testing.T) {
	svc := newRecruiterService(newFakeRecruiterRepo(), &memNotifier{})
	ctx := context.Background()
	r := registerRecruiter(t, svc, "hire@corp.com")

	assert.ErrorIs(t, svc.ChangePassword(ctx, r.ID, "wrong", "next1"), ErrWrongPassword)
	require.NoError(t, svc.ChangePassword(ctx, r.ID, "secret1", "next1"))

	stored, err := svc.Repo.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, helpers.CompareHashAndPassword(stored.Password, "next1"))
}
