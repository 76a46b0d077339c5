package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jobportal-api/internal/application"
	"jobportal-api/internal/domain/entity"
	"jobportal-api/internal/domain/repository"
)

type RecruiterRepository struct {
	pool *pgxpool.Pool
}

func NewRecruiterRepository(pool *pgxpool.Pool) *RecruiterRepository {
	return &RecruiterRepository{pool: pool}
}

func (r *RecruiterRepository) Create(ctx context.Context, rec *entity.Recruiter) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO recruiters (name, email, password_hash, contactno, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_email_verified, created_at, updated_at
	`, rec.Name, rec.Email, rec.Password, rec.ContactNo, rec.Address)

	return row.Scan(&rec.ID, &rec.IsEmailVerified, &rec.CreatedAt, &rec.UpdatedAt)
}

func (r *RecruiterRepository) GetByID(ctx context.Context, id string) (*entity.Recruiter, error) {
	rec := &entity.Recruiter{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, contactno, address, is_email_verified, created_at, updated_at
		FROM recruiters
		WHERE id = $1
	`, id)

	if err := row.Scan(&rec.ID, &rec.Name, &rec.Email, &rec.Password, &rec.ContactNo,
		&rec.Address, &rec.IsEmailVerified, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return rec, nil
}

func (r *RecruiterRepository) GetByEmail(ctx context.Context, email string) (*entity.Recruiter, error) {
	rec := &entity.Recruiter{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, contactno, address, is_email_verified, created_at, updated_at
		FROM recruiters
		WHERE email = $1
	`, email)

	if err := row.Scan(&rec.ID, &rec.Name, &rec.Email, &rec.Password, &rec.ContactNo,
		&rec.Address, &rec.IsEmailVerified, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return rec, nil
}

func (r *RecruiterRepository) Update(ctx context.Context, rec *entity.Recruiter) error {
	rec.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE recruiters
		SET name = $1, contactno = $2, address = $3, updated_at = $4
		WHERE id = $5
	`, rec.Name, rec.ContactNo, rec.Address, rec.UpdatedAt, rec.ID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *RecruiterRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE recruiters
		SET password_hash = $1, updated_at = now()
		WHERE id = $2
	`, hash, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RecruiterRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM recruiters WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AccountStore capability for the recovery machine. Recruiters carry both
// verification and reset OTP state.

func otpColumns(p application.Purpose) (hashCol, expCol string, ok bool) {
	switch p {
	case application.PurposeEmailVerification:
		return "verify_otp_hash", "verify_otp_expires_at", true
	case application.PurposePasswordReset:
		return "reset_otp_hash", "reset_otp_expires_at", true
	}
	return "", "", false
}

func (r *RecruiterRepository) FindByEmail(ctx context.Context, email string) (*application.Account, error) {
	a := &application.Account{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, email, name, password_hash, is_email_verified
		FROM recruiters
		WHERE email = $1
	`, email)

	if err := row.Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.EmailVerified); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *RecruiterRepository) GetOTP(ctx context.Context, id string, p application.Purpose) (*application.OTPState, error) {
	hashCol, expCol, ok := otpColumns(p)
	if !ok {
		return nil, errUnsupportedPurpose
	}

	var hash *string
	var exp *time.Time
	row := r.pool.QueryRow(ctx, `
		SELECT `+hashCol+`, `+expCol+`
		FROM recruiters
		WHERE id = $1
	`, id)
	if err := row.Scan(&hash, &exp); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if hash == nil || exp == nil {
		return nil, nil
	}
	return &application.OTPState{Hash: *hash, ExpiresAt: *exp}, nil
}

func (r *RecruiterRepository) PutOTP(ctx context.Context, id string, p application.Purpose, s application.OTPState) error {
	hashCol, expCol, ok := otpColumns(p)
	if !ok {
		return errUnsupportedPurpose
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE recruiters
		SET `+hashCol+` = $1, `+expCol+` = $2, updated_at = now()
		WHERE id = $3
	`, s.Hash, s.ExpiresAt, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RecruiterRepository) ClearOTP(ctx context.Context, id string, p application.Purpose) error {
	hashCol, expCol, ok := otpColumns(p)
	if !ok {
		return errUnsupportedPurpose
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE recruiters
		SET `+hashCol+` = NULL, `+expCol+` = NULL, updated_at = now()
		WHERE id = $1
	`, id)
	return err
}

// MarkEmailVerified flips the monotonic flag and clears the verification OTP
// in one write.
func (r *RecruiterRepository) MarkEmailVerified(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE recruiters
		SET is_email_verified = TRUE, verify_otp_hash = NULL, verify_otp_expires_at = NULL, updated_at = now()
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RecruiterRepository) ResetPassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE recruiters
		SET password_hash = $1, reset_otp_hash = NULL, reset_otp_expires_at = NULL, updated_at = now()
		WHERE id = $2
	`, passwordHash, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.RecruiterRepository = (*RecruiterRepository)(nil)
var _ application.AccountStore = (*RecruiterRepository)(nil)
