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

var errUnsupportedPurpose = errors.New("unsupported otp purpose for this principal")

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, contactno)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, u.Name, u.Email, u.Password, u.ContactNo)

	return row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u := &entity.User{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, contactno, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)

	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.ContactNo,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u := &entity.User{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, contactno, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)

	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.ContactNo,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, contactno = $3, updated_at = $4
		WHERE id = $5
	`, u.Name, u.Email, u.ContactNo, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
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

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AccountStore capability for the recovery machine. Users only carry
// password-reset OTP state; the verification purpose is rejected.

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*application.Account, error) {
	a := &application.Account{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, email, name, password_hash
		FROM users
		WHERE email = $1
	`, email)

	if err := row.Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *UserRepository) GetOTP(ctx context.Context, id string, p application.Purpose) (*application.OTPState, error) {
	if p != application.PurposePasswordReset {
		return nil, errUnsupportedPurpose
	}

	var hash *string
	var exp *time.Time
	row := r.pool.QueryRow(ctx, `
		SELECT reset_otp_hash, reset_otp_expires_at
		FROM users
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

func (r *UserRepository) PutOTP(ctx context.Context, id string, p application.Purpose, s application.OTPState) error {
	if p != application.PurposePasswordReset {
		return errUnsupportedPurpose
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET reset_otp_hash = $1, reset_otp_expires_at = $2, updated_at = now()
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

func (r *UserRepository) ClearOTP(ctx context.Context, id string, p application.Purpose) error {
	if p != application.PurposePasswordReset {
		return errUnsupportedPurpose
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET reset_otp_hash = NULL, reset_otp_expires_at = NULL, updated_at = now()
		WHERE id = $1
	`, id)
	return err
}

func (r *UserRepository) MarkEmailVerified(ctx context.Context, id string) error {
	return errUnsupportedPurpose
}

// ResetPassword installs the new hash and clears the reset OTP in one write.
func (r *UserRepository) ResetPassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
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

var _ repository.UserRepository = (*UserRepository)(nil)
var _ application.AccountStore = (*UserRepository)(nil)
