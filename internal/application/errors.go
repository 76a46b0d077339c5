package application

import (
	"errors"

	repo "jobportal-api/internal/domain/repository"
)

// Domain errors, mapped to HTTP statuses at the handler boundary.
var (
	ErrNotFound           = errors.New("account not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongPassword      = errors.New("current password is incorrect")

	ErrNoPendingOTP = errors.New("no otp request found")
	ErrOTPExpired   = errors.New("otp has expired")
	ErrInvalidOTP   = errors.New("invalid otp")

	ErrDeliveryFailed = errors.New("failed to send email")

	ErrJobNotFound   = errors.New("job not found")
	ErrJobNotPending = errors.New("job is not pending")
)

// asNotFound translates the repository absence sentinel into ErrNotFound and
// passes every other error through unchanged, so a store failure surfaces as
// an internal error instead of claiming the account does not exist.
func asNotFound(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
