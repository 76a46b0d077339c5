package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"jobportal-api/pkg/helpers"
)

// Purpose selects which recovery flow an OTP belongs to. The two flows keep
// independent hash/expiry state on the account record.
type Purpose string

const (
	PurposeEmailVerification Purpose = "email_verification"
	PurposePasswordReset     Purpose = "password_reset"
)

// Account is the projection of a principal the recovery machine works with.
type Account struct {
	ID            string
	Email         string
	Name          string
	PasswordHash  string
	EmailVerified bool
}

// OTPState is an outstanding code: bcrypt hash plus expiry instant.
// Both fields are written and cleared together.
type OTPState struct {
	Hash      string
	ExpiresAt time.Time
}

// AccountStore is the capability interface a principal store must provide for
// the recovery machine. Lookups report a missing account with
// repository.ErrNotFound; MarkEmailVerified and ResetPassword apply their
// effect and clear the corresponding OTP state as one write.
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	GetOTP(ctx context.Context, id string, p Purpose) (*OTPState, error)
	PutOTP(ctx context.Context, id string, p Purpose, s OTPState) error
	ClearOTP(ctx context.Context, id string, p Purpose) error
	MarkEmailVerified(ctx context.Context, id string) error
	ResetPassword(ctx context.Context, id, passwordHash string) error
}

// Notifier delivers recovery emails. OTP sends are synchronous so a delivery
// failure can roll the just-written OTP state back; the reset confirmation is
// best-effort and its error is swallowed by the machine.
type Notifier interface {
	SendVerificationOTP(ctx context.Context, to, name, code string) error
	SendPasswordResetOTP(ctx context.Context, to, name, code string) error
	SendPasswordResetConfirmation(ctx context.Context, to, name string) error
}

// RecoveryMachine orchestrates OTP issuance, expiry, verification, and
// consumption for both the email-verification and password-reset flows.
// State lives entirely on the account record; each account is an independent
// instance of the machine.
type RecoveryMachine struct {
	Store    AccountStore
	Notifier Notifier
	Logger   *logrus.Logger
	OTPTTL   time.Duration

	// Injectable for tests.
	Now     func() time.Time
	GenCode func() (string, error)
}

func NewRecoveryMachine(store AccountStore, notifier Notifier, logger *logrus.Logger, ttl time.Duration) *RecoveryMachine {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RecoveryMachine{
		Store:    store,
		Notifier: notifier,
		Logger:   logger,
		OTPTTL:   ttl,
		Now:      time.Now,
		GenCode:  helpers.GenOTPCode,
	}
}

// Request issues a fresh OTP for the given purpose and emails it. A prior
// outstanding code is unconditionally overwritten and becomes invalid. If
// delivery fails the just-written state is cleared and ErrDeliveryFailed is
// returned, leaving the account as it was before the call.
func (m *RecoveryMachine) Request(ctx context.Context, email string, p Purpose) error {
	acct, err := m.Store.FindByEmail(ctx, email)
	if err != nil {
		return asNotFound(err)
	}
	if p == PurposeEmailVerification && acct.EmailVerified {
		return ErrAlreadyVerified
	}

	code, err := m.GenCode()
	if err != nil {
		return err
	}
	hash, err := helpers.HashPassword(code)
	if err != nil {
		return err
	}
	if err := m.Store.PutOTP(ctx, acct.ID, p, OTPState{Hash: hash, ExpiresAt: m.Now().Add(m.OTPTTL)}); err != nil {
		return err
	}

	if err := m.deliver(ctx, acct, p, code); err != nil {
		if clearErr := m.Store.ClearOTP(ctx, acct.ID, p); clearErr != nil && m.Logger != nil {
			m.Logger.WithError(clearErr).WithField("email", email).Error("rollback of otp state failed")
		}
		if m.Logger != nil {
			m.Logger.WithError(err).WithField("email", email).WithField("purpose", string(p)).Error("otp delivery failed")
		}
		return ErrDeliveryFailed
	}
	return nil
}

// Verify checks a submitted code without consuming it; the password-reset flow
// uses it as the intermediate step before the client submits a new password.
// The precondition chain is evaluated in order and the first failure wins.
func (m *RecoveryMachine) Verify(ctx context.Context, email string, p Purpose, code string) error {
	acct, err := m.Store.FindByEmail(ctx, email)
	if err != nil {
		return asNotFound(err)
	}
	return m.checkCode(ctx, acct.ID, p, code)
}

// ConsumeVerification validates the code and marks the email verified, clearing
// the OTP state in the same write. A replay with the same code fails with
// ErrNoPendingOTP because the fields are gone.
func (m *RecoveryMachine) ConsumeVerification(ctx context.Context, email, code string) error {
	acct, err := m.Store.FindByEmail(ctx, email)
	if err != nil {
		return asNotFound(err)
	}
	if acct.EmailVerified {
		return ErrAlreadyVerified
	}
	if err := m.checkCode(ctx, acct.ID, PurposeEmailVerification, code); err != nil {
		return err
	}
	return m.Store.MarkEmailVerified(ctx, acct.ID)
}

// ConsumeReset validates the code and installs the new password hash, clearing
// the OTP state in the same write. The confirmation email is best-effort: the
// password change has already committed and is never rolled back for it.
func (m *RecoveryMachine) ConsumeReset(ctx context.Context, email, code, newPassword string) error {
	acct, err := m.Store.FindByEmail(ctx, email)
	if err != nil {
		return asNotFound(err)
	}
	if err := m.checkCode(ctx, acct.ID, PurposePasswordReset, code); err != nil {
		return err
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := m.Store.ResetPassword(ctx, acct.ID, hash); err != nil {
		return err
	}

	if err := m.Notifier.SendPasswordResetConfirmation(ctx, acct.Email, acct.Name); err != nil && m.Logger != nil {
		m.Logger.WithError(err).WithField("email", acct.Email).Warn("reset confirmation email failed")
	}
	return nil
}

// checkCode runs the shared precondition chain: pending state present, not
// expired, hash matches. Discovering expiry clears the stale state so a failed
// attempt does not leave a dead Pending cycle behind; the exact expiry instant
// is still valid.
func (m *RecoveryMachine) checkCode(ctx context.Context, id string, p Purpose, code string) error {
	st, err := m.Store.GetOTP(ctx, id, p)
	if err != nil {
		return asNotFound(err)
	}
	if st == nil {
		return ErrNoPendingOTP
	}
	if m.Now().After(st.ExpiresAt) {
		if clearErr := m.Store.ClearOTP(ctx, id, p); clearErr != nil && m.Logger != nil {
			m.Logger.WithError(clearErr).WithField("account_id", id).Error("clearing expired otp failed")
		}
		return ErrOTPExpired
	}
	if !helpers.CompareHashAndPassword(st.Hash, code) {
		return ErrInvalidOTP
	}
	return nil
}

func (m *RecoveryMachine) deliver(ctx context.Context, acct *Account, p Purpose, code string) error {
	if p == PurposeEmailVerification {
		return m.Notifier.SendVerificationOTP(ctx, acct.Email, acct.Name, code)
	}
	return m.Notifier.SendPasswordResetOTP(ctx, acct.Email, acct.Name, code)
}
