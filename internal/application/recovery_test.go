package application

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repo "jobportal-api/internal/domain/repository"
	"jobportal-api/pkg/helpers"
)

// --- fakes ---

type memAccount struct {
	acct Account
	otps map[Purpose]*OTPState
}

type memStore struct {
	byID    map[string]*memAccount
	byEmail map[string]*memAccount

	findErr  error
	putErr   error
	clearErr error
}

func newMemStore() *memStore {
	return &memStore{byID: map[string]*memAccount{}, byEmail: map[string]*memAccount{}}
}

func (s *memStore) add(id, email string, verified bool) {
	a := &memAccount{
		acct: Account{ID: id, Email: email, Name: "Test " + id, EmailVerified: verified},
		otps: map[Purpose]*OTPState{},
	}
	s.byID[id] = a
	s.byEmail[email] = a
}

func (s *memStore) FindByEmail(ctx context.Context, email string) (*Account, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	a, ok := s.byEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := a.acct
	return &cp, nil
}

func (s *memStore) GetOTP(ctx context.Context, id string, p Purpose) (*OTPState, error) {
	a, ok := s.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	st, ok := a.otps[p]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (s *memStore) PutOTP(ctx context.Context, id string, p Purpose, st OTPState) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.byID[id].otps[p] = &st
	return nil
}

func (s *memStore) ClearOTP(ctx context.Context, id string, p Purpose) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	delete(s.byID[id].otps, p)
	return nil
}

func (s *memStore) MarkEmailVerified(ctx context.Context, id string) error {
	a := s.byID[id]
	a.acct.EmailVerified = true
	delete(a.otps, PurposeEmailVerification)
	return nil
}

func (s *memStore) ResetPassword(ctx context.Context, id, passwordHash string) error {
	a := s.byID[id]
	a.acct.PasswordHash = passwordHash
	delete(a.otps, PurposePasswordReset)
	return nil
}

type sentMail struct {
	to, name, code string
}

type memNotifier struct {
	verifications []sentMail
	resets        []sentMail
	confirmations []sentMail

	verifyErr  error
	resetErr   error
	confirmErr error
}

func (n *memNotifier) SendVerificationOTP(ctx context.Context, to, name, code string) error {
	if n.verifyErr != nil {
		return n.verifyErr
	}
	n.verifications = append(n.verifications, sentMail{to, name, code})
	return nil
}

func (n *memNotifier) SendPasswordResetOTP(ctx context.Context, to, name, code string) error {
	if n.resetErr != nil {
		return n.resetErr
	}
	n.resets = append(n.resets, sentMail{to, name, code})
	return nil
}

func (n *memNotifier) SendPasswordResetConfirmation(ctx context.Context, to, name string) error {
	if n.confirmErr != nil {
		return n.confirmErr
	}
	n.confirmations = append(n.confirmations, sentMail{to: to, name: name})
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestMachine(store *memStore, notifier *memNotifier) *RecoveryMachine {
	m := NewRecoveryMachine(store, notifier, quietLogger(), 10*time.Minute)
	codes := []string{"111111", "222222", "333333"}
	i := 0
	m.GenCode = func() (string, error) {
		c := codes[i%len(codes)]
		i++
		return c, nil
	}
	return m
}

// --- tests ---

func TestRequestIssuesAndEmailsCode(t *testing.T) {
	store := newMemStore()
	store.add("u1", "sam@example.com", false)
	notifier := &memNotifier{}
	m := newTestMachine(store, notifier)

	err := m.Request(context.Background(), "sam@example.com", PurposePasswordReset)
	require.NoError(t, err)

	require.Len(t, notifier.resets, 1)
	assert.Equal(t, "sam@example.com", notifier.resets[0].to)
	assert.Equal(t, "111111", notifier.resets[0].code)

	st := store.byID["u1"].otps[PurposePasswordReset]
	require.NotNil(t, st)
	assert.True(t, helpers.CompareHashAndPassword(st.Hash, "111111"))
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), st.ExpiresAt, 5*time.Second)
}

func TestRequestUnknownEmail(t *testing.T) {
	m := newTestMachine(newMemStore(), &memNotifier{})
	err := m.Request(context.Background(), "nobody@example.com", PurposePasswordReset)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRequestStoreFailureIsNotUnknownEmail(t *testing.T) {
	store := newMemStore()
	store.add("u1", "seeker@example.com", false)
	store.findErr = errors.New("connection refused")
	m := newTestMachine(store, &memNotifier{})

	err := m.Request(context.Background(), "seeker@example.com", PurposePasswordReset)
	assert.ErrorIs(t, err, store.findErr)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestRequestVerificationOnVerifiedAccount(t *testing.T) {
	store := newMemStore()
	store.add("r1", "hire@corp.com", true)
	m := newTestMachine(store, &memNotifier{})

	err := m.Request(context.Background(), "hire@corp.com", PurposeEmailVerification)
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestRequestSupersedesPriorCode(t *testing.T) {
	store := newMemStore()
	store.add("u1", "sam@example.com", false)
	notifier := &memNotifier{}
	m := newTestMachine(store, notifier)
	ctx := context.Background()

	require.NoError(t, m.Request(ctx, "sam@example.com", PurposePasswordReset))
	require.NoError(t, m.Request(ctx, "sam@example.com", PurposePasswordReset))

	// First code is dead, only the latest counts.
	assert.ErrorIs(t, m.Verify(ctx, "sam@example.com", PurposePasswordReset, "111111"), ErrInvalidOTP)
	assert.NoError(t, m.Verify(ctx, "sam@example.com", PurposePasswordReset, "222222"))
}

func TestRequestBackToBack(t *testing.T) {
	store := newMemStore()
	store.add("u1", "sam@example.com", false)
	m := newTestMachine(store, &memNotifier{})
	ctx := context.Background()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m.Now = func() time.Time { return now }

	require.NoError(t, m.Request(ctx, "sam@example.com", PurposePasswordReset))
	now = now.Add(time.Second)
	require.NoError(t, m.Request(ctx, "sam@example.com", PurposePasswordReset))

	assert.ErrorIs(t, m.Verify(ctx, "sam@example.com", PurposePasswordReset, "111111"), ErrInvalidOTP)
	assert.NoError(t, m.Verify(ctx, "sam@example.com", PurposePasswordReset, "222222"))
}

func TestRequestDeliveryFailureRollsBack(t *testing.T) {
	store := newMemStore()
	store.add("u1", "sam@example.com", false)
	notifier := &memNotifier{resetErr: errors.New("smtp down")}
	m := newTestMachine(store, notifier)

	err := m.Request(context.Background(), "sam@example.com", PurposePasswordReset)
	assert.ErrorIs(t, err, ErrDeliveryFailed)
	assert.Nil(t, store.byID["u1"].otps[PurposePasswordReset])
}

func TestVerifyWithoutRequest(t *testing.T) {
	store := newMemStore()
	store.add("u1", "sam@example.com", false)
	m := newTestMachine(store, &memNotifier{})

	err := m.Verify(context.Background(), "sam@example.com", PurposePasswordReset, "111111")
	assert.ErrorIs(t, err, ErrNoPendingOTP)
}

func TestVerifyDoesNotConsume(t *testing.T) {
	store := newMemStore()
	store.add("u1", "sam@example.com", false)
	m := newTestMachine(store, &memNotifier{})
	ctx := context.Background()

	require.NoError(t, m.Request(ctx, "sam@example.com", PurposePasswordReset))
	assert.NoError(t, m.Verify(ctx, "sam@example.com", PurposePasswordReset, "111111"))
	assert.NoError(t, m.Verify(ctx, "sam@example.com", PurposePasswordReset, "111111"))
}

func TestVerifyExpiredClearsState(t *testing.T) {
	store := newMemStore()
	store.add("u1", "sam@example.com", false)
	m := newTestMachine(store, &memNotifier{})
	ctx := context.Background()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m.Now = func() time.Time { return now }
	require.NoError(t, m.Request(ctx, "sam@example.com", PurposePasswordReset))

	now = now.Add(10*time.Minute + time.Second)
	assert.ErrorIs(t, m.Verify(ctx, "sam@example.com", PurposePasswordReset, "111111"), ErrOTPExpired)

	// The stale state is gone: the right code now reports no pending request.
	assert.ErrorIs(t, m.Verify(ctx, "sam@example.com", PurposePasswordReset, "111111"), ErrNoPendingOTP)
}

func TestVerifyAtExactExpiryInstant(t *testing.T) {
	store := newMemStore()
	store.add("u1", "sam@example.com", false)
	m := newTestMachine(store, &memNotifier{})
	ctx := context.Background()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m.Now = func() time.Time { return now }
	require.NoError(t, m.Request(ctx, "sam@example.com", PurposePasswordReset))

	// now == expiresAt is still inside the window.
	now = now.Add(10 * time.Minute)
	assert.NoError(t, m.Verify(ctx, "sam@example.com", PurposePasswordReset, "111111"))
}

func TestConsumeVerificationMarksVerifiedOnce(t *testing.T) {
	store := newMemStore()
	store.add("r1", "hire@corp.com", false)
	m := newTestMachine(store, &memNotifier{})
	ctx := context.Background()

	require.NoError(t, m.Request(ctx, "hire@corp.com", PurposeEmailVerification))
	require.NoError(t, m.ConsumeVerification(ctx, "hire@corp.com", "111111"))
	assert.True(t, store.byID["r1"].acct.EmailVerified)

	// Replay of the consumed code.
	assert.ErrorIs(t, m.ConsumeVerification(ctx, "hire@corp.com", "111111"), ErrAlreadyVerified)
}

func TestConsumeVerificationWrongCode(t *testing.T) {
	store := newMemStore()
	store.add("r1", "hire@corp.com", false)
	m := newTestMachine(store, &memNotifier{})
	ctx := context.Background()

	require.NoError(t, m.Request(ctx, "hire@corp.com", PurposeEmailVerification))
	assert.ErrorIs(t, m.ConsumeVerification(ctx, "hire@corp.com", "999999"), ErrInvalidOTP)
	assert.False(t, store.byID["r1"].acct.EmailVerified)

	// A failed attempt does not burn the outstanding code.
	assert.NoError(t, m.ConsumeVerification(ctx, "hire@corp.com", "111111"))
}

func TestConsumeResetInstallsPasswordAndConfirms(t *testing.T) {
	store := newMemStore()
	store.add("u1", "sam@example.com", false)
	notifier := &memNotifier{}
	m := newTestMachine(store, notifier)
	ctx := context.Background()

	require.NoError(t, m.Request(ctx, "sam@example.com", PurposePasswordReset))
	require.NoError(t, m.ConsumeReset(ctx, "sam@example.com", "111111", "newsecret"))

	assert.True(t, helpers.CompareHashAndPassword(store.byID["u1"].acct.PasswordHash, "newsecret"))
	assert.Nil(t, store.byID["u1"].otps[PurposePasswordReset])
	require.Len(t, notifier.confirmations, 1)
	assert.Equal(t, "sam@example.com", notifier.confirmations[0].to)

	// Replay fails, the state was cleared by the consume.
	assert.ErrorIs(t, m.ConsumeReset(ctx, "sam@example.com", "111111", "again"), ErrNoPendingOTP)
}

func TestConsumeResetConfirmationFailureIsSwallowed(t *testing.T) {
	store := newMemStore()
	store.add("u1", "sam@example.com", false)
	notifier := &memNotifier{confirmErr: errors.New("queue down")}
	m := newTestMachine(store, notifier)
	ctx := context.Background()

	require.NoError(t, m.Request(ctx, "sam@example.com", PurposePasswordReset))
	err := m.ConsumeReset(ctx, "sam@example.com", "111111", "newsecret")
	assert.NoError(t, err)
	assert.True(t, helpers.CompareHashAndPassword(store.byID["u1"].acct.PasswordHash, "newsecret"))
}

func TestFlowsAreIndependentPerPurpose(t *testing.T) {
	store := newMemStore()
	store.add("r1", "hire@corp.com", false)
	notifier := &memNotifier{}
	m := newTestMachine(store, notifier)
	ctx := context.Background()

	require.NoError(t, m.Request(ctx, "hire@corp.com", PurposeEmailVerification)) // 111111
	require.NoError(t, m.Request(ctx, "hire@corp.com", PurposePasswordReset))     // 222222

	// Each code only works for its own flow.
	assert.ErrorIs(t, m.Verify(ctx, "hire@corp.com", PurposePasswordReset, "111111"), ErrInvalidOTP)
	assert.NoError(t, m.Verify(ctx, "hire@corp.com", PurposePasswordReset, "222222"))
	assert.NoError(t, m.ConsumeVerification(ctx, "hire@corp.com", "111111"))

	// Consuming the verification left the reset cycle untouched.
	assert.NoError(t, m.Verify(ctx, "hire@corp.com", PurposePasswordReset, "222222"))
}
