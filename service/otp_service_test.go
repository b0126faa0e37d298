package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms-portal/pkg/clock"
	"hrms-portal/repository"
)

const testPhone = "+628123456789"

type capturingNotifier struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (n *capturingNotifier) Send(_ context.Context, phone, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, phone+": "+message)
	return n.err
}

func (n *capturingNotifier) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.sent) == 0 {
		return ""
	}
	return n.sent[len(n.sent)-1]
}

type otpFixture struct {
	svc      *OTPService
	repo     *repository.MemoryOTPRepository
	notifier *capturingNotifier
	clock    *clock.Mock
}

// newOTPFixture hands out the given codes in order.
func newOTPFixture(codes ...string) *otpFixture {
	f := &otpFixture{
		repo:     repository.NewMemoryOTPRepository(),
		notifier: &capturingNotifier{},
		clock:    clock.NewMock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)),
	}
	f.svc = NewOTPService(f.repo, f.notifier, f.clock, 0, 0)

	next := 0
	f.svc.generateCode = func() (string, error) {
		if next >= len(codes) {
			return "", errors.New("no more codes")
		}
		code := codes[next]
		next++
		return code, nil
	}
	return f
}

func TestRequestOTPStoresAndSendsCode(t *testing.T) {
	f := newOTPFixture("123456")

	res, err := f.svc.RequestOTP(context.Background(), "  "+testPhone+" ")
	require.NoError(t, err)
	assert.Equal(t, "6789", res.ConfirmationHint)
	assert.Equal(t, f.clock.Now().Add(10*time.Minute), res.ExpiresAt)

	assert.Contains(t, f.notifier.last(), testPhone)
	assert.Contains(t, f.notifier.last(), "123456")

	ch, err := f.repo.FindByPhone(context.Background(), testPhone)
	require.NoError(t, err)
	require.NotNil(t, ch)
	assert.Equal(t, "123456", ch.Code)
	assert.Zero(t, ch.Attempts)
	assert.False(t, ch.IsVerified)
	assert.NotEmpty(t, ch.ChallengeID)
}

func TestRequestOTPRejectsInvalidPhone(t *testing.T) {
	f := newOTPFixture("123456")

	for _, phone := range []string{"", "abc", "12345", "+62 812 abc 7890"} {
		_, err := f.svc.RequestOTP(context.Background(), phone)
		assert.ErrorIs(t, err, ErrInvalidPhoneFormat, phone)
	}
	assert.Zero(t, f.repo.Len())
	assert.Empty(t, f.notifier.sent)
}

func TestRequestOTPSupersedesPreviousChallenge(t *testing.T) {
	ctx := context.Background()
	f := newOTPFixture("111111", "222222")

	_, err := f.svc.RequestOTP(ctx, testPhone)
	require.NoError(t, err)
	_, err = f.svc.ResendOTP(ctx, testPhone)
	require.NoError(t, err)
	assert.Equal(t, 1, f.repo.Len())

	err = f.svc.VerifyOTP(ctx, testPhone, "111111")
	assert.ErrorIs(t, err, ErrOTPMismatch)

	assert.NoError(t, f.svc.VerifyOTP(ctx, testPhone, "222222"))
}

func TestSupersessionResetsAttempts(t *testing.T) {
	ctx := context.Background()
	f := newOTPFixture("111111", "222222")

	_, err := f.svc.RequestOTP(ctx, testPhone)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		require.ErrorIs(t, f.svc.VerifyOTP(ctx, testPhone, "000000"), ErrOTPMismatch)
	}

	_, err = f.svc.RequestOTP(ctx, testPhone)
	require.NoError(t, err)

	var mismatch *MismatchError
	require.ErrorAs(t, f.svc.VerifyOTP(ctx, testPhone, "000000"), &mismatch)
	assert.Equal(t, 4, mismatch.AttemptsLeft)
}

func TestVerifyOTPThreeWrongLeavesTwoAttempts(t *testing.T) {
	ctx := context.Background()
	f := newOTPFixture("123456")

	_, err := f.svc.RequestOTP(ctx, testPhone)
	require.NoError(t, err)

	var err3 error
	for i := 0; i < 3; i++ {
		err3 = f.svc.VerifyOTP(ctx, testPhone, "654321")
	}

	var mismatch *MismatchError
	require.ErrorAs(t, err3, &mismatch)
	assert.Equal(t, 2, mismatch.AttemptsLeft)
	assert.ErrorIs(t, err3, ErrOTPMismatch)
}

func TestVerifyOTPExhaustionDeletesChallenge(t *testing.T) {
	ctx := context.Background()
	f := newOTPFixture("123456")

	_, err := f.svc.RequestOTP(ctx, testPhone)
	require.NoError(t, err)

	for i := 1; i <= 5; i++ {
		var mismatch *MismatchError
		require.ErrorAs(t, f.svc.VerifyOTP(ctx, testPhone, "000000"), &mismatch)
		assert.Equal(t, 5-i, mismatch.AttemptsLeft)
	}

	// even the right code is refused once the attempts are used up
	err = f.svc.VerifyOTP(ctx, testPhone, "123456")
	assert.ErrorIs(t, err, ErrOTPAttemptsExhausted)
	assert.Zero(t, f.repo.Len())

	err = f.svc.VerifyOTP(ctx, testPhone, "123456")
	assert.ErrorIs(t, err, ErrOTPNotFound)
}

func TestVerifyOTPExpiry(t *testing.T) {
	ctx := context.Background()
	f := newOTPFixture("123456", "654321")

	_, err := f.svc.RequestOTP(ctx, testPhone)
	require.NoError(t, err)

	f.clock.Advance(10*time.Minute + time.Second)
	err = f.svc.VerifyOTP(ctx, testPhone, "123456")
	assert.ErrorIs(t, err, ErrOTPExpired)
	assert.Zero(t, f.repo.Len())

	// expiry is exclusive of the exact boundary
	_, err = f.svc.RequestOTP(ctx, testPhone)
	require.NoError(t, err)
	f.clock.Advance(10 * time.Minute)
	assert.NoError(t, f.svc.VerifyOTP(ctx, testPhone, "654321"))
}

func TestVerifyOTPExpiryWinsOverExhaustedAttempts(t *testing.T) {
	ctx := context.Background()
	f := newOTPFixture("123456")

	_, err := f.svc.RequestOTP(ctx, testPhone)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.ErrorIs(t, f.svc.VerifyOTP(ctx, testPhone, "000000"), ErrOTPMismatch)
	}

	f.clock.Advance(10*time.Minute + time.Second)
	err = f.svc.VerifyOTP(ctx, testPhone, "123456")
	assert.ErrorIs(t, err, ErrOTPExpired)
	assert.NotErrorIs(t, err, ErrOTPAttemptsExhausted)
	assert.Zero(t, f.repo.Len())
}

func TestVerifyOTPRejectsInvalidPhone(t *testing.T) {
	ctx := context.Background()
	f := newOTPFixture("123456")

	_, err := f.svc.RequestOTP(ctx, testPhone)
	require.NoError(t, err)

	for _, phone := range []string{"", "abc", "12345", "+62 812 abc 7890"} {
		assert.ErrorIs(t, f.svc.VerifyOTP(ctx, phone, "123456"), ErrInvalidPhoneFormat, phone)
	}

	ch, err := f.repo.FindByPhone(ctx, testPhone)
	require.NoError(t, err)
	assert.Zero(t, ch.Attempts)
}

func TestVerifyOTPNotFound(t *testing.T) {
	f := newOTPFixture()
	assert.ErrorIs(t, f.svc.VerifyOTP(context.Background(), testPhone, "123456"), ErrOTPNotFound)
}

func TestVerifyOTPMalformedCodeTouchesNothing(t *testing.T) {
	ctx := context.Background()
	f := newOTPFixture("123456")

	_, err := f.svc.RequestOTP(ctx, testPhone)
	require.NoError(t, err)

	for _, code := range []string{"", "12345", "1234567", "12a456", " 123456"} {
		assert.ErrorIs(t, f.svc.VerifyOTP(ctx, testPhone, code), ErrInvalidCodeFormat, code)
	}

	ch, err := f.repo.FindByPhone(ctx, testPhone)
	require.NoError(t, err)
	assert.Zero(t, ch.Attempts)
}

func TestVerifyOTPSuccessAndReplay(t *testing.T) {
	ctx := context.Background()
	f := newOTPFixture("123456")

	_, err := f.svc.RequestOTP(ctx, testPhone)
	require.NoError(t, err)

	require.NoError(t, f.svc.VerifyOTP(ctx, testPhone, "123456"))

	ch, err := f.repo.FindByPhone(ctx, testPhone)
	require.NoError(t, err)
	assert.True(t, ch.IsVerified)
	require.NotNil(t, ch.VerifiedAt)

	f.clock.Advance(time.Minute)
	assert.NoError(t, f.svc.VerifyOTP(ctx, testPhone, "123456"), "replay within expiry still succeeds")
}

func TestRequestOTPDeliveryFailureKeepsChallenge(t *testing.T) {
	ctx := context.Background()
	f := newOTPFixture("123456")
	f.notifier.err = errors.New("carrier unreachable")

	res, err := f.svc.RequestOTP(ctx, testPhone)
	assert.ErrorIs(t, err, ErrOTPDeliveryFailed)
	assert.True(t, strings.Contains(err.Error(), "carrier unreachable"))
	require.NotNil(t, res)
	assert.Equal(t, "6789", res.ConfirmationHint)

	assert.Equal(t, 1, f.repo.Len())
	assert.NoError(t, f.svc.VerifyOTP(ctx, testPhone, "123456"))
}

func TestRequestOTPGeneratorFailure(t *testing.T) {
	f := newOTPFixture()

	_, err := f.svc.RequestOTP(context.Background(), testPhone)
	assert.Error(t, err)
	assert.Zero(t, f.repo.Len())
}

func TestSweepExpired(t *testing.T) {
	ctx := context.Background()
	f := newOTPFixture("111111", "222222")

	_, err := f.svc.RequestOTP(ctx, testPhone)
	require.NoError(t, err)
	f.clock.Advance(6 * time.Minute)
	_, err = f.svc.RequestOTP(ctx, "+628987654321")
	require.NoError(t, err)

	f.clock.Advance(5 * time.Minute)
	removed, err := f.svc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
	assert.Equal(t, 1, f.repo.Len())
}

func TestConcurrentWrongGuessesAreAllCounted(t *testing.T) {
	ctx := context.Background()
	f := newOTPFixture("123456")

	_, err := f.svc.RequestOTP(ctx, testPhone)
	require.NoError(t, err)

	const guesses = 4
	errs := make([]error, guesses)
	var wg sync.WaitGroup
	for i := 0; i < guesses; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = f.svc.VerifyOTP(ctx, testPhone, "000000")
		}(i)
	}
	wg.Wait()

	mismatches := 0
	for _, err := range errs {
		if errors.Is(err, ErrOTPMismatch) {
			mismatches++
			continue
		}
		assert.ErrorIs(t, err, ErrConcurrentUpdate)
	}
	assert.GreaterOrEqual(t, mismatches, 1)

	ch, err := f.repo.FindByPhone(ctx, testPhone)
	require.NoError(t, err)
	assert.Equal(t, mismatches, ch.Attempts)
}
