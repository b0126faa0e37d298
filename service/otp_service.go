package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"hrms-portal/models"
	"hrms-portal/pkg/clock"
	"hrms-portal/pkg/notifier"
	util "hrms-portal/pkg/utils"
	"hrms-portal/repository"
)

const (
	DefaultOTPTTL         = 10 * time.Minute
	DefaultOTPMaxAttempts = 5
	otpCodeLength         = 6
)

type OTPService struct {
	repo         repository.OTPRepository
	notifier     notifier.Notifier
	clock        clock.Clock
	ttl          time.Duration
	maxAttempts  int
	generateCode func() (string, error)
}

// NewOTPService builds the verifier. Non-positive ttl or maxAttempts fall
// back to the defaults.
func NewOTPService(repo repository.OTPRepository, n notifier.Notifier, clk clock.Clock, ttl time.Duration, maxAttempts int) *OTPService {
	if ttl <= 0 {
		ttl = DefaultOTPTTL
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultOTPMaxAttempts
	}
	return &OTPService{
		repo:        repo,
		notifier:    n,
		clock:       clk,
		ttl:         ttl,
		maxAttempts: maxAttempts,
		generateCode: func() (string, error) {
			return util.RandomDigits(otpCodeLength)
		},
	}
}

// RequestOTP issues a fresh code for phone, superseding any earlier one, and
// sends it. If delivery fails the challenge is still stored and the result is
// returned together with an error wrapping ErrOTPDeliveryFailed.
func (s *OTPService) RequestOTP(ctx context.Context, phone string) (*models.OTPRequestResult, error) {
	phone = strings.TrimSpace(phone)
	if !util.IsValidPhone(phone) {
		return nil, ErrInvalidPhoneFormat
	}

	code, err := s.generateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate otp: %w", err)
	}

	now := s.clock.Now()
	challenge := &models.OTPChallenge{
		PhoneNumber: phone,
		ChallengeID: uuid.New().String(),
		Code:        code,
		ExpiresAt:   now.Add(s.ttl),
		CreatedAt:   now,
	}
	if err := s.repo.Replace(ctx, challenge); err != nil {
		return nil, err
	}

	result := &models.OTPRequestResult{
		ConfirmationHint: util.MaskPhone(phone),
		ExpiresAt:        challenge.ExpiresAt,
	}
	log := util.Logger.WithFields(logrus.Fields{
		"phone":        result.ConfirmationHint,
		"challenge_id": challenge.ChallengeID,
	})

	message := fmt.Sprintf("Your HRMS Portal verification code is: %s", code)
	if err := s.notifier.Send(ctx, phone, message); err != nil {
		log.WithError(err).Error("OTP delivery failed")
		return result, fmt.Errorf("%w: %v", ErrOTPDeliveryFailed, err)
	}

	log.Info("OTP issued")
	return result, nil
}

func (s *OTPService) ResendOTP(ctx context.Context, phone string) (*models.OTPRequestResult, error) {
	return s.RequestOTP(ctx, phone)
}

// VerifyOTP checks code against the live challenge for phone. Expired and
// exhausted challenges are removed; a wrong code consumes one attempt and
// yields a *MismatchError.
func (s *OTPService) VerifyOTP(ctx context.Context, phone, code string) error {
	phone = strings.TrimSpace(phone)
	if !util.IsValidPhone(phone) {
		return ErrInvalidPhoneFormat
	}
	if !util.IsValidOTPCode(code) {
		return ErrInvalidCodeFormat
	}

	log := util.Logger.WithField("phone", util.MaskPhone(phone))

	for attempt := 0; attempt < maxRetries; attempt++ {
		ch, err := s.repo.FindByPhone(ctx, phone)
		if err != nil {
			return err
		}
		if ch == nil {
			return ErrOTPNotFound
		}

		now := s.clock.Now()
		if now.After(ch.ExpiresAt) {
			if err := s.repo.Delete(ctx, phone, ch.ChallengeID); err != nil {
				return err
			}
			log.Info("OTP expired")
			return ErrOTPExpired
		}

		if ch.Attempts >= s.maxAttempts {
			if err := s.repo.Delete(ctx, phone, ch.ChallengeID); err != nil {
				return err
			}
			log.Warn("OTP attempts exhausted")
			return ErrOTPAttemptsExhausted
		}

		expected := ch.Version
		matched := subtle.ConstantTimeCompare([]byte(ch.Code), []byte(code)) == 1
		if matched {
			ch.IsVerified = true
			ch.VerifiedAt = &now
		} else {
			ch.Attempts++
		}

		ok, err := s.repo.UpdateIfVersion(ctx, ch, expected)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		if !matched {
			left := s.maxAttempts - ch.Attempts
			log.WithField("attempts_left", left).Info("OTP mismatch")
			return &MismatchError{AttemptsLeft: left}
		}
		log.Info("OTP verified")
		return nil
	}

	log.Warn("Gave up verifying OTP after concurrent writes")
	return ErrConcurrentUpdate
}

// SweepExpired removes every challenge past its expiry and reports how many
// were removed.
func (s *OTPService) SweepExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, s.clock.Now())
}
