package service

import (
	"errors"
	"fmt"
)

// Attendance conflicts. None of them mutate state, so callers may retry
// after fetching fresh status.
var (
	ErrAlreadyCheckedIn    = errors.New("already checked in")
	ErrAlreadyCheckedOut   = errors.New("already checked out")
	ErrNoActiveShift       = errors.New("no active shift")
	ErrInvalidTimestamp    = errors.New("invalid timestamp")
	ErrInvalidHistoryQuery = errors.New("invalid history query")
)

// OTP failures.
var (
	ErrInvalidPhoneFormat   = errors.New("invalid phone number format")
	ErrInvalidCodeFormat    = errors.New("otp must be a 6-digit code")
	ErrOTPNotFound          = errors.New("otp not found or expired")
	ErrOTPExpired           = errors.New("otp has expired")
	ErrOTPAttemptsExhausted = errors.New("maximum verification attempts exceeded")
	ErrOTPMismatch          = errors.New("invalid otp")
	ErrOTPDeliveryFailed    = errors.New("failed to deliver otp")
)

// ErrConcurrentUpdate is returned when the optimistic-lock loop keeps losing
// to concurrent writers on the same key.
var ErrConcurrentUpdate = errors.New("too much contention, please retry")

// MismatchError reports a wrong code together with the attempts still
// available. It matches ErrOTPMismatch with errors.Is.
type MismatchError struct {
	AttemptsLeft int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: %d attempts left", ErrOTPMismatch, e.AttemptsLeft)
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrOTPMismatch
}
