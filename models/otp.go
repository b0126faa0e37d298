package models

import (
	"time"
)

// OTPChallenge is the single live one-time code issued for a phone number.
// The phone number is the document key, so a new request replaces the old one.
type OTPChallenge struct {
	PhoneNumber string     `json:"phone_number" bson:"_id"`
	ChallengeID string     `json:"challenge_id" bson:"challenge_id"`
	Code        string     `json:"-" bson:"code"`
	Attempts    int        `json:"attempts" bson:"attempts"`
	IsVerified  bool       `json:"is_verified" bson:"is_verified"`
	VerifiedAt  *time.Time `json:"verified_at,omitempty" bson:"verified_at,omitempty"`
	ExpiresAt   time.Time  `json:"expires_at" bson:"expires_at"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	Version     int64      `json:"-" bson:"version"`
}

type OTPRequestPayload struct {
	PhoneNumber string `json:"phone_number" validate:"required,phone"`
}

type OTPVerifyPayload struct {
	PhoneNumber string `json:"phone_number" validate:"required,phone"`
	OTP         string `json:"otp" validate:"required,otpcode"`
}

// OTPRequestResult never carries the code itself.
type OTPRequestResult struct {
	ConfirmationHint string    `json:"phone_number"`
	ExpiresAt        time.Time `json:"expires_at"`
}
