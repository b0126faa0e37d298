package models

type CheckInSuccessResponse struct {
	Message    string        `json:"message" example:"Checked in successfully"`
	Attendance AttendanceDay `json:"attendance"`
}

type TodayStatusResponse struct {
	Message    string      `json:"message,omitempty" example:"No attendance record for today"`
	Attendance TodayStatus `json:"attendance"`
}

type OTPRequestSuccessResponse struct {
	Message     string `json:"message" example:"OTP sent successfully. Please check your phone."`
	PhoneNumber string `json:"phone_number" example:"4567"`
	ExpiresAt   string `json:"expires_at" example:"2025-01-01T09:10:00Z"`
}

type OTPVerifySuccessResponse struct {
	Message  string `json:"message" example:"OTP verified successfully"`
	Verified bool   `json:"verified" example:"true"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid request body"`
	Details string `json:"details,omitempty" example:"validation failed"`
}

type OTPErrorResponse struct {
	Error        string `json:"error" example:"Invalid OTP"`
	AttemptsLeft *int   `json:"attempts_left,omitempty" example:"2"`
}

type ValidationErrorResponse struct {
	Error  string `json:"error" example:"Validation failed"`
	Errors []any  `json:"errors"`
}

type UnauthorizedErrorResponse struct {
	Error string `json:"error" example:"Invalid or expired token"`
}

type ForbiddenErrorResponse struct {
	Error string `json:"error" example:"Access denied. Admin role required"`
}
