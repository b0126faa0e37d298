package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"hrms-portal/models"
	util "hrms-portal/pkg/utils"
	"hrms-portal/service"
)

// writeServiceError maps domain errors from the service layer onto HTTP
// responses. Anything unrecognised is logged and reported as a 500.
func writeServiceError(c *fiber.Ctx, err error) error {
	var mismatch *service.MismatchError
	switch {
	case errors.As(err, &mismatch):
		left := mismatch.AttemptsLeft
		return c.Status(fiber.StatusBadRequest).JSON(models.OTPErrorResponse{Error: "Invalid OTP", AttemptsLeft: &left})

	case errors.Is(err, service.ErrInvalidPhoneFormat),
		errors.Is(err, service.ErrInvalidCodeFormat),
		errors.Is(err, service.ErrInvalidHistoryQuery):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, service.ErrAlreadyCheckedIn):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Already checked in. Please check out first."})
	case errors.Is(err, service.ErrAlreadyCheckedOut):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Already checked out. Please check in first."})
	case errors.Is(err, service.ErrNoActiveShift):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "No check-in found for today. Please check in first."})
	case errors.Is(err, service.ErrInvalidTimestamp),
		errors.Is(err, service.ErrConcurrentUpdate):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, service.ErrOTPNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(models.OTPErrorResponse{Error: "OTP not found or expired"})
	case errors.Is(err, service.ErrOTPExpired):
		return c.Status(fiber.StatusBadRequest).JSON(models.OTPErrorResponse{Error: "OTP has expired"})
	case errors.Is(err, service.ErrOTPAttemptsExhausted):
		return c.Status(fiber.StatusBadRequest).JSON(models.OTPErrorResponse{Error: "Maximum verification attempts exceeded"})

	case errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{"error": "Request timed out"})
	}

	util.Logger.WithError(err).WithField("path", c.Path()).Error("Unhandled service error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}

func validationFailed(c *fiber.Ctx, errs []*util.ErrorResponse) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "errors": errs})
}
