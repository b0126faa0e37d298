package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"hrms-portal/config/middleware"
	"hrms-portal/models"
	util "hrms-portal/pkg/utils"
	"hrms-portal/repository"
	"hrms-portal/service"
)

type OTPHandler struct {
	otp   *service.OTPService
	users repository.UserRepository
}

func NewOTPHandler(otp *service.OTPService, users repository.UserRepository) *OTPHandler {
	return &OTPHandler{otp: otp, users: users}
}

// RequestOTP godoc
// @Summary Request OTP
// @Description Sends a 6-digit verification code to the phone number. Any earlier code for the number stops working.
// @Tags OTP
// @Accept json
// @Produce json
// @Param request body models.OTPRequestPayload true "Phone number"
// @Success 200 {object} models.OTPRequestSuccessResponse
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 502 {object} models.OTPRequestSuccessResponse "Code stored but delivery failed"
// @Failure 500 {object} models.ErrorResponse
// @Router /otp/request [post]
func (h *OTPHandler) RequestOTP(c *fiber.Ctx) error {
	return h.issue(c, h.otp.RequestOTP)
}

// ResendOTP godoc
// @Summary Resend OTP
// @Description Issues a fresh code, exactly like a new request.
// @Tags OTP
// @Accept json
// @Produce json
// @Param request body models.OTPRequestPayload true "Phone number"
// @Success 200 {object} models.OTPRequestSuccessResponse
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 502 {object} models.OTPRequestSuccessResponse "Code stored but delivery failed"
// @Failure 500 {object} models.ErrorResponse
// @Router /otp/resend [post]
func (h *OTPHandler) ResendOTP(c *fiber.Ctx) error {
	return h.issue(c, h.otp.ResendOTP)
}

func (h *OTPHandler) issue(c *fiber.Ctx, send func(context.Context, string) (*models.OTPRequestResult, error)) error {
	var payload models.OTPRequestPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "details": err.Error()})
	}
	payload.PhoneNumber = strings.TrimSpace(payload.PhoneNumber)
	if errs := util.ValidateStruct(payload); errs != nil {
		return validationFailed(c, errs)
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	result, err := send(ctx, payload.PhoneNumber)
	if errors.Is(err, service.ErrOTPDeliveryFailed) && result != nil {
		return c.Status(fiber.StatusBadGateway).JSON(models.OTPRequestSuccessResponse{
			Message:     "Failed to send OTP. Please try again.",
			PhoneNumber: result.ConfirmationHint,
			ExpiresAt:   result.ExpiresAt.UTC().Format(time.RFC3339),
		})
	}
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(models.OTPRequestSuccessResponse{
		Message:     "OTP sent successfully. Please check your phone.",
		PhoneNumber: result.ConfirmationHint,
		ExpiresAt:   result.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// VerifyOTP godoc
// @Summary Verify OTP
// @Description Checks a code. Each wrong code uses one of five attempts.
// @Tags OTP
// @Accept json
// @Produce json
// @Param request body models.OTPVerifyPayload true "Phone number and code"
// @Success 200 {object} models.OTPVerifySuccessResponse
// @Failure 400 {object} models.OTPErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /otp/verify [post]
func (h *OTPHandler) VerifyOTP(c *fiber.Ctx) error {
	payload, err := h.verify(c)
	if payload == nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(models.OTPVerifySuccessResponse{
		Message:  "OTP verified successfully",
		Verified: true,
	})
}

// VerifyAndUpdatePhone godoc
// @Summary Verify OTP and save phone
// @Description Verifies the code and stores the phone number as the caller's verified phone.
// @Tags OTP
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.OTPVerifyPayload true "Phone number and code"
// @Success 200 {object} object{message=string,user=models.User}
// @Failure 400 {object} models.OTPErrorResponse
// @Failure 401 {object} models.UnauthorizedErrorResponse
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Failure 500 {object} models.ErrorResponse
// @Router /otp/verify-and-update [post]
func (h *OTPHandler) VerifyAndUpdatePhone(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized: invalid token claims"})
	}

	payload, err := h.verify(c)
	if payload == nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	user, err := h.users.UpdateVerifiedPhone(ctx, claims.UserID, payload.PhoneNumber)
	if errors.Is(err, repository.ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Phone number verified and updated successfully",
		"user":    user,
	})
}

// verify parses the payload and checks the code. When it returns a nil
// payload the failure response has already been written.
func (h *OTPHandler) verify(c *fiber.Ctx) (*models.OTPVerifyPayload, error) {
	var payload models.OTPVerifyPayload
	if err := c.BodyParser(&payload); err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "details": err.Error()})
	}
	payload.PhoneNumber = strings.TrimSpace(payload.PhoneNumber)
	if errs := util.ValidateStruct(payload); errs != nil {
		return nil, validationFailed(c, errs)
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	if err := h.otp.VerifyOTP(ctx, payload.PhoneNumber, payload.OTP); err != nil {
		return nil, writeServiceError(c, err)
	}
	return &payload, nil
}
