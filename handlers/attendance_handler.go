package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"hrms-portal/config/middleware"
	"hrms-portal/models"
	util "hrms-portal/pkg/utils"
	"hrms-portal/service"
)

const requestTimeout = 5 * time.Second

type AttendanceHandler struct {
	attendance *service.AttendanceService
}

func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// CheckIn godoc
// @Summary Check in
// @Description Opens a new shift for today. Fails while a shift is still open.
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.CheckInSuccessResponse
// @Failure 401 {object} models.UnauthorizedErrorResponse
// @Failure 409 {object} models.ErrorResponse "Already checked in"
// @Failure 500 {object} models.ErrorResponse
// @Router /attendance/check-in [post]
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized: invalid token claims"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	day, err := h.attendance.CheckIn(ctx, claims.UserID)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.CheckInSuccessResponse{
		Message:    "Checked in successfully",
		Attendance: *day,
	})
}

// CheckOut godoc
// @Summary Check out
// @Description Closes the open shift and recalculates today's working hours and status.
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.CheckInSuccessResponse
// @Failure 401 {object} models.UnauthorizedErrorResponse
// @Failure 409 {object} models.ErrorResponse "No active shift or already checked out"
// @Failure 500 {object} models.ErrorResponse
// @Router /attendance/check-out [post]
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized: invalid token claims"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	day, err := h.attendance.CheckOut(ctx, claims.UserID)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(models.CheckInSuccessResponse{
		Message:    "Checked out successfully",
		Attendance: *day,
	})
}

// GetTodayStatus godoc
// @Summary Today's attendance
// @Description Returns today's shifts, whether a shift is open, working hours and status.
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.TodayStatusResponse
// @Failure 401 {object} models.UnauthorizedErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /attendance/today [get]
func (h *AttendanceHandler) GetTodayStatus(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized: invalid token claims"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	status, err := h.attendance.TodayStatus(ctx, claims.UserID)
	if err != nil {
		return writeServiceError(c, err)
	}

	resp := models.TodayStatusResponse{Attendance: *status}
	if !status.HasRecord {
		resp.Message = "No attendance record for today"
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetHistory godoc
// @Summary My attendance history
// @Description Lists the caller's attendance days newest first, optionally filtered by month and year.
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year"
// @Success 200 {array} models.AttendanceDay
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 401 {object} models.UnauthorizedErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /attendance/history [get]
func (h *AttendanceHandler) GetHistory(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized: invalid token claims"})
	}
	return h.history(c, claims.UserID)
}

// GetUserHistory godoc
// @Summary Attendance history of a user
// @Description Lists any user's attendance days newest first (admin only).
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year"
// @Success 200 {array} models.AttendanceDay
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 401 {object} models.UnauthorizedErrorResponse
// @Failure 403 {object} models.ForbiddenErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /attendance/users/{id}/history [get]
func (h *AttendanceHandler) GetUserHistory(c *fiber.Ctx) error {
	userID := c.Params("id")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User ID is required"})
	}
	return h.history(c, userID)
}

func (h *AttendanceHandler) history(c *fiber.Ctx, userID string) error {
	var q models.HistoryQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid query parameters", "details": err.Error()})
	}
	if errs := util.ValidateStruct(q); errs != nil {
		return validationFailed(c, errs)
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	days, err := h.attendance.History(ctx, userID, q)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(days)
}
