package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"hrms-portal/config/middleware"
	_ "hrms-portal/docs"
	"hrms-portal/handlers"
	util "hrms-portal/pkg/utils"
	"hrms-portal/repository"
	"hrms-portal/service"
)

// Dependencies are the wired services the routes are served from.
type Dependencies struct {
	Tokens     middleware.TokenValidator
	Attendance *service.AttendanceService
	OTP        *service.OTPService
	Users      repository.UserRepository
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	util.Logger.Info("Registering application routes")

	attendanceHandler := handlers.NewAttendanceHandler(deps.Attendance)
	otpHandler := handlers.NewOTPHandler(deps.OTP, deps.Users)

	auth := middleware.AuthMiddleware(deps.Tokens)

	// Health check & Docs
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "HRMS Portal API",
			"status":  "running",
			"docs":    "/docs/index.html",
		})
	})
	app.Get("/docs/*", swagger.HandlerDefault)

	api := app.Group("/api/v1")

	attendanceGroup := api.Group("/attendance", auth)
	attendanceGroup.Post("/check-in", attendanceHandler.CheckIn)
	attendanceGroup.Post("/check-out", attendanceHandler.CheckOut)
	attendanceGroup.Get("/today", attendanceHandler.GetTodayStatus)
	attendanceGroup.Get("/history", attendanceHandler.GetHistory)
	attendanceGroup.Get("/users/:id/history", middleware.AdminMiddleware(), attendanceHandler.GetUserHistory)

	otpGroup := api.Group("/otp")
	otpGroup.Post("/request", otpHandler.RequestOTP)
	otpGroup.Post("/resend", otpHandler.ResendOTP)
	otpGroup.Post("/verify", otpHandler.VerifyOTP)
	otpGroup.Post("/verify-and-update", auth, otpHandler.VerifyAndUpdatePhone)

	util.Logger.Info("All routes registered")
}
