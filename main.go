package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"hrms-portal/config"
	_ "hrms-portal/docs"
	"hrms-portal/pkg/clock"
	"hrms-portal/pkg/notifier"
	"hrms-portal/pkg/paseto"
	util "hrms-portal/pkg/utils"
	"hrms-portal/repository"
	"hrms-portal/router"
	"hrms-portal/scheduler"
	"hrms-portal/seeder"
	"hrms-portal/service"
	_ "time/tzdata"
)

// @title HRMS Portal API
// @version 1.0
// @description Shift-based attendance tracking and phone verification by one-time code.
//
// @contact.name API Support
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:3000
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the PASETO token.
//
// @tag.name Attendance
// @tag.description Check-in, check-out and attendance history
//
// @tag.name OTP
// @tag.description Phone verification by one-time code
//
// @tag.name Admin
// @tag.description Admin only endpoints
func main() {
	util.InitLogger(config.AppName)

	cfg := config.LoadConfig()
	config.DBName = cfg.MongoDBName

	var (
		attendanceRepo repository.AttendanceRepository
		otpRepo        repository.OTPRepository
		userRepo       repository.UserRepository
	)

	switch cfg.StoreDriver {
	case config.StoreDriverMongo:
		if err := config.MongoConnect(cfg.MONGOSTRING); err != nil {
			util.Logger.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer config.DisconnectDB()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := config.InitDatabase(ctx); err != nil {
			cancel()
			util.Logger.Fatalf("Failed to initialise database indexes: %v", err)
		}
		cancel()

		attendanceRepo = repository.NewAttendanceRepository(config.GetCollection(config.AttendanceCollection))
		otpRepo = repository.NewOTPRepository(config.GetCollection(config.OTPCollection))
		userRepo = repository.NewUserRepository(config.GetCollection(config.UserCollection))
	default:
		util.Logger.Warn("Using in-memory storage; data is lost on restart")
		attendanceRepo = repository.NewMemoryAttendanceRepository()
		otpRepo = repository.NewMemoryOTPRepository()
		userRepo = repository.NewMemoryUserRepository()
	}

	tokens, err := paseto.NewValidator(cfg.PasetoKey)
	if err != nil {
		util.Logger.Fatalf("Failed to initialise token validator: %v", err)
	}

	if cfg.SeedDemoUsers {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if _, err := seeder.SeedUsers(ctx, userRepo, tokens); err != nil {
			util.Logger.WithError(err).Error("Seeding demo users failed")
		}
		cancel()
	}

	sms, err := notifier.New(cfg)
	if err != nil {
		util.Logger.Fatalf("Failed to initialise notifier: %v", err)
	}

	clk := clock.System()
	attendanceService := service.NewAttendanceService(attendanceRepo, clk, cfg.Location)
	otpService := service.NewOTPService(otpRepo, sms, clk, cfg.OTPTTL, cfg.OTPMaxAttempts)

	app := fiber.New(fiber.Config{AppName: config.AppName})
	app.Use(requestid.New())
	app.Use(recover.New())
	config.SetupCORS(app, cfg)
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	router.SetupRoutes(app, router.Dependencies{
		Tokens:     tokens,
		Attendance: attendanceService,
		OTP:        otpService,
		Users:      userRepo,
	})

	eviction, err := scheduler.NewOTPEviction(otpService, cfg.OTPSweepSchedule)
	if err != nil {
		util.Logger.Fatalf("Failed to schedule OTP eviction: %v", err)
	}
	eviction.Start()

	go func() {
		util.Logger.Infof("Server running on port %s", cfg.Port)
		util.Logger.Infof("API Documentation: http://localhost:%s/docs/index.html", cfg.Port)
		util.Logger.Infof("CORS enabled for origins: %v", config.GetAllowedOrigins(cfg))
		if err := app.Listen(":" + cfg.Port); err != nil {
			util.Logger.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	eviction.Stop(ctx)
	if err := app.ShutdownWithContext(ctx); err != nil {
		util.Logger.WithError(err).Error("Server shutdown failed")
	}
}
