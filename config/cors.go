package config

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// GetAllowedOrigins returns the configured origins, or the local development
// defaults when CORS_ALLOWED_ORIGINS is empty.
func GetAllowedOrigins(cfg *AppConfig) []string {
	if cfg != nil && len(cfg.AllowedOrigins) > 0 {
		return cfg.AllowedOrigins
	}
	return defaultAllowedOrigins
}

func (cfg *AppConfig) wildcardOrigin() bool {
	return cfg != nil && slices.Contains(cfg.AllowedOrigins, "*")
}

// SetupCORS allows credentials for an explicit origin list only. A "*" entry
// opens every origin and turns credentials off.
func SetupCORS(app *fiber.App, cfg *AppConfig) {
	allowOrigins := strings.Join(GetAllowedOrigins(cfg), ",")
	credentials := true
	if cfg.wildcardOrigin() {
		allowOrigins = "*"
		credentials = false
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS, PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID",
		AllowCredentials: credentials,
		ExposeHeaders:    "Content-Length, Content-Type, X-Request-ID",
	}))
}
