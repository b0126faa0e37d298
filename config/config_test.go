package config

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setMemoryEnv(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("NOTIFIER_DRIVER", "log")
	t.Setenv("PASETO_SECRET", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
}

func setMongoEnv(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("MONGOSTRING", "mongodb://localhost:27017")
	t.Setenv("NOTIFIER_DRIVER", "twilio")
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_AUTH_TOKEN", "token")
	t.Setenv("TWILIO_FROM_PHONE", "+15550000000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
}

func TestParseDefaults(t *testing.T) {
	setMemoryEnv(t)

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Len(t, cfg.PasetoKey, 32)
	assert.True(t, cfg.EphemeralPasetoKey)
	assert.Equal(t, "Asia/Jakarta", cfg.Location.String())
	assert.Equal(t, 10*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 5, cfg.OTPMaxAttempts)
	assert.Equal(t, "@every 1m", cfg.OTPSweepSchedule)
	assert.False(t, cfg.SeedDemoUsers)
}

func TestParseOverrides(t *testing.T) {
	setMemoryEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("ATTENDANCE_TIMEZONE", "UTC")
	t.Setenv("OTP_TTL", "5m")
	t.Setenv("OTP_MAX_ATTEMPTS", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://hr.example.com, https://admin.example.com")
	t.Setenv("SEED_DEMO_USERS", "true")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, 5*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 3, cfg.OTPMaxAttempts)
	assert.Equal(t, []string{"https://hr.example.com", "https://admin.example.com"}, cfg.AllowedOrigins)
	assert.True(t, cfg.SeedDemoUsers)
}

func TestParseRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"ATTENDANCE_TIMEZONE": "Mars/Olympus",
		"OTP_TTL":             "-1m",
		"OTP_MAX_ATTEMPTS":    "zero",
		"STORE_DRIVER":        "redis",
		"NOTIFIER_DRIVER":     "fax",
		"PASETO_SECRET":       "c2hvcnQ=",
		"SEED_DEMO_USERS":     "perhaps",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			setMemoryEnv(t)
			t.Setenv(key, value)
			_, err := Parse()
			assert.Error(t, err)
		})
	}
}

func TestParseDriverRequirements(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("MONGOSTRING", "")
	_, err := Parse()
	assert.ErrorContains(t, err, "MONGOSTRING")

	setMemoryEnv(t)
	t.Setenv("NOTIFIER_DRIVER", "twilio")
	t.Setenv("TWILIO_ACCOUNT_SID", "")
	_, err = Parse()
	assert.ErrorContains(t, err, "TWILIO_ACCOUNT_SID")
}

func TestParseRequiresSecretOutsideMemoryStore(t *testing.T) {
	setMongoEnv(t)
	t.Setenv("PASETO_SECRET", "")

	_, err := Parse()
	assert.ErrorContains(t, err, "PASETO_SECRET")

	t.Setenv("PASETO_SECRET", "aHJtcy1wb3J0YWwtZGV2LXNlY3JldC0zMi1ieXRlcyE=")
	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "hrms-portal-dev-secret-32-bytes!", string(cfg.PasetoKey))
	assert.False(t, cfg.EphemeralPasetoKey)
	assert.Empty(t, cfg.Warnings())
}

func TestParseMemoryStoreGeneratesKeyPerProcess(t *testing.T) {
	setMemoryEnv(t)

	first, err := Parse()
	require.NoError(t, err)
	second, err := Parse()
	require.NoError(t, err)

	assert.NotEqual(t, first.PasetoKey, second.PasetoKey)
	key, err := DecodeSecret(first.PASETO_SECRET)
	require.NoError(t, err)
	assert.Equal(t, first.PasetoKey, key)
	assert.Len(t, first.Warnings(), 1)
	assert.Contains(t, first.Warnings()[0], "PASETO_SECRET")
}

func TestWarningsForLogNotifierWithMongo(t *testing.T) {
	setMongoEnv(t)
	t.Setenv("PASETO_SECRET", "aHJtcy1wb3J0YWwtZGV2LXNlY3JldC0zMi1ieXRlcyE=")
	t.Setenv("NOTIFIER_DRIVER", "log")

	cfg, err := Parse()
	require.NoError(t, err)
	warnings := cfg.Warnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "NOTIFIER_DRIVER=log")
}

func TestDecodeSecretEncodings(t *testing.T) {
	key, err := DecodeSecret("aHJtcy1wb3J0YWwtZGV2LXNlY3JldC0zMi1ieXRlcyE=")
	require.NoError(t, err)
	assert.Equal(t, "hrms-portal-dev-secret-32-bytes!", string(key))

	key, err = DecodeSecret("aHJtcy1wb3J0YWwtZGV2LXNlY3JldC0zMi1ieXRlcyE")
	require.NoError(t, err)
	assert.Len(t, key, 32)

	_, err = DecodeSecret("not base64 at all!")
	assert.Error(t, err)
}

func TestSetupCORS(t *testing.T) {
	app := fiber.New()
	SetupCORS(app, &AppConfig{AllowedOrigins: []string{"https://hr.example.com"}})
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "https://hr.example.com")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "https://hr.example.com", resp.Header.Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))

	assert.Equal(t, defaultAllowedOrigins, GetAllowedOrigins(&AppConfig{}))
}

func TestSetupCORSWildcardDisablesCredentials(t *testing.T) {
	cfg := &AppConfig{AllowedOrigins: []string{"*"}}
	app := fiber.New()
	require.NotPanics(t, func() { SetupCORS(app, cfg) })
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "https://anywhere.example.com")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, cfg.Warnings(), "CORS_ALLOWED_ORIGINS=* allows any origin; credentials are disabled")
}
