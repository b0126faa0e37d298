package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	util "hrms-portal/pkg/utils"
)

const AppName = "hrms-portal"

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"

	NotifierDriverLog    = "log"
	NotifierDriverTwilio = "twilio"
)

type AppConfig struct {
	Port          string
	MONGOSTRING   string
	MongoDBName   string
	PASETO_SECRET string
	PasetoKey     []byte
	// EphemeralPasetoKey is set when the key was generated for this process.
	EphemeralPasetoKey bool

	StoreDriver string
	Location    *time.Location

	OTPTTL           time.Duration
	OTPMaxAttempts   int
	OTPSweepSchedule string

	NotifierDriver   string
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromPhone  string

	AllowedOrigins []string

	SeedDemoUsers bool
}

// LoadConfig loads configuration from .env and the environment. Invalid
// values stop the process.
func LoadConfig() *AppConfig {
	if err := godotenv.Load(); err != nil {
		util.Logger.Warnf("Error loading .env file (might not exist in production): %v", err)
	}

	cfg, err := Parse()
	if err != nil {
		util.Logger.Fatalf("Invalid configuration: %v", err)
	}
	for _, w := range cfg.Warnings() {
		util.Logger.Warn(w)
	}
	return cfg
}

// Parse builds an AppConfig from the current environment without loading .env.
// PASETO_SECRET is required unless STORE_DRIVER=memory, where a random key is
// generated instead.
func Parse() (*AppConfig, error) {
	storeDriver := strings.ToLower(getEnv("STORE_DRIVER", StoreDriverMongo))
	mongoString := getEnv("MONGOSTRING", "")
	switch storeDriver {
	case StoreDriverMongo:
		if mongoString == "" {
			return nil, fmt.Errorf("MONGOSTRING is required when STORE_DRIVER=%s", StoreDriverMongo)
		}
	case StoreDriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", storeDriver)
	}

	secretBase64 := os.Getenv("PASETO_SECRET")
	var key []byte
	ephemeral := false
	if secretBase64 == "" {
		if storeDriver != StoreDriverMemory {
			return nil, fmt.Errorf("PASETO_SECRET is required when STORE_DRIVER=%s", storeDriver)
		}
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate PASETO key: %w", err)
		}
		secretBase64 = base64.URLEncoding.EncodeToString(key)
		ephemeral = true
	} else {
		decoded, err := DecodeSecret(secretBase64)
		if err != nil {
			return nil, err
		}
		key = decoded
	}

	loc, err := time.LoadLocation(getEnv("ATTENDANCE_TIMEZONE", "Asia/Jakarta"))
	if err != nil {
		return nil, fmt.Errorf("ATTENDANCE_TIMEZONE: %w", err)
	}

	ttl, err := time.ParseDuration(getEnv("OTP_TTL", "10m"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("OTP_TTL must be a positive duration, got %q", os.Getenv("OTP_TTL"))
	}

	maxAttempts, err := strconv.Atoi(getEnv("OTP_MAX_ATTEMPTS", "5"))
	if err != nil || maxAttempts < 1 {
		return nil, fmt.Errorf("OTP_MAX_ATTEMPTS must be a positive integer, got %q", os.Getenv("OTP_MAX_ATTEMPTS"))
	}

	seed, err := strconv.ParseBool(getEnv("SEED_DEMO_USERS", "false"))
	if err != nil {
		return nil, fmt.Errorf("SEED_DEMO_USERS must be a boolean, got %q", os.Getenv("SEED_DEMO_USERS"))
	}

	cfg := &AppConfig{
		Port:               getEnv("PORT", "3000"),
		MONGOSTRING:        mongoString,
		MongoDBName:        getEnv("MONGO_DB_NAME", DBName),
		PASETO_SECRET:      secretBase64,
		PasetoKey:          key,
		EphemeralPasetoKey: ephemeral,
		StoreDriver:        storeDriver,
		Location:           loc,
		OTPTTL:             ttl,
		OTPMaxAttempts:     maxAttempts,
		OTPSweepSchedule:   getEnv("OTP_SWEEP_SCHEDULE", "@every 1m"),
		NotifierDriver:     strings.ToLower(getEnv("NOTIFIER_DRIVER", NotifierDriverLog)),
		TwilioAccountSID:   getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:    getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFromPhone:    getEnv("TWILIO_FROM_PHONE", ""),
		AllowedOrigins:     splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
		SeedDemoUsers:      seed,
	}

	switch cfg.NotifierDriver {
	case NotifierDriverLog:
	case NotifierDriverTwilio:
		if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" || cfg.TwilioFromPhone == "" {
			return nil, fmt.Errorf("TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and TWILIO_FROM_PHONE are required when NOTIFIER_DRIVER=%s", NotifierDriverTwilio)
		}
	default:
		return nil, fmt.Errorf("unknown NOTIFIER_DRIVER %q", cfg.NotifierDriver)
	}

	return cfg, nil
}

// Warnings lists settings that are valid but unsafe outside local development.
func (cfg *AppConfig) Warnings() []string {
	var out []string
	if cfg.EphemeralPasetoKey {
		out = append(out, "PASETO_SECRET is not set; using a random key, tokens stop working on restart")
	}
	if cfg.NotifierDriver == NotifierDriverLog && cfg.StoreDriver == StoreDriverMongo {
		out = append(out, "NOTIFIER_DRIVER=log writes verification codes to the log; use NOTIFIER_DRIVER=twilio in production")
	}
	if cfg.wildcardOrigin() {
		out = append(out, "CORS_ALLOWED_ORIGINS=* allows any origin; credentials are disabled")
	}
	return out
}

// DecodeSecret accepts URL-safe (with or without padding) and standard base64
// and requires exactly 32 bytes, the PASETO v2 local key size.
func DecodeSecret(secret string) ([]byte, error) {
	decoded, err := base64.URLEncoding.DecodeString(secret)
	if err != nil {
		decoded, err = base64.RawURLEncoding.DecodeString(secret)
		if err != nil {
			decoded, err = base64.StdEncoding.DecodeString(secret)
			if err != nil {
				return nil, fmt.Errorf("PASETO_SECRET is not valid base64: %w", err)
			}
		}
	}

	if len(decoded) != 32 {
		return nil, fmt.Errorf("PASETO_SECRET (decoded) must be exactly 32 bytes long, got %d", len(decoded))
	}
	return decoded, nil
}

// Helper function to get environment variable or fallback to default
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
