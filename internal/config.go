package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dukerupert/gamestore/internal/catalog"
	"github.com/dukerupert/gamestore/internal/pricing"
	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string
	Port     uint16
	BaseURL  string
	Session  SessionConfig
	Promo    PromoConfig
	Pricing  PricingConfig
	Cookie   CookieConfig
	Support  SupportConfig
	Sentry   SentryConfig

	// CORSAllowedOrigins lists origins allowed to call the JSON API from a
	// browser. Empty disables CORS headers.
	CORSAllowedOrigins []string
}

// SessionConfig controls the in-memory session store.
type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

// PromoConfig controls promo code matching and activation counting.
type PromoConfig struct {
	// SharedLedger makes activation limits process-wide instead of per session.
	SharedLedger bool

	// TrimInput strips surrounding whitespace before matching a code.
	TrimInput bool
}

type PricingConfig struct {
	Rounding pricing.Rounding
}

type CookieConfig struct {
	// Domain scopes the session cookie. Empty means host-only.
	Domain string
}

// SupportConfig holds the contact details shown in the support panel.
type SupportConfig struct {
	Email    string
	Telegram string
	Hours    string
}

// SentryConfig holds configuration for Sentry error tracking
type SentryConfig struct {
	DSN              string
	Enabled          bool
	Environment      string
	Release          string
	SampleRate       float64
	TracesSampleRate float64
	Debug            bool
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "prod"
}

func NewConfig() (*Config, error) {
	// Try to load .env from current directory, then walk up to find it (max 2 levels)
	err := godotenv.Load()
	if err != nil {
		// Walk up directories to find .env (max 2 parent directories)
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	return configFromEnv()
}

// configFromEnv builds the config from the process environment only.
func configFromEnv() (*Config, error) {
	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnvInt("PORT", 3000),
		BaseURL:  getEnv("BASE_URL", "http://localhost:3000"),
		Session: SessionConfig{
			TTL:           getEnvDuration("SESSION_TTL", 24*time.Hour),
			SweepInterval: getEnvDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
		},
		Promo: PromoConfig{
			SharedLedger: getEnvBool("SHARED_PROMO_LEDGER", false),
			TrimInput:    getEnvBool("PROMO_TRIM_INPUT", false),
		},
		Cookie: CookieConfig{
			Domain: getEnv("COOKIE_DOMAIN", ""),
		},
		Support: SupportConfig{
			Email:    getEnv("SUPPORT_EMAIL", catalog.DefaultSupportEmail),
			Telegram: getEnv("SUPPORT_TELEGRAM", catalog.DefaultSupportTelegram),
			Hours:    getEnv("SUPPORT_HOURS", catalog.DefaultSupportHours),
		},
		Sentry: SentryConfig{
			DSN:              getEnv("SENTRY_DSN", ""),
			Enabled:          getEnvBool("SENTRY_ENABLED", false), // Disabled by default for development
			Environment:      getEnv("SENTRY_ENVIRONMENT", "development"),
			Release:          getEnv("SENTRY_RELEASE", ""),
			SampleRate:       getEnvFloat("SENTRY_SAMPLE_RATE", 1.0),
			TracesSampleRate: getEnvFloat("SENTRY_TRACES_SAMPLE_RATE", 0.0), // Disabled by default
			Debug:            getEnvBool("SENTRY_DEBUG", false),
		},
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
	}

	// Validate env
	validEnv := cfg.Env == "dev" || cfg.Env == "prod"
	if !validEnv {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	// Validate log level
	validLevel := cfg.LogLevel == "info" || cfg.LogLevel == "debug" || cfg.LogLevel == "warn" || cfg.LogLevel == "error"
	if !validLevel {
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	rounding, err := pricing.ParseRounding(getEnv("PRICING_ROUNDING", string(pricing.RoundNone)))
	if err != nil {
		slog.Default().Warn("Invalid pricing rounding. Using default: none", slog.String("error", err.Error()))
		rounding = pricing.RoundNone
	}
	cfg.Pricing.Rounding = rounding

	if cfg.Session.TTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.Session.TTL)
	}
	if cfg.Session.SweepInterval <= 0 {
		slog.Default().Warn("Invalid session sweep interval. Using default: 5m", slog.Duration("value", cfg.Session.SweepInterval))
		cfg.Session.SweepInterval = 5 * time.Minute
	}

	if cfg.Sentry.Enabled && cfg.Sentry.DSN == "" {
		return nil, fmt.Errorf("SENTRY_DSN required when SENTRY_ENABLED is true")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		var intValue uint16
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var floatValue float64
		if _, err := fmt.Sscanf(value, "%f", &floatValue); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
		slog.Default().Warn("Invalid duration, using default", slog.String("key", key), slog.String("value", value))
	}
	return defaultValue
}

// getEnvList splits a comma-separated value, dropping blanks.
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
