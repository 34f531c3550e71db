// Package config reads service settings from the environment, after loading
// an optional .env file.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/themobileprof/careportal-assistant/internal/store"
)

// Config holds all service settings
type Config struct {
	Port        string
	Environment string
	JWTSecret   string

	NLUBaseURL     string
	NLUMessagePath string
	NLUTimeout     time.Duration

	BreakerMaxFailures  int
	BreakerResetTimeout time.Duration

	StoreDriver   string
	DatabaseURL   string
	MongoDatabase string

	SpecialtyRulesFile string
	SessionTTL         time.Duration
	TranscriptLimit    int
	RateLimitPerMin    int
	AllowedOrigins     []string
}

// Load reads .env (if present) and the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a Config from the current environment without validating it
func FromEnv() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		JWTSecret:   getEnv("JWT_SECRET", ""),

		NLUBaseURL:     getEnv("NLU_BASE_URL", ""),
		NLUMessagePath: getEnv("NLU_MESSAGE_PATH", "/api/chat/intent"),
		NLUTimeout:     getEnvAsDuration("NLU_TIMEOUT", 0),

		BreakerMaxFailures:  getEnvAsInt("BREAKER_MAX_FAILURES", 5),
		BreakerResetTimeout: getEnvAsDuration("BREAKER_RESET_TIMEOUT", 30*time.Second),

		StoreDriver:   getEnv("STORE_DRIVER", store.DriverMemory),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		MongoDatabase: getEnv("MONGO_DATABASE", "careportal"),

		SpecialtyRulesFile: getEnv("SPECIALTY_RULES_FILE", ""),
		SessionTTL:         getEnvAsDuration("SESSION_TTL", 30*time.Minute),
		TranscriptLimit:    getEnvAsInt("TRANSCRIPT_LIMIT", 200),
		RateLimitPerMin:    getEnvAsInt("RATE_LIMIT_PER_MIN", 100),
		AllowedOrigins:     getEnvAsSlice("ALLOWED_ORIGINS", nil),
	}
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var errs []error

	if _, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Errorf("PORT must be numeric, got %q", c.Port))
	}
	if c.NLUBaseURL == "" {
		errs = append(errs, errors.New("NLU_BASE_URL is required"))
	}
	if !strings.HasPrefix(c.NLUMessagePath, "/") {
		errs = append(errs, fmt.Errorf("NLU_MESSAGE_PATH must start with /, got %q", c.NLUMessagePath))
	}
	if c.NLUTimeout < 0 {
		errs = append(errs, errors.New("NLU_TIMEOUT must not be negative"))
	}
	if c.BreakerMaxFailures < 1 {
		errs = append(errs, errors.New("BREAKER_MAX_FAILURES must be at least 1"))
	}
	if c.BreakerResetTimeout <= 0 {
		errs = append(errs, errors.New("BREAKER_RESET_TIMEOUT must be positive"))
	}

	switch c.StoreDriver {
	case store.DriverMemory:
	case store.DriverPostgres, store.DriverSQLite, store.DriverMongo:
		if c.DatabaseURL == "" {
			errs = append(errs, fmt.Errorf("DATABASE_URL is required for STORE_DRIVER=%s", c.StoreDriver))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}

	if c.SessionTTL < 0 {
		errs = append(errs, errors.New("SESSION_TTL must not be negative"))
	}
	if c.TranscriptLimit < 0 {
		errs = append(errs, errors.New("TRANSCRIPT_LIMIT must not be negative"))
	}
	if c.RateLimitPerMin < 1 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MIN must be at least 1"))
	}

	return errors.Join(errs...)
}

// IsProduction reports whether ENVIRONMENT is production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %s", key, raw, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
