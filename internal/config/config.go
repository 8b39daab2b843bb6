package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration. It is loaded once at startup and
// passed explicitly to the pieces that need it; nothing reads the environment
// after LoadConfig returns.
type Config struct {
	Port        string
	Environment string
	Origin      string

	MongoURI      string
	MongoDatabase string

	JWTSecret        string
	JWTExpireHours   int
	CookieExpireDays int

	RateLimitMax    int
	RateLimitWindow time.Duration

	TextbeltAPIKey string
}

// LoadConfig reads configuration from environment variables, applying the
// same defaults for local development the original deployment used.
func LoadConfig() (*Config, error) {
	jwtExpireHours, err := getEnvInt("JWT_EXPIRE_HOURS", 24)
	if err != nil {
		return nil, err
	}
	cookieExpireDays, err := getEnvInt("JWT_COOKIE_EXPIRE", 1)
	if err != nil {
		return nil, err
	}
	rateLimitMax, err := getEnvInt("RATE_LIMIT_MAX", 100)
	if err != nil {
		return nil, err
	}
	rateLimitWindowMin, err := getEnvInt("RATE_LIMIT_WINDOW_MINUTES", 15)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:             getEnv("API_PORT", "8080"),
		Environment:      getEnv("APP_ENV", "development"),
		Origin:           getEnv("CORS_ORIGIN", "*"),
		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:    getEnv("MONGO_DATABASE", "dentist_booking"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTExpireHours:   jwtExpireHours,
		CookieExpireDays: cookieExpireDays,
		RateLimitMax:     rateLimitMax,
		RateLimitWindow:  time.Duration(rateLimitWindowMin) * time.Minute,
		TextbeltAPIKey:   os.Getenv("TEXTBELT_API_KEY"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	return cfg, nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
