// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
)

// DevJWTSecret is the fallback signing key. It is only accepted when
// ALLOW_DEV_SECRET is set.
const DevJWTSecret = "tripsplit-dev-secret-change-me"

type Config struct {
	// HTTP Server
	Port string

	// Database
	DBPath string

	// Sessions
	JWTSecret      string
	TokenTTL       time.Duration
	AllowDevSecret bool

	// Logging: debug, info, warn or error
	LogLevel string

	// Currency is the ISO 4217 code used when formatting amounts.
	Currency string
}

// Load reads the configuration from environment variables, falling back to
// development defaults. Callers load any .env file first.
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		DBPath:         getEnv("DB_PATH", "./data/tripsplit.db"),
		JWTSecret:      getEnv("JWT_SECRET", DevJWTSecret),
		TokenTTL:       getEnvDuration("TOKEN_TTL", 24*time.Hour),
		AllowDevSecret: getEnvBool("ALLOW_DEV_SECRET", false),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Currency:       strings.ToUpper(getEnv("CURRENCY", money.EUR)),
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if strings.TrimSpace(c.DBPath) == "" {
		errors = append(errors, "database path cannot be empty")
	}

	switch {
	case c.JWTSecret == DevJWTSecret && !c.AllowDevSecret:
		errors = append(errors, "JWT_SECRET must be set (or ALLOW_DEV_SECRET=true for local development)")
	case len(c.JWTSecret) < 16:
		errors = append(errors, fmt.Sprintf("JWT secret too short: %d characters, need at least 16", len(c.JWTSecret)))
	}

	if c.TokenTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid token TTL %v: must be at least 1 minute", c.TokenTTL))
	} else if c.TokenTTL > 30*24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid token TTL %v: must be at most 30 days", c.TokenTTL))
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	isValidLevel := false
	for _, level := range validLevels {
		if c.LogLevel == level {
			isValidLevel = true
			break
		}
	}
	if !isValidLevel {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLevels))
	}

	if money.GetCurrency(c.Currency) == nil {
		errors = append(errors, fmt.Sprintf("unknown currency '%s'", c.Currency))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
