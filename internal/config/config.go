// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the web server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// RedisURL is the session store location, e.g. redis://localhost:6379/0. Required.
	RedisURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:8080"].
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// SessionTTL is how long an idle session survives. Defaults to 24h.
	SessionTTL time.Duration

	// CookieSecure marks the session cookie Secure (HTTPS only). Defaults to false.
	CookieSecure bool

	// MaxBodyBytes caps request body size. Defaults to 1 MiB.
	MaxBodyBytes int64

	// MigrateOnStart applies pending goose migrations at start-up. Defaults to true.
	MigrateOnStart bool
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set and any
// values that cannot be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:8080")),
	}

	var missing, invalid []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	cfg.RedisURL = os.Getenv("REDIS_URL")
	if cfg.RedisURL == "" {
		missing = append(missing, "REDIS_URL")
	}

	var err error
	if cfg.SessionTTL, err = time.ParseDuration(getEnv("SESSION_TTL", "24h")); err != nil || cfg.SessionTTL <= 0 {
		invalid = append(invalid, "SESSION_TTL")
	}
	if cfg.CookieSecure, err = strconv.ParseBool(getEnv("COOKIE_SECURE", "false")); err != nil {
		invalid = append(invalid, "COOKIE_SECURE")
	}
	if cfg.MaxBodyBytes, err = strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64); err != nil || cfg.MaxBodyBytes <= 0 {
		invalid = append(invalid, "MAX_BODY_BYTES")
	}
	if cfg.MigrateOnStart, err = strconv.ParseBool(getEnv("MIGRATE_ON_START", "true")); err != nil {
		invalid = append(invalid, "MIGRATE_ON_START")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
