package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultCORSOrigins   = "http://localhost:5173"
	defaultAdminEmail    = "manager@cafe.local"
	defaultAdminPassword = "change-me-now"
)

type Config struct {
	HTTPPort      string
	JWTSecret     string
	CORSOrigins   string
	AdminEmail    string
	AdminName     string
	AdminPassword string
	Timezone      string
	Location      *time.Location // resolved Timezone
	SeedDemoData  bool
	LogLevel      string

	// Warnings are non-fatal findings for the caller to log.
	Warnings []string
}

// Load reads configuration from the environment. When envFile exists it is
// loaded first; variables already set in the environment win.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		CORSOrigins:   getEnv("CORS_ALLOWED_ORIGINS", defaultCORSOrigins),
		AdminEmail:    strings.ToLower(strings.TrimSpace(getEnv("ADMIN_EMAIL", defaultAdminEmail))),
		AdminName:     getEnv("ADMIN_NAME", "Café Manager"),
		AdminPassword: getEnv("ADMIN_PASSWORD", defaultAdminPassword),
		Timezone:      getEnv("CAFE_TIMEZONE", "Local"),
		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}

	seed, err := strconv.ParseBool(getEnv("SEED_DEMO_DATA", "true"))
	if err != nil {
		return nil, fmt.Errorf("SEED_DEMO_DATA: %w", err)
	}
	cfg.SeedDemoData = seed

	cfg.Location, err = time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("CAFE_TIMEZONE %q: %w", cfg.Timezone, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.AdminPassword == defaultAdminPassword {
		cfg.Warnings = append(cfg.Warnings, "ADMIN_PASSWORD is using the default value, set your own before going live")
	}
	if cfg.CORSOrigins == defaultCORSOrigins {
		cfg.Warnings = append(cfg.Warnings, "CORS_ALLOWED_ORIGINS is using the default value, set your own domain before going live")
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters")
	}
	if c.AdminEmail == "" || c.AdminPassword == "" {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must not be empty")
	}
	if _, err := strconv.Atoi(c.HTTPPort); err != nil {
		return fmt.Errorf("HTTP_PORT %q is not a number", c.HTTPPort)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL %q must be one of debug, info, warn, error", c.LogLevel)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
