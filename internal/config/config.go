package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string

	Catalog  CatalogConfig
	Operator OperatorConfig
}

// CatalogConfig contains connection parameters for the remote catalog service.
type CatalogConfig struct {
	BaseURL string
	Timeout time.Duration
}

// OperatorConfig contains the single operator account credentials.
// PasswordHash is a bcrypt hash; plain passwords are never configured.
type OperatorConfig struct {
	Email        string
	PasswordHash string
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")

	// Catalog service
	cfg.Catalog = CatalogConfig{
		BaseURL: getEnv("CATALOG_BASE_URL", "http://localhost:5000"),
	}
	var err error
	if cfg.Catalog.Timeout, err = parseDurationEnv("CATALOG_TIMEOUT", "60s"); err != nil {
		return nil, fmt.Errorf("invalid CATALOG_TIMEOUT: %w", err)
	}

	// Operator account
	cfg.Operator = OperatorConfig{
		Email:        getEnv("OPERATOR_EMAIL", ""),
		PasswordHash: getEnv("OPERATOR_PASSWORD_HASH", ""),
	}

	if cfg.Catalog.BaseURL == "" {
		return nil, errors.New("catalog configuration incomplete: ensure CATALOG_BASE_URL is set")
	}
	if cfg.Operator.Email == "" || cfg.Operator.PasswordHash == "" {
		return nil, errors.New("operator configuration incomplete: ensure OPERATOR_EMAIL and OPERATOR_PASSWORD_HASH are set")
	}

	// Validate JWT_SECRET
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for authentication")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be > 0")
	}
	return d, nil
}
