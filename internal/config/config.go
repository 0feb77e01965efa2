package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for the application
type Config struct {
	// Storage
	StoragePath string

	// Display
	DateFormat          string
	DefaultPeriodMonths int

	// Alerts
	LowBalanceThreshold decimal.Decimal

	// Credential shape
	Validation ValidationConfig
}

// ValidationConfig holds login/password shape rules
type ValidationConfig struct {
	LoginPattern      string
	LoginMinLength    int
	LoginMaxLength    int
	PasswordPattern   string
	PasswordMinLength int
	PasswordMaxLength int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		StoragePath: getEnv("MICARTERA_STORAGE_PATH", "storage"),
		DateFormat:  getEnv("MICARTERA_DATE_FORMAT", "2006-01-02 15:04"),
		Validation: ValidationConfig{
			LoginPattern:    getEnv("MICARTERA_LOGIN_PATTERN", "^[a-zA-Z0-9_-]+$"),
			PasswordPattern: getEnv("MICARTERA_PASSWORD_PATTERN", ""),
		},
	}

	var err error
	if cfg.DefaultPeriodMonths, err = getIntEnv("MICARTERA_DEFAULT_PERIOD_MONTHS", 1); err != nil {
		return nil, err
	}
	if cfg.Validation.LoginMinLength, err = getIntEnv("MICARTERA_LOGIN_MIN_LENGTH", 3); err != nil {
		return nil, err
	}
	if cfg.Validation.LoginMaxLength, err = getIntEnv("MICARTERA_LOGIN_MAX_LENGTH", 20); err != nil {
		return nil, err
	}
	if cfg.Validation.PasswordMinLength, err = getIntEnv("MICARTERA_PASSWORD_MIN_LENGTH", 3); err != nil {
		return nil, err
	}
	if cfg.Validation.PasswordMaxLength, err = getIntEnv("MICARTERA_PASSWORD_MAX_LENGTH", 32); err != nil {
		return nil, err
	}

	threshold := getEnv("MICARTERA_LOW_BALANCE_THRESHOLD", "1000")
	if cfg.LowBalanceThreshold, err = decimal.NewFromString(threshold); err != nil {
		return nil, fmt.Errorf("MICARTERA_LOW_BALANCE_THRESHOLD: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.StoragePath == "" {
		return fmt.Errorf("MICARTERA_STORAGE_PATH is required")
	}
	if c.DefaultPeriodMonths < 1 {
		return fmt.Errorf("MICARTERA_DEFAULT_PERIOD_MONTHS must be at least 1")
	}
	if _, err := regexp.Compile(c.Validation.LoginPattern); err != nil {
		return fmt.Errorf("MICARTERA_LOGIN_PATTERN: %w", err)
	}
	if c.Validation.PasswordPattern != "" {
		if _, err := regexp.Compile(c.Validation.PasswordPattern); err != nil {
			return fmt.Errorf("MICARTERA_PASSWORD_PATTERN: %w", err)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
