// Package config loads and validates service configuration from environment
// variables. A .env file, when present, is loaded by main before this runs.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Port              string
	Address           string
	Env               string
	LogDir            string
	LogRetentionWeeks int
	MaxRequestBody    int64 // bytes
	MaxHeaderSize     int64 // bytes
	DosageTimeoutMs   int   // per-call budget for dosage validation
	KnowledgeDir      string
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8000"),
		Address:           getEnv("ADDRESS", "127.0.0.1"),
		Env:               strings.ToLower(getEnv("ENV", "dev")),
		LogDir:            getEnv("LOG_DIR", "logs"),
		LogRetentionWeeks: getIntEnv("LOG_RETENTION_WEEKS", 4),
		MaxRequestBody:    getInt64Env("MAX_REQUEST_BODY", 1048576),
		MaxHeaderSize:     getInt64Env("MAX_HEADER_SIZE", 1048576),
		DosageTimeoutMs:   getIntEnv("DOSAGE_TIMEOUT_MS", 2000),
		KnowledgeDir:      os.Getenv("KNOWLEDGE_DIR"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if err := validatePort(cfg.Port); err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}
	if err := validateAddress(cfg.Address); err != nil {
		return fmt.Errorf("invalid ADDRESS: %w", err)
	}
	if err := validateEnv(cfg.Env); err != nil {
		return fmt.Errorf("invalid ENV: %w", err)
	}
	if cfg.LogRetentionWeeks < 1 || cfg.LogRetentionWeeks > 52 {
		return fmt.Errorf("invalid LOG_RETENTION_WEEKS: must be 1-52, got %d", cfg.LogRetentionWeeks)
	}
	if err := validateSizeLimit(cfg.MaxRequestBody, "MAX_REQUEST_BODY"); err != nil {
		return err
	}
	if err := validateSizeLimit(cfg.MaxHeaderSize, "MAX_HEADER_SIZE"); err != nil {
		return err
	}
	if cfg.DosageTimeoutMs < 100 || cfg.DosageTimeoutMs > 60000 {
		return fmt.Errorf("invalid DOSAGE_TIMEOUT_MS: must be 100-60000, got %d", cfg.DosageTimeoutMs)
	}
	return nil
}

func validatePort(port string) error {
	if port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid number: %w", err)
	}
	if n < 1024 || n > 65535 {
		return fmt.Errorf("PORT must be between 1024 and 65535, got %d", n)
	}
	return nil
}

func validateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("ADDRESS cannot be empty")
	}
	if address == "localhost" {
		return nil
	}
	if ip := net.ParseIP(address); ip == nil {
		return fmt.Errorf("ADDRESS must be a valid IP address or 'localhost', got: %s", address)
	}
	return nil
}

func validateEnv(env string) error {
	switch env {
	case "dev", "staging", "prod", "test":
		return nil
	}
	return fmt.Errorf("ENV must be one of dev, staging, prod, test; got: %s", env)
}

func validateSizeLimit(size int64, name string) error {
	if size <= 0 {
		return fmt.Errorf("invalid %s: must be positive, got %d", name, size)
	}
	if size > 100*1024*1024 {
		return fmt.Errorf("invalid %s: too large (max 100MB), got %d bytes", name, size)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
