// Package config manages process-level configuration for the ytpl CLI.
// The library itself takes explicit options and never reads the
// environment, except the YTPL_DISABLE_KEEPALIVE transport toggle.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds CLI configuration.
type Config struct {
	// Limit is the maximum number of playlist items to fetch.
	Limit int
	// Retries is how many times a failed fetch pipeline is re-run.
	Retries int
	// GL is the geolocation override (e.g. "US").
	GL string
	// HL is the language override (e.g. "en").
	HL string
	// Timeout bounds individual HTTP requests.
	Timeout time.Duration
}

// Default returns configuration with safe defaults.
func Default() *Config {
	return &Config{
		Limit:   100,
		Retries: 3,
		Timeout: 30 * time.Second,
	}
}

// Load builds configuration from defaults overridden by YTPL_* environment
// variables.
func Load() (*Config, error) {
	cfg := Default()

	if v := os.Getenv("YTPL_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid YTPL_LIMIT: %w", err)
		}
		cfg.Limit = n
	}
	if v := os.Getenv("YTPL_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid YTPL_RETRIES: %w", err)
		}
		cfg.Retries = n
	}
	if v := os.Getenv("YTPL_GL"); v != "" {
		cfg.GL = v
	}
	if v := os.Getenv("YTPL_HL"); v != "" {
		cfg.HL = v
	}
	if v := os.Getenv("YTPL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid YTPL_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	if c.Retries < 0 {
		return fmt.Errorf("retries must be >= 0, got %d", c.Retries)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}
