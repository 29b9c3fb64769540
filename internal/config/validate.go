// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

package config

import (
	"fmt"

	"github.com/threadline-io/threadline/internal/logging"
)

// Validate checks that the merged configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.Server.Timeout)
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
		return nil
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging or production, got %q", c.Server.Environment)
	}
}

func (c *Config) validateLogging() error {
	// Empty levels resolve to environment defaults later; only
	// explicit values need to parse.
	if c.Logging.Level != "" {
		if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
			return fmt.Errorf("LOG_LEVEL is invalid: %w", err)
		}
	}
	if c.Logging.FileLevel != "" {
		if _, err := logging.ParseLevel(c.Logging.FileLevel); err != nil {
			return fmt.Errorf("LOG_FILE_LEVEL is invalid: %w", err)
		}
	}

	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.Logging.Format)
	}

	if c.Logging.Dir == "" {
		return fmt.Errorf("LOG_DIR must not be empty")
	}
	if c.Logging.Basename == "" {
		return fmt.Errorf("LOG_BASENAME must not be empty")
	}
	if c.Logging.RetentionDays < 0 {
		return fmt.Errorf("LOG_RETENTION_DAYS must not be negative, got %d", c.Logging.RetentionDays)
	}

	return nil
}
