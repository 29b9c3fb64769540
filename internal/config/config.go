// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

package config

import (
	"time"
)

// Config is the root configuration for the service.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Logging LoggingConfig `koanf:"logging"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`

	// Environment is the deployment mode: "development", "staging" or
	// "production". It drives the logging defaults below.
	Environment string `koanf:"environment"`
}

// LoggingConfig holds the logging pipeline settings.
type LoggingConfig struct {
	// Level is the console threshold: DEBUG, INFO, WARNING, ERROR or
	// CRITICAL (case-insensitive). Empty means DEBUG in development
	// and INFO otherwise.
	Level string `koanf:"level"`

	// FileLevel is the file sink threshold. Empty means DEBUG so the
	// file keeps everything the console may be filtering.
	FileLevel string `koanf:"file_level"`

	// Format is the console output format: "console" or "json". Empty
	// means console in development and json otherwise.
	Format string `koanf:"format"`

	// Dir is the directory holding the current log file and its
	// rotated predecessors.
	Dir string `koanf:"dir"`

	// Basename is the current log file's name within Dir.
	Basename string `koanf:"basename"`

	// RetentionDays is how many rotated files to keep. Zero keeps no
	// rotated files.
	RetentionDays int `koanf:"retention_days"`

	// Color enables ANSI colors on the console formatter when the
	// output is a terminal. It has no effect on json output.
	Color bool `koanf:"color"`
}

// defaultConfig returns a Config with all default values. These are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8373,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Logging: LoggingConfig{
			Level:         "", // resolved from environment
			FileLevel:     "debug",
			Format:        "", // resolved from environment
			Dir:           "logs",
			Basename:      "app.log",
			RetentionDays: 30,
			Color:         true,
		},
	}
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// ResolvedLevel returns the console level with the environment default
// applied.
func (c *Config) ResolvedLevel() string {
	if c.Logging.Level != "" {
		return c.Logging.Level
	}
	if c.IsDevelopment() {
		return "DEBUG"
	}
	return "INFO"
}

// ResolvedFormat returns the console format with the environment
// default applied.
func (c *Config) ResolvedFormat() string {
	if c.Logging.Format != "" {
		return c.Logging.Format
	}
	if c.IsDevelopment() {
		return "console"
	}
	return "json"
}
