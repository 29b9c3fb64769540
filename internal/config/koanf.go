// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in
// order. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/threadline/config.yaml",
	"/etc/threadline/config.yml",
}

// ConfigPathEnvVar overrides the config file search entirely.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load builds the configuration from layered sources:
//
//  1. Defaults from defaultConfig
//  2. Optional YAML config file
//  3. Environment variables (highest priority)
//
// The merged result is validated before it is returned; an error here
// means the process should not start.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Env names map to koanf paths through the explicit table below;
	// unrelated variables never leak into the config.
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the path of the first config file found, or
// empty string when there is none.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransformFunc maps environment variable names to koanf config
// paths. Unmapped names return empty string and are skipped.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - LOG_RETENTION_DAYS -> logging.retention_days
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server mappings
		"http_host":    "server.host",
		"http_port":    "server.port",
		"http_timeout": "server.timeout",
		"environment":  "server.environment",

		// Logging mappings
		"log_level":          "logging.level",
		"log_file_level":     "logging.file_level",
		"log_format":         "logging.format",
		"log_dir":            "logging.dir",
		"log_basename":       "logging.basename",
		"log_retention_days": "logging.retention_days",
		"log_color":          "logging.color",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
