// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

package config

import (
	"github.com/threadline-io/threadline/internal/logging"
)

// PipelineConfig translates the validated configuration into the
// logging pipeline's setup parameters.
func (c *Config) PipelineConfig() logging.Config {
	// Validate already proved explicit levels parse; the resolved
	// defaults are literal level names.
	level, _ := logging.ParseLevel(c.ResolvedLevel())
	fileLevel := logging.LevelDebug
	if c.Logging.FileLevel != "" {
		fileLevel, _ = logging.ParseLevel(c.Logging.FileLevel)
	}

	return logging.Config{
		Level:         level,
		FileLevel:     fileLevel,
		Environment:   c.Server.Environment,
		Format:        c.ResolvedFormat(),
		Dir:           c.Logging.Dir,
		Basename:      c.Logging.Basename,
		RetentionDays: c.Logging.RetentionDays,
		NoColor:       !c.Logging.Color,
	}
}
