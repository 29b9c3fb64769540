// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

// Package config loads service configuration with Koanf v2 from three
// layers, later layers overriding earlier ones:
//
//  1. Struct defaults
//  2. Optional YAML config file (CONFIG_PATH or the default search list)
//  3. Environment variables (the explicit table in koanf.go)
//
// Configuration errors are fatal at startup: Load validates the merged
// result and returns an error rather than a half-usable Config.
package config
