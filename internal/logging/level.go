// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

package logging

import (
	"fmt"
	"strings"
)

// Level is a numeric log severity. The named constants form the well-known
// five-level order, but any integer compares numerically, so callers may
// define intermediate levels without changes here.
type Level int

const (
	LevelDebug    Level = 10
	LevelInfo     Level = 20
	LevelWarning  Level = 30
	LevelError    Level = 40
	LevelCritical Level = 50
)

// Enabled reports whether an event at level l passes the given sink
// threshold. Pure comparison, no side effects.
func (l Level) Enabled(threshold Level) bool {
	return l >= threshold
}

// String returns the canonical upper-case level name, or "LEVEL(n)" for
// values outside the well-known set.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// ParseLevel converts a level name to a Level. Names are matched
// case-insensitively; "warn" is accepted as an alias for "warning".
// Unknown names are an error so that misconfigured deployments fail at
// startup instead of silently running at the wrong verbosity.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	case "critical":
		return LevelCritical, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}
