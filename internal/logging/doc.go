// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

// Package logging implements the Threadline logging pipeline: named
// loggers feeding a multi-sink fan-out with per-sink formatting, severity
// thresholds, recursive sensitive-data masking, and request correlation
// carried on context.Context.
//
// # Overview
//
// The package provides:
//   - Five numeric severity levels (DEBUG 10 ... CRITICAL 50) with per-sink
//     thresholds; arbitrary integer levels compare numerically
//   - A console sink (human format with level-only ANSI color on
//     interactive terminals, JSON otherwise) and a daily-rotating file
//     sink with count-based retention
//   - Recursive masking of sensitive fields in extra payloads before any
//     formatting
//   - Request correlation: the lifecycle middleware stores a
//     RequestContext on the request's context, and every event emitted
//     with that context carries its correlation ID
//   - An slog.Handler adapter for libraries that require *slog.Logger
//     (Suture via sutureslog)
//
// # Quick Start
//
//	// Initialize at application startup; errors are fatal.
//	if err := logging.Setup(logging.Config{
//	    Level:       logging.LevelInfo,
//	    Environment: cfg.Server.Environment,
//	    Dir:         cfg.Logging.Dir,
//	}); err != nil {
//	    // abort startup
//	}
//
//	// In any package:
//	var log = logging.Get("app.users")
//	log.Info(ctx, "User created", logging.Extra{"user_id": id})
//	log.ErrorE(ctx, "Lookup failed", err, nil)
//
// # Caller Contract
//
// The masker is applied to extra payloads only, never to messages. Do not
// interpolate secrets into message text; pass them (if they must be logged
// at all) as extra fields under their sensitive key names so they are
// redacted.
//
// Logging never returns an error to the caller and never panics: sink
// write failures are surfaced once per occurrence on stderr and otherwise
// swallowed. The worst case is a gap in the log stream.
package logging
