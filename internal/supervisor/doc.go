// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

// Package supervisor runs the service's long-lived components under a
// suture supervision tree. A crashing service is restarted with
// exponential backoff; supervision events flow into the logging
// pipeline through its slog adapter.
package supervisor
