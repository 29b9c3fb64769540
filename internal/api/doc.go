// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

// Package api provides the HTTP surface of the service: the chi router
// with the request lifecycle middleware applied, health and version
// endpoints, and a runtime endpoint for adjusting per-logger levels.
//
// All responses use the standardized envelope from response.go so
// clients see one shape regardless of endpoint or outcome.
package api
