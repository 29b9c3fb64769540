// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

// Package middleware provides the request lifecycle middleware: the hook
// pair that opens and closes a request's correlation context and emits
// the start/completion events around every handler.
//
// The middleware is the sole owner of the RequestContext for a request's
// lifetime. Handlers and services read it implicitly by logging with the
// request's context; they never create or destroy it.
package middleware
