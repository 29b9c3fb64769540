// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

package logging

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader is the well-known header used for inbound correlation
// propagation and outbound correlation exposure.
const RequestIDHeader = "X-Request-ID"

// NoRequestID is the sentinel correlation ID for code executing outside
// any request (startup, background jobs).
const NoRequestID = "no-request"

// noContextField is rendered for method/path when no request is active.
const noContextField = "-"

// RequestContext is the per-request correlation metadata. It is created by
// the request lifecycle middleware, carried on the request's
// context.Context, and read-only to everything else. It is never shared
// across concurrent requests: each in-flight request owns one instance,
// invisible to the others.
type RequestContext struct {
	CorrelationID string
	Method        string
	Path          string
	Start         time.Time
}

type contextKey string

const requestContextKey contextKey = "request_context"

// NewCorrelationID creates a new correlation ID: the first 8 characters of
// a UUID. Short enough to read, unique enough for log correlation; not
// cryptographically meaningful.
func NewCorrelationID() string {
	return uuid.New().String()[:8]
}

// WithRequestContext returns a context carrying rc. Storage is
// context-local, never a process-wide map, so concurrent requests on
// separate goroutines each observe only their own context.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey, rc)
}

// FromContext retrieves the active request context, or (nil, false) when
// executing outside any request.
func FromContext(ctx context.Context) (*RequestContext, bool) {
	rc, ok := ctx.Value(requestContextKey).(*RequestContext)
	return rc, ok && rc != nil
}

// CorrelationID returns the active correlation ID, or NoRequestID outside
// a request. Never panics on a nil context.
func CorrelationID(ctx context.Context) string {
	if ctx == nil {
		return NoRequestID
	}
	if rc, ok := FromContext(ctx); ok {
		return rc.CorrelationID
	}
	return NoRequestID
}
