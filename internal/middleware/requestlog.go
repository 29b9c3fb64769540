// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

package middleware

import (
	"fmt"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/threadline-io/threadline/internal/logging"
)

// RequestLogger brackets every request with correlation and lifecycle
// events. Per request it:
//
//  1. Reuses an inbound X-Request-ID header verbatim, or generates a new
//     correlation ID
//  2. Sets X-Request-ID on the response for client-side correlation
//  3. Creates the RequestContext on the request's context and emits an
//     INFO "Request started" event
//  4. After the handler returns — always, including on panic — emits a
//     "Request completed" event whose level follows the response status
//     (>=500 ERROR, >=400 WARNING, otherwise INFO)
//
// A panicking handler additionally produces an ERROR event with the
// captured panic value and stack before the completion event, and the
// response degrades to 500 if nothing was written. The request context
// dies with the request; it is never visible to other in-flight requests.
func RequestLogger(log *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			correlationID := r.Header.Get(logging.RequestIDHeader)
			if correlationID == "" {
				correlationID = logging.NewCorrelationID()
			}

			// Exposed on the response up front so it survives handlers
			// that write headers themselves.
			w.Header().Set(logging.RequestIDHeader, correlationID)

			rc := &logging.RequestContext{
				CorrelationID: correlationID,
				Method:        r.Method,
				Path:          r.URL.Path,
				Start:         time.Now().UTC(),
			}
			ctx := logging.WithRequestContext(r.Context(), rc)
			r = r.WithContext(ctx)

			// Request bodies are never logged; these fields are safe.
			log.Info(ctx, "Request started", logging.Extra{
				"remote_addr":    r.RemoteAddr,
				"user_agent":     r.UserAgent(),
				"content_length": r.ContentLength,
			})

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				status := ww.Status()

				if rec := recover(); rec != nil {
					err, ok := rec.(error)
					if !ok {
						err = fmt.Errorf("panic: %v", rec)
					}
					log.ErrorE(ctx, "Request failed with unhandled exception", err, logging.Extra{
						"exception_type": fmt.Sprintf("%T", rec),
					})
					if status == 0 {
						ww.WriteHeader(http.StatusInternalServerError)
					}
					status = ww.Status()
				}

				// A handler that wrote a body without an explicit
				// WriteHeader answered 200.
				if status == 0 {
					status = http.StatusOK
				}

				duration := time.Since(rc.Start)
				log.Log(ctx, completionLevel(status), "Request completed", logging.Extra{
					"status_code":    status,
					"duration_ms":    float64(duration.Microseconds()) / 1000.0,
					"content_length": ww.BytesWritten(),
				}, nil)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// completionLevel maps a response status to the completion event level.
func completionLevel(status int) logging.Level {
	switch {
	case status >= 500:
		return logging.LevelError
	case status >= 400:
		return logging.LevelWarning
	default:
		return logging.LevelInfo
	}
}
