// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/threadline-io/threadline/internal/logging"
	"github.com/threadline-io/threadline/internal/middleware"
)

// NewRouter builds the HTTP handler tree. Every route runs behind the
// request lifecycle middleware, so handlers log with correlation for
// free and panics surface as structured 500s rather than chi's plain
// text recoverer output.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(logging.Get("app.request")))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handler.Health)
		r.Get("/version", handler.Version)
		r.Put("/logging/levels", handler.SetLoggerLevel)
	})

	// Unknown routes and wrong methods answer with the standard
	// envelope instead of chi's bare text defaults.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, r, "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed")
	})

	return r
}
