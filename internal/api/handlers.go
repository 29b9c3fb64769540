// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

package api

import (
	"net/http"
	"runtime"
	"time"

	"github.com/goccy/go-json"

	"github.com/threadline-io/threadline/internal/logging"
)

// Handler holds the state shared by the HTTP endpoints.
type Handler struct {
	log       *logging.Logger
	version   string
	startTime time.Time
}

// NewHandler creates a handler. version is the build version string
// reported by the version endpoint.
func NewHandler(version string) *Handler {
	return &Handler{
		log:       logging.Get("app.api"),
		version:   version,
		startTime: time.Now().UTC(),
	}
}

// Health reports process liveness. It never consults external
// dependencies; a 200 here means the process is up and serving.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	_, fileSink := logging.FileSinkFromPipeline()

	WriteSuccess(w, r, map[string]interface{}{
		"status":         "healthy",
		"uptime_seconds": time.Since(h.startTime).Seconds(),
		"file_sink":      fileSink,
	})
}

// Version reports the build version and runtime.
func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"version": h.version,
		"go":      runtime.Version(),
	})
}

// loggerLevelRequest is the body of SetLoggerLevel.
type loggerLevelRequest struct {
	Logger string `json:"logger"`
	Level  string `json:"level"`
}

// SetLoggerLevel adjusts the threshold of one logger (and its
// descendants) at runtime. The change lasts until the process exits.
func (h *Handler) SetLoggerLevel(w http.ResponseWriter, r *http.Request) {
	var req loggerLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, r, "invalid JSON body")
		return
	}
	if req.Logger == "" {
		WriteBadRequest(w, r, "logger name is required")
		return
	}

	level, err := logging.ParseLevel(req.Level)
	if err != nil {
		WriteBadRequest(w, r, err.Error())
		return
	}

	logging.SetLoggerLevel(req.Logger, level)
	h.log.Info(r.Context(), "Logger level changed", logging.Extra{
		"logger": req.Logger,
		"level":  level.String(),
	})

	WriteSuccess(w, r, map[string]interface{}{
		"logger": req.Logger,
		"level":  level.String(),
	})
}
