// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/threadline-io/threadline/internal/logging"
)

// APIResponse is the standardized response wrapper for all endpoints.
type APIResponse struct {
	// Success indicates whether the request was successful
	Success bool `json:"success"`

	// Data contains the response payload (omitted on error)
	Data interface{} `json:"data,omitempty"`

	// Error contains error details (omitted on success)
	Error *APIError `json:"error,omitempty"`

	// Meta contains metadata about the response
	Meta *APIMeta `json:"meta,omitempty"`
}

// APIError represents an error response.
type APIError struct {
	// Code is a machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// RequestID is the correlation ID for tracing
	RequestID string `json:"request_id,omitempty"`
}

// APIMeta contains response metadata.
type APIMeta struct {
	// RequestID is the correlation ID for tracing
	RequestID string `json:"request_id,omitempty"`

	// Timestamp is when the response was generated
	Timestamp time.Time `json:"timestamp"`
}

// Error codes for API responses
const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// WriteSuccess writes a 200 response with the standardized envelope.
func WriteSuccess(w http.ResponseWriter, r *http.Request, data interface{}) {
	WriteSuccessStatus(w, r, http.StatusOK, data)
}

// WriteSuccessStatus writes a success envelope with an explicit status.
func WriteSuccessStatus(w http.ResponseWriter, r *http.Request, statusCode int, data interface{}) {
	writeJSON(w, r, statusCode, APIResponse{
		Success: true,
		Data:    data,
		Meta: &APIMeta{
			RequestID: logging.CorrelationID(r.Context()),
			Timestamp: time.Now().UTC(),
		},
	})
}

// WriteError writes an error envelope with the given status and code.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int, code, message string) {
	requestID := logging.CorrelationID(r.Context())
	writeJSON(w, r, statusCode, APIResponse{
		Success: false,
		Error: &APIError{
			Code:      code,
			Message:   message,
			RequestID: requestID,
		},
		Meta: &APIMeta{
			RequestID: requestID,
			Timestamp: time.Now().UTC(),
		},
	})
}

// WriteBadRequest is a convenience function for 400 errors.
func WriteBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	WriteError(w, r, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// WriteNotFound is a convenience function for 404 errors.
func WriteNotFound(w http.ResponseWriter, r *http.Request, message string) {
	WriteError(w, r, http.StatusNotFound, ErrCodeNotFound, message)
}

func writeJSON(w http.ResponseWriter, r *http.Request, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Get("app.api").ErrorE(r.Context(), "Failed to encode JSON response", err, nil)
	}
}
