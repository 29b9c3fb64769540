// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

package logging

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Extra carries caller-supplied structured fields for a single event.
// Values are strings, numbers, booleans, nil, or nested maps/slices of the
// same; the masker and formatters perform an exhaustive case analysis over
// exactly these shapes.
type Extra map[string]any

// Exception is a captured error attached to an event: the concrete error
// type name, its message, and the stack trace at the capture site.
type Exception struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Stack   string `json:"stack"`
}

// Event is a single log record, built at the call site and treated as
// immutable by the pipeline. The masker copies Extra rather than editing
// it in place.
type Event struct {
	Time      time.Time
	Level     Level
	Logger    string
	Message   string
	Extra     Extra
	Exception *Exception
}

// CaptureException builds an Exception from err, recording the stack of
// the calling goroutine. Returns nil for a nil error.
func CaptureException(err error) *Exception {
	if err == nil {
		return nil
	}
	return &Exception{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
		Stack:   string(debug.Stack()),
	}
}

// newEvent assembles an event with the current UTC timestamp.
func newEvent(logger string, level Level, msg string, extra Extra, exc *Exception) *Event {
	return &Event{
		Time:      time.Now().UTC(),
		Level:     level,
		Logger:    logger,
		Message:   msg,
		Extra:     extra,
		Exception: exc,
	}
}
