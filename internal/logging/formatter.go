// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

package logging

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Formatter renders a log event plus the active request context (nil when
// absent) into one destination-appropriate line. Formatters are pure and
// safe for concurrent use.
type Formatter interface {
	Format(e *Event, rc *RequestContext) string
}

// ANSI escape codes for the colorized console formatter.
const (
	ansiReset   = "\033[0m"
	ansiBold    = "\033[1m"
	ansiRed     = "\033[31m"
	ansiGreen   = "\033[32m"
	ansiYellow  = "\033[33m"
	ansiMagenta = "\033[35m"
	ansiCyan    = "\033[36m"
)

// levelColor maps well-known levels to their console color. Unknown levels
// render uncolored.
func levelColor(l Level) string {
	switch l {
	case LevelDebug:
		return ansiCyan
	case LevelInfo:
		return ansiGreen
	case LevelWarning:
		return ansiYellow
	case LevelError:
		return ansiRed
	case LevelCritical:
		return ansiBold + ansiMagenta
	default:
		return ""
	}
}

// consoleTimeFormat is the human-readable timestamp layout.
const consoleTimeFormat = "2006-01-02 15:04:05"

// ConsoleFormatter renders a human-oriented line:
//
//	2026-01-11 20:30:45 | INFO     | app.api | [ab12cd34] POST /api/users | Created
//
// With Color enabled, only the padded level field is wrapped in ANSI codes
// so the rest of the line stays grep-friendly. Outside a request the
// context segment renders as "[no-request] - -".
type ConsoleFormatter struct {
	// Color wraps the level field in ANSI color codes. Must stay false
	// for non-interactive destinations; file sinks never colorize.
	Color bool
}

// Format implements Formatter.
func (f *ConsoleFormatter) Format(e *Event, rc *RequestContext) string {
	level := fmt.Sprintf("%-8s", e.Level.String())
	if f.Color {
		if c := levelColor(e.Level); c != "" {
			level = c + level + ansiReset
		}
	}

	requestID, method, path := NoRequestID, noContextField, noContextField
	if rc != nil {
		requestID, method, path = rc.CorrelationID, rc.Method, rc.Path
	}

	var b strings.Builder
	b.WriteString(e.Time.Format(consoleTimeFormat))
	b.WriteString(" | ")
	b.WriteString(level)
	b.WriteString(" | ")
	b.WriteString(e.Logger)
	b.WriteString(" | [")
	b.WriteString(requestID)
	b.WriteString("] ")
	b.WriteString(method)
	b.WriteString(" ")
	b.WriteString(path)
	b.WriteString(" | ")
	b.WriteString(e.Message)

	if e.Exception != nil {
		b.WriteString("\n")
		b.WriteString(e.Exception.Type)
		b.WriteString(": ")
		b.WriteString(e.Exception.Message)
		if e.Exception.Stack != "" {
			b.WriteString("\n")
			b.WriteString(strings.TrimRight(e.Exception.Stack, "\n"))
		}
	}

	return b.String()
}

// jsonRecord is the machine-oriented schema. The key set is fixed: absent
// context fields render as sentinels and absent exception/extra as null,
// never omitted, so aggregators see a stable shape.
type jsonRecord struct {
	Timestamp string     `json:"timestamp"`
	Level     string     `json:"level"`
	Logger    string     `json:"logger"`
	RequestID string     `json:"request_id"`
	Method    string     `json:"method"`
	Path      string     `json:"path"`
	Message   string     `json:"message"`
	Exception *Exception `json:"exception"`
	Extra     Extra      `json:"extra"`
}

// JSONFormatter renders one single-line JSON object per event.
type JSONFormatter struct{}

// Format implements Formatter.
func (f *JSONFormatter) Format(e *Event, rc *RequestContext) string {
	rec := jsonRecord{
		Timestamp: e.Time.UTC().Format(time.RFC3339Nano),
		Level:     e.Level.String(),
		Logger:    e.Logger,
		RequestID: NoRequestID,
		Method:    noContextField,
		Path:      noContextField,
		Message:   e.Message,
		Exception: e.Exception,
		Extra:     e.Extra,
	}
	if rc != nil {
		rec.RequestID = rc.CorrelationID
		rec.Method = rc.Method
		rec.Path = rc.Path
	}

	out, err := json.Marshal(rec)
	if err != nil {
		// Extra values are primitives, maps, and slices, so this path is
		// effectively unreachable; degrade to a minimal valid record
		// rather than dropping the event.
		fallback := jsonRecord{
			Timestamp: rec.Timestamp,
			Level:     rec.Level,
			Logger:    rec.Logger,
			RequestID: rec.RequestID,
			Method:    rec.Method,
			Path:      rec.Path,
			Message:   fmt.Sprintf("%s (unencodable extra: %v)", e.Message, err),
		}
		out, _ = json.Marshal(fallback)
	}
	return string(out)
}
