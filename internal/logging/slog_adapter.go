// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

package logging

import (
	"context"
	"log/slog"
	"time"
)

// SlogHandler implements slog.Handler on top of a pipeline Logger. This
// adapter lets libraries that require an *slog.Logger (like sutureslog)
// emit through the pipeline, including request-context correlation when
// the record's context carries one.
//
// Usage:
//
//	slogger := logging.NewSlogLogger("app.supervisor")
//	handler := &sutureslog.Handler{Logger: slogger}
type SlogHandler struct {
	logger *Logger
	level  Level
	// base holds pre-applied attributes, already qualified with the
	// group path that was open when they were added.
	base   Extra
	groups []string
}

// NewSlogHandler creates a handler emitting through the named logger.
func NewSlogHandler(name string) *SlogHandler {
	return &SlogHandler{
		logger: Get(name),
		level:  LevelDebug,
	}
}

// NewSlogLogger creates an slog.Logger backed by the pipeline.
func NewSlogLogger(name string) *slog.Logger {
	return slog.New(NewSlogHandler(name))
}

// Enabled reports whether the handler handles records at the given level.
// The pipeline applies its own per-sink thresholds afterward; this gate
// only avoids assembling records nothing will accept.
func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return slogToPipelineLevel(level).Enabled(h.level)
}

// Handle converts the record into a pipeline event.
//
//nolint:gocritic // slog.Record is passed by value per slog.Handler interface
func (h *SlogHandler) Handle(ctx context.Context, record slog.Record) error {
	var extra Extra
	if len(h.base) > 0 || record.NumAttrs() > 0 {
		extra = make(Extra, len(h.base)+record.NumAttrs())
		for k, v := range h.base {
			extra[k] = v
		}
		record.Attrs(func(attr slog.Attr) bool {
			addAttr(extra, attr, h.groups)
			return true
		})
	}

	h.logger.Log(ctx, slogToPipelineLevel(record.Level), record.Message, extra, nil)
	return nil
}

// WithAttrs returns a new handler with the given attributes pre-applied.
// Attributes are qualified with the group path open at the time they are
// added, per the slog.Handler contract.
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	base := make(Extra, len(h.base)+len(attrs))
	for k, v := range h.base {
		base[k] = v
	}
	for _, attr := range attrs {
		addAttr(base, attr, h.groups)
	}

	return &SlogHandler{
		logger: h.logger,
		level:  h.level,
		base:   base,
		groups: h.groups,
	}
}

// WithGroup returns a new handler with the given group name.
func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	newGroups := make([]string, len(h.groups)+1)
	copy(newGroups, h.groups)
	newGroups[len(h.groups)] = name

	return &SlogHandler{
		logger: h.logger,
		level:  h.level,
		base:   h.base,
		groups: newGroups,
	}
}

// addAttr flattens a slog attribute into the extra map, prefixing keys
// with their group path.
func addAttr(extra Extra, attr slog.Attr, groups []string) {
	key := attr.Key
	for i := len(groups) - 1; i >= 0; i-- {
		key = groups[i] + "." + key
	}

	switch attr.Value.Kind() {
	case slog.KindString:
		extra[key] = attr.Value.String()
	case slog.KindInt64:
		extra[key] = attr.Value.Int64()
	case slog.KindUint64:
		extra[key] = attr.Value.Uint64()
	case slog.KindFloat64:
		extra[key] = attr.Value.Float64()
	case slog.KindBool:
		extra[key] = attr.Value.Bool()
	case slog.KindDuration:
		extra[key] = attr.Value.Duration().String()
	case slog.KindTime:
		extra[key] = attr.Value.Time().UTC().Format(time.RFC3339Nano)
	case slog.KindGroup:
		for _, ga := range attr.Value.Group() {
			addAttr(extra, ga, append(groups, attr.Key))
		}
	default:
		extra[key] = attr.Value.Any()
	}
}

// slogToPipelineLevel maps slog levels onto the five-level order. Levels
// at least 4 above slog.LevelError map to CRITICAL.
func slogToPipelineLevel(level slog.Level) Level {
	switch {
	case level < slog.LevelInfo:
		return LevelDebug
	case level < slog.LevelWarn:
		return LevelInfo
	case level < slog.LevelError:
		return LevelWarning
	case level < slog.LevelError+4:
		return LevelError
	default:
		return LevelCritical
	}
}
