// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

package logging

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func testEvent() *Event {
	return &Event{
		Time:    time.Date(2026, 1, 11, 20, 30, 45, 0, time.UTC),
		Level:   LevelInfo,
		Logger:  "app.routes.users",
		Message: "User created",
	}
}

func testRequestContext() *RequestContext {
	return &RequestContext{
		CorrelationID: "abc12345",
		Method:        "POST",
		Path:          "/api/users",
		Start:         time.Date(2026, 1, 11, 20, 30, 44, 0, time.UTC),
	}
}

func TestConsoleFormatterLine(t *testing.T) {
	t.Parallel()

	f := &ConsoleFormatter{}
	got := f.Format(testEvent(), testRequestContext())

	want := "2026-01-11 20:30:45 | INFO     | app.routes.users | [abc12345] POST /api/users | User created"
	if got != want {
		t.Errorf("Format() =\n%q\nwant\n%q", got, want)
	}
}

func TestConsoleFormatterNoContext(t *testing.T) {
	t.Parallel()

	f := &ConsoleFormatter{}
	got := f.Format(testEvent(), nil)

	want := "2026-01-11 20:30:45 | INFO     | app.routes.users | [no-request] - - | User created"
	if got != want {
		t.Errorf("Format() =\n%q\nwant\n%q", got, want)
	}
}

func TestConsoleFormatterColorWrapsLevelOnly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level Level
		color string
	}{
		{LevelDebug, ansiCyan},
		{LevelInfo, ansiGreen},
		{LevelWarning, ansiYellow},
		{LevelError, ansiRed},
		{LevelCritical, ansiBold + ansiMagenta},
	}

	f := &ConsoleFormatter{Color: true}
	for _, tt := range tests {
		e := testEvent()
		e.Level = tt.level
		got := f.Format(e, testRequestContext())

		wantLevel := "| " + tt.color + padLevel(tt.level) + ansiReset + " |"
		if !strings.Contains(got, wantLevel) {
			t.Errorf("%s line missing colored level field %q:\n%q", tt.level, wantLevel, got)
			continue
		}
		// Codes must not leak beyond the level field: stripping the one
		// expected wrap leaves a code-free line.
		stripped := strings.Replace(got, tt.color+padLevel(tt.level)+ansiReset, padLevel(tt.level), 1)
		if strings.Contains(stripped, "\033[") {
			t.Errorf("%s: ANSI codes leaked outside the level field:\n%q", tt.level, got)
		}
	}
}

func padLevel(l Level) string {
	s := l.String()
	for len(s) < 8 {
		s += " "
	}
	return s
}

func TestConsoleFormatterUnknownLevelUncolored(t *testing.T) {
	t.Parallel()

	f := &ConsoleFormatter{Color: true}
	e := testEvent()
	e.Level = Level(25)

	if got := f.Format(e, nil); strings.Contains(got, "\033[") {
		t.Errorf("unknown level should render uncolored: %q", got)
	}
}

func TestConsoleFormatterException(t *testing.T) {
	t.Parallel()

	f := &ConsoleFormatter{}
	e := testEvent()
	e.Exception = &Exception{Type: "*errors.errorString", Message: "boom", Stack: "goroutine 1 [running]:\nmain.main()\n"}

	got := f.Format(e, nil)
	lines := strings.Split(got, "\n")
	if len(lines) < 3 {
		t.Fatalf("exception output should span multiple lines: %q", got)
	}
	if lines[1] != "*errors.errorString: boom" {
		t.Errorf("exception header = %q", lines[1])
	}
}

func TestJSONFormatterFixedKeySet(t *testing.T) {
	t.Parallel()

	f := &JSONFormatter{}
	out := f.Format(testEvent(), testRequestContext())

	if strings.Contains(out, "\n") {
		t.Fatalf("output must be single-line: %q", out)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%q", err, out)
	}

	for _, key := range []string{"timestamp", "level", "logger", "request_id", "method", "path", "message", "exception", "extra"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("key %q missing from output: %q", key, out)
		}
	}
	if len(decoded) != 9 {
		t.Errorf("key set should be exactly 9 keys, got %d: %q", len(decoded), out)
	}

	if decoded["level"] != "INFO" || decoded["logger"] != "app.routes.users" {
		t.Errorf("unexpected field values: %q", out)
	}
	if decoded["request_id"] != "abc12345" || decoded["method"] != "POST" || decoded["path"] != "/api/users" {
		t.Errorf("context fields wrong: %q", out)
	}
	// Absent extra and exception render as null, never omitted.
	if decoded["extra"] != nil || decoded["exception"] != nil {
		t.Errorf("absent extra/exception should be null: %q", out)
	}

	ts, _ := decoded["timestamp"].(string)
	if _, err := time.Parse(time.RFC3339Nano, ts); err != nil {
		t.Errorf("timestamp %q is not RFC3339: %v", ts, err)
	}
}

func TestJSONFormatterNoContextSentinels(t *testing.T) {
	t.Parallel()

	f := &JSONFormatter{}
	out := f.Format(testEvent(), nil)

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["request_id"] != NoRequestID {
		t.Errorf("request_id = %v, want %q", decoded["request_id"], NoRequestID)
	}
	if decoded["method"] != "-" || decoded["path"] != "-" {
		t.Errorf("method/path sentinels wrong: %q", out)
	}
}

func TestJSONFormatterUnicodeAndExtra(t *testing.T) {
	t.Parallel()

	f := &JSONFormatter{}
	e := testEvent()
	e.Message = "ユーザー作成 ✓"
	e.Extra = Extra{"name": "Ünïcødé", "count": float64(3), "nested": map[string]any{"ok": true}}

	out := f.Format(e, nil)
	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid JSON with unicode: %v\n%q", err, out)
	}
	if decoded["message"] != "ユーザー作成 ✓" {
		t.Errorf("message = %v", decoded["message"])
	}
	extra := decoded["extra"].(map[string]any)
	if extra["name"] != "Ünïcødé" || extra["count"] != float64(3) {
		t.Errorf("extra = %v", extra)
	}
}

func TestJSONFormatterException(t *testing.T) {
	t.Parallel()

	f := &JSONFormatter{}
	e := testEvent()
	e.Exception = CaptureException(errors.New("boom"))

	out := f.Format(e, nil)
	var decoded struct {
		Exception *Exception `json:"exception"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Exception == nil {
		t.Fatal("exception missing")
	}
	if decoded.Exception.Type != "*errors.errorString" || decoded.Exception.Message != "boom" {
		t.Errorf("exception = %+v", decoded.Exception)
	}
	if decoded.Exception.Stack == "" {
		t.Error("exception stack should be captured")
	}
}
