// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

package logging

import (
	"reflect"
	"strings"
	"testing"
)

func TestMaskSensitiveKeys(t *testing.T) {
	t.Parallel()

	m := NewMasker()

	got := m.Mask(map[string]any{
		"username": "john",
		"password": "secret123",
		"API_KEY":  "abcd",
		"count":    3,
	})

	want := map[string]any{
		"username": "john",
		"password": RedactedMask,
		"API_KEY":  RedactedMask,
		"count":    3,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Mask() = %#v, want %#v", got, want)
	}
}

func TestMaskNestedStructures(t *testing.T) {
	t.Parallel()

	m := NewMasker()

	got := m.Mask(map[string]any{
		"user": map[string]any{
			"name": "jane",
			"credentials": map[string]any{
				"token": "tok-123",
			},
		},
		"items": []any{
			map[string]any{"ssn": "123-45-6789", "id": 7},
			"plain",
		},
	})

	root, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("Mask() returned %T, want map", got)
	}
	// "credentials" is itself a sensitive key: the whole subtree is redacted.
	user := root["user"].(map[string]any)
	if user["credentials"] != RedactedMask {
		t.Errorf("credentials = %v, want %q", user["credentials"], RedactedMask)
	}
	items := root["items"].([]any)
	inner := items[0].(map[string]any)
	if inner["ssn"] != RedactedMask {
		t.Errorf("nested ssn = %v, want %q", inner["ssn"], RedactedMask)
	}
	if inner["id"] != 7 {
		t.Errorf("nested id = %v, want 7", inner["id"])
	}
	if items[1] != "plain" {
		t.Errorf("items[1] = %v, want plain", items[1])
	}
}

func TestMaskSensitiveAtEveryDepth(t *testing.T) {
	t.Parallel()

	m := NewMasker()

	// Build password keys at depths 1..maxMaskDepth and verify every one is
	// redacted in the output.
	for depth := 1; depth <= maxMaskDepth; depth++ {
		leaf := map[string]any{"password": "hunter2"}
		var v any = leaf
		for i := 1; i < depth; i++ {
			v = map[string]any{"nest": v}
		}

		masked := m.Mask(v)
		cur := masked
		for i := 1; i < depth; i++ {
			cur = cur.(map[string]any)["nest"]
		}
		if got := cur.(map[string]any)["password"]; got != RedactedMask {
			t.Errorf("depth %d: password = %v, want %q", depth, got, RedactedMask)
		}
	}
}

func TestMaskDepthCap(t *testing.T) {
	t.Parallel()

	m := NewMasker()

	// Nest beyond the cap; the subtree past it collapses to the sentinel.
	var v any = "leaf"
	for i := 0; i < maxMaskDepth+5; i++ {
		v = map[string]any{"n": v}
	}

	masked := m.Mask(v)
	cur := masked
	for i := 0; i <= maxMaskDepth; i++ {
		inner, ok := cur.(map[string]any)
		if !ok {
			if cur != maxDepthMask {
				t.Fatalf("depth %d: got %v, want %q", i, cur, maxDepthMask)
			}
			return
		}
		cur = inner["n"]
	}
	if cur != maxDepthMask {
		t.Errorf("past cap = %v, want %q", cur, maxDepthMask)
	}
}

func TestMaskCredentialStrings(t *testing.T) {
	t.Parallel()

	m := NewMasker()

	tests := []struct {
		input string
		want  any
	}{
		{"Bearer eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9", RedactedMask},
		{"Token 0123456789abcdef012345", RedactedMask},
		{"Bearer auth enabled", "Bearer auth enabled"}, // short prose stays
		{"plain string", "plain string"},
	}

	for _, tt := range tests {
		if got := m.Mask(tt.input); got != tt.want {
			t.Errorf("Mask(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestMaskIdempotent(t *testing.T) {
	t.Parallel()

	m := NewMasker()

	input := map[string]any{
		"password": "secret",
		"profile": map[string]any{
			"token": "Bearer abcdefghijklmnopqrstuvwxyz",
			"bio":   "hello",
		},
		"tags": []any{"a", map[string]any{"ssn": "x"}},
		"n":    42,
		"ok":   true,
		"nil":  nil,
	}

	once := m.Mask(input)
	twice := m.Mask(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("mask(mask(x)) != mask(x):\nonce:  %#v\ntwice: %#v", once, twice)
	}
}

func TestMaskDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	m := NewMasker()

	input := map[string]any{
		"password": "secret",
		"nested":   map[string]any{"token": "t0123456789012345678901234"},
	}

	_ = m.Mask(input)

	if input["password"] != "secret" {
		t.Errorf("input mutated: password = %v", input["password"])
	}
	if input["nested"].(map[string]any)["token"] != "t0123456789012345678901234" {
		t.Error("input mutated: nested token changed")
	}
}

func TestMaskTypedShapes(t *testing.T) {
	t.Parallel()

	m := NewMasker()

	got := m.Mask(map[string]any{
		"headers": map[string]string{"authorization": "Basic xyz", "accept": "json"},
		"roles":   []string{"admin", "viewer"},
	})

	root := got.(map[string]any)
	headers := root["headers"].(map[string]any)
	if headers["authorization"] != RedactedMask {
		t.Errorf("authorization = %v, want %q", headers["authorization"], RedactedMask)
	}
	if headers["accept"] != "json" {
		t.Errorf("accept = %v, want json", headers["accept"])
	}
	roles := root["roles"].([]any)
	if roles[0] != "admin" || roles[1] != "viewer" {
		t.Errorf("roles = %v", roles)
	}
}

func TestMaskExtraNil(t *testing.T) {
	t.Parallel()

	m := NewMasker()
	if got := m.MaskExtra(nil); got != nil {
		t.Errorf("MaskExtra(nil) = %v, want nil", got)
	}
}

func TestMaskCustomFieldSet(t *testing.T) {
	t.Parallel()

	m := NewMasker("pin")

	got := m.Mask(map[string]any{"pin": "1234", "password": "not-in-set"}).(map[string]any)
	if got["pin"] != RedactedMask {
		t.Errorf("pin = %v, want %q", got["pin"], RedactedMask)
	}
	if got["password"] != "not-in-set" {
		t.Errorf("password = %v, want untouched with custom set", got["password"])
	}

	if !m.Sensitive("PIN") || m.Sensitive("password") {
		t.Error("Sensitive() does not reflect the custom set")
	}
}

func TestDefaultSensitiveFieldsCoverWellKnownNames(t *testing.T) {
	t.Parallel()

	m := NewMasker()
	for _, name := range []string{"password", "token", "api_key", "ssn", "Authorization", "SECRET"} {
		if !m.Sensitive(name) {
			t.Errorf("default set should contain %q (case-insensitively)", strings.ToLower(name))
		}
	}
}
