// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

package logging

import "strings"

const (
	// RedactedMask replaces any value whose key names a sensitive field.
	RedactedMask = "***REDACTED***"

	// maxDepthMask replaces subtrees nested deeper than maxMaskDepth.
	maxDepthMask = "[MAX_DEPTH_EXCEEDED]"

	// maxMaskDepth caps recursion. Cycles in caller-supplied maps are not
	// detected by identity; this cap is the only guard, so it stays
	// conservative.
	maxMaskDepth = 10
)

// defaultSensitiveFields are field names whose values must never reach a
// sink. Matching is case-insensitive on the key name.
var defaultSensitiveFields = []string{
	"password",
	"password_hash",
	"token",
	"access_token",
	"refresh_token",
	"api_key",
	"apikey",
	"secret",
	"secret_key",
	"authorization",
	"auth",
	"credential",
	"credentials",
	"private_key",
	"ssh_key",
	"credit_card",
	"card_number",
	"cvv",
	"ssn",
	"social_security",
}

// Masker redacts sensitive values from arbitrarily nested extra payloads.
// The field set is fixed at construction and safe for concurrent use.
type Masker struct {
	fields map[string]struct{}
}

// NewMasker creates a masker for the given field names (lowercased for
// matching). With no arguments the default sensitive set is used.
func NewMasker(fields ...string) *Masker {
	if len(fields) == 0 {
		fields = defaultSensitiveFields
	}
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[strings.ToLower(f)] = struct{}{}
	}
	return &Masker{fields: set}
}

// Sensitive reports whether key names a sensitive field.
func (m *Masker) Sensitive(key string) bool {
	_, ok := m.fields[strings.ToLower(key)]
	return ok
}

// Mask returns a copy of v with sensitive values replaced by RedactedMask.
// Maps are copied with sensitive keys redacted and other values masked
// recursively; slices are masked element-wise; strings carrying a bearer
// or token credential are redacted wholesale; everything else passes
// through unchanged. The input is never mutated and Mask never fails:
// past the depth cap it degrades to the maxDepthMask sentinel.
func (m *Masker) Mask(v any) any {
	return m.mask(v, 0)
}

// MaskExtra masks an Extra payload, preserving the nil-ness of the input.
func (m *Masker) MaskExtra(extra Extra) Extra {
	if extra == nil {
		return nil
	}
	masked := make(Extra, len(extra))
	for k, val := range extra {
		if m.Sensitive(k) {
			masked[k] = RedactedMask
		} else {
			masked[k] = m.mask(val, 1)
		}
	}
	return masked
}

func (m *Masker) mask(v any, depth int) any {
	if depth > maxMaskDepth {
		return maxDepthMask
	}

	switch val := v.(type) {
	case map[string]any:
		masked := make(map[string]any, len(val))
		for k, item := range val {
			if m.Sensitive(k) {
				masked[k] = RedactedMask
			} else {
				masked[k] = m.mask(item, depth+1)
			}
		}
		return masked

	case Extra:
		masked := make(Extra, len(val))
		for k, item := range val {
			if m.Sensitive(k) {
				masked[k] = RedactedMask
			} else {
				masked[k] = m.mask(item, depth+1)
			}
		}
		return masked

	case map[string]string:
		masked := make(map[string]any, len(val))
		for k, item := range val {
			if m.Sensitive(k) {
				masked[k] = RedactedMask
			} else {
				masked[k] = m.mask(item, depth+1)
			}
		}
		return masked

	case []any:
		masked := make([]any, len(val))
		for i, item := range val {
			masked[i] = m.mask(item, depth+1)
		}
		return masked

	case []string:
		masked := make([]any, len(val))
		for i, item := range val {
			masked[i] = m.mask(item, depth+1)
		}
		return masked

	case string:
		if looksLikeCredential(val) {
			return RedactedMask
		}
		return val

	default:
		return v
	}
}

// looksLikeCredential matches strings that carry an inline bearer or token
// credential. The length guard keeps short prose such as "Bearer auth
// enabled" intact.
func looksLikeCredential(s string) bool {
	if len(s) <= 20 {
		return false
	}
	return strings.HasPrefix(s, "Bearer ") || strings.HasPrefix(s, "Token ")
}
