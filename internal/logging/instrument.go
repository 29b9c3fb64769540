// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

package logging

import "context"

// InstrumentedFunc is a unit of work suitable for Instrument: it takes a
// context (carrying any active request context) and an argument payload,
// and returns an error.
type InstrumentedFunc func(ctx context.Context, args Extra) error

// Instrument wraps fn so that every invocation logs entry at DEBUG with
// its argument payload, exit at DEBUG, and failure at ERROR with the
// captured error. Arguments pass through the pipeline's masker like any
// other extra payload, so sensitive argument values never reach a sink.
// The wrapped function's error is returned unchanged.
func Instrument(l *Logger, name string, fn InstrumentedFunc) InstrumentedFunc {
	return func(ctx context.Context, args Extra) error {
		l.Debug(ctx, "Entering "+name, args)

		if err := fn(ctx, args); err != nil {
			l.ErrorE(ctx, "Exception in "+name, err, Extra{"function": name})
			return err
		}

		l.Debug(ctx, "Exiting "+name, nil)
		return nil
	}
}
