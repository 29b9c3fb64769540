// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Sink is a configured destination for formatted log lines. Write appends
// exactly one line (the sink adds the trailing newline). Implementations
// must be safe for concurrent writers and must preserve the order of
// writes from a single goroutine.
type Sink interface {
	Write(line string) error
	Close() error
}

// ConsoleSink writes formatted lines to an io.Writer, normally standard
// output. A mutex keeps concurrent lines from interleaving; buffering and
// blocking behavior are whatever the underlying stream provides.
type ConsoleSink struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleSink creates a sink over w. A nil writer defaults to stdout.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleSink{out: w}
}

// Write implements Sink.
func (s *ConsoleSink) Write(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.WriteString(s.out, line+"\n"); err != nil {
		return fmt.Errorf("console sink write: %w", err)
	}
	return nil
}

// Close implements Sink. The console stream is not owned by the sink, so
// there is nothing to release.
func (s *ConsoleSink) Close() error {
	return nil
}

// failureReporter surfaces sink write failures as an internal diagnostic
// without propagating them to application logic. Each distinct error
// message is reported once; a repeat of the same failure stays silent so a
// full disk does not flood stderr.
type failureReporter struct {
	mu   sync.Mutex
	last string
}

func (r *failureReporter) report(sinkName string, err error) {
	if err == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	msg := err.Error()
	if msg == r.last {
		return
	}
	r.last = msg
	fmt.Fprintf(os.Stderr, "threadline: %s sink write failed: %v\n", sinkName, err)
}
