// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// blockingService runs until its context is canceled.
type blockingService struct {
	started atomic.Int32
}

func (s *blockingService) Serve(ctx context.Context) error {
	s.started.Add(1)
	<-ctx.Done()
	return ctx.Err()
}

func (s *blockingService) String() string { return "blocking-service" }

func TestDefaultTreeConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultTreeConfig()
	if cfg.FailureThreshold != 5.0 {
		t.Errorf("FailureThreshold = %v, want 5", cfg.FailureThreshold)
	}
	if cfg.FailureDecay != 30.0 {
		t.Errorf("FailureDecay = %v, want 30", cfg.FailureDecay)
	}
	if cfg.FailureBackoff != 15*time.Second {
		t.Errorf("FailureBackoff = %v, want 15s", cfg.FailureBackoff)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 10s", cfg.ShutdownTimeout)
	}
}

func TestNewTreeAppliesDefaults(t *testing.T) {
	t.Parallel()

	tree := NewTree(TreeConfig{})
	if tree.config.FailureThreshold != 5.0 {
		t.Errorf("FailureThreshold = %v, want 5", tree.config.FailureThreshold)
	}
	if tree.config.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 10s", tree.config.ShutdownTimeout)
	}
}

func TestTreeServesAndStops(t *testing.T) {
	t.Parallel()

	tree := NewTree(TreeConfig{
		FailureBackoff:  10 * time.Millisecond,
		ShutdownTimeout: time.Second,
	})
	svc := &blockingService{}
	tree.Add(svc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	deadline := time.After(time.Second)
	for svc.started.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("service did not start")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("ServeBackground() = %v, want nil or context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not stop after cancellation")
	}

	report, err := tree.UnstoppedServiceReport()
	if err != nil {
		t.Fatalf("UnstoppedServiceReport() error = %v", err)
	}
	if len(report) != 0 {
		t.Errorf("unstopped services = %v, want none", report)
	}
}
