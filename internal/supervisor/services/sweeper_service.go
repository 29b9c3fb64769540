// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

package services

import (
	"context"
	"time"

	"github.com/threadline-io/threadline/internal/logging"
)

// RetentionSweeperService periodically rotates and prunes the file
// sink. Writes already rotate on their own; the sweeper covers quiet
// periods so a service that logs nothing overnight still rolls its
// file and sheds expired ones.
type RetentionSweeperService struct {
	interval time.Duration
	log      *logging.Logger
	name     string
}

// NewRetentionSweeperService creates the sweeper. Zero or negative
// interval selects 15 minutes.
func NewRetentionSweeperService(interval time.Duration) *RetentionSweeperService {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &RetentionSweeperService{
		interval: interval,
		log:      logging.Get("app.retention"),
		name:     "retention-sweeper",
	}
}

// Serve implements suture.Service. It sweeps once per interval until
// the context is canceled. A missing file sink (console-only pipeline)
// is not an error; the sweeper just idles.
func (s *RetentionSweeperService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			sink, ok := logging.FileSinkFromPipeline()
			if !ok {
				continue
			}
			if err := sink.Sweep(); err != nil {
				s.log.ErrorE(ctx, "Log retention sweep failed", err, nil)
			}
		}
	}
}

// String identifies the service in supervision events.
func (s *RetentionSweeperService) String() string {
	return s.name
}
