// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

// Package main is the entry point for the Threadline server.
//
// Threadline is a structured logging and request correlation service:
// it owns a leveled, masked logging pipeline with console and
// daily-rotating file sinks, and exposes a small HTTP surface whose
// every request is bracketed by correlated lifecycle events.
//
// # Startup Order
//
//  1. Configuration: Koanf v2 layered loading (defaults, config file,
//     environment variables)
//  2. Logging pipeline: console + rotating file sinks per the config
//  3. HTTP router and server
//  4. Supervision tree: HTTP server and retention sweeper under suture
//
// # Configuration
//
// Highest priority wins:
//   - Environment variables (HTTP_PORT, LOG_LEVEL, LOG_DIR, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the server stops
// accepting connections, in-flight requests drain within the configured
// timeout, and the logging pipeline flushes and closes its sinks last
// so shutdown itself is logged.
//
// # Example Usage
//
// Development (human-readable console, DEBUG):
//
//	./threadline
//
// Production:
//
//	export ENVIRONMENT=production
//	export HTTP_PORT=8373
//	export LOG_DIR=/var/log/threadline
//	export LOG_RETENTION_DAYS=30
//	./threadline
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/threadline-io/threadline/internal/api"
	"github.com/threadline-io/threadline/internal/config"
	"github.com/threadline-io/threadline/internal/logging"
	"github.com/threadline-io/threadline/internal/supervisor"
	"github.com/threadline-io/threadline/internal/supervisor/services"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	// The pipeline does not exist yet; config errors go to stderr.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "threadline: failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logging.Setup(cfg.PipelineConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "threadline: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	log := logging.Get("app")
	log.Info(context.Background(), "Starting Threadline", logging.Extra{
		"version":     version,
		"addr":        fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		"environment": cfg.Server.Environment,
	})

	router := api.NewRouter(api.NewHandler(version))
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	tree := supervisor.NewTree(supervisor.DefaultTreeConfig())
	tree.Add(services.NewHTTPServerService(server, cfg.Server.Timeout))
	tree.Add(services.NewRetentionSweeperService(15 * time.Minute))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := tree.Serve(ctx); err != nil && err != context.Canceled {
		log.ErrorE(context.Background(), "Supervisor tree stopped with error", err, nil)
	}

	log.Info(context.Background(), "Shutdown complete", nil)
	if err := logging.Shutdown(); err != nil {
		fmt.Fprintf(os.Stderr, "threadline: failed to close logging sinks: %v\n", err)
	}
}
