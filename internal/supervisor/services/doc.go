// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

// Package services contains the suture.Service wrappers run under the
// supervision tree: the HTTP server and the log retention sweeper.
package services
