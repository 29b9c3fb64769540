// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// rotatedSuffixFormat is the date suffix appended to rotated files:
// app.log.2026-01-11
const rotatedSuffixFormat = "2006-01-02"

// FileSink appends JSON lines to a single current file and rotates it at
// the UTC calendar-day boundary. Rotated files are renamed with the date
// of the day they cover; files older than the retention count are deleted.
//
// A single mutex covers both the rotation decision and the write, so a
// line always lands wholly in the file for its day — a write racing the
// boundary never splits across two files.
type FileSink struct {
	mu        sync.Mutex
	dir       string
	basename  string
	retention int
	file      *os.File
	day       time.Time // UTC midnight of the day the current file covers

	// now is the clock; tests substitute it to simulate day boundaries.
	now func() time.Time
}

// NewFileSink opens (or creates) dir/basename for appending. If the
// process restarted on the same UTC day the existing file is appended to;
// if the existing file is from an earlier day it is rotated out first.
// retention is the number of rotated files kept (0 keeps none).
func NewFileSink(dir, basename string, retention int) (*FileSink, error) {
	if retention < 0 {
		return nil, fmt.Errorf("file sink: retention must be >= 0, got %d", retention)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("file sink: create log directory %s: %w", dir, err)
	}

	s := &FileSink{
		dir:       dir,
		basename:  basename,
		retention: retention,
		now:       time.Now,
	}

	// A current file left behind by a run on an earlier day belongs to
	// that day's archive, not to today's.
	path := s.currentPath()
	if info, err := os.Stat(path); err == nil {
		fileDay := utcDay(info.ModTime())
		if today := utcDay(s.now()); fileDay.Before(today) {
			if err := os.Rename(path, s.rotatedPath(fileDay)); err != nil {
				return nil, fmt.Errorf("file sink: rotate stale log file: %w", err)
			}
		}
	}

	if err := s.open(); err != nil {
		return nil, err
	}
	s.day = utcDay(s.now())
	s.prune()
	return s, nil
}

// Write implements Sink. The rotation check and the write happen under one
// lock acquisition.
func (s *FileSink) Write(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.rotateIfDue(); err != nil {
		return err
	}
	if _, err := s.file.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("file sink write: %w", err)
	}
	return nil
}

// Sweep forces a rotation check and retention prune without writing. The
// supervisor's retention sweeper calls this so the boundary is honored on
// days with no log traffic.
func (s *FileSink) Sweep() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.rotateIfDue(); err != nil {
		return err
	}
	s.prune()
	return nil
}

// Close implements Sink, syncing and closing the current file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Sync()
	if cerr := s.file.Close(); err == nil {
		err = cerr
	}
	s.file = nil
	return err
}

// rotateIfDue closes and renames the current file when the UTC day has
// advanced past the day it covers. Must be called with mu held.
func (s *FileSink) rotateIfDue() error {
	today := utcDay(s.now())
	if !today.After(s.day) {
		return nil
	}

	if err := s.file.Close(); err != nil {
		return fmt.Errorf("file sink rotate: close current: %w", err)
	}
	// Rename overwrites a leftover archive for the same day, matching the
	// append-then-restart semantics of the current file itself.
	if err := os.Rename(s.currentPath(), s.rotatedPath(s.day)); err != nil {
		return fmt.Errorf("file sink rotate: archive %s: %w", s.day.Format(rotatedSuffixFormat), err)
	}
	if err := s.open(); err != nil {
		return err
	}
	s.day = today
	s.prune()
	return nil
}

// open opens the current file for appending. Must be called with mu held
// (or during construction).
func (s *FileSink) open() error {
	f, err := os.OpenFile(s.currentPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("file sink: open %s: %w", s.currentPath(), err)
	}
	s.file = f
	return nil
}

// prune deletes rotated files beyond the retention count, oldest first.
// Removal failures are ignored; the next prune retries. Must be called
// with mu held.
func (s *FileSink) prune() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return
	}

	prefix := s.basename + "."
	var rotated []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		if _, err := time.Parse(rotatedSuffixFormat, strings.TrimPrefix(e.Name(), prefix)); err != nil {
			continue
		}
		rotated = append(rotated, e.Name())
	}

	if len(rotated) <= s.retention {
		return
	}
	// Date suffixes sort lexicographically in chronological order.
	sort.Strings(rotated)
	for _, name := range rotated[:len(rotated)-s.retention] {
		_ = os.Remove(filepath.Join(s.dir, name))
	}
}

func (s *FileSink) currentPath() string {
	return filepath.Join(s.dir, s.basename)
}

func (s *FileSink) rotatedPath(day time.Time) string {
	return filepath.Join(s.dir, s.basename+"."+day.Format(rotatedSuffixFormat))
}

// utcDay truncates t to UTC midnight.
func utcDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
