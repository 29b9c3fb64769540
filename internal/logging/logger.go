// Threadline - Structured Logging and Request Correlation for Go Services
// Copyright 2026 Threadline Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/threadline-io/threadline

package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// Config holds pipeline configuration for Setup.
type Config struct {
	// Level is the minimum severity accepted by both sinks.
	// Default: LevelInfo.
	Level Level

	// FileLevel overrides Level for the file sink only, letting the file
	// sink run stricter than the console. Zero means "same as Level".
	FileLevel Level

	// Environment selects the console rendering: "development" uses the
	// human formatter (colorized when stdout is a terminal), anything
	// else uses JSON. Default: "production".
	Environment string

	// Format forces the console formatter: "console", "json", or ""
	// to derive it from Environment.
	Format string

	// Dir is the log directory. Default: "logs". Created at setup;
	// failure to create it is fatal to the caller.
	Dir string

	// Basename is the current log file name. Default: "app.log".
	Basename string

	// RetentionDays is the number of rotated files kept. Zero keeps no
	// rotated files.
	RetentionDays int

	// NoColor disables ANSI colors on the console formatter even when
	// the output is a terminal.
	NoColor bool

	// ConsoleOut is the console sink destination. Default: os.Stdout.
	ConsoleOut io.Writer
}

// binding couples one sink with its formatter and severity threshold.
type binding struct {
	name      string
	sink      Sink
	formatter Formatter
	threshold Level
}

// Pipeline fans accepted events out to its sinks: threshold check, extra
// masking, per-sink formatting, write. Emission runs synchronously on the
// caller's goroutine, so events from one goroutine reach each sink in
// emission order. Write failures are swallowed and surfaced once per
// occurrence on stderr — logging never fails the caller.
type Pipeline struct {
	bindings []*binding
	masker   *Masker
	reporter failureReporter
}

// NewPipeline creates an empty pipeline. A nil masker gets the default
// sensitive field set.
func NewPipeline(masker *Masker) *Pipeline {
	if masker == nil {
		masker = NewMasker()
	}
	return &Pipeline{masker: masker}
}

// Attach adds a sink binding. Attach is for construction time only and is
// not synchronized with emission.
func (p *Pipeline) Attach(name string, sink Sink, formatter Formatter, threshold Level) {
	p.bindings = append(p.bindings, &binding{
		name:      name,
		sink:      sink,
		formatter: formatter,
		threshold: threshold,
	})
}

// emit masks the event's extra payload once, then renders and writes it to
// every binding whose threshold it passes.
func (p *Pipeline) emit(e *Event, rc *RequestContext) {
	masked := *e
	masked.Extra = p.masker.MaskExtra(e.Extra)

	for _, b := range p.bindings {
		if !e.Level.Enabled(b.threshold) {
			continue
		}
		if err := b.sink.Write(b.formatter.Format(&masked, rc)); err != nil {
			p.reporter.report(b.name, err)
		}
	}
}

// Close flushes and closes all sinks, returning the first failure.
func (p *Pipeline) Close() error {
	var first error
	for _, b := range p.bindings {
		if err := b.sink.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

var (
	pipelineMu sync.RWMutex
	pipeline   = fallbackPipeline()

	registryMu sync.Mutex
	registry   = map[string]*Logger{}

	overrideMu sync.RWMutex
	overrides  = map[string]Level{}
)

// fallbackPipeline keeps logging alive before Setup: plain console lines
// to stderr at INFO.
func fallbackPipeline() *Pipeline {
	p := NewPipeline(nil)
	p.Attach("console", NewConsoleSink(os.Stderr), &ConsoleFormatter{}, LevelInfo)
	return p
}

// Setup builds the console and file sinks from cfg and installs the
// result as the process-wide pipeline. It must be called once at startup,
// after configuration is loaded; errors (unwritable log directory) are
// fatal — the process must not continue half-configured.
func Setup(cfg Config) error {
	if cfg.Level == 0 {
		cfg.Level = LevelInfo
	}
	if cfg.FileLevel == 0 {
		cfg.FileLevel = cfg.Level
	}
	if cfg.Environment == "" {
		cfg.Environment = "production"
	}
	if cfg.Dir == "" {
		cfg.Dir = "logs"
	}
	if cfg.Basename == "" {
		cfg.Basename = "app.log"
	}
	if cfg.ConsoleOut == nil {
		cfg.ConsoleOut = os.Stdout
	}

	p := NewPipeline(nil)
	p.Attach("console", NewConsoleSink(cfg.ConsoleOut), consoleFormatter(cfg), cfg.Level)

	fileSink, err := NewFileSink(cfg.Dir, cfg.Basename, cfg.RetentionDays)
	if err != nil {
		return err
	}
	p.Attach("file", fileSink, &JSONFormatter{}, cfg.FileLevel)

	install(p)

	Get("app").Info(context.Background(), "Logging initialized", Extra{
		"log_level":          cfg.Level.String(),
		"log_file":           fileSink.currentPath(),
		"log_retention_days": cfg.RetentionDays,
		"environment":        cfg.Environment,
	})
	return nil
}

// consoleFormatter selects the console rendering: JSON in production (or
// when forced), colorized human format only on an interactive terminal.
func consoleFormatter(cfg Config) Formatter {
	format := cfg.Format
	if format == "" {
		if cfg.Environment == "development" {
			format = "console"
		} else {
			format = "json"
		}
	}
	if format == "json" {
		return &JSONFormatter{}
	}

	color := false
	if f, ok := cfg.ConsoleOut.(*os.File); ok && !cfg.NoColor {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &ConsoleFormatter{Color: color}
}

// install replaces the process-wide pipeline.
func install(p *Pipeline) {
	pipelineMu.Lock()
	pipeline = p
	pipelineMu.Unlock()
}

// FileSinkFromPipeline returns the installed pipeline's file sink, if any.
// The supervisor's retention sweeper uses this to drive Sweep.
func FileSinkFromPipeline() (*FileSink, bool) {
	pipelineMu.RLock()
	defer pipelineMu.RUnlock()
	for _, b := range pipeline.bindings {
		if fs, ok := b.sink.(*FileSink); ok {
			return fs, true
		}
	}
	return nil, false
}

// Shutdown flushes and closes the installed sinks and restores the
// fallback console pipeline. Call on process exit.
func Shutdown() error {
	pipelineMu.Lock()
	old := pipeline
	pipeline = fallbackPipeline()
	pipelineMu.Unlock()
	return old.Close()
}

func currentPipeline() *Pipeline {
	pipelineMu.RLock()
	defer pipelineMu.RUnlock()
	return pipeline
}

// Logger is a named event emitter. Names form a dotted hierarchy
// ("app.api.users"); per-name level overrides apply to the name and its
// descendants. Loggers are cheap, long-lived, and safe for concurrent use.
type Logger struct {
	name string
}

// Get returns the logger for name, creating it on first use. Repeated
// calls with the same name return the same instance.
func Get(name string) *Logger {
	registryMu.Lock()
	defer registryMu.Unlock()
	if l, ok := registry[name]; ok {
		return l
	}
	l := &Logger{name: name}
	registry[name] = l
	return l
}

// Name returns the logger's dotted name.
func (l *Logger) Name() string {
	return l.name
}

// SetLoggerLevel sets a minimum level for one logger name and everything
// beneath it, independent of sink thresholds. Used to quiet chatty
// components ("app.http.access") without raising the global level.
func SetLoggerLevel(name string, level Level) {
	overrideMu.Lock()
	overrides[name] = level
	overrideMu.Unlock()
}

// loggerThreshold resolves the effective override for name by walking up
// the dotted hierarchy.
func loggerThreshold(name string) (Level, bool) {
	overrideMu.RLock()
	defer overrideMu.RUnlock()
	for {
		if lvl, ok := overrides[name]; ok {
			return lvl, true
		}
		i := strings.LastIndex(name, ".")
		if i < 0 {
			return 0, false
		}
		name = name[:i]
	}
}

// Debug emits a DEBUG event. extra may be nil.
func (l *Logger) Debug(ctx context.Context, msg string, extra Extra) {
	l.log(ctx, LevelDebug, msg, extra, nil)
}

// Info emits an INFO event. extra may be nil.
func (l *Logger) Info(ctx context.Context, msg string, extra Extra) {
	l.log(ctx, LevelInfo, msg, extra, nil)
}

// Warning emits a WARNING event. extra may be nil.
func (l *Logger) Warning(ctx context.Context, msg string, extra Extra) {
	l.log(ctx, LevelWarning, msg, extra, nil)
}

// Error emits an ERROR event. extra may be nil.
func (l *Logger) Error(ctx context.Context, msg string, extra Extra) {
	l.log(ctx, LevelError, msg, extra, nil)
}

// Critical emits a CRITICAL event. extra may be nil.
func (l *Logger) Critical(ctx context.Context, msg string, extra Extra) {
	l.log(ctx, LevelCritical, msg, extra, nil)
}

// ErrorE emits an ERROR event carrying err as a captured exception.
func (l *Logger) ErrorE(ctx context.Context, msg string, err error, extra Extra) {
	l.log(ctx, LevelError, msg, extra, CaptureException(err))
}

// CriticalE emits a CRITICAL event carrying err as a captured exception.
func (l *Logger) CriticalE(ctx context.Context, msg string, err error, extra Extra) {
	l.log(ctx, LevelCritical, msg, extra, CaptureException(err))
}

// Log emits an event at an arbitrary level, optionally with a captured
// error. The request lifecycle middleware uses this to pick the
// completion level from the response status.
func (l *Logger) Log(ctx context.Context, level Level, msg string, extra Extra, err error) {
	l.log(ctx, level, msg, extra, CaptureException(err))
}

func (l *Logger) log(ctx context.Context, level Level, msg string, extra Extra, exc *Exception) {
	if min, ok := loggerThreshold(l.name); ok && !level.Enabled(min) {
		return
	}
	var rc *RequestContext
	if ctx != nil {
		rc, _ = FromContext(ctx)
	}
	currentPipeline().emit(newEvent(l.name, level, msg, extra, exc), rc)
}
