// Package internal holds process-wide plumbing shared by the shell's
// packages and its command.
package internal

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// logSink owns the destination of every log record written by the process:
// a console writer plus an optional append-only file. Two loggers share it,
// one for the application and one for the loader, navigator and frontends,
// each with its own level.
type logSink struct {
	mu      sync.Mutex
	console io.Writer
	path    string

	once     sync.Once
	file     *os.File
	app      *slog.Logger
	shell    *slog.Logger
	appLevel slog.LevelVar
	shLevel  slog.LevelVar
}

var sink = newLogSink(os.Stdout)

func newLogSink(console io.Writer) *logSink {
	s := &logSink{console: console}
	s.shLevel.Set(slog.LevelWarn)
	return s
}

// open builds both loggers on first use. Settings changed afterwards only
// affect levels.
func (s *logSink) open() {
	s.once.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		w := s.console
		if f, err := openLogFile(s.path); err == nil && f != nil {
			s.file = f
			w = io.MultiWriter(s.console, f)
		}

		s.app = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: &s.appLevel}))
		s.shell = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: &s.shLevel})).
			With("component", "shell")
	})
}

func (s *logSink) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// openLogFile returns nil when path is empty. A file that cannot be opened
// leaves logging on the console only.
func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
}

// SetLogPath adds a log file, creating its parent directories. Must be
// called before the first logger is requested.
func SetLogPath(path string) {
	sink.mu.Lock()
	sink.path = path
	sink.mu.Unlock()
}

// SetLogOutput replaces the console writer. Must be called before the first
// logger is requested.
func SetLogOutput(w io.Writer) {
	if w == nil {
		return
	}
	sink.mu.Lock()
	sink.console = w
	sink.mu.Unlock()
}

// GetLogger returns the application logger.
func GetLogger() *slog.Logger {
	sink.open()
	return sink.app
}

// GetInternalLogger returns the logger used by the loader, navigator and
// frontends. It starts at warn so framework chatter stays out of the way of
// application logs.
func GetInternalLogger() *slog.Logger {
	sink.open()
	return sink.shell
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(rawLevel string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(rawLevel)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", rawLevel)
}

// SetRawLogLevel sets both loggers from a level name. Unknown names select
// info.
func SetRawLogLevel(rawLevel string) {
	level, _ := ParseLevel(rawLevel)
	sink.appLevel.Set(level)
	sink.shLevel.Set(level)
}

// CloseLogger closes the log file, if any.
func CloseLogger() {
	_ = sink.close()
}
