// Package logger writes structured logs to a file. The terminal belongs to the
// TUI, so nothing is ever logged to stdout or stderr.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	mu       sync.Mutex
	levelVar = new(slog.LevelVar)
	logFile  *os.File
	logPath  string
	base     = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: levelVar}))
)

// Init opens path for appending and routes every logger to it. Calling it
// again switches to the new file.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	// #nosec G304 -- path is controlled by the app cache location
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", path, err)
	}
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	logPath = path
	base = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	base.Info("logger initialized", "path", path)
	return nil
}

// Path returns the file passed to Init, or "" when logs are discarded.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// SetDebug switches between debug and info level.
func SetDebug(enabled bool) {
	if enabled {
		levelVar.Set(slog.LevelDebug)
		return
	}
	levelVar.Set(slog.LevelInfo)
}

func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	logPath = ""
	base = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: levelVar}))
}

func current() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return base
}

// WithComponent returns a logger with the component attribute attached.
//
//	log := logger.WithComponent("source")
//	log.Warn("fetch failed", "source", name, "error", err)
func WithComponent(component string) *slog.Logger {
	return current().With(slog.String("component", component))
}

func logf(level slog.Level, format string, args ...any) {
	l := current()
	if !l.Enabled(context.Background(), level) {
		return
	}
	l.Log(context.Background(), level, fmt.Sprintf(format, args...))
}

func Debug(format string, args ...any) { logf(slog.LevelDebug, format, args...) }

func Info(format string, args ...any) { logf(slog.LevelInfo, format, args...) }

func Warn(format string, args ...any) { logf(slog.LevelWarn, format, args...) }

func Error(format string, args ...any) { logf(slog.LevelError, format, args...) }
