package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var (
	// Default is the default logger instance
	Default *slog.Logger
)

func init() {
	// Stdout carries command output, so logs go to stderr
	Default = New("info", os.Stderr)
}

// ParseLevel maps a level name to a slog.Level. Unknown names report false
// and yield slog.LevelInfo.
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// New creates a new structured logger with the specified level and output
func New(level string, output io.Writer) *slog.Logger {
	logLevel, _ := ParseLevel(level)
	handler := slog.NewJSONHandler(output, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// NewText creates a new text-formatted logger (useful for the CLI)
func NewText(level string, output io.Writer) *slog.Logger {
	logLevel, _ := ParseLevel(level)
	handler := slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// SetDefault sets the default logger
func SetDefault(logger *slog.Logger) {
	Default = logger
	slog.SetDefault(logger)
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Default.Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Default.Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Default.Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Default.Error(msg, args...)
}

// With returns a logger with additional attributes
func With(args ...any) *slog.Logger {
	return Default.With(args...)
}
