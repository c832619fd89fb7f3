// Package logging configures structured logging for the service: slog with a
// console handler plus a weekly-rotating JSON file handler, and package-level
// helpers that fall back to stderr before initialization.
package logging

import (
	"log/slog"
	"os"
)

var defaultLogger *slog.Logger

// InitLogger builds the combined console+file logger, installs it as the
// slog default and as the package default used by the helpers below.
func InitLogger(logDir string, retentionWeeks int) {
	defaultLogger = SetupLogger(logDir, retentionWeeks)
	slog.SetDefault(defaultLogger)
}

func active() *slog.Logger {
	if defaultLogger != nil {
		return defaultLogger
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// Package-level helpers for direct access.

func Info(msg string, args ...any)  { active().Info(msg, args...) }
func Warn(msg string, args ...any)  { active().Warn(msg, args...) }
func Error(msg string, args ...any) { active().Error(msg, args...) }
func Debug(msg string, args ...any) { active().Debug(msg, args...) }

// Logger returns the active logger for components that want to carry one.
func Logger() *slog.Logger { return active() }
