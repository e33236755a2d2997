// Package log provides structured logging for StepGo model operations.
//
// The package defines a minimal, slog-compatible logging interface with a
// zerolog-backed default implementation. Components obtain a logger through
// GetLogger or GetLoggerWithName and attach model-specific structured
// attributes (operation types, data shapes, scores) using the standard keys
// defined in attributes.go.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("stepwise").With(
//	    log.ModelNameKey, "ForwardSelector",
//	)
//	logger.Info("step accepted",
//	    log.StepKey, 2,
//	    log.VariableKey, "violent_crime_rate",
//	    log.ScoreKey, 0.7312,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's
// log/slog. Implementations must accept alternating key/value fields the way
// slog does; a bare error value is treated as the error attribute.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	// If an error value appears among the fields, stack trace information
	// extracted from it is included in the emitted record.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	// Use it to avoid building expensive attributes for suppressed levels.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, value-compatible with slog.Level.
type Level int

// Standard logging levels.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
