package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	cockroach "github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"github.com/stepgo-ml/stepgo/pkg/errors"
)

// zerologLogger adapts a zerolog.Logger to the Logger interface. Errors
// passed in fields get a stacktrace attribute extracted from their
// cockroachdb safe details, mirroring what the error constructors attach.
type zerologLogger struct {
	zl zerolog.Logger
}

var (
	providerMu    sync.Mutex
	defaultOutput io.Writer = os.Stderr
	defaultLevel            = zerolog.InfoLevel
	defaultLogger Logger
)

func init() {
	// Route library warnings (errors.Warn) into structured log events.
	errors.SetZerologWarnFunc(func(warning error) {
		GetLogger().Warn("warning raised", ErrAttrKey, warning)
	})
}

// GetLogger returns the process-wide default logger.
func GetLogger() Logger {
	providerMu.Lock()
	defer providerMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = newZerologLogger(defaultOutput, defaultLevel)
	}
	return defaultLogger
}

// GetLoggerWithName returns a logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	return GetLogger().With(ComponentKey, name)
}

// SetLevel sets the minimum level for loggers created by this package.
// It resets the default logger so the new level takes effect immediately.
func SetLevel(level Level) {
	providerMu.Lock()
	defer providerMu.Unlock()
	defaultLevel = toZerologLevel(level)
	defaultLogger = newZerologLogger(defaultOutput, defaultLevel)
}

// SetOutput redirects the default logger, mainly for tests and example
// programs that want console formatting.
func SetOutput(w io.Writer) {
	providerMu.Lock()
	defer providerMu.Unlock()
	defaultOutput = w
	defaultLogger = newZerologLogger(defaultOutput, defaultLevel)
}

func newZerologLogger(w io.Writer, level zerolog.Level) *zerologLogger {
	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &zerologLogger{zl: zl}
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

func (l *zerologLogger) Debug(msg string, fields ...any) {
	l.emit(l.zl.Debug(), msg, fields)
}

func (l *zerologLogger) Info(msg string, fields ...any) {
	l.emit(l.zl.Info(), msg, fields)
}

func (l *zerologLogger) Warn(msg string, fields ...any) {
	l.emit(l.zl.Warn(), msg, fields)
}

func (l *zerologLogger) Error(msg string, fields ...any) {
	l.emit(l.zl.Error(), msg, fields)
}

func (l *zerologLogger) With(fields ...any) Logger {
	ctx := l.zl.With()
	for _, f := range pairs(fields) {
		ctx = ctx.Interface(f.key, f.value)
	}
	return &zerologLogger{zl: ctx.Logger()}
}

func (l *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return toZerologLevel(level) >= l.zl.GetLevel()
}

func (l *zerologLogger) emit(e *zerolog.Event, msg string, fields []any) {
	for _, f := range pairs(fields) {
		switch v := f.value.(type) {
		case error:
			e = e.AnErr(f.key, v)
			if st := extractStacktrace(v); st != "" {
				e = e.Str(StacktraceAttrKey, st)
			}
		case zerolog.LogObjectMarshaler:
			e = e.Object(f.key, v)
		default:
			e = e.Interface(f.key, v)
		}
	}
	e.Msg(msg)
}

// field is one parsed key/value attribute. Keeping fields in a slice rather
// than a map preserves the caller's argument order, so identical events emit
// byte-identical records run to run.
type field struct {
	key   string
	value any
}

// pairs interprets a slog-style variadic field list in order. A bare error
// in key position is keyed as ErrAttrKey; any other non-string key is
// stringified under "!BADKEY" the way slog reports malformed attributes.
func pairs(fields []any) []field {
	out := make([]field, 0, len(fields)/2)
	for i := 0; i < len(fields); {
		switch k := fields[i].(type) {
		case string:
			if i+1 < len(fields) {
				out = append(out, field{key: k, value: fields[i+1]})
				i += 2
			} else {
				out = append(out, field{key: "!BADKEY", value: k})
				i++
			}
		case error:
			out = append(out, field{key: ErrAttrKey, value: k})
			i++
		default:
			out = append(out, field{key: "!BADKEY", value: fmt.Sprintf("%v", k)})
			i++
		}
	}
	return out
}

// extractStacktrace pulls the first safe detail (the encoded stack trace)
// from a cockroachdb error, if present.
func extractStacktrace(err error) string {
	safeDetails := cockroach.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}
