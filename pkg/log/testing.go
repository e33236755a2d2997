package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// TestLogger captures log records in memory so tests can assert on what a
// component logged without touching the process-wide logger.
type TestLogger struct {
	buffer *bytes.Buffer
	level  Level
	fields map[string]interface{}
}

// NewTestLogger creates a TestLogger capturing records at or above level.
// The returned buffer holds one JSON object per line.
//
//	logger, buf := log.NewTestLogger(log.LevelDebug)
//	logger.Info("step accepted", log.StepKey, 1)
//	// assert on buf.String()
func NewTestLogger(level Level) (*TestLogger, *bytes.Buffer) {
	buffer := &bytes.Buffer{}
	return &TestLogger{
		buffer: buffer,
		level:  level,
		fields: make(map[string]interface{}),
	}, buffer
}

func (t *TestLogger) Debug(msg string, fields ...any) { t.record(LevelDebug, msg, fields) }
func (t *TestLogger) Info(msg string, fields ...any)  { t.record(LevelInfo, msg, fields) }
func (t *TestLogger) Warn(msg string, fields ...any)  { t.record(LevelWarn, msg, fields) }
func (t *TestLogger) Error(msg string, fields ...any) { t.record(LevelError, msg, fields) }

// With returns a TestLogger sharing the same buffer with extra base fields.
func (t *TestLogger) With(fields ...any) Logger {
	merged := make(map[string]interface{}, len(t.fields)+len(fields)/2)
	for k, v := range t.fields {
		merged[k] = v
	}
	for _, f := range pairs(fields) {
		merged[f.key] = f.value
	}
	return &TestLogger{buffer: t.buffer, level: t.level, fields: merged}
}

// Enabled reports whether records at level would be captured.
func (t *TestLogger) Enabled(_ context.Context, level Level) bool {
	return level >= t.level
}

func (t *TestLogger) record(level Level, msg string, fields []any) {
	if level < t.level {
		return
	}
	rec := map[string]interface{}{
		"level":   level.String(),
		"message": msg,
	}
	for k, v := range t.fields {
		rec[k] = v
	}
	for _, f := range pairs(fields) {
		if err, ok := f.value.(error); ok {
			rec[f.key] = err.Error()
			continue
		}
		rec[f.key] = f.value
	}
	line, err := json.Marshal(rec)
	if err != nil {
		line = []byte(fmt.Sprintf(`{"level":%q,"message":%q,"marshal_error":%q}`, level.String(), msg, err))
	}
	t.buffer.Write(line)
	t.buffer.WriteByte('\n')
}

// Contains reports whether any captured record contains substr.
func (t *TestLogger) Contains(substr string) bool {
	return strings.Contains(t.buffer.String(), substr)
}

// Lines returns the captured records, one JSON object per entry.
func (t *TestLogger) Lines() []string {
	raw := strings.TrimSpace(t.buffer.String())
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "\n")
}
