// Package logger writes leveled, structured log lines as JSON.
//
// Diagnostics go to stderr so they never interleave with the shell's
// output on stdout.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level is the severity of a log line.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a level name to a Level. Unknown names fall back to LevelWarn.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "ERROR":
		return LevelError
	default:
		return LevelWarn
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		// Above every level we emit.
		return slog.LevelError + 4
	}
}

// Field is a key/value pair attached to a log line.
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field  { return Field{Key: key, Value: value} }
func Int(key string, value int) Field { return Field{Key: key, Value: value} }
func Any(key string, value any) Field { return Field{Key: key, Value: value} }

// Err records err under "error"; a nil error is recorded as null.
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Roster-specific fields.
func StudentID(id int) Field      { return Int("student_id", id) }
func Command(name string) Field   { return String("command", name) }
func Session(id string) Field     { return String("session", id) }
func Component(name string) Field { return String("component", name) }

func attrs(fields []Field) []slog.Attr {
	out := make([]slog.Attr, 0, len(fields))
	for _, f := range fields {
		out = append(out, slog.Any(f.Key, f.Value))
	}
	return out
}

// Logger is safe for concurrent use; derived loggers share the handler's writer lock.
type Logger struct {
	slog  *slog.Logger
	level Level
}

// New returns a logger writing lines at or above level to out (stderr when nil).
func New(out io.Writer, level Level) *Logger {
	if out == nil {
		out = os.Stderr
	}
	h := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level.slogLevel()})
	return &Logger{slog: slog.New(h), level: level}
}

// Nop discards everything.
func Nop() *Logger {
	return New(io.Discard, LevelError+1)
}

// With returns a logger that adds fields to every line.
func (l *Logger) With(fields ...Field) *Logger {
	args := make([]any, 0, len(fields))
	for _, a := range attrs(fields) {
		args = append(args, a)
	}
	return &Logger{slog: l.slog.With(args...), level: l.level}
}

// Enabled reports whether lines at level would be written.
func (l *Logger) Enabled(level Level) bool {
	return level >= l.level
}

func (l *Logger) log(level Level, msg string, fields ...Field) {
	if !l.Enabled(level) {
		return
	}
	l.slog.LogAttrs(context.Background(), level.slogLevel(), msg, attrs(fields)...)
}

func (l *Logger) Debug(msg string, fields ...Field) { l.log(LevelDebug, msg, fields...) }
func (l *Logger) Info(msg string, fields ...Field)  { l.log(LevelInfo, msg, fields...) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.log(LevelWarn, msg, fields...) }
func (l *Logger) Error(msg string, fields ...Field) { l.log(LevelError, msg, fields...) }
