// Package logger provides the process-wide leveled logger.
//
// Call sites use printf-style helpers; records are emitted through log/slog so
// the level filter and output format live in one place.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Level is a logging severity.
type Level = slog.Level

const (
	LevelTrace Level = slog.LevelDebug - 4
	LevelDebug Level = slog.LevelDebug
	LevelInfo  Level = slog.LevelInfo
	LevelWarn  Level = slog.LevelWarn
	LevelError Level = slog.LevelError
)

var (
	mu     sync.RWMutex
	level  = new(slog.LevelVar)
	active = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}))
}

// ParseLevel converts a flag value into a Level. "fatal" and "panic" are
// accepted for compatibility and map to error.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error", "fatal", "panic":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
}

// SetLevel sets the minimum level that is written.
func SetLevel(l Level) {
	level.Set(l)
}

// GetLevel returns the current minimum level.
func GetLevel() Level {
	return level.Level()
}

// SetOutput redirects all log output to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	active = newLogger(w)
}

// Slog exposes the underlying structured logger for libraries that accept one.
func Slog() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return active
}

func logf(l Level, format string, args ...any) {
	lg := Slog()
	ctx := context.Background()
	if !lg.Enabled(ctx, l) {
		return
	}
	lg.Log(ctx, l, fmt.Sprintf(format, args...))
}

func Trace(format string, args ...any) { logf(LevelTrace, format, args...) }
func Debug(format string, args ...any) { logf(LevelDebug, format, args...) }
func Info(format string, args ...any)  { logf(LevelInfo, format, args...) }
func Warn(format string, args ...any)  { logf(LevelWarn, format, args...) }
func Error(format string, args ...any) { logf(LevelError, format, args...) }
