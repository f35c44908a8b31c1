package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// LevelOff is above every level slog emits
const LevelOff = slog.Level(100)

func ParseLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	case "", "off":
		return LevelOff, nil
	default:
		return LevelOff, fmt.Errorf("invalid log level %q", raw)
	}
}

// New returns a JSON logger; a nil writer or the off level discards everything.
func New(writer io.Writer, level slog.Level) *slog.Logger {
	if writer == nil || level >= LevelOff {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level})).
		With(slog.String("source", "rorisql"))
}

// NewFileLogger appends to dir/rorisql.log. The TUI owns the terminal, so it logs here.
func NewFileLogger(dir string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if level >= LevelOff {
		return New(nil, level), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "rorisql.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), f, nil
}
