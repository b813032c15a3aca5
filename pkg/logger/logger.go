package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Loggers struct {
	InfoLogger  *slog.Logger
	ErrorLogger *slog.Logger
	DebugLogger *slog.Logger
}

// SetupLogger builds the process loggers: info and debug go to stdout,
// errors to stderr.
func SetupLogger(level string) (*Loggers, error) {
	return newLoggers(os.Stdout, os.Stderr, level)
}

// New sends every logger to w. Used by tests and tools.
func New(w io.Writer, level string) (*Loggers, error) {
	return newLoggers(w, w, level)
}

func newLoggers(out, errOut io.Writer, level string) (*Loggers, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: lvl}

	return &Loggers{
		InfoLogger:  slog.New(slog.NewJSONHandler(out, opts)),
		ErrorLogger: slog.New(slog.NewJSONHandler(errOut, opts)),
		DebugLogger: slog.New(slog.NewJSONHandler(out, opts)),
	}, nil
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", level)
	}
}
