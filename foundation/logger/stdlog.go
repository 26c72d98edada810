package logger

import (
	"context"
	stdlog "log"
	"log/slog"
)

// NewStdLogger returns a standard library Logger that wraps the slog Logger.
// The http.Server requires this style of logger for its internal errors.
func NewStdLogger(logger *Logger, level Level) *stdlog.Logger {
	return slog.NewLogLogger(logger.handler, slog.Level(level))
}

// =============================================================================

type writer struct {
	log   *Logger
	level Level
}

// NewWriter returns an io.Writer that logs everything written to it at the
// specified level.
func NewWriter(log *Logger, level Level) *writer {
	return &writer{log: log, level: level}
}

func (w *writer) Write(p []byte) (int, error) {
	w.log.write(context.Background(), w.level, 4, string(p))
	return len(p), nil
}
