package logger

import (
	"log/slog"
	"os"
)

// Logger represents the application logger.
type Logger struct {
	*slog.Logger
}

// New creates a new Logger writing text records to stdout.
func New(level slog.Level) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})),
	}
}

// Fatal is equivalent to Error followed by os.Exit(1).
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
