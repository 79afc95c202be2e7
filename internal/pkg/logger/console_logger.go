package logger

import (
	"io"
	"log/slog"
	"os"
)

// ConsoleLogger writes logfmt-style text records to stdout.
type ConsoleLogger struct {
	slogLogger
}

// NewConsoleLogger creates a console logger at the given level.
func NewConsoleLogger(level string) Logger {
	return newConsoleLoggerWithWriter(level, os.Stdout)
}

func newConsoleLoggerWithWriter(level string, w io.Writer) *ConsoleLogger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return &ConsoleLogger{slogLogger{logger: slog.New(handler)}}
}
