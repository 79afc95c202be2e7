package logger

import (
	"log/slog"

	"github.com/natefinch/lumberjack"
)

// FileLogger writes JSON lines to a file rotated by lumberjack. Rotated files are gzipped.
type FileLogger struct {
	slogLogger
	writer *lumberjack.Logger
}

// NewFileLogger creates a file logger. maxSize is in megabytes, maxAge in days.
func NewFileLogger(level string, filePath string, maxSize int, maxBackups int, maxAge int) Logger {
	return newFileLogger(level, filePath, maxSize, maxBackups, maxAge)
}

func newFileLogger(level string, filePath string, maxSize int, maxBackups int, maxAge int) *FileLogger {
	writer := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   true,
	}
	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: parseLevel(level)})

	return &FileLogger{slogLogger: slogLogger{logger: slog.New(handler)}, writer: writer}
}

// Close releases the current log file.
func (l *FileLogger) Close() error {
	return l.writer.Close()
}
