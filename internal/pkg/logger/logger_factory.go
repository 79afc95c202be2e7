package logger

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/genno-io/genno/internal/pkg/config"
)

var (
	loggerInstance Logger
	loggerErr      error
	loggerOnce     sync.Once
)

// InitLogger initializes the singleton logger.
func InitLogger(settings *config.LoggerSettings) error {
	loggerOnce.Do(func() {
		loggerInstance, loggerErr = newLogger(settings)
	})
	return loggerErr
}

// GetLogger returns the initialized logger instance.
func GetLogger() (Logger, error) {
	if loggerInstance == nil {
		return nil, fmt.Errorf("logger not initialized: call InitLogger first")
	}
	return loggerInstance, nil
}

func newLogger(c *config.LoggerSettings) (Logger, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	switch c.LogType {
	case config.LogTypeConsole:
		l := newConsoleLoggerWithWriter(c.LogLevel, os.Stdout)
		l.logger = withService(l.logger, c.Service)
		return l, nil
	case config.LogTypeFile:
		if c.FilePath == "" {
			return nil, fmt.Errorf("file path required for file logger")
		}
		maxSize, maxBackups, maxAge := c.Rotation()
		l := newFileLogger(c.LogLevel, c.FilePath, maxSize, maxBackups, maxAge)
		l.logger = withService(l.logger, c.Service)
		return l, nil
	default:
		return nil, fmt.Errorf("unsupported log type: %s", c.LogType)
	}
}

// withService tags every record with the emitting process, e.g. genno-rest-api or genno-cli.
func withService(l *slog.Logger, service string) *slog.Logger {
	if service == "" {
		return l
	}
	return l.With("service", service)
}

func parseLevel(level string) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelInfo:
		return slog.LevelInfo
	case config.LogLevelWarning:
		return slog.LevelWarn
	case config.LogLevelError, config.LogLevelCritical:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// splitArgs turns variadic arguments into a message and slog attributes.
// When the arguments after the first form key/value pairs with string keys they become
// attributes, otherwise everything is joined into the message.
func splitArgs(args ...interface{}) (string, []any) {
	if len(args) == 0 {
		return "", nil
	}

	msg, ok := args[0].(string)
	rest := args[1:]
	if !ok || len(rest) == 0 || len(rest)%2 != 0 {
		return formatArgs(args...), nil
	}
	for i := 0; i < len(rest); i += 2 {
		if _, isKey := rest[i].(string); !isKey {
			return formatArgs(args...), nil
		}
	}

	attrs := make([]any, len(rest))
	copy(attrs, rest)
	return msg, attrs
}

func formatArgs(args ...interface{}) string {
	if len(args) == 0 {
		return ""
	}
	return fmt.Sprint(args...)
}
