package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Log levels accepted in configuration
const (
	LogLevelDebug    = "debug"
	LogLevelInfo     = "info"
	LogLevelWarning  = "warning"
	LogLevelError    = "error"
	LogLevelCritical = "critical"
)

// Log outputs: human readable text on stdout, or rotated JSON lines in a file
const (
	LogTypeConsole = "console"
	LogTypeFile    = "file"
)

// Rotation defaults applied to a file logger when a value is left at zero
const (
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3
	DefaultLogMaxAgeDays = 28
)

// LoggerSettings selects the log output. Service, when set, is attached to every record.
type LoggerSettings struct {
	LogLevel   string `mapstructure:"log_level" validate:"required,oneof=debug info warning error critical"`
	LogType    string `mapstructure:"log_type" validate:"required,oneof=console file"`
	Service    string `mapstructure:"service" validate:"max=64"`
	FilePath   string `mapstructure:"file_path" validate:"required_if=LogType file"`
	MaxSize    int    `mapstructure:"max_size" validate:"gte=0,lte=100"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0,lte=10"`
	MaxAge     int    `mapstructure:"max_age" validate:"gte=0,lte=365"`
}

// Validate checks LoggerSettings. Zero rotation values are valid and take the defaults.
func (s *LoggerSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for LoggerSettings: %w", err)
	}

	return nil
}

// Rotation returns max size in MB, backups kept and max age in days, with defaults filled in
func (s *LoggerSettings) Rotation() (maxSize, maxBackups, maxAge int) {
	maxSize, maxBackups, maxAge = s.MaxSize, s.MaxBackups, s.MaxAge
	if maxSize == 0 {
		maxSize = DefaultLogMaxSizeMB
	}
	if maxBackups == 0 {
		maxBackups = DefaultLogMaxBackups
	}
	if maxAge == 0 {
		maxAge = DefaultLogMaxAgeDays
	}
	return maxSize, maxBackups, maxAge
}
