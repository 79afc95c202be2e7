//go:build unit
// +build unit

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerSettingsValidation(t *testing.T) {
	tests := []struct {
		name          string
		settings      *LoggerSettings
		expectedError bool
	}{
		{
			name:     "console logger with service name",
			settings: &LoggerSettings{LogLevel: LogLevelDebug, LogType: LogTypeConsole, Service: "genno-rest-api"},
		},
		{
			name:     "file logger with rotation defaults",
			settings: &LoggerSettings{LogLevel: LogLevelInfo, LogType: LogTypeFile, FilePath: "/var/log/genno/api.log"},
		},
		{
			name:          "file logger without a path",
			settings:      &LoggerSettings{LogLevel: LogLevelInfo, LogType: LogTypeFile},
			expectedError: true,
		},
		{
			name:          "rotation size above 100 MB",
			settings:      &LoggerSettings{LogLevel: LogLevelInfo, LogType: LogTypeFile, FilePath: "/var/log/genno/api.log", MaxSize: 500},
			expectedError: true,
		},
		{
			name:          "negative max age",
			settings:      &LoggerSettings{LogLevel: LogLevelInfo, LogType: LogTypeFile, FilePath: "/var/log/genno/api.log", MaxAge: -1},
			expectedError: true,
		},
		{
			name:          "unknown level",
			settings:      &LoggerSettings{LogLevel: "verbose", LogType: LogTypeConsole},
			expectedError: true,
		},
		{
			name:          "unknown output",
			settings:      &LoggerSettings{LogLevel: LogLevelInfo, LogType: "syslog"},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoggerSettings_Rotation(t *testing.T) {
	size, backups, age := (&LoggerSettings{}).Rotation()
	assert.Equal(t, DefaultLogMaxSizeMB, size)
	assert.Equal(t, DefaultLogMaxBackups, backups)
	assert.Equal(t, DefaultLogMaxAgeDays, age)

	size, backups, age = (&LoggerSettings{MaxSize: 50, MaxBackups: 1, MaxAge: 7}).Rotation()
	assert.Equal(t, 50, size)
	assert.Equal(t, 1, backups)
	assert.Equal(t, 7, age)
}
