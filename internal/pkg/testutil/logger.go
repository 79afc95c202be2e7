// Package testutil holds helpers shared by unit and integration tests.
package testutil

import (
	"testing"

	"github.com/genno-io/genno/internal/pkg/config"
	"github.com/genno-io/genno/internal/pkg/logger"
	"github.com/stretchr/testify/require"
)

// SetupTestLogger returns the process logger, initialized at error level so test output stays quiet.
// The logger is a singleton; the first caller's settings win.
func SetupTestLogger(t *testing.T) logger.Logger {
	t.Helper()

	require.NoError(t, logger.InitLogger(&config.LoggerSettings{
		LogLevel: config.LogLevelError,
		LogType:  config.LogTypeConsole,
		Service:  "genno-test",
	}))

	log, err := logger.GetLogger()
	require.NoError(t, err)
	return log
}
