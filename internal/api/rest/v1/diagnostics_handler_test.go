//go:build unit
// +build unit

package v1

import (
	"errors"
	"net/http"
	"testing"

	"github.com/genno-io/genno/internal/pkg/config"
	"github.com/genno-io/genno/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
)

func newDiagnosticsConfig() *config.RestConfig {
	return &config.RestConfig{
		Port:     "8080",
		Database: config.DatabaseSettings{Type: config.SqliteDbType, DSN: ":memory:"},
		Auth:     config.AuthSettings{JWTPublicKey: "-----BEGIN PUBLIC KEY-----"},
		Paddle: config.PaddleSettings{
			WebhookSecret:      "pdl_ntfset_0123456789",
			ClientToken:        "live_abcdefghijkl",
			ClientTokenSandbox: "test_abcdefghijkl",
			SandboxPriceIDs:    config.PriceIDs{StarterMonthly: "pri_sandbox_starter"},
		},
		AIWebhook: config.AIWebhookSettings{URL: "https://ai.example.com/hook", IngestSecret: "ingest-secret-0123456789"},
	}
}

func TestDiagnosticsHandler_Config_HidesSecrets(t *testing.T) {
	handler := NewDiagnosticsHandler(newDiagnosticsConfig(), func() error { return nil }, testutil.SetupTestLogger(t))

	c, w := testutil.NewJSONContext(t, http.MethodGet, "/diagnostics/config", nil)
	c.Request.Host = "localhost:3000"

	handler.Config(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := testutil.DecodeJSON(t, w)
	assert.Equal(t, config.EnvironmentSandbox, body["environment"])

	settings := body["settings"].(map[string]any)
	assert.Equal(t, "test_abc...", settings["paddleClientToken"])
	assert.Equal(t, "pdl_ntfs...", settings["paddleWebhookSecret"])
	assert.Equal(t, SettingMissing, settings["clerkWebhookSecret"])
	assert.Equal(t, SettingSet, settings["jwtPublicKey"])
	assert.Equal(t, "pri_sandbox_starter", settings["starterMonthlyPrice"])
	assert.Equal(t, SettingMissing, settings["teamYearlyPrice"])
	assert.NotContains(t, w.Body.String(), "ingest-secret-0123456789")
}

func TestDiagnosticsHandler_Config_ProductionHost(t *testing.T) {
	handler := NewDiagnosticsHandler(newDiagnosticsConfig(), func() error { return nil }, testutil.SetupTestLogger(t))

	c, w := testutil.NewJSONContext(t, http.MethodGet, "/diagnostics/config", nil)
	c.Request.Host = "www.genno.io"

	handler.Config(c)

	body := testutil.DecodeJSON(t, w)
	assert.Equal(t, config.EnvironmentProduction, body["environment"])
	assert.Equal(t, "live_abc...", body["settings"].(map[string]any)["paddleClientToken"])
}

func TestDiagnosticsHandler_Health(t *testing.T) {
	tests := []struct {
		name           string
		pingErr        error
		expectedStatus int
	}{
		{name: "database up", expectedStatus: http.StatusOK},
		{name: "database down", pingErr: errors.New("connection refused"), expectedStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewDiagnosticsHandler(newDiagnosticsConfig(), func() error { return tt.pingErr }, testutil.SetupTestLogger(t))

			c, w := testutil.NewJSONContext(t, http.MethodGet, "/healthz", nil)

			handler.Health(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
