package v1

import (
	"net/http"

	"github.com/genno-io/genno/internal/pkg/config"
	"github.com/genno-io/genno/internal/pkg/logger"
	"github.com/genno-io/genno/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// Setting states reported by the config diagnostics
const (
	SettingSet     = "SET"
	SettingMissing = "MISSING"
)

const secretPreviewLength = 8

// DiagnosticsHandler defines the interface for operational endpoints
type DiagnosticsHandler interface {
	Config(ctx *gin.Context)
	Health(ctx *gin.Context)
}

type diagnosticsHandler struct {
	cfg    *config.RestConfig
	ping   func() error
	logger logger.Logger
}

// NewDiagnosticsHandler creates a new DiagnosticsHandler. ping reports whether the database answers.
func NewDiagnosticsHandler(cfg *config.RestConfig, ping func() error, logger logger.Logger) DiagnosticsHandler {
	return &diagnosticsHandler{
		cfg:    cfg,
		ping:   ping,
		logger: logger,
	}
}

// Config reports which settings are present. Secrets are shown by prefix only.
func (handler *diagnosticsHandler) Config(ctx *gin.Context) {
	host := ctx.Request.Host
	paddle := &handler.cfg.Paddle
	priceIDs := paddle.PriceIDsFor(host)

	ctx.JSON(http.StatusOK, ConfigDiagnosticsResponse{
		Environment: paddle.Environment(host),
		Host:        host,
		Settings: map[string]string{
			"database":             handler.cfg.Database.Type,
			"jwtPublicKey":         presence(handler.cfg.Auth.JWTPublicKey),
			"clerkWebhookSecret":   preview(handler.cfg.Auth.WebhookSecret),
			"paddleWebhookSecret":  preview(paddle.WebhookSecret),
			"paddleClientToken":    preview(paddle.ClientTokenFor(host)),
			"starterMonthlyPrice":  orMissing(priceIDs.StarterMonthly),
			"starterYearlyPrice":   orMissing(priceIDs.StarterYearly),
			"teamMonthlyPrice":     orMissing(priceIDs.TeamMonthly),
			"teamYearlyPrice":      orMissing(priceIDs.TeamYearly),
			"aiWebhookUrl":         orMissing(handler.cfg.AIWebhook.URL),
			"aiWebhookCallbackUrl": orMissing(handler.cfg.AIWebhook.CallbackURL),
			"aiIngestSecret":       preview(handler.cfg.AIWebhook.IngestSecret),
		},
	})
}

// Health pings the database
func (handler *diagnosticsHandler) Health(ctx *gin.Context) {
	if err := handler.ping(); err != nil {
		handler.logger.Error("health check failed", "error", err)
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "Database unreachable"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func presence(value string) string {
	if value == "" {
		return SettingMissing
	}
	return SettingSet
}

func preview(secret string) string {
	if secret == "" {
		return SettingMissing
	}
	return strutil.Prefix(secret, secretPreviewLength)
}

func orMissing(value string) string {
	if value == "" {
		return SettingMissing
	}
	return value
}
