package connector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/genno-io/genno/internal/domain/conversions"
	"github.com/genno-io/genno/internal/pkg/config"
	"github.com/genno-io/genno/internal/pkg/logger"
	"github.com/genno-io/genno/internal/pkg/strutil"
)

// maxErrorBody caps how much of a failed response is kept for the error message
const maxErrorBody = 512

// aiWebhookConnector posts conversion jobs to the AI service
type aiWebhookConnector struct {
	url         string
	callbackURL string
	client      *http.Client
	logger      logger.Logger
}

// NewAIWebhookConnector creates a connector for the configured AI service.
// A nil client gets one bounded by the configured timeout.
func NewAIWebhookConnector(settings *config.AIWebhookSettings, client *http.Client, logger logger.Logger) (conversions.AIWebhookConnector, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	if client == nil {
		client = &http.Client{Timeout: settings.EffectiveTimeout()}
	}

	return &aiWebhookConnector{
		url:         settings.URL,
		callbackURL: settings.CallbackURL,
		client:      client,
		logger:      logger,
	}, nil
}

// Submit sends one job. Any non-2xx answer is an error; there are no retries.
func (c *aiWebhookConnector) Submit(ctx context.Context, req *conversions.WebhookRequest) error {
	if req.CallbackURL == "" {
		req.CallbackURL = c.callbackURL
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode webhook request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call AI webhook: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("AI webhook returned %d: %s", resp.StatusCode, strutil.Prefix(string(body), maxErrorBody))
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	c.logger.Info("conversion submitted", "conversion_id", req.ConversionID, "user_id", req.ClerkUserID)
	return nil
}
