package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/genno-io/genno/internal/domain/profiles"
	"github.com/genno-io/genno/internal/domain/subscriptions"
	"github.com/genno-io/genno/internal/infrastructure/signature"
	"github.com/genno-io/genno/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Signature headers of the providers
const (
	PaddleSignatureHeader = "Paddle-Signature"
	SvixIDHeader          = "svix-id"
	SvixTimestampHeader   = "svix-timestamp"
	SvixSignatureHeader   = "svix-signature"
)

// WebhookHandler defines the interface for provider webhook receivers
type WebhookHandler interface {
	Paddle(ctx *gin.Context)
	Clerk(ctx *gin.Context)
}

type webhookHandler struct {
	subscriptionService subscriptions.SubscriptionService
	profileService      profiles.ProfileService
	paddleVerifier      *signature.PaddleVerifier
	svixVerifier        *signature.SvixVerifier
	logger              logger.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
// A nil paddleVerifier accepts unsigned payment deliveries; a nil svixVerifier rejects every user delivery.
func NewWebhookHandler(
	subscriptionService subscriptions.SubscriptionService,
	profileService profiles.ProfileService,
	paddleVerifier *signature.PaddleVerifier,
	svixVerifier *signature.SvixVerifier,
	logger logger.Logger,
) WebhookHandler {
	return &webhookHandler{
		subscriptionService: subscriptionService,
		profileService:      profileService,
		paddleVerifier:      paddleVerifier,
		svixVerifier:        svixVerifier,
		logger:              logger,
	}
}

// Paddle applies a payment provider event. Storage failures answer 500 so the provider retries.
func (handler *webhookHandler) Paddle(ctx *gin.Context) {
	body, err := ctx.GetRawData()
	if err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	if handler.paddleVerifier != nil {
		if err := handler.paddleVerifier.Verify(ctx.GetHeader(PaddleSignatureHeader), body); err != nil {
			handler.logger.Warn("payment webhook signature rejected", "error", err)
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid signature"})
			return
		}
	}

	event, err := subscriptions.ParseEvent(body)
	if err != nil {
		badRequest(ctx, "Invalid webhook payload", err)
		return
	}

	if err := handler.subscriptionService.HandleEvent(ctx, event); err != nil {
		handler.logger.Error("payment webhook failed", "event_type", event.EventType, "error", err)
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Webhook handler failed"})
		return
	}

	ctx.JSON(http.StatusOK, WebhookAck{
		Received:    true,
		EventType:   event.EventType,
		ProcessedAt: time.Now().UTC(),
	})
}

// Clerk syncs profiles from authentication provider events
func (handler *webhookHandler) Clerk(ctx *gin.Context) {
	if handler.svixVerifier == nil {
		handler.logger.Error("user webhook received but no signing secret is configured")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Webhook secret not configured"})
		return
	}

	body, err := ctx.GetRawData()
	if err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	headers := signature.SvixHeaders{
		ID:        ctx.GetHeader(SvixIDHeader),
		Timestamp: ctx.GetHeader(SvixTimestampHeader),
		Signature: ctx.GetHeader(SvixSignatureHeader),
	}
	if err := handler.svixVerifier.Verify(headers, body); err != nil {
		handler.logger.Warn("user webhook signature rejected", "error", err)
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid signature"})
		return
	}

	var event profiles.UserEvent
	if err := json.Unmarshal(body, &event); err != nil {
		badRequest(ctx, "Invalid webhook payload", err)
		return
	}

	handled, err := handler.profileService.HandleEvent(ctx, &event)
	if err != nil {
		handler.logger.Error("user webhook failed", "event_type", event.Type, "error", err)
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to sync profile"})
		return
	}
	if !handled {
		ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Event type not handled"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "action": event.Type, "userId": event.Data.ID})
}
