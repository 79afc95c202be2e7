package v1

import (
	"github.com/genno-io/genno/internal/domain/analytics"
	"github.com/genno-io/genno/internal/domain/blogs"
	"github.com/genno-io/genno/internal/domain/conversions"
	"github.com/genno-io/genno/internal/domain/credits"
	"github.com/genno-io/genno/internal/domain/pricing"
	"github.com/genno-io/genno/internal/domain/profiles"
	"github.com/genno-io/genno/internal/domain/subscriptions"
	"github.com/genno-io/genno/internal/infrastructure/auth"
	"github.com/genno-io/genno/internal/infrastructure/signature"
	"github.com/genno-io/genno/internal/pkg/config"
	"github.com/genno-io/genno/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Services bundles everything the version 1 routes depend on
type Services struct {
	Credits       credits.CreditService
	Analytics     analytics.AnalyticsService
	Blogs         blogs.BlogService
	Conversions   conversions.ConversionService
	Profiles      profiles.ProfileService
	Subscriptions subscriptions.SubscriptionService
	Pricing       pricing.PricingService
	Verifier      auth.TokenVerifier
	// Ping reports whether the database answers
	Ping func() error
}

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine, services *Services, cfg *config.RestConfig, logger logger.Logger) error {
	var svixVerifier *signature.SvixVerifier
	if cfg.Auth.WebhookSecret != "" {
		verifier, err := signature.NewSvixVerifier(cfg.Auth.WebhookSecret)
		if err != nil {
			return err
		}
		svixVerifier = verifier
	}

	var paddleVerifier *signature.PaddleVerifier
	if cfg.Paddle.WebhookSecret != "" {
		paddleVerifier = signature.NewPaddleVerifier(cfg.Paddle.WebhookSecret)
	} else {
		logger.Warn("payment webhook secret not configured, deliveries are accepted unsigned")
	}

	r.Use(CSPMiddleware())

	diagnosticsHandler := NewDiagnosticsHandler(cfg, services.Ping, logger)
	r.GET("/healthz", diagnosticsHandler.Health)

	v1 := r.Group(BasePath) // lookup in version file
	v1.Use(AuthMiddleware(services.Verifier, logger))

	creditHandler := NewCreditHandler(services.Credits, logger)
	analyticsHandler := NewAnalyticsHandler(services.Analytics, logger)
	blogHandler := NewBlogHandler(services.Blogs, cfg.AIWebhook.IngestSecret, logger)
	conversionHandler := NewConversionHandler(services.Conversions, logger)
	accountHandler := NewAccountHandler(services.Profiles, services.Subscriptions, services.Pricing)
	webhookHandler := NewWebhookHandler(services.Subscriptions, services.Profiles, paddleVerifier, svixVerifier, logger)

	// Public Routes
	v1.POST("/analytics/track", analyticsHandler.Track)
	v1.GET("/public/blogs/:slug", blogHandler.GetPublished)
	v1.GET("/pricing", accountHandler.Pricing)

	// Provider Callbacks
	v1.POST("/paddle/webhook", webhookHandler.Paddle)
	v1.POST("/clerk/webhook", webhookHandler.Clerk)
	v1.POST("/blogs/ingest", blogHandler.Ingest)

	authed := v1.Group("")
	authed.Use(RequireUser())

	// Credits Routes
	authed.GET("/credits/check", creditHandler.Check)
	authed.POST("/credits/deduct", creditHandler.Deduct)
	authed.GET("/credits/transactions", creditHandler.Transactions)

	// Analytics Routes
	authed.GET("/analytics/data", analyticsHandler.Data)

	// Blogs Routes
	authed.GET("/blogs", blogHandler.List)
	authed.POST("/blogs", blogHandler.Create)
	authed.GET("/blogs/:ref", blogHandler.Get)
	authed.PUT("/blogs/:ref", blogHandler.Update)
	authed.DELETE("/blogs/:ref", blogHandler.Delete)
	authed.POST("/blogs/:ref/publish", blogHandler.TogglePublish)

	// Conversions Routes
	authed.POST("/conversions", conversionHandler.Submit)
	authed.GET("/conversions", conversionHandler.List)
	authed.GET("/conversions/:id", conversionHandler.Get)

	// Account Routes
	authed.GET("/profile", accountHandler.Profile)
	authed.GET("/subscriptions/current", accountHandler.CurrentSubscription)
	authed.GET("/diagnostics/config", diagnosticsHandler.Config)

	return nil
}
