// cmd/genno-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/genno-io/genno/internal/api/rest/v1"
	"github.com/genno-io/genno/internal/app"
	"github.com/genno-io/genno/internal/infrastructure/auth"
	"github.com/genno-io/genno/internal/infrastructure/connector"
	"github.com/genno-io/genno/internal/infrastructure/persistence"
	"github.com/genno-io/genno/internal/pkg/config"
	"github.com/genno-io/genno/internal/pkg/logger"
	"github.com/gin-contrib/cors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// creditResetInterval is how often expired monthly allowances are renewed
const creditResetInterval = time.Hour

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := persistence.CloseDB(deps.db); err != nil {
			log.Warn("failed to close database", "error", err)
		}
	}()

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	db       *gorm.DB
	services *v1.Services
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := persistence.Migrate(db); err != nil {
		return nil, err
	}
	log.Info("Database migrations completed successfully")

	services, err := initializeApplicationServices(db, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &appDependencies{db: db, services: services}, nil
}

// initializeApplicationServices wires repositories, connectors and services
func initializeApplicationServices(db *gorm.DB, cfg *config.RestConfig, log logger.Logger) (*v1.Services, error) {
	creditRepo, err := persistence.NewGormCreditRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create credit repository: %w", err)
	}

	blogRepo, err := persistence.NewGormBlogRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create blog repository: %w", err)
	}

	visitRepo, err := persistence.NewGormVisitRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create visit repository: %w", err)
	}

	profileRepo, err := persistence.NewGormProfileRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile repository: %w", err)
	}

	subscriptionRepo, err := persistence.NewGormSubscriptionRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription repository: %w", err)
	}

	conversionRepo, err := persistence.NewGormConversionRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create conversion repository: %w", err)
	}

	aiConnector, err := connector.NewAIWebhookConnector(&cfg.AIWebhook, nil, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI webhook connector: %w", err)
	}

	verifier, err := auth.NewClerkVerifier(&cfg.Auth, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create session verifier: %w", err)
	}

	creditService, err := app.NewCreditService(creditRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create credit service: %w", err)
	}

	analyticsService, err := app.NewAnalyticsService(visitRepo, blogRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create analytics service: %w", err)
	}

	subscriptionService, err := app.NewSubscriptionService(subscriptionRepo, creditService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription service: %w", err)
	}

	profileService, err := app.NewProfileService(profileRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile service: %w", err)
	}

	conversionService, err := app.NewConversionService(conversionRepo, creditService, aiConnector, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create conversion service: %w", err)
	}

	blogService, err := app.NewBlogService(blogRepo, profileRepo, conversionService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create blog service: %w", err)
	}

	pricingService, err := app.NewPricingService(&cfg.Paddle)
	if err != nil {
		return nil, fmt.Errorf("failed to create pricing service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &v1.Services{
		Credits:       creditService,
		Analytics:     analyticsService,
		Blogs:         blogService,
		Conversions:   conversionService,
		Profiles:      profileService,
		Subscriptions: subscriptionService,
		Pricing:       pricingService,
		Verifier:      verifier,
		Ping:          func() error { return persistence.Ping(db) },
	}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	// Setup router
	r := gin.Default()

	// Configure CORS
	allowOrigins := cfg.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes
	if err := v1.SetupRoutes(r, deps.services, cfg, log); err != nil {
		return fmt.Errorf("failed to setup routes: %w", err)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go runCreditResets(ctx, deps.services, log)

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal, initiating graceful shutdown", "signal", sig.String())
	}
	stop()

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// runCreditResets renews monthly allowances until ctx is done
func runCreditResets(ctx context.Context, services *v1.Services, log logger.Logger) {
	ticker := time.NewTicker(creditResetInterval)
	defer ticker.Stop()

	for {
		count, err := services.Credits.ResetExpired(ctx, time.Now().UTC())
		if err != nil {
			log.Error("monthly credit reset failed", "reset", count, "error", err)
		} else if count > 0 {
			log.Info("monthly credit reset", "reset", count)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
