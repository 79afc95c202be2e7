//go:build integration
// +build integration

package app

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/genno-io/genno/internal/domain/analytics"
	"github.com/genno-io/genno/internal/domain/blogs"
	"github.com/genno-io/genno/internal/domain/conversions"
	"github.com/genno-io/genno/internal/domain/credits"
	"github.com/genno-io/genno/internal/domain/profiles"
	"github.com/genno-io/genno/internal/domain/subscriptions"
	"github.com/genno-io/genno/internal/infrastructure/connector"
	"github.com/genno-io/genno/internal/infrastructure/persistence"
	"github.com/genno-io/genno/internal/pkg/config"
	"github.com/genno-io/genno/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
)

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	CreditService       credits.CreditService
	AnalyticsService    analytics.AnalyticsService
	SubscriptionService subscriptions.SubscriptionService
	BlogService         blogs.BlogService
	ConversionService   conversions.ConversionService
	ProfileService      profiles.ProfileService

	// AIStatus is the status code the fake AI webhook answers with
	AIStatus *atomic.Int32
	// AICalls counts requests received by the fake AI webhook
	AICalls *atomic.Int32

	DBContext *persistence.TestContext
}

// SetupTestServices wires every service against a fresh database and a fake AI webhook
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)
	dbContext := persistence.SetupTestDB(t, dbType)

	status := &atomic.Int32{}
	status.Store(http.StatusOK)
	calls := &atomic.Int32{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(int(status.Load()))
	}))
	t.Cleanup(server.Close)

	aiConnector, err := connector.NewAIWebhookConnector(&config.AIWebhookSettings{
		URL:          server.URL,
		IngestSecret: "integration-secret-0001",
	}, server.Client(), logger)
	require.NoError(t, err)

	creditService, err := NewCreditService(dbContext.CreditRepo, logger)
	require.NoError(t, err)
	analyticsService, err := NewAnalyticsService(dbContext.VisitRepo, dbContext.BlogRepo, logger)
	require.NoError(t, err)
	subscriptionService, err := NewSubscriptionService(dbContext.SubscriptionRepo, creditService, logger)
	require.NoError(t, err)
	conversionService, err := NewConversionService(dbContext.ConversionRepo, creditService, aiConnector, logger)
	require.NoError(t, err)
	blogService, err := NewBlogService(dbContext.BlogRepo, dbContext.ProfileRepo, conversionService, logger)
	require.NoError(t, err)
	profileService, err := NewProfileService(dbContext.ProfileRepo, logger)
	require.NoError(t, err)

	return &TestServices{
		CreditService:       creditService,
		AnalyticsService:    analyticsService,
		SubscriptionService: subscriptionService,
		BlogService:         blogService,
		ConversionService:   conversionService,
		ProfileService:      profileService,
		AIStatus:            status,
		AICalls:             calls,
		DBContext:           dbContext,
	}
}
