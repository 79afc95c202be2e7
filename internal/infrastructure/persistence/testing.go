//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/genno-io/genno/internal/domain/analytics"
	"github.com/genno-io/genno/internal/domain/blogs"
	"github.com/genno-io/genno/internal/domain/conversions"
	"github.com/genno-io/genno/internal/domain/credits"
	"github.com/genno-io/genno/internal/domain/profiles"
	"github.com/genno-io/genno/internal/domain/subscriptions"
	"github.com/genno-io/genno/internal/pkg/config"
	"github.com/genno-io/genno/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB               *gorm.DB
	BlogRepo         blogs.BlogRepository
	CreditRepo       credits.CreditRepository
	SubscriptionRepo subscriptions.SubscriptionRepository
	VisitRepo        analytics.VisitRepository
	ProfileRepo      profiles.ProfileRepository
	ConversionRepo   conversions.ConversionRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	cleanupFunc := func() {}

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	logger := testutil.SetupTestLogger(t)

	blogRepo, err := NewGormBlogRepository(db, logger)
	require.NoError(t, err)
	creditRepo, err := NewGormCreditRepository(db, logger)
	require.NoError(t, err)
	subscriptionRepo, err := NewGormSubscriptionRepository(db, logger)
	require.NoError(t, err)
	visitRepo, err := NewGormVisitRepository(db, logger)
	require.NoError(t, err)
	profileRepo, err := NewGormProfileRepository(db, logger)
	require.NoError(t, err)
	conversionRepo, err := NewGormConversionRepository(db, logger)
	require.NoError(t, err)

	return &TestContext{
		DB:               db,
		BlogRepo:         blogRepo,
		CreditRepo:       creditRepo,
		SubscriptionRepo: subscriptionRepo,
		VisitRepo:        visitRepo,
		ProfileRepo:      profileRepo,
		ConversionRepo:   conversionRepo,
	}
}

// CreateTestBlog creates a blog owned by userID
func CreateTestBlog(t *testing.T, userID, title string, published bool) *blogs.Blog {
	t.Helper()

	b := blogs.New(userID, &blogs.Input{Title: title, Content: "content of " + title, IsPublished: published}, time.Now().UTC())
	return b
}

// CreateTestSubscription creates an active starter subscription for userID
func CreateTestSubscription(t *testing.T, userID, paddleID string) *subscriptions.Subscription {
	t.Helper()

	now := time.Now().UTC()
	return &subscriptions.Subscription{
		ID:                   uuid.NewString(),
		ClerkUserID:          userID,
		PaddleSubscriptionID: paddleID,
		PaddleCustomerID:     "ctm_test",
		PlanType:             credits.PlanStarter,
		Status:               subscriptions.StatusActive,
		PriceID:              "pri_test",
		BillingCycle:         subscriptions.CycleMonthly,
		Amount:               9.99,
		Currency:             "USD",
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}
