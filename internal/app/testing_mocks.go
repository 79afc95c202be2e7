//go:build unit
// +build unit

package app

import (
	"context"
	"time"

	"github.com/genno-io/genno/internal/domain/analytics"
	"github.com/genno-io/genno/internal/domain/blogs"
	"github.com/genno-io/genno/internal/domain/conversions"
	"github.com/genno-io/genno/internal/domain/credits"
	"github.com/genno-io/genno/internal/domain/profiles"
	"github.com/genno-io/genno/internal/domain/subscriptions"

	"github.com/stretchr/testify/mock"
)

// MockCreditRepository is a mock implementation of credits.CreditRepository
type MockCreditRepository struct {
	mock.Mock
}

func (m *MockCreditRepository) GetByUserID(ctx context.Context, userID string) (*credits.UserCredits, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credits.UserCredits), args.Error(1)
}

func (m *MockCreditRepository) Deduct(ctx context.Context, req *credits.DeductRequest) (*credits.UserCredits, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credits.UserCredits), args.Error(1)
}

func (m *MockCreditRepository) Grant(ctx context.Context, userID string, amount int, reason string) (*credits.UserCredits, error) {
	args := m.Called(ctx, userID, amount, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credits.UserCredits), args.Error(1)
}

func (m *MockCreditRepository) SetPlan(ctx context.Context, userID, plan string, amount int, reason string, now time.Time) (*credits.UserCredits, error) {
	args := m.Called(ctx, userID, plan, amount, reason, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credits.UserCredits), args.Error(1)
}

func (m *MockCreditRepository) ListResetDue(ctx context.Context, before time.Time) ([]*credits.UserCredits, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credits.UserCredits), args.Error(1)
}

func (m *MockCreditRepository) ListTransactions(ctx context.Context, userID string, limit int) ([]*credits.Transaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credits.Transaction), args.Error(1)
}

// MockCreditService is a mock implementation of credits.CreditService
type MockCreditService struct {
	mock.Mock
}

func (m *MockCreditService) Check(ctx context.Context, userID string) (*credits.Balance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credits.Balance), args.Error(1)
}

func (m *MockCreditService) Deduct(ctx context.Context, req *credits.DeductRequest) (*credits.UserCredits, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credits.UserCredits), args.Error(1)
}

func (m *MockCreditService) Grant(ctx context.Context, userID string, amount int, reason string) (*credits.UserCredits, error) {
	args := m.Called(ctx, userID, amount, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credits.UserCredits), args.Error(1)
}

func (m *MockCreditService) ApplyPlan(ctx context.Context, userID, plan, reason string) (*credits.UserCredits, error) {
	args := m.Called(ctx, userID, plan, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credits.UserCredits), args.Error(1)
}

func (m *MockCreditService) ResetExpired(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

func (m *MockCreditService) History(ctx context.Context, userID string, limit int) ([]*credits.Transaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credits.Transaction), args.Error(1)
}

// MockSubscriptionRepository is a mock implementation of subscriptions.SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Upsert(ctx context.Context, sub *subscriptions.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) GetByPaddleID(ctx context.Context, paddleSubscriptionID string) (*subscriptions.Subscription, error) {
	args := m.Called(ctx, paddleSubscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscriptions.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Update(ctx context.Context, sub *subscriptions.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) LatestForUser(ctx context.Context, userID string) (*subscriptions.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscriptions.Subscription), args.Error(1)
}

// MockBlogRepository is a mock implementation of blogs.BlogRepository
type MockBlogRepository struct {
	mock.Mock
}

func (m *MockBlogRepository) Create(ctx context.Context, blog *blogs.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *MockBlogRepository) GetByID(ctx context.Context, id string) (*blogs.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blogs.Blog), args.Error(1)
}

func (m *MockBlogRepository) GetBySlug(ctx context.Context, slug string) (*blogs.Blog, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blogs.Blog), args.Error(1)
}

func (m *MockBlogRepository) List(ctx context.Context, query *blogs.Query) ([]*blogs.Blog, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*blogs.Blog), args.Error(1)
}

func (m *MockBlogRepository) Update(ctx context.Context, blog *blogs.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *MockBlogRepository) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProfileRepository is a mock implementation of profiles.ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Upsert(ctx context.Context, profile *profiles.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByUserID(ctx context.Context, userID string) (*profiles.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profiles.Profile), args.Error(1)
}

func (m *MockProfileRepository) DeleteByUserID(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockVisitRepository is a mock implementation of analytics.VisitRepository
type MockVisitRepository struct {
	mock.Mock
}

func (m *MockVisitRepository) Create(ctx context.Context, visit *analytics.Visit) error {
	args := m.Called(ctx, visit)
	return args.Error(0)
}

func (m *MockVisitRepository) ListByBlogIDs(ctx context.Context, blogIDs []string) ([]*analytics.Visit, error) {
	args := m.Called(ctx, blogIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*analytics.Visit), args.Error(1)
}

// MockConversionRepository is a mock implementation of conversions.ConversionRepository
type MockConversionRepository struct {
	mock.Mock
}

func (m *MockConversionRepository) Create(ctx context.Context, conversion *conversions.Conversion) error {
	args := m.Called(ctx, conversion)
	return args.Error(0)
}

func (m *MockConversionRepository) GetByID(ctx context.Context, id string) (*conversions.Conversion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*conversions.Conversion), args.Error(1)
}

func (m *MockConversionRepository) ListByUser(ctx context.Context, userID string) ([]*conversions.Conversion, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*conversions.Conversion), args.Error(1)
}

func (m *MockConversionRepository) Update(ctx context.Context, conversion *conversions.Conversion) error {
	args := m.Called(ctx, conversion)
	return args.Error(0)
}

// MockConversionService is a mock implementation of conversions.ConversionService
type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) Submit(ctx context.Context, userID, youtubeURL string) (*conversions.Conversion, error) {
	args := m.Called(ctx, userID, youtubeURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*conversions.Conversion), args.Error(1)
}

func (m *MockConversionService) Get(ctx context.Context, userID, id string) (*conversions.Conversion, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*conversions.Conversion), args.Error(1)
}

func (m *MockConversionService) List(ctx context.Context, userID string) ([]*conversions.Conversion, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*conversions.Conversion), args.Error(1)
}

func (m *MockConversionService) Complete(ctx context.Context, userID, id, blogID string) error {
	args := m.Called(ctx, userID, id, blogID)
	return args.Error(0)
}

// MockAIWebhookConnector is a mock implementation of conversions.AIWebhookConnector
type MockAIWebhookConnector struct {
	mock.Mock
}

func (m *MockAIWebhookConnector) Submit(ctx context.Context, req *conversions.WebhookRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
