//go:build unit
// +build unit

package v1

import (
	"context"
	"time"

	"github.com/genno-io/genno/internal/domain/analytics"
	"github.com/genno-io/genno/internal/domain/blogs"
	"github.com/genno-io/genno/internal/domain/conversions"
	"github.com/genno-io/genno/internal/domain/credits"
	"github.com/genno-io/genno/internal/domain/pricing"
	"github.com/genno-io/genno/internal/domain/profiles"
	"github.com/genno-io/genno/internal/domain/subscriptions"
	"github.com/genno-io/genno/internal/infrastructure/auth"

	"github.com/stretchr/testify/mock"
)

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

// MockAnalyticsService is a mock implementation of analytics.AnalyticsService
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) TrackVisit(ctx context.Context, blogID, forwardedFor, userAgent string) error {
	args := m.Called(ctx, blogID, forwardedFor, userAgent)
	return args.Error(0)
}

func (m *MockAnalyticsService) Report(ctx context.Context, userID string, days int) (*analytics.Report, error) {
	args := m.Called(ctx, userID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.Report), args.Error(1)
}

// MockBlogService is a mock implementation of blogs.BlogService
type MockBlogService struct {
	mock.Mock
}

func (m *MockBlogService) Create(ctx context.Context, userID string, in *blogs.Input) (*blogs.Blog, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blogs.Blog), args.Error(1)
}

func (m *MockBlogService) List(ctx context.Context, query *blogs.Query) ([]*blogs.Blog, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*blogs.Blog), args.Error(1)
}

func (m *MockBlogService) GetForOwner(ctx context.Context, userID, ref string) (*blogs.Blog, error) {
	args := m.Called(ctx, userID, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blogs.Blog), args.Error(1)
}

func (m *MockBlogService) GetPublished(ctx context.Context, slug string) (*blogs.PublicBlog, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blogs.PublicBlog), args.Error(1)
}

func (m *MockBlogService) Update(ctx context.Context, userID, ref string, in *blogs.Input) (*blogs.Blog, error) {
	args := m.Called(ctx, userID, ref, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blogs.Blog), args.Error(1)
}

func (m *MockBlogService) TogglePublish(ctx context.Context, userID, ref string) (*blogs.Blog, error) {
	args := m.Called(ctx, userID, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blogs.Blog), args.Error(1)
}

func (m *MockBlogService) Delete(ctx context.Context, userID, ref string) error {
	args := m.Called(ctx, userID, ref)
	return args.Error(0)
}

func (m *MockBlogService) Ingest(ctx context.Context, in *blogs.IngestInput) (*blogs.Blog, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blogs.Blog), args.Error(1)
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

// MockProfileService is a mock implementation of profiles.ProfileService
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) HandleEvent(ctx context.Context, event *profiles.UserEvent) (bool, error) {
	args := m.Called(ctx, event)
	return args.Bool(0), args.Error(1)
}

func (m *MockProfileService) Get(ctx context.Context, userID string) (*profiles.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profiles.Profile), args.Error(1)
}

// MockSubscriptionService is a mock implementation of subscriptions.SubscriptionService
type MockSubscriptionService struct {
	mock.Mock
}

func (m *MockSubscriptionService) HandleEvent(ctx context.Context, event *subscriptions.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockSubscriptionService) Current(ctx context.Context, userID string) (*subscriptions.Current, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscriptions.Current), args.Error(1)
}

// MockPricingService is a mock implementation of pricing.PricingService
type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) ForHost(host string) *pricing.Pricing {
	args := m.Called(host)
	return args.Get(0).(*pricing.Pricing)
}

// MockTokenVerifier is a mock implementation of auth.TokenVerifier
type MockTokenVerifier struct {
	mock.Mock
}

func (m *MockTokenVerifier) Verify(token string) (*auth.SessionClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.SessionClaims), args.Error(1)
}
