//go:build integration
// +build integration

package app

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/genno-io/genno/internal/domain/blogs"
	"github.com/genno-io/genno/internal/domain/conversions"
	"github.com/genno-io/genno/internal/domain/credits"
	"github.com/genno-io/genno/internal/domain/subscriptions"
	"github.com/genno-io/genno/internal/pkg/config"
	"github.com/genno-io/genno/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const integrationVideo = "https://youtu.be/dQw4w9WgXcQ"

func TestConversionFlow_SubmitAndIngest(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	conversion, err := ts.ConversionService.Submit(ctx, "user_1", integrationVideo)
	require.NoError(t, err)
	assert.Equal(t, conversions.StatusSubmitted, conversion.Status)
	assert.Equal(t, int32(1), ts.AICalls.Load())

	balance, err := ts.CreditService.Check(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, 2, balance.Credits)

	blog, err := ts.BlogService.Ingest(ctx, &blogs.IngestInput{
		Input:        blogs.Input{Title: "From the video", Content: "# Notes"},
		ClerkUserID:  "user_1",
		ConversionID: conversion.ID,
	})
	require.NoError(t, err)

	done, err := ts.ConversionService.Get(ctx, "user_1", conversion.ID)
	require.NoError(t, err)
	assert.Equal(t, conversions.StatusCompleted, done.Status)
	require.NotNil(t, done.BlogID)
	assert.Equal(t, blog.ID, *done.BlogID)
}

func TestConversionFlow_WebhookFailureRefunds(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	ts.AIStatus.Store(http.StatusBadGateway)

	_, err := ts.ConversionService.Submit(ctx, "user_1", integrationVideo)
	assert.ErrorIs(t, err, conversions.ErrWebhookFailed)

	balance, err := ts.CreditService.Check(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, 3, balance.Credits)
	assert.Equal(t, 0, balance.TotalCreditsUsed)

	history, err := ts.CreditService.History(ctx, "user_1", 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	types := []string{history[0].Type, history[1].Type}
	assert.ElementsMatch(t, []string{credits.TransactionDeduct, credits.TransactionGrant}, types)

	list, err := ts.ConversionService.List(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, conversions.StatusFailed, list[0].Status)
}

// cancelingConnector simulates a client that disconnects while the AI service is called
type cancelingConnector struct {
	cancel context.CancelFunc
}

func (c *cancelingConnector) Submit(ctx context.Context, _ *conversions.WebhookRequest) error {
	c.cancel()
	return ctx.Err()
}

func TestConversionFlow_CanceledRequestIsNotLeftPending(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, err := NewConversionService(ts.DBContext.ConversionRepo, ts.CreditService, &cancelingConnector{cancel: cancel}, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	blogService, err := NewBlogService(ts.DBContext.BlogRepo, ts.DBContext.ProfileRepo, svc, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	conversion, err := svc.Submit(ctx, "user_1", integrationVideo)
	assert.ErrorIs(t, err, conversions.ErrWebhookFailed)

	bg := context.Background()
	balance, err := ts.CreditService.Check(bg, "user_1")
	require.NoError(t, err)
	assert.Equal(t, 3, balance.Credits)

	stored, err := svc.Get(bg, "user_1", conversion.ID)
	require.NoError(t, err)
	require.Equal(t, conversions.StatusFailed, stored.Status)

	_, err = blogService.Ingest(bg, &blogs.IngestInput{
		Input:        blogs.Input{Title: "Late callback", Content: "# Notes"},
		ClerkUserID:  "user_1",
		ConversionID: conversion.ID,
	})
	require.NoError(t, err)

	stored, err = svc.Get(bg, "user_1", conversion.ID)
	require.NoError(t, err)
	assert.Equal(t, conversions.StatusFailed, stored.Status)
	assert.Nil(t, stored.BlogID)
}

func TestConversionFlow_IngestForOtherUserLeavesConversionOpen(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	conversion, err := ts.ConversionService.Submit(ctx, "user_1", integrationVideo)
	require.NoError(t, err)

	_, err = ts.BlogService.Ingest(ctx, &blogs.IngestInput{
		Input:        blogs.Input{Title: "Wrong owner", Content: "# Notes"},
		ClerkUserID:  "user_2",
		ConversionID: conversion.ID,
	})
	require.NoError(t, err)

	stored, err := ts.ConversionService.Get(ctx, "user_1", conversion.ID)
	require.NoError(t, err)
	assert.Equal(t, conversions.StatusSubmitted, stored.Status)
	assert.Nil(t, stored.BlogID)
}

func TestConversionFlow_OutOfCredits(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := ts.ConversionService.Submit(ctx, "user_1", integrationVideo)
		require.NoError(t, err)
	}

	_, err := ts.ConversionService.Submit(ctx, "user_1", integrationVideo)
	assert.ErrorIs(t, err, credits.ErrInsufficientCredits)
	assert.Equal(t, int32(3), ts.AICalls.Load())
}

func TestSubscriptionFlow_CreatedThenCanceled(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	created, err := subscriptions.ParseEvent([]byte(`{"event_type":"subscription.created","data":{"id":"sub_01","status":"active","items":[{"price_id":"pri_1","price":{"unit_price":{"amount":"999"}}}],"custom_data":{"clerkUserId":"user_1","planType":"starter"}}}`))
	require.NoError(t, err)
	require.NoError(t, ts.SubscriptionService.HandleEvent(ctx, created))
	require.NoError(t, ts.SubscriptionService.HandleEvent(ctx, created), "redelivery is idempotent")

	current, err := ts.SubscriptionService.Current(ctx, "user_1")
	require.NoError(t, err)
	require.NotNil(t, current.Subscription)
	assert.Equal(t, 9.99, current.Subscription.Amount)
	assert.Equal(t, 100, current.Balance.Credits)
	assert.Equal(t, credits.PlanStarter, current.Balance.PlanType)

	canceled, err := subscriptions.ParseEvent([]byte(`{"event_type":"subscription.canceled","data":{"id":"sub_01"}}`))
	require.NoError(t, err)
	require.NoError(t, ts.SubscriptionService.HandleEvent(ctx, canceled))

	current, err = ts.SubscriptionService.Current(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, subscriptions.StatusCanceled, current.Subscription.Status)
	assert.Equal(t, 3, current.Balance.Credits)
	assert.Equal(t, credits.PlanFree, current.Balance.PlanType)
}

func TestAnalyticsFlow_TrackAndReport(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	blog, err := ts.BlogService.Create(ctx, "user_1", &blogs.Input{Title: "Public", Content: "c", IsPublished: true})
	require.NoError(t, err)

	require.NoError(t, ts.AnalyticsService.TrackVisit(ctx, blog.ID, "198.51.100.1", "ua-1"))
	require.NoError(t, ts.AnalyticsService.TrackVisit(ctx, blog.ID, "198.51.100.1", "ua-1"))
	require.NoError(t, ts.AnalyticsService.TrackVisit(ctx, blog.ID, "198.51.100.2", "ua-1"))

	report, err := ts.AnalyticsService.Report(ctx, "user_1", 30)
	require.NoError(t, err)
	require.Len(t, report.Blogs, 1)
	assert.Equal(t, 2, report.Blogs[0].UniqueVisitors)
	require.Len(t, report.Daily, 1)
	assert.Equal(t, time.Now().UTC().Format(time.DateOnly), report.Daily[0].Date)
}
