package v1

import (
	"encoding/json"
	"time"

	"github.com/genno-io/genno/internal/domain/analytics"
	"github.com/genno-io/genno/internal/domain/blogs"
	"github.com/genno-io/genno/internal/domain/conversions"
	"github.com/genno-io/genno/internal/domain/credits"
	"github.com/genno-io/genno/internal/domain/pricing"
	"github.com/genno-io/genno/internal/domain/profiles"
	"github.com/genno-io/genno/internal/domain/subscriptions"
	"github.com/genno-io/genno/internal/pkg/validators"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Success *bool  `json:"success,omitempty"`
}

// BalanceResponse answers a credit check
type BalanceResponse struct {
	Credits          int    `json:"credits"`
	PlanType         string `json:"planType"`
	TotalCreditsUsed int    `json:"totalCreditsUsed"`
	HasCredits       bool   `json:"hasCredits"`
}

func newBalanceResponse(b *credits.Balance) BalanceResponse {
	return BalanceResponse{
		Credits:          b.Credits,
		PlanType:         b.PlanType,
		TotalCreditsUsed: b.TotalCreditsUsed,
		HasCredits:       b.HasCredits,
	}
}

// DeductRequest is the body of a credit deduction. Zero values take the defaults.
type DeductRequest struct {
	Amount int     `json:"amount" validate:"gte=0"`
	Reason string  `json:"reason" validate:"max=255"`
	BlogID *string `json:"blogId"`
}

// Validate for validating DeductRequest struct
func (r *DeductRequest) Validate() error {
	return validators.Struct(r)
}

// DeductResponse answers a successful deduction
type DeductResponse struct {
	Success  bool   `json:"success"`
	Credits  int    `json:"credits"`
	PlanType string `json:"planType"`
}

// TransactionResponse is one credit transaction
type TransactionResponse struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Amount       int       `json:"amount"`
	BalanceAfter int       `json:"balanceAfter"`
	Reason       string    `json:"reason"`
	BlogID       *string   `json:"blogId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func newTransactionResponses(list []*credits.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, TransactionResponse{
			ID:           t.ID,
			Type:         t.Type,
			Amount:       t.Amount,
			BalanceAfter: t.BalanceAfter,
			Reason:       t.Reason,
			BlogID:       t.BlogID,
			CreatedAt:    t.CreatedAt,
		})
	}
	return out
}

// TrackVisitRequest is the body of a visit beacon
type TrackVisitRequest struct {
	BlogID string `json:"blogId"`
}

// DailyVisitorsResponse is one day of the visitor series
type DailyVisitorsResponse struct {
	Date           string `json:"date"`
	UniqueVisitors int    `json:"unique_visitors"`
}

// BlogStatsResponse holds the visitor counts of one blog
type BlogStatsResponse struct {
	BlogID             string     `json:"blog_id"`
	Title              string     `json:"title"`
	Slug               string     `json:"slug"`
	ClerkUserID        string     `json:"clerk_user_id"`
	CreatedAt          time.Time  `json:"created_at"`
	UniqueVisitors     int        `json:"unique_visitors"`
	VisitorsLast7Days  int        `json:"visitors_last_7_days"`
	VisitorsLast30Days int        `json:"visitors_last_30_days"`
	LastVisit          *time.Time `json:"last_visit"`
}

// AnalyticsSummaryResponse aggregates all blogs of a report
type AnalyticsSummaryResponse struct {
	TotalVisitors           int                 `json:"totalVisitors"`
	TotalVisitorsLast7Days  int                 `json:"totalVisitorsLast7Days"`
	TotalVisitorsLast30Days int                 `json:"totalVisitorsLast30Days"`
	VisitorsChange          int                 `json:"visitorsChange"`
	Blogs                   []BlogStatsResponse `json:"blogs"`
}

// AnalyticsResponse answers an analytics data request
type AnalyticsResponse struct {
	DailyData []DailyVisitorsResponse  `json:"dailyData"`
	Summary   AnalyticsSummaryResponse `json:"summary"`
}

func newAnalyticsResponse(r *analytics.Report) AnalyticsResponse {
	resp := AnalyticsResponse{
		DailyData: make([]DailyVisitorsResponse, 0, len(r.Daily)),
		Summary: AnalyticsSummaryResponse{
			TotalVisitors:           r.TotalVisitors,
			TotalVisitorsLast7Days:  r.TotalVisitorsLast7Days,
			TotalVisitorsLast30Days: r.TotalVisitorsLast30Days,
			VisitorsChange:          r.VisitorsChange,
			Blogs:                   make([]BlogStatsResponse, 0, len(r.Blogs)),
		},
	}
	for _, d := range r.Daily {
		resp.DailyData = append(resp.DailyData, DailyVisitorsResponse{Date: d.Date, UniqueVisitors: d.UniqueVisitors})
	}
	for _, b := range r.Blogs {
		resp.Summary.Blogs = append(resp.Summary.Blogs, BlogStatsResponse{
			BlogID:             b.BlogID,
			Title:              b.Title,
			Slug:               b.Slug,
			ClerkUserID:        b.ClerkUserID,
			CreatedAt:          b.CreatedAt,
			UniqueVisitors:     b.UniqueVisitors,
			VisitorsLast7Days:  b.VisitorsLast7Days,
			VisitorsLast30Days: b.VisitorsLast30Days,
			LastVisit:          b.LastVisit,
		})
	}
	return resp
}

// BlogRequest is the body of a blog create or update
type BlogRequest struct {
	Title        string   `json:"title" validate:"required,max=500"`
	Content      string   `json:"content" validate:"required"`
	Slug         string   `json:"slug" validate:"omitempty,max=120"`
	Excerpt      *string  `json:"excerpt" validate:"omitempty,max=2000"`
	YoutubeURL   *string  `json:"youtube_url" validate:"omitempty,url"`
	ThumbnailURL *string  `json:"thumbnail_url" validate:"omitempty,url"`
	Tags         []string `json:"tags" validate:"max=20,dive,max=64"`
	IsPublished  bool     `json:"is_published"`
}

// Validate for validating BlogRequest struct
func (r *BlogRequest) Validate() error {
	return validators.Struct(r)
}

func (r *BlogRequest) toInput() *blogs.Input {
	return &blogs.Input{
		Title:        r.Title,
		Content:      r.Content,
		Slug:         r.Slug,
		Excerpt:      r.Excerpt,
		YoutubeURL:   r.YoutubeURL,
		ThumbnailURL: r.ThumbnailURL,
		Tags:         r.Tags,
		IsPublished:  r.IsPublished,
	}
}

// IngestRequest is a finished blog delivered by the AI service.
// Required fields are checked by the service so the callback gets a precise message.
type IngestRequest struct {
	BlogRequest
	ClerkUserID  string `json:"clerk_user_id"`
	ConversionID string `json:"conversion_id"`
}

func (r *IngestRequest) toInput() *blogs.IngestInput {
	return &blogs.IngestInput{
		Input:        *r.BlogRequest.toInput(),
		ClerkUserID:  r.ClerkUserID,
		ConversionID: r.ConversionID,
	}
}

// BlogResponse is a blog as stored
type BlogResponse struct {
	ID           string    `json:"id"`
	ClerkUserID  string    `json:"clerk_user_id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Content      string    `json:"content"`
	Excerpt      *string   `json:"excerpt"`
	YoutubeURL   *string   `json:"youtube_url"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	Tags         []string  `json:"tags"`
	IsPublished  bool      `json:"is_published"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func newBlogResponse(b *blogs.Blog) BlogResponse {
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	return BlogResponse{
		ID:           b.ID,
		ClerkUserID:  b.ClerkUserID,
		Title:        b.Title,
		Slug:         b.Slug,
		Content:      b.Content,
		Excerpt:      b.Excerpt,
		YoutubeURL:   b.YoutubeURL,
		ThumbnailURL: b.ThumbnailURL,
		Tags:         tags,
		IsPublished:  b.IsPublished,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// AuthorResponse is the public part of a profile
type AuthorResponse struct {
	DisplayName     string  `json:"display_name"`
	Username        *string `json:"username"`
	ProfileImageURL *string `json:"profile_image_url"`
}

// PublicBlogResponse is a published blog with its author
type PublicBlogResponse struct {
	BlogResponse
	Author *AuthorResponse `json:"author"`
}

func newPublicBlogResponse(p *blogs.PublicBlog) PublicBlogResponse {
	resp := PublicBlogResponse{BlogResponse: newBlogResponse(p.Blog)}
	if p.Author != nil {
		resp.Author = &AuthorResponse{
			DisplayName:     p.Author.DisplayName(),
			Username:        p.Author.Username,
			ProfileImageURL: p.Author.ProfileImageURL,
		}
	}
	return resp
}

// IngestResponse answers the AI callback
type IngestResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Blog    BlogResponse `json:"blog"`
}

// ConversionRequest starts a conversion
type ConversionRequest struct {
	YoutubeURL string `json:"youtube_url" validate:"required"`
}

// Validate for validating ConversionRequest struct
func (r *ConversionRequest) Validate() error {
	return validators.Struct(r)
}

// ConversionResponse is a conversion job
type ConversionResponse struct {
	ID         string    `json:"id"`
	YoutubeURL string    `json:"youtube_url"`
	Status     string    `json:"status"`
	BlogID     *string   `json:"blog_id"`
	Error      *string   `json:"error"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func newConversionResponse(c *conversions.Conversion) ConversionResponse {
	return ConversionResponse{
		ID:         c.ID,
		YoutubeURL: c.YoutubeURL,
		Status:     c.Status,
		BlogID:     c.BlogID,
		Error:      c.Error,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ProfileResponse is the caller's profile
type ProfileResponse struct {
	ClerkUserID     string          `json:"clerk_user_id"`
	Email           string          `json:"email"`
	FirstName       *string         `json:"first_name"`
	LastName        *string         `json:"last_name"`
	Username        *string         `json:"username"`
	ProfileImageURL *string         `json:"profile_image_url"`
	LastSignInAt    *time.Time      `json:"last_sign_in_at"`
	EmailVerified   bool            `json:"email_verified"`
	Banned          bool            `json:"banned"`
	Metadata        json.RawMessage `json:"metadata"`
}

func newProfileResponse(p *profiles.Profile) ProfileResponse {
	return ProfileResponse{
		ClerkUserID:     p.ClerkUserID,
		Email:           p.Email,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Username:        p.Username,
		ProfileImageURL: p.ProfileImageURL,
		LastSignInAt:    p.LastSignInAt,
		EmailVerified:   p.EmailVerified,
		Banned:          p.Banned,
		Metadata:        p.Metadata,
	}
}

// WebhookAck acknowledges a payment provider delivery
type WebhookAck struct {
	Received    bool      `json:"received"`
	EventType   string    `json:"event_type"`
	ProcessedAt time.Time `json:"processed_at"`
}

// SubscriptionResponse is a stored subscription
type SubscriptionResponse struct {
	ID                   string     `json:"id"`
	PaddleSubscriptionID string     `json:"paddle_subscription_id"`
	PlanType             string     `json:"plan_type"`
	Status               string     `json:"status"`
	BillingCycle         string     `json:"billing_cycle"`
	Amount               float64    `json:"amount"`
	Currency             string     `json:"currency"`
	CurrentPeriodStart   *time.Time `json:"current_period_start"`
	CurrentPeriodEnd     *time.Time `json:"current_period_end"`
	TrialEnd             *time.Time `json:"trial_end"`
	CanceledAt           *time.Time `json:"canceled_at"`
	CancelAt             *time.Time `json:"cancel_at"`
	CreatedAt            time.Time  `json:"created_at"`
}

// CurrentSubscriptionResponse is the subscription page payload
type CurrentSubscriptionResponse struct {
	Subscription *SubscriptionResponse `json:"subscription"`
	Credits      BalanceResponse       `json:"credits"`
}

func newCurrentSubscriptionResponse(c *subscriptions.Current) CurrentSubscriptionResponse {
	resp := CurrentSubscriptionResponse{Credits: newBalanceResponse(c.Balance)}
	if s := c.Subscription; s != nil {
		resp.Subscription = &SubscriptionResponse{
			ID:                   s.ID,
			PaddleSubscriptionID: s.PaddleSubscriptionID,
			PlanType:             s.PlanType,
			Status:               s.Status,
			BillingCycle:         s.BillingCycle,
			Amount:               s.Amount,
			Currency:             s.Currency,
			CurrentPeriodStart:   s.CurrentPeriodStart,
			CurrentPeriodEnd:     s.CurrentPeriodEnd,
			TrialEnd:             s.TrialEnd,
			CanceledAt:           s.CanceledAt,
			CancelAt:             s.CancelAt,
			CreatedAt:            s.CreatedAt,
		}
	}
	return resp
}

// PlanResponse is one plan of the pricing page
type PlanResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Price       map[string]float64 `json:"price"`
	Credits     int                `json:"credits"`
	Features    []string           `json:"features"`
	PriceIDs    map[string]string  `json:"priceIds"`
	Popular     bool               `json:"popular"`
	ButtonText  string             `json:"buttonText"`
}

// PricingResponse is the pricing page payload
type PricingResponse struct {
	Environment string         `json:"environment"`
	ClientToken string         `json:"clientToken"`
	Plans       []PlanResponse `json:"plans"`
}

func newPricingResponse(p *pricing.Pricing) PricingResponse {
	resp := PricingResponse{
		Environment: p.Environment,
		ClientToken: p.ClientToken,
		Plans:       make([]PlanResponse, 0, len(p.Plans)),
	}
	for _, plan := range p.Plans {
		resp.Plans = append(resp.Plans, PlanResponse{
			ID:          plan.ID,
			Name:        plan.Name,
			Description: plan.Description,
			Price:       map[string]float64{"monthly": plan.Price.Monthly, "yearly": plan.Price.Yearly},
			Credits:     plan.Credits,
			Features:    plan.Features,
			PriceIDs:    map[string]string{"monthly": plan.PriceIDs.Monthly, "yearly": plan.PriceIDs.Yearly},
			Popular:     plan.Popular,
			ButtonText:  plan.ButtonText,
		})
	}
	return resp
}

// ConfigDiagnosticsResponse reports the presence of settings for the request host
type ConfigDiagnosticsResponse struct {
	Environment string            `json:"environment"`
	Host        string            `json:"host"`
	Settings    map[string]string `json:"settings"`
}
