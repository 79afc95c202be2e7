package v1

import (
	"net/http"

	"github.com/genno-io/genno/internal/domain/pricing"
	"github.com/genno-io/genno/internal/domain/profiles"
	"github.com/genno-io/genno/internal/domain/subscriptions"

	"github.com/gin-gonic/gin"
)

// AccountHandler defines the interface for the caller's account pages
type AccountHandler interface {
	Profile(ctx *gin.Context)
	CurrentSubscription(ctx *gin.Context)
	Pricing(ctx *gin.Context)
}

type accountHandler struct {
	profileService      profiles.ProfileService
	subscriptionService subscriptions.SubscriptionService
	pricingService      pricing.PricingService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(profileService profiles.ProfileService, subscriptionService subscriptions.SubscriptionService, pricingService pricing.PricingService) AccountHandler {
	return &accountHandler{
		profileService:      profileService,
		subscriptionService: subscriptionService,
		pricingService:      pricingService,
	}
}

// Profile returns the caller's synced profile
func (handler *accountHandler) Profile(ctx *gin.Context) {
	userID, _ := UserID(ctx)

	profile, err := handler.profileService.Get(ctx, userID)
	if err != nil {
		abortWithError(ctx, err, "Profile not found")
		return
	}

	ctx.JSON(http.StatusOK, newProfileResponse(profile))
}

// CurrentSubscription returns the newest subscription with the credit balance
func (handler *accountHandler) CurrentSubscription(ctx *gin.Context) {
	userID, _ := UserID(ctx)

	current, err := handler.subscriptionService.Current(ctx, userID)
	if err != nil {
		abortWithError(ctx, err, "Failed to fetch subscription")
		return
	}

	ctx.JSON(http.StatusOK, newCurrentSubscriptionResponse(current))
}

// Pricing returns the plans for the environment of the request host. Public.
func (handler *accountHandler) Pricing(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, newPricingResponse(handler.pricingService.ForHost(ctx.Request.Host)))
}
