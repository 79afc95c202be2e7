package v1

import (
	"net/http"

	"github.com/genno-io/genno/internal/domain/analytics"
	"github.com/genno-io/genno/internal/pkg/logger"
	"github.com/genno-io/genno/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler defines the interface for visit tracking and reports
type AnalyticsHandler interface {
	Track(ctx *gin.Context)
	Data(ctx *gin.Context)
}

type analyticsHandler struct {
	analyticsService analytics.AnalyticsService
	logger           logger.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService analytics.AnalyticsService, logger logger.Logger) AnalyticsHandler {
	return &analyticsHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// Track records an anonymous visit. Public.
func (handler *analyticsHandler) Track(ctx *gin.Context) {
	var req TrackVisitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}
	if req.BlogID == "" {
		badRequest(ctx, "Blog ID is required", nil)
		return
	}

	if err := handler.analyticsService.TrackVisit(ctx, req.BlogID, ctx.GetHeader("X-Forwarded-For"), ctx.GetHeader("User-Agent")); err != nil {
		handler.logger.Error("visit tracking failed", "blog_id", req.BlogID, "error", err)
		abortWithError(ctx, err, "Failed to track visit")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// Data returns the caller's visitor report
func (handler *analyticsHandler) Data(ctx *gin.Context) {
	userID, _ := UserID(ctx)
	days := strutil.ConvertToIntOr(ctx.Query("days"), analytics.DefaultReportDays)

	report, err := handler.analyticsService.Report(ctx, userID, days)
	if err != nil {
		handler.logger.Error("analytics report failed", "user_id", userID, "error", err)
		abortWithError(ctx, err, "Failed to fetch analytics")
		return
	}

	ctx.JSON(http.StatusOK, newAnalyticsResponse(report))
}
