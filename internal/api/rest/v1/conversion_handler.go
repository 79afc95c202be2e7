package v1

import (
	"errors"
	"net/http"

	"github.com/genno-io/genno/internal/domain/conversions"
	"github.com/genno-io/genno/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ConversionHandler defines the interface for video conversions
type ConversionHandler interface {
	Submit(ctx *gin.Context)
	List(ctx *gin.Context)
	Get(ctx *gin.Context)
}

type conversionHandler struct {
	conversionService conversions.ConversionService
	logger            logger.Logger
}

// NewConversionHandler creates a new ConversionHandler
func NewConversionHandler(conversionService conversions.ConversionService, logger logger.Logger) ConversionHandler {
	return &conversionHandler{
		conversionService: conversionService,
		logger:            logger,
	}
}

// Submit charges a credit and hands the video to the AI service
func (handler *conversionHandler) Submit(ctx *gin.Context) {
	userID, _ := UserID(ctx)

	var req ConversionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	conversion, err := handler.conversionService.Submit(ctx, userID, req.YoutubeURL)
	if err != nil {
		message := "Failed to start conversion"
		switch {
		case errors.Is(err, conversions.ErrInvalidURL):
			message = "Invalid YouTube URL"
		case errors.Is(err, conversions.ErrWebhookFailed):
			message = "Conversion service unavailable, your credit was refunded"
		}
		abortWithError(ctx, err, message)
		return
	}

	ctx.JSON(http.StatusCreated, newConversionResponse(conversion))
}

// List returns the caller's conversions, newest first
func (handler *conversionHandler) List(ctx *gin.Context) {
	userID, _ := UserID(ctx)

	list, err := handler.conversionService.List(ctx, userID)
	if err != nil {
		abortWithError(ctx, err, "Failed to fetch conversions")
		return
	}

	resp := make([]ConversionResponse, 0, len(list))
	for _, c := range list {
		resp = append(resp, newConversionResponse(c))
	}
	ctx.JSON(http.StatusOK, resp)
}

// Get returns one of the caller's conversions
func (handler *conversionHandler) Get(ctx *gin.Context) {
	userID, _ := UserID(ctx)

	conversion, err := handler.conversionService.Get(ctx, userID, ctx.Param("id"))
	if err != nil {
		abortWithError(ctx, err, "Conversion not found")
		return
	}

	ctx.JSON(http.StatusOK, newConversionResponse(conversion))
}
