package v1

import (
	"errors"
	"net/http"

	"github.com/genno-io/genno/internal/app"
	"github.com/genno-io/genno/internal/domain/blogs"
	"github.com/genno-io/genno/internal/domain/conversions"
	"github.com/genno-io/genno/internal/domain/credits"
	"github.com/genno-io/genno/internal/domain/profiles"
	"github.com/genno-io/genno/internal/domain/subscriptions"
	"github.com/genno-io/genno/internal/infrastructure/signature"

	"github.com/gin-gonic/gin"
)

// statusFor maps domain errors onto HTTP statuses
func statusFor(err error) int {
	switch {
	case errors.Is(err, blogs.ErrNotFound),
		errors.Is(err, conversions.ErrNotFound),
		errors.Is(err, profiles.ErrNotFound),
		errors.Is(err, subscriptions.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, blogs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, signature.ErrInvalidSignature):
		return http.StatusUnauthorized
	case errors.Is(err, credits.ErrInsufficientCredits),
		errors.Is(err, conversions.ErrInvalidURL),
		errors.Is(err, blogs.ErrSlugTaken),
		errors.Is(err, blogs.ErrInvalid),
		errors.Is(err, app.ErrMissingField),
		errors.Is(err, app.ErrMissingBlogID):
		return http.StatusBadRequest
	case errors.Is(err, conversions.ErrWebhookFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError answers with the mapped status. Internal errors hide their cause.
func abortWithError(ctx *gin.Context, err error, message string) {
	status := statusFor(err)
	resp := ErrorResponse{Error: message}
	if status != http.StatusInternalServerError {
		resp.Details = err.Error()
	}
	ctx.AbortWithStatusJSON(status, resp)
}

func badRequest(ctx *gin.Context, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	ctx.AbortWithStatusJSON(http.StatusBadRequest, resp)
}
