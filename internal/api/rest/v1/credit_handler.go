package v1

import (
	"errors"
	"net/http"

	"github.com/genno-io/genno/internal/domain/credits"
	"github.com/genno-io/genno/internal/pkg/logger"
	"github.com/genno-io/genno/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// CreditHandler defines the interface for handling credit-related operations
type CreditHandler interface {
	Check(ctx *gin.Context)
	Deduct(ctx *gin.Context)
	Transactions(ctx *gin.Context)
}

type creditHandler struct {
	creditService credits.CreditService
	logger        logger.Logger
}

// NewCreditHandler creates a new CreditHandler
func NewCreditHandler(creditService credits.CreditService, logger logger.Logger) CreditHandler {
	return &creditHandler{
		creditService: creditService,
		logger:        logger,
	}
}

// Check returns the caller's balance
func (handler *creditHandler) Check(ctx *gin.Context) {
	userID, _ := UserID(ctx)

	balance, err := handler.creditService.Check(ctx, userID)
	if err != nil {
		handler.logger.Error("credit check failed", "user_id", userID, "error", err)
		abortWithError(ctx, err, "Failed to fetch credits")
		return
	}

	ctx.JSON(http.StatusOK, newBalanceResponse(balance))
}

// Deduct removes credits from the caller
func (handler *creditHandler) Deduct(ctx *gin.Context) {
	userID, _ := UserID(ctx)

	var req DeductRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			badRequest(ctx, "Invalid request body", err)
			return
		}
	}
	if err := req.Validate(); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	updated, err := handler.creditService.Deduct(ctx, credits.NewDeductRequest(userID, req.Amount, req.Reason, req.BlogID))
	if err != nil {
		if errors.Is(err, credits.ErrInsufficientCredits) {
			success := false
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Insufficient credits", Success: &success})
			return
		}
		handler.logger.Error("credit deduction failed", "user_id", userID, "error", err)
		abortWithError(ctx, err, "Failed to deduct credits")
		return
	}

	ctx.JSON(http.StatusOK, DeductResponse{
		Success:  true,
		Credits:  updated.Credits,
		PlanType: updated.PlanType,
	})
}

// Transactions lists the caller's recent credit transactions
func (handler *creditHandler) Transactions(ctx *gin.Context) {
	userID, _ := UserID(ctx)
	limit := strutil.ConvertToIntOr(ctx.Query("limit"), credits.DefaultHistoryLimit)

	history, err := handler.creditService.History(ctx, userID, limit)
	if err != nil {
		handler.logger.Error("credit history failed", "user_id", userID, "error", err)
		abortWithError(ctx, err, "Failed to fetch transactions")
		return
	}

	ctx.JSON(http.StatusOK, newTransactionResponses(history))
}
