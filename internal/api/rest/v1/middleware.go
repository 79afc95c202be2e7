package v1

import (
	"net/http"

	"github.com/genno-io/genno/internal/infrastructure/auth"
	"github.com/genno-io/genno/internal/pkg/httputil"
	"github.com/genno-io/genno/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie carries the session token of browser requests
	SessionCookie = "__session"

	userIDKey = "userID"

	contentSecurityPolicy = "frame-ancestors 'self' https://buy.paddle.com https://sandbox-buy.paddle.com"
)

// AuthMiddleware resolves the caller from a bearer token or the session cookie.
// Requests without a valid token continue anonymously; RequireUser rejects them.
func AuthMiddleware(verifier auth.TokenVerifier, logger logger.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, ok := httputil.BearerToken(ctx.GetHeader("Authorization"))
		if !ok {
			if cookie, err := ctx.Cookie(SessionCookie); err == nil && cookie != "" {
				token, ok = cookie, true
			}
		}

		if ok {
			claims, err := verifier.Verify(token)
			if err != nil {
				logger.Warn("session token rejected", "path", ctx.FullPath(), "error", err)
			} else {
				ctx.Set(userIDKey, claims.Subject)
			}
		}

		ctx.Next()
	}
}

// RequireUser aborts with 401 when AuthMiddleware found no user
func RequireUser() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, ok := UserID(ctx); !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
			return
		}
		ctx.Next()
	}
}

// UserID returns the authenticated user of the request
func UserID(ctx *gin.Context) (string, bool) {
	id := ctx.GetString(userIDKey)
	return id, id != ""
}

// SetUserID marks the request as made by userID
func SetUserID(ctx *gin.Context, userID string) {
	ctx.Set(userIDKey, userID)
}

// CSPMiddleware allows the checkout overlay to frame our pages
func CSPMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Header("Content-Security-Policy", contentSecurityPolicy)
		ctx.Next()
	}
}
