package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// userIDHeader carries the principal established by the upstream gateway.
// Identity verification happens outside this service; by the time a request
// arrives here the header is trusted.
const userIDHeader = "X-User-ID"

// AuthMiddleware creates a Gin middleware handler that extracts the
// gateway-authenticated principal from the request and stores it in the
// request context. Requests without a principal are rejected.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID := c.GetHeader(userIDHeader)
		if userID == "" {
			logger.Warn("Principal header missing", slog.String("header", userIDHeader))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		// Enrich the request-scoped logger so downstream log lines carry the
		// principal.
		enrichedLogger := logger.With(slog.String("user_id", userID))
		ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
