package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fatflowers/texttopay/pkg/logctx"
)

// RequestLoggerMiddleware attaches a request-scoped logger enriched with
// trace_id to gin.Context and request context.
func RequestLoggerMiddleware(base *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetString(logctx.TraceIDKey)

		reqLogger := base.With("trace_id", traceID)
		c.Set(logctx.LoggerKey, reqLogger)

		ctx := context.WithValue(c.Request.Context(), logctx.LoggerKey, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		if traceID != "" {
			c.Writer.Header().Set(RequestIDHeader, traceID)
		}

		c.Next()
	}
}
