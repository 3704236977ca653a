package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/fatflowers/texttopay/pkg/logctx"
)

// RequestIDHeader carries the trace id in and out of the service.
const RequestIDHeader = "X-Request-ID"

// ProviderCorrelationHeader is set by Worldpay on webhook deliveries.
const ProviderCorrelationHeader = "WP-CorrelationId"

// TraceMiddleware picks the trace id from X-Request-ID, then from the
// provider correlation header, and mints a UUID when neither is present.
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID, ok := lo.Find([]string{
			c.GetHeader(RequestIDHeader),
			c.GetHeader(ProviderCorrelationHeader),
		}, func(v string) bool { return v != "" })
		if !ok {
			traceID = uuid.NewString()
		}

		c.Set(logctx.TraceIDKey, traceID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), logctx.TraceIDKey, traceID))

		c.Next()
	}
}
