package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fatflowers/texttopay/pkg/logctx"
)

// quietPaths are polled by the console and load balancers; they log at debug.
var quietPaths = map[string]bool{
	"/api/health":        true,
	"/api/pusher-config": true,
}

// AccessLogMiddleware writes one http_access line per request through the
// logger RequestLoggerMiddleware attached.
func AccessLogMiddleware(base *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		l := logctx.FromGin(c, base)
		logf := l.Infow
		switch {
		case c.Writer.Status() >= 500:
			logf = l.Warnw
		case quietPaths[c.FullPath()]:
			logf = l.Debugw
		}
		logf("http_access",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}
