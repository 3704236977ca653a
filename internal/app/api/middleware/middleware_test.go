package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fatflowers/texttopay/pkg/logctx"
)

func newTracedEngine(log *zap.SugaredLogger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceMiddleware(), RequestLoggerMiddleware(log), AccessLogMiddleware(log))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, logctx.TraceID(c.Request.Context()))
	})
	r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusBadGateway) })
	return r
}

func TestTrace_EchoesIncomingRequestID(t *testing.T) {
	r := newTracedEngine(zap.NewNop().Sugar())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "req-123", w.Body.String())
	require.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}

func TestTrace_GeneratesRequestID(t *testing.T) {
	r := newTracedEngine(zap.NewNop().Sugar())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.NotEmpty(t, w.Body.String())
	require.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
}

func TestAccessLog_WritesOneEntry(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newTracedEngine(zap.New(core).Sugar())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-9")
	r.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("http_access").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "req-9", fields["trace_id"])
	require.Equal(t, "/ping", fields["path"])
	require.EqualValues(t, http.StatusOK, fields["status"])
}

func TestTrace_FallsBackToProviderCorrelationID(t *testing.T) {
	r := newTracedEngine(zap.NewNop().Sugar())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(ProviderCorrelationHeader, "wp-77")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, "wp-77", w.Body.String())
	require.Equal(t, "wp-77", w.Header().Get(RequestIDHeader))
}

func TestAccessLog_Levels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := newTracedEngine(zap.New(core).Sugar())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/health", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	entries := logs.FilterMessage("http_access").All()
	require.Len(t, entries, 2)
	require.Equal(t, zap.DebugLevel, entries[0].Level)
	require.Equal(t, zap.WarnLevel, entries[1].Level)
}
