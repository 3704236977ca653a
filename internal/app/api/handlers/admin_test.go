package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	nh "github.com/fatflowers/texttopay/internal/app/service/notification_handler"
	notificationlog "github.com/fatflowers/texttopay/internal/app/service/notification_log"
	"github.com/fatflowers/texttopay/internal/models"
	"github.com/fatflowers/texttopay/internal/platform/broadcast"
)

func newAdminRouter(t *testing.T, gdb *gorm.DB) (*gin.Engine, *notificationlog.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop().Sugar()
	svc := notificationlog.New(gdb, log)
	r := gin.New()
	api := r.Group("/api")
	cfg := testConfig()
	RegisterWebhookRoutes(api, nh.NewNotificationHandler(cfg, broadcast.NewHub(), svc, log), cfg.Webhook)
	RegisterAdminRoutes(api, svc, log)
	return r, svc
}

func TestAdminRoutes_ListsWebhookReceipts(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(&models.PaymentNotificationLog{}))

	r, svc := newAdminRouter(t, gdb)
	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/webhooks/payment", webhookBody).Code)
	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/webhooks/payment", `{"eventType":"other"}`).Code)
	svc.Wait()

	w := do(r, http.MethodGet, "/api/admin/webhook-receipts?payment_id=pay_1&sort_order=asc", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list notificationlog.ScanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, int64(2), list.Total)
	statuses := []models.PaymentNotificationLogStatus{list.Items[0].Status, list.Items[1].Status}
	require.ElementsMatch(t, []models.PaymentNotificationLogStatus{
		models.PaymentNotificationLogStatusReceived,
		models.PaymentNotificationLogStatusHandled,
	}, statuses)

	w = do(r, http.MethodGet, "/api/admin/webhook-receipts/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	var stats ReceiptStatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	require.Equal(t, int64(4), stats.Total)
	require.Len(t, stats.ByStatus, 3)

	w = do(r, http.MethodGet, "/api/admin/webhook-receipts?sort_by=data", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	w = do(r, http.MethodGet, "/api/admin/webhook-receipts?size=abc", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminRoutes_DisabledLog(t *testing.T) {
	r, _ := newAdminRouter(t, nil)

	w := do(r, http.MethodGet, "/api/admin/webhook-receipts", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"error":"webhook receipt log is disabled; set database.dsn"}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/admin/webhook-receipts/stats", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
