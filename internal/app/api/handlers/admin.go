package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"

	notificationlog "github.com/fatflowers/texttopay/internal/app/service/notification_log"
	"github.com/fatflowers/texttopay/pkg/apperr"
	"github.com/fatflowers/texttopay/pkg/logctx"
	"github.com/fatflowers/texttopay/pkg/response"
)

const maxReceiptPageSize = 100

type ReceiptStatsResponse struct {
	Total    int64                         `json:"total"`
	ByStatus []notificationlog.StatusCount `json:"by_status"`
}

// @Summary      List webhook receipts
// @Description  Pages through the webhook receipt log. Requires a configured database.
// @Tags         Admin
// @Produce      json
// @Param        status      query  string  false  "received, ignored, handled or handle_failed"
// @Param        payment_id  query  string  false  "Payment id"
// @Param        event_type  query  string  false  "Provider event type"
// @Param        from        query  int     false  "Offset"
// @Param        size        query  int     false  "Page size (max 100)"
// @Param        sort_by     query  string  false  "created_at, notification_time, payment_id or status"
// @Param        sort_order  query  string  false  "asc or desc"
// @Success      200  {object}  notificationlog.ScanResponse
// @Failure      400  {object}  response.ErrorBody
// @Failure      500  {object}  response.ErrorBody
// @Router       /api/admin/webhook-receipts [get]
func ApiListWebhookReceipts(svc *notificationlog.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req notificationlog.ScanRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			response.Error(c, apperr.Validation("Invalid query: %s", err.Error()))
			return
		}
		if req.Size > maxReceiptPageSize {
			req.Size = maxReceiptPageSize
		}
		res, err := svc.Scan(c.Request.Context(), &req)
		if err != nil {
			logctx.FromGin(c, log).Warnw("list_webhook_receipts_failed", "error", err.Error())
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// @Summary      Webhook receipt counts
// @Description  Counts receipt log rows per status.
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  handlers.ReceiptStatsResponse
// @Failure      500  {object}  response.ErrorBody
// @Router       /api/admin/webhook-receipts/stats [get]
func ApiWebhookReceiptStats(svc *notificationlog.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := svc.CountByStatus(c.Request.Context())
		if err != nil {
			logctx.FromGin(c, log).Warnw("webhook_receipt_stats_failed", "error", err.Error())
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, ReceiptStatsResponse{
			Total:    lo.SumBy(counts, func(sc notificationlog.StatusCount) int64 { return sc.Count }),
			ByStatus: counts,
		})
	}
}

func RegisterAdminRoutes(r gin.IRouter, svc *notificationlog.Service, log *zap.SugaredLogger) {
	g := r.Group("/admin")
	g.GET("/webhook-receipts", ApiListWebhookReceipts(svc, log))
	g.GET("/webhook-receipts/stats", ApiWebhookReceiptStats(svc, log))
}
