package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	nh "github.com/fatflowers/texttopay/internal/app/service/notification_handler"
	"github.com/fatflowers/texttopay/pkg/config"
	"github.com/fatflowers/texttopay/pkg/logctx"
	"github.com/fatflowers/texttopay/pkg/response"
)

const (
	webhookProcessedMessage   = "Webhook received and processed"
	webhookUnprocessedMessage = "Webhook received but not processed"
)

type WebhookResponse struct {
	Message   string `json:"message"`
	Processed bool   `json:"processed"`
	PaymentID string `json:"paymentId,omitempty"`
	Status    string `json:"status,omitempty"`
}

// @Summary      Payment status webhook
// @Description  Receives provider notifications. texttopay.conversation.status events are republished to subscribers; everything else is acknowledged and dropped.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Param        payload body object true "Provider event envelope"
// @Success      200  {object}  handlers.WebhookResponse
// @Failure      401  {object}  response.ErrorBody
// @Router       /api/webhooks/payment [post]
func ApiPaymentWebhook(h *nh.NotificationHandler, cfg config.WebhookConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logctx.FromGin(c, h.Logger)
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			log.Warnw("webhook_read_body_failed", "error", err.Error())
			body = nil
		}
		log.Infow("webhook_received", "bytes", len(body))

		if cfg.SigningSecret != "" {
			if err := nh.VerifySignature(cfg.SigningSecret, c.GetHeader(cfg.SignatureHeader), body); err != nil {
				log.Warnw("webhook_signature_rejected", "header", cfg.SignatureHeader)
				c.JSON(http.StatusUnauthorized, response.ErrorBody{Error: err.Error()})
				return
			}
		}

		res := h.HandleNotification(c.Request.Context(), body)
		if !res.Processed {
			c.JSON(http.StatusOK, WebhookResponse{Message: webhookUnprocessedMessage})
			return
		}
		c.JSON(http.StatusOK, WebhookResponse{
			Message:   webhookProcessedMessage,
			Processed: true,
			PaymentID: res.PaymentID,
			Status:    res.Status,
		})
	}
}

func RegisterWebhookRoutes(r gin.IRouter, h *nh.NotificationHandler, cfg config.WebhookConfig) {
	r.POST("/webhooks/payment", ApiPaymentWebhook(h, cfg))
}
