package notification_handler

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	notificationlog "github.com/fatflowers/texttopay/internal/app/service/notification_log"
	"github.com/fatflowers/texttopay/internal/models"
	"github.com/fatflowers/texttopay/internal/platform/broadcast"
	"github.com/fatflowers/texttopay/pkg/config"
	"github.com/fatflowers/texttopay/pkg/logctx"
	"github.com/fatflowers/texttopay/pkg/metrics"
)

const providerWorldpay = "worldpay"

// Result is what the webhook endpoint echoes back to the provider.
type Result struct {
	Processed bool
	PaymentID string
	Status    string
}

type NotificationHandler struct {
	channel   string
	event     string
	publisher broadcast.Publisher
	notifSvc  *notificationlog.Service
	Logger    *zap.SugaredLogger
}

func NewNotificationHandler(cfg *config.Config, pub broadcast.Publisher, notif *notificationlog.Service, log *zap.SugaredLogger) *NotificationHandler {
	return &NotificationHandler{
		channel:   cfg.Broadcast.Channel,
		event:     cfg.Broadcast.Event,
		publisher: pub,
		notifSvc:  notif,
		Logger:    log,
	}
}

// HandleNotification republishes a payment-status webhook. It never fails:
// unknown events are dropped and publish errors are only logged, so the
// provider always sees the delivery acknowledged.
func (h *NotificationHandler) HandleNotification(ctx context.Context, body []byte) *Result {
	log := logctx.FromCtx(ctx, h.Logger)
	evt, env := ParseStatusEvent(body)

	data := logData(body)
	entry := func(status models.PaymentNotificationLogStatus, result map[string]any) *models.PaymentNotificationLog {
		e := &models.PaymentNotificationLog{
			ProviderID:       providerWorldpay,
			EventType:        env.EventType,
			TraceID:          logctx.TraceID(ctx),
			NotificationTime: time.Now(),
			Data:             data,
			Status:           status,
		}
		if evt != nil {
			e.PaymentID = evt.PaymentID
		}
		if result != nil {
			b, _ := json.Marshal(result)
			j := datatypes.JSON(b)
			e.Result = &j
		}
		return e
	}
	h.notifSvc.Save(ctx, entry(models.PaymentNotificationLogStatusReceived, nil))

	if evt == nil {
		log.Infow("webhook_not_processed", "event_type", env.EventType, "has_payment_details", env.HasPaymentDetails)
		metrics.IncWebhookEvent("ignored")
		h.notifSvc.Save(ctx, entry(models.PaymentNotificationLogStatusIgnored, nil))
		return &Result{Processed: false}
	}

	log.Infow("webhook_payment_update",
		"payment_id", evt.PaymentID,
		"status", evt.Status,
		"customer_id", evt.CustomerID,
	)

	if err := h.publisher.Publish(ctx, h.channel, h.event, evt.Update()); err != nil {
		log.Errorw("broadcast_publish_failed", "payment_id", evt.PaymentID, "driver", h.publisher.Driver(), "error", err.Error())
		metrics.IncWebhookEvent("publish_failed")
		h.notifSvc.Save(ctx, entry(models.PaymentNotificationLogStatusHandleFailed, map[string]any{"error": err.Error()}))
	} else {
		log.Infow("broadcast_published", "payment_id", evt.PaymentID, "channel", h.channel, "event", h.event)
		metrics.IncWebhookEvent("processed")
		h.notifSvc.Save(ctx, entry(models.PaymentNotificationLogStatusHandled, map[string]any{"broadcast": evt.Update()}))
	}

	return &Result{Processed: true, PaymentID: evt.PaymentID, Status: evt.Status}
}

// logData stores the body as-is when it is JSON, otherwise as a JSON string.
func logData(body []byte) datatypes.JSON {
	if json.Valid(body) {
		return datatypes.JSON(body)
	}
	b, _ := json.Marshal(string(body))
	return datatypes.JSON(b)
}

var Module = fx.Options(
	fx.Provide(NewNotificationHandler),
)
