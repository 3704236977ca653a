package notification_handler

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	notificationlog "github.com/fatflowers/texttopay/internal/app/service/notification_log"
	"github.com/fatflowers/texttopay/pkg/config"
	"github.com/fatflowers/texttopay/pkg/types"
)

type published struct {
	channel string
	event   string
	payload any
}

type recordingPublisher struct {
	mu    sync.Mutex
	calls []published
	err   error
}

func (p *recordingPublisher) Driver() string { return "test" }

func (p *recordingPublisher) Publish(_ context.Context, channel, event string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, published{channel, event, payload})
	return p.err
}

func newTestHandler(pub *recordingPublisher) *NotificationHandler {
	cfg := &config.Config{Broadcast: config.BroadcastConfig{Channel: "payment-updates", Event: "payment-updated"}}
	return NewNotificationHandler(cfg, pub, notificationlog.New(nil, zap.NewNop().Sugar()), zap.NewNop().Sugar())
}

const statusBody = `{
	"eventType": "texttopay.conversation.status",
	"data": {
		"customerId": "cus_1",
		"merchantId": "mid-9",
		"paymentDetails": {"id": "pay_1", "status": "completed", "lastUpdatedDateTime": "2025-03-14T23:31:00Z"}
	}
}`

func TestHandleNotification_PublishesOnceForStatusEvent(t *testing.T) {
	pub := &recordingPublisher{}
	h := newTestHandler(pub)

	res := h.HandleNotification(context.Background(), []byte(statusBody))
	require.True(t, res.Processed)
	require.Equal(t, "pay_1", res.PaymentID)
	require.Equal(t, "completed", res.Status)

	require.Len(t, pub.calls, 1)
	require.Equal(t, "payment-updates", pub.calls[0].channel)
	require.Equal(t, "payment-updated", pub.calls[0].event)
	require.Equal(t, types.PaymentUpdate{
		PaymentID:           "pay_1",
		CustomerID:          "cus_1",
		MerchantID:          "mid-9",
		Status:              "completed",
		LastUpdatedDateTime: "2025-03-14T23:31:00Z",
		EventType:           EventTypePaymentStatus,
	}, pub.calls[0].payload)
}

func TestHandleNotification_UnrecognisedBodiesAreNotPublished(t *testing.T) {
	bodies := map[string]string{
		"other event":        `{"eventType":"texttopay.conversation.created","data":{"paymentDetails":{"id":"p"}}}`,
		"no payment details": `{"eventType":"texttopay.conversation.status","data":{"customerId":"c"}}`,
		"details not object": `{"eventType":"texttopay.conversation.status","data":{"paymentDetails":"p"}}`,
		"data not object":    `{"eventType":"texttopay.conversation.status","data":[1]}`,
		"event not string":   `{"eventType":7,"data":{"paymentDetails":{"id":"p"}}}`,
		"empty object":       `{}`,
		"array":              `[]`,
		"malformed":          `{"eventType":`,
		"empty":              ``,
	}
	for name, body := range bodies {
		pub := &recordingPublisher{}
		res := newTestHandler(pub).HandleNotification(context.Background(), []byte(body))
		require.False(t, res.Processed, name)
		require.Empty(t, pub.calls, name)
	}
}

func TestHandleNotification_PublishFailureStillProcessed(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("pusher down")}
	res := newTestHandler(pub).HandleNotification(context.Background(), []byte(statusBody))
	require.True(t, res.Processed)
	require.Len(t, pub.calls, 1)
}

func TestParseStatusEvent_MissingDetailFieldsAreEmpty(t *testing.T) {
	evt, env := ParseStatusEvent([]byte(`{"eventType":"texttopay.conversation.status","data":{"paymentDetails":{}}}`))
	require.NotNil(t, evt)
	require.True(t, env.HasPaymentDetails)
	require.Empty(t, evt.PaymentID)
	require.Empty(t, evt.CustomerID)

	b, err := json.Marshal(evt.Update())
	require.NoError(t, err)
	require.Contains(t, string(b), `"eventType":"texttopay.conversation.status"`)
}

func TestParseStatusEvent_ReportsEnvelopeForIgnoredEvents(t *testing.T) {
	evt, env := ParseStatusEvent([]byte(`{"eventType":"texttopay.conversation.created","data":{"paymentDetails":{"id":"p"}}}`))
	require.Nil(t, evt)
	require.Equal(t, "texttopay.conversation.created", env.EventType)
	require.True(t, env.HasPaymentDetails)
}

func TestVerifySignature(t *testing.T) {
	body := []byte(statusBody)
	sig := Sign("s3cret", body)

	require.NoError(t, VerifySignature("s3cret", sig, body))
	require.NoError(t, VerifySignature("s3cret", "sha256="+sig, body))
	require.ErrorIs(t, VerifySignature("other", sig, body), ErrInvalidSignature)
	require.ErrorIs(t, VerifySignature("s3cret", sig, append(body, ' ')), ErrInvalidSignature)
	require.ErrorIs(t, VerifySignature("s3cret", "", body), ErrInvalidSignature)
	require.ErrorIs(t, VerifySignature("s3cret", "zz", body), ErrInvalidSignature)
}
