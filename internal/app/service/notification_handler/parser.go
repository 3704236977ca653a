package notification_handler

import (
	"bytes"
	"encoding/json"

	"github.com/fatflowers/texttopay/pkg/types"
)

// EventTypePaymentStatus is the only provider event that is republished.
const EventTypePaymentStatus = "texttopay.conversation.status"

// StatusEvent is a recognised payment-status webhook.
type StatusEvent struct {
	EventType           string
	PaymentID           string
	Status              string
	LastUpdatedDateTime string
	CustomerID          string
	MerchantID          string
}

// Update converts the event into the broadcast payload.
func (e *StatusEvent) Update() types.PaymentUpdate {
	return types.PaymentUpdate{
		PaymentID:           e.PaymentID,
		CustomerID:          e.CustomerID,
		MerchantID:          e.MerchantID,
		Status:              e.Status,
		LastUpdatedDateTime: e.LastUpdatedDateTime,
		EventType:           e.EventType,
	}
}

type rawEnvelope struct {
	EventType json.RawMessage `json:"eventType"`
	Data      json.RawMessage `json:"data"`
}

type rawData struct {
	CustomerID     string          `json:"customerId"`
	MerchantID     string          `json:"merchantId"`
	PaymentDetails json.RawMessage `json:"paymentDetails"`
}

type rawPaymentDetails struct {
	ID                  string `json:"id"`
	Status              string `json:"status"`
	LastUpdatedDateTime string `json:"lastUpdatedDateTime"`
}

// Envelope is the loosely decoded outer shape, kept for logging even when
// the event is not recognised.
type Envelope struct {
	EventType         string
	HasPaymentDetails bool
}

// ParseStatusEvent decodes body in stages. It returns a non-nil event only
// when eventType is the payment-status type and data.paymentDetails is a
// JSON object; every other shape is reported as unrecognised.
func ParseStatusEvent(body []byte) (*StatusEvent, Envelope) {
	var env rawEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, Envelope{}
	}
	var out Envelope
	_ = json.Unmarshal(env.EventType, &out.EventType)

	var data rawData
	if !isObject(env.Data) || json.Unmarshal(env.Data, &data) != nil {
		return nil, out
	}
	out.HasPaymentDetails = isObject(data.PaymentDetails)
	if out.EventType != EventTypePaymentStatus || !out.HasPaymentDetails {
		return nil, out
	}

	var details rawPaymentDetails
	if err := json.Unmarshal(data.PaymentDetails, &details); err != nil {
		return nil, out
	}
	return &StatusEvent{
		EventType:           out.EventType,
		PaymentID:           details.ID,
		Status:              details.Status,
		LastUpdatedDateTime: details.LastUpdatedDateTime,
		CustomerID:          data.CustomerID,
		MerchantID:          data.MerchantID,
	}, out
}

func isObject(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && t[0] == '{'
}
