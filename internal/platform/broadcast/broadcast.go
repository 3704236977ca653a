// Package broadcast fans payment updates out to subscribed consoles. A
// Publisher is fire-and-forget; a Subscriber turns a channel subscription into
// Go channels a consumer can range over.
package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var ErrClosed = errors.New("broadcast: closed")

// Publisher sends one event on a channel. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(ctx context.Context, channel, event string, payload any) error
	Driver() string
}

// Subscriber opens a subscription to a single channel. The subscription ends
// when ctx is done or Close is called.
type Subscriber interface {
	Subscribe(ctx context.Context, channel string) (*Subscription, error)
}

// Message is one delivered event.
type Message struct {
	Channel    string          `json:"channel"`
	Event      string          `json:"event"`
	Data       json.RawMessage `json:"data"`
	ReceivedAt time.Time       `json:"-"`
}

type Signal int

const (
	SignalConnected Signal = iota + 1
	SignalDisconnected
)

func (s Signal) String() string {
	switch s {
	case SignalConnected:
		return "connected"
	case SignalDisconnected:
		return "disconnected"
	}
	return "unknown"
}

// Subscription exposes delivered messages and connection signals. Both
// channels are closed once the subscription ends, after a final
// SignalDisconnected.
type Subscription struct {
	Messages <-chan Message
	Signals  <-chan Signal
	cancel   context.CancelFunc
}

// Close ends the subscription. It is safe to call more than once.
func (s *Subscription) Close() {
	if s != nil && s.cancel != nil {
		s.cancel()
	}
}

// envelope is the wire form for drivers without a native event name.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func encodeEnvelope(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Event: event, Data: data})
}

func decodeEnvelope(channel string, raw []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Message{}, err
	}
	return Message{Channel: channel, Event: env.Event, Data: env.Data, ReceivedAt: time.Now()}, nil
}
