package broadcast

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

const hubBuffer = 64

// Hub is an in-process Publisher and Subscriber. It backs the memory driver
// and tests.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*hubSub]struct{}
}

type hubSub struct {
	msgs    chan Message
	signals chan Signal
	done    chan struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*hubSub]struct{})}
}

func (h *Hub) Driver() string { return "memory" }

// Publish delivers to every current subscriber of channel, blocking while a
// subscriber's buffer is full.
func (h *Hub) Publish(ctx context.Context, channel, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	msg := Message{Channel: channel, Event: event, Data: data}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs[channel] {
		msg.ReceivedAt = time.Now()
		select {
		case s.msgs <- msg:
		case <-s.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (h *Hub) Subscribe(ctx context.Context, channel string) (*Subscription, error) {
	ctx, cancel := context.WithCancel(ctx)
	s := &hubSub{
		msgs:    make(chan Message, hubBuffer),
		signals: make(chan Signal, 2),
		done:    make(chan struct{}),
	}

	h.mu.Lock()
	if h.subs[channel] == nil {
		h.subs[channel] = make(map[*hubSub]struct{})
	}
	h.subs[channel][s] = struct{}{}
	h.mu.Unlock()

	s.signals <- SignalConnected

	go func() {
		<-ctx.Done()
		close(s.done)

		h.mu.Lock()
		delete(h.subs[channel], s)
		if len(h.subs[channel]) == 0 {
			delete(h.subs, channel)
		}
		h.mu.Unlock()

		s.signals <- SignalDisconnected
		close(s.signals)
		close(s.msgs)
	}()

	return &Subscription{Messages: s.msgs, Signals: s.signals, cancel: cancel}, nil
}

// Subscribers reports how many live subscriptions channel has.
func (h *Hub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[channel])
}
