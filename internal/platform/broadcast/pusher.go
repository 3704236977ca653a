package broadcast

import (
	"context"
	"fmt"

	"github.com/pusher/pusher-http-go/v5"

	"github.com/fatflowers/texttopay/pkg/config"
)

// trigger is the slice of the Pusher client we depend on.
type trigger interface {
	Trigger(channel string, eventName string, data interface{}) error
}

// PusherPublisher triggers events through the hosted Pusher Channels API.
type PusherPublisher struct {
	client trigger
}

func NewPusherPublisher(cfg config.PusherConfig) (*PusherPublisher, error) {
	if !cfg.Complete() {
		return nil, fmt.Errorf("pusher: app id, key and secret are required")
	}
	return &PusherPublisher{client: &pusher.Client{
		AppID:   cfg.AppID,
		Key:     cfg.Key,
		Secret:  cfg.Secret,
		Cluster: cfg.Cluster,
		Secure:  true,
	}}, nil
}

func (p *PusherPublisher) Driver() string { return "pusher" }

// Publish ignores ctx: the Pusher client has no context-aware API.
func (p *PusherPublisher) Publish(_ context.Context, channel, event string, payload any) error {
	if err := p.client.Trigger(channel, event, payload); err != nil {
		return fmt.Errorf("pusher trigger %s/%s: %w", channel, event, err)
	}
	return nil
}
