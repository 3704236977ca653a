package broadcast

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/texttopay/pkg/config"
	"github.com/fatflowers/texttopay/pkg/metrics"
)

// instrumented counts publish outcomes per driver.
type instrumented struct {
	Publisher
}

func (p instrumented) Publish(ctx context.Context, channel, event string, payload any) error {
	err := p.Publisher.Publish(ctx, channel, event, payload)
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.IncBroadcastPublish(p.Driver(), result)
	return err
}

// Instrument wraps p so every publish is counted.
func Instrument(p Publisher) Publisher {
	return instrumented{Publisher: p}
}

// NewPublisher builds the publisher selected by broadcast.driver.
func NewPublisher(lc fx.Lifecycle, cfg *config.Config, log *zap.SugaredLogger) (Publisher, error) {
	switch cfg.Broadcast.Driver {
	case config.BroadcastDriverPusher, "":
		p, err := NewPusherPublisher(cfg.Pusher)
		if err != nil {
			// keep serving; webhooks still get acknowledged and failures are logged
			log.Warnw("pusher not configured, broadcasts will fail", "error", err)
			return Instrument(unconfigured{err: err}), nil
		}
		return Instrument(p), nil
	case config.BroadcastDriverRedis:
		client, err := NewRedisClient(cfg.Broadcast.Redis)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{OnStop: func(context.Context) error { return client.Close() }})
		return Instrument(NewRedisPublisher(client)), nil
	case config.BroadcastDriverMemory:
		return Instrument(NewHub()), nil
	}
	return nil, fmt.Errorf("unknown broadcast driver %q", cfg.Broadcast.Driver)
}

// NewSubscriber builds the console-side subscriber for broadcast.driver.
func NewSubscriber(cfg *config.Config, log *zap.SugaredLogger) (Subscriber, func() error, error) {
	switch cfg.Broadcast.Driver {
	case config.BroadcastDriverRedis:
		client, err := NewRedisClient(cfg.Broadcast.Redis)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisSubscriber(client, log), client.Close, nil
	case config.BroadcastDriverPusher, "":
		return nil, nil, fmt.Errorf("pusher broadcasts are consumed by browser clients; set broadcast.driver=redis to watch from the console")
	}
	return nil, nil, fmt.Errorf("broadcast driver %q has no out-of-process subscriber", cfg.Broadcast.Driver)
}

type unconfigured struct{ err error }

func (u unconfigured) Driver() string { return "pusher" }

func (u unconfigured) Publish(context.Context, string, string, any) error { return u.err }

var Module = fx.Options(
	fx.Provide(NewPublisher),
)
