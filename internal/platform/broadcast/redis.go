package broadcast

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/fatflowers/texttopay/pkg/config"
)

// NewRedisClient connects and pings within five seconds.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// RedisPublisher publishes {event, data} envelopes with PUBLISH.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Driver() string { return "redis" }

func (p *RedisPublisher) Publish(ctx context.Context, channel, event string, payload any) error {
	raw, err := encodeEnvelope(event, payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", event, err)
	}
	return p.client.Publish(ctx, channel, raw).Err()
}

// RedisSubscriber turns a Redis SUBSCRIBE into a Subscription.
type RedisSubscriber struct {
	client *redis.Client
	log    *zap.SugaredLogger
}

func NewRedisSubscriber(client *redis.Client, log *zap.SugaredLogger) *RedisSubscriber {
	return &RedisSubscriber{client: client, log: log}
}

func (s *RedisSubscriber) Subscribe(ctx context.Context, channel string) (*Subscription, error) {
	ctx, cancel := context.WithCancel(ctx)
	pubsub := s.client.Subscribe(ctx, channel)

	// wait for the subscription confirmation
	if _, err := pubsub.Receive(ctx); err != nil {
		cancel()
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", channel, err)
	}

	msgs := make(chan Message, hubBuffer)
	signals := make(chan Signal, 2)
	signals <- SignalConnected

	go func() {
		defer func() {
			_ = pubsub.Close()
			signals <- SignalDisconnected
			close(signals)
			close(msgs)
		}()

		ch := pubsub.Channel()
		for {
			select {
			case m, ok := <-ch:
				if !ok {
					return
				}
				msg, err := decodeEnvelope(m.Channel, []byte(m.Payload))
				if err != nil {
					s.log.Warnw("broadcast_decode_failed", "channel", m.Channel, "error", err)
					continue
				}
				select {
				case msgs <- msg:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return &Subscription{Messages: msgs, Signals: signals, cancel: cancel}, nil
}
