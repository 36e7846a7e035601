// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"

	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/metrics"
)

const redisPublishTimeout = 2 * time.Second

// RedisBridge publishes events through a Redis channel so that every
// instance behind a load balancer delivers them to its own hub. Each
// instance, the publisher included, receives its events back via Serve.
type RedisBridge struct {
	client  *redis.Client
	channel string
	hub     *Hub
}

// NewRedisBridge connects hub to a Redis pub/sub channel
func NewRedisBridge(client *redis.Client, channel string, hub *Hub) *RedisBridge {
	return &RedisBridge{client: client, channel: channel, hub: hub}
}

// Publish sends the event to Redis in the background. If Redis rejects it,
// the event is delivered to the local hub only.
func (b *RedisBridge) Publish(event string, payload any) {
	data, err := json.Marshal(Message{Type: event, Data: payload})
	if err != nil {
		slog.Error("failed to encode event", "event", event, "error", err)
		return
	}
	metrics.EventsPublished.WithLabelValues(event).Inc()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), redisPublishTimeout)
		defer cancel()

		if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
			metrics.EventsDropped.WithLabelValues("redis_error").Inc()
			slog.Warn("redis publish failed, delivering locally", "event", event, "error", err)
			b.hub.Deliver(data)
		}
	}()
}

// Serve relays messages from the Redis channel to the local hub until ctx
// is done. A subscription failure is returned so the supervisor can retry.
func (b *RedisBridge) Serve(ctx context.Context) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", b.channel, err)
	}
	slog.Info("subscribed to redis event channel", "channel", b.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return fmt.Errorf("redis channel %s closed", b.channel)
			}
			b.hub.Deliver([]byte(msg.Payload))
		}
	}
}

func (b *RedisBridge) String() string {
	return "redis-bridge"
}
