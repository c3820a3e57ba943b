package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lalith-99/worktrack/internal/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const channelPrefix = "worktrack:events:"

// Channel is the Redis channel carrying the events of one workspace.
func Channel(workspaceID string) string {
	return channelPrefix + workspaceID
}

// LocalBroker hands events straight to the hub. Used when no Redis is
// configured.
type LocalBroker struct {
	hub *Hub
}

func NewLocalBroker(hub *Hub) *LocalBroker {
	return &LocalBroker{hub: hub}
}

func (b *LocalBroker) Publish(_ context.Context, ev models.Event) error {
	b.hub.Deliver(ev)
	return nil
}

// RedisBroker publishes events to Redis and, from Run, feeds every event seen
// on Redis into the local hub. Each instance hears its own publishes back, so
// Publish never touches the hub directly.
type RedisBroker struct {
	client *redis.Client
	hub    *Hub
	logger *zap.Logger
}

func NewRedisBroker(client *redis.Client, hub *Hub, logger *zap.Logger) *RedisBroker {
	return &RedisBroker{client: client, hub: hub, logger: logger}
}

func (b *RedisBroker) Publish(ctx context.Context, ev models.Event) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := b.client.Publish(ctx, Channel(ev.WorkspaceID), raw).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// Run relays events from Redis to the hub until ctx is done.
func (b *RedisBroker) Run(ctx context.Context) error {
	sub := b.client.PSubscribe(ctx, channelPrefix+"*")
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("redis subscribe: %w", err)
	}
	b.logger.Info("subscribed to workspace events", zap.String("pattern", channelPrefix+"*"))

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var ev models.Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				b.logger.Warn("ignoring malformed event",
					zap.String("channel", msg.Channel),
					zap.Error(err),
				)
				continue
			}
			b.hub.Deliver(ev)
		}
	}
}

// NewRedisClient parses a redis:// URL and checks the server answers.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
