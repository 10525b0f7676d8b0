package events

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dialTimeout = 3 * time.Second

// Dial connects to the Redis server at url and checks it answers PING.
func Dial(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.DialTimeout = dialTimeout

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// RedisPublisher publishes events on a Pub/Sub channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher publishes on channel through client. Close closes client.
func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

// Publish encodes e and sends it to the channel.
func (p *RedisPublisher) Publish(ctx context.Context, e Event) error {
	data, err := e.Encode()
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("publish %s to %s: %w", e.Type, p.channel, err)
	}
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

// Relay subscribes to channel and hands every payload to deliver until ctx
// is cancelled or the subscription closes.
func Relay(ctx context.Context, client *redis.Client, channel string, deliver func([]byte)) error {
	pubsub := client.Subscribe(ctx, channel)
	defer pubsub.Close()

	// Wait for the subscription confirmation so callers know we are live.
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", channel, err)
	}

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			deliver([]byte(msg.Payload))
		}
	}
}
