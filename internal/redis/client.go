// Package redis provides the Redis client used by the heartbeat publisher.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps go-redis with the small surface the publisher needs.
type Client struct {
	*redis.Client
}

// NewClient creates a Redis client from a redis:// URL.
func NewClient(rawURL string) (*Client, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("empty Redis URL")
	}
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}
	return &Client{Client: redis.NewClient(opts)}, nil
}

// SetWithTTL stores value under key with the given expiry.
func (c *Client) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.Set(ctx, key, value, ttl).Err()
}

// Healthy pings the server.
func (c *Client) Healthy(ctx context.Context) error {
	return c.Ping(ctx).Err()
}
