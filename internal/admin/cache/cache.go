// Package cache stores rendered GET-by-id responses in redis. Entries are
// dropped when an entity-change event for the same row arrives.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/testnest/admin/internal/admin/events"
)

const (
	keyPrefix    = "admin"
	evictTimeout = 2 * time.Second
)

type ResponseCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger *zap.Logger
}

func New(client redis.UniversalClient, ttl time.Duration, logger *zap.Logger) *ResponseCache {
	return &ResponseCache{
		client: client,
		ttl:    ttl,
		logger: logger.Named("response_cache"),
	}
}

// Key returns the redis key of one entity row, e.g. "admin:employee:<id>".
func Key(entity, id string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, entity, id)
}

// Get returns the cached body. A miss is not an error.
func (c *ResponseCache) Get(ctx context.Context, entity, id string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	body, err := c.client.Get(ctx, Key(entity, id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache read failed", zap.String("entity", entity), zap.Error(err))
		}
		return nil, false
	}
	return body, true
}

// Set stores body for the configured TTL. Failures are logged only.
func (c *ResponseCache) Set(ctx context.Context, entity, id string, body []byte) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, Key(entity, id), body, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.String("entity", entity), zap.Error(err))
	}
}

func (c *ResponseCache) Invalidate(ctx context.Context, entity, id string) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, Key(entity, id)).Err()
}

// HandleEvent is an events.Handler that evicts the changed row.
func (c *ResponseCache) HandleEvent(ctx context.Context, ev events.Event) error {
	if c == nil {
		return nil
	}
	if err := c.Invalidate(ctx, ev.Entity, ev.ID); err != nil {
		return fmt.Errorf("invalidate %s: %w", ev.Name(), err)
	}
	c.logger.Debug("cache entry invalidated", zap.String("event", ev.Name()), zap.String("id", ev.ID))
	return nil
}

// Evict drops the cached row of a change published on this instance, so the
// next read after the write sees it. Failures are logged only.
func (c *ResponseCache) Evict(ev events.Event) {
	if c == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), evictTimeout)
	defer cancel()
	if err := c.Invalidate(ctx, ev.Entity, ev.ID); err != nil {
		c.logger.Warn("cache eviction failed",
			zap.String("event", ev.Name()),
			zap.String("id", ev.ID),
			zap.Error(err),
		)
	}
}

func (c *ResponseCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *ResponseCache) Close() error {
	return c.client.Close()
}
