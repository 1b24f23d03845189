// Package cache implements cache-aside reads over Redis.
//
// Callers pass the bypass flag parsed from the request's Cache-Control
// header: a bypassed read skips Redis, loads fresh data and refreshes the
// cached copy. Redis failures never fail a request; they are logged and the
// loader result is returned.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// KeyPrefix namespaces every key this API writes.
const KeyPrefix = "cf:"

// Cache wraps a Redis client with a default TTL. A nil *Cache is valid and
// always loads.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zerolog.Logger
}

// New returns a Cache. client may be nil to disable caching.
func New(client *redis.Client, ttl time.Duration, logger *zerolog.Logger) *Cache {
	return &Cache{client: client, ttl: ttl, logger: logger}
}

// Key joins parts into a namespaced key: Key("eedm", "buyers") is
// "cf:eedm:buyers".
func Key(parts ...string) string {
	key := KeyPrefix
	for i, p := range parts {
		if i > 0 {
			key += ":"
		}
		key += p
	}
	return key
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil
}

// GetOrLoad returns the cached value at key, or calls load and caches its
// result. bypass forces a load and overwrites the cached value.
func GetOrLoad[T any](ctx context.Context, c *Cache, key string, bypass bool, load func(context.Context) (T, error)) (T, error) {
	if !c.enabled() {
		return load(ctx)
	}

	if !bypass {
		raw, err := c.client.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var value T
			if err := json.Unmarshal(raw, &value); err == nil {
				return value, nil
			}
			c.logger.Warn().Str("key", key).Msg("discarding undecodable cache entry")
		case !errors.Is(err, redis.Nil):
			c.logger.Warn().Err(err).Str("key", key).Msg("cache read failed, loading from source")
		}
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	c.Set(ctx, key, value)
	return value, nil
}

// Set stores value at key with the default TTL. Failures are logged.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	if !c.enabled() {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache encode failed")
		return
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// Invalidate deletes keys.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if !c.enabled() || len(keys) == 0 {
		return nil
	}
	return errors.Wrap(c.client.Del(ctx, keys...).Err(), "cache invalidate")
}

// InvalidatePrefix deletes every key starting with prefix.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) error {
	if !c.enabled() {
		return nil
	}

	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return errors.Wrap(err, "cache scan")
	}

	return c.Invalidate(ctx, keys...)
}
