// internal/common/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"trip-suggestions/internal/common/logger"

	"github.com/redis/go-redis/v9"
)

// Redis stores JSON-encoded values under a common key prefix.
// Any Redis failure is logged and treated as a miss.
type Redis[T any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger logger.Logger
}

func NewRedis[T any](client *redis.Client, prefix string, ttl time.Duration, log logger.Logger) *Redis[T] {
	return &Redis[T]{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"cachePrefix": prefix}),
	}
}

func (r *Redis[T]) key(k string) string {
	return r.prefix + k
}

func (r *Redis[T]) Get(ctx context.Context, key string) (T, bool) {
	var zero T

	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("cache get failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return zero, false
	}

	var out T
	if err := json.Unmarshal(val, &out); err != nil {
		r.logger.Warn("cache entry undecodable, dropping", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		r.Delete(ctx, key)
		return zero, false
	}
	return out, true
}

func (r *Redis[T]) Set(ctx context.Context, key string, value T) {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Warn("cache encode failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return
	}
	if err := r.client.Set(ctx, r.key(key), data, r.ttl).Err(); err != nil {
		r.logger.Warn("cache set failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

func (r *Redis[T]) Delete(ctx context.Context, key string) {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		r.logger.Warn("cache delete failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// Clear removes every key under the prefix using SCAN so large keyspaces don't block Redis.
func (r *Redis[T]) Clear(ctx context.Context) {
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.prefix+"*", 100).Result()
		if err != nil {
			r.logger.Warn("cache scan failed", map[string]interface{}{
				"error": err.Error(),
			})
			return
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				r.logger.Warn("cache clear failed", map[string]interface{}{
					"error": err.Error(),
				})
				return
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}
