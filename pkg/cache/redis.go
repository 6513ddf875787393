package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces fiberroute keys in a shared redis.
const DefaultRedisPrefix = "fiberroute:"

// RedisCache is a cache shared by API server replicas. Transient connection
// failures are retried with [RetryWithBackoff].
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache wraps an existing client. Keys are stored under prefix.
func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

// NewRedisCacheFromURL connects to a redis URL such as
// "redis://localhost:6379/0". The connection is opened lazily.
func NewRedisCacheFromURL(url string) (*RedisCache, error) {
	if url == "" {
		return nil, errors.New("redis cache: empty url")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return NewRedisCache(redis.NewClient(opts), DefaultRedisPrefix), nil
}

// Ping checks the connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.do(ctx, func() error { return c.client.Ping(ctx).Err() })
}

// Get retrieves a value.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := c.do(ctx, func() error {
		var err error
		data, err = c.client.Get(ctx, c.key(key)).Bytes()
		return err
	})
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value. Redis expires the key after ttl.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.do(ctx, func() error { return c.client.Set(ctx, c.key(key), data, ttl).Err() })
}

// Delete removes a value.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.do(ctx, func() error { return c.client.Del(ctx, c.key(key)).Err() })
}

// Close closes the client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) key(k string) string { return c.prefix + k }

// do runs op, retrying network failures. redis.Nil is a result, not a failure.
func (c *RedisCache) do(ctx context.Context, op func() error) error {
	return RetryWithBackoff(ctx, func() error {
		err := op()
		if err == nil || errors.Is(err, redis.Nil) {
			return err
		}
		if isNetworkError(err) {
			return Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
		}
		return err
	})
}

// isNetworkError reports failures that are not redis replies.
func isNetworkError(err error) bool {
	var reply redis.Error
	if errors.As(err, &reply) {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

var _ Cache = (*RedisCache)(nil)
