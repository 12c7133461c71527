package memo

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOption configures the Redis store.
type RedisOption func(*Redis)

// WithPrefix namespaces keys as "{prefix}:{key}".
// Default: "nbspace:memo".
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// WithRedisTTL sets the expiration of stored results. Zero means no expiration.
// Default: 24 hours.
func WithRedisTTL(d time.Duration) RedisOption {
	return func(r *Redis) {
		r.ttl = max(d, 0)
	}
}

// Redis stores results as JSON in Redis.
type Redis struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedis creates a Redis-backed store. The caller owns the client.
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *Redis {
	r := &Redis{
		client: client,
		prefix: "nbspace:memo",
		ttl:    24 * time.Hour,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns ErrNotFound when the key is absent.
func (r *Redis) Get(ctx context.Context, key string) (Result, error) {
	data, err := r.client.Get(ctx, r.prefixedKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Result{}, ErrNotFound
		}
		return Result{}, err
	}

	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return Result{}, errors.Join(ErrUnmarshal, err)
	}
	return res, nil
}

// Set stores the result with the configured TTL.
func (r *Redis) Set(ctx context.Context, key string, res Result) error {
	data, err := json.Marshal(res)
	if err != nil {
		return errors.Join(ErrMarshal, err)
	}
	return r.client.Set(ctx, r.prefixedKey(key), data, r.ttl).Err()
}

// Ping checks the connection; it doubles as a health check.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) prefixedKey(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

// OpenRedis connects to a redis:// or rediss:// URL, retrying with linear
// backoff until the server answers PING.
func OpenRedis(ctx context.Context, url string, attempts int, interval time.Duration) (redis.UniversalClient, error) {
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrInvalidRedisURL
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrInvalidRedisURL, err)
	}

	for i := range max(attempts, 1) {
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrConnectionFailed, ctx.Err())
		case <-time.After(time.Duration(i+1) * interval):
		}
	}

	return nil, ErrConnectionFailed
}

var _ Store = (*Redis)(nil)
