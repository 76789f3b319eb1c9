package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/booking-admin/pkg/errors"
)

// RedisSessionRepository keeps each session as a Redis hash with a sliding expiry.
type RedisSessionRepository struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisSessionRepository constructs a Redis-backed session repository.
func NewRedisSessionRepository(client *redis.Client, prefix string, ttl time.Duration, logger *zap.Logger) *RedisSessionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSessionRepository{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

func (r *RedisSessionRepository) key(sid string) string {
	return r.prefix + sid
}

// Get reads one field of the session hash.
func (r *RedisSessionRepository) Get(ctx context.Context, sid, field string) (string, error) {
	value, err := r.client.HGet(ctx, r.key(sid), field).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", appErrors.ErrSessionMiss
		}
		return "", fmt.Errorf("redis hget %s: %w", field, err)
	}
	return value, nil
}

// Set writes the given fields and refreshes the session expiry in one transaction.
func (r *RedisSessionRepository) Set(ctx context.Context, sid string, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	key := r.key(sid)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, values)
		if r.ttl > 0 {
			pipe.Expire(ctx, key, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis hset session: %w", err)
	}
	return nil
}

// Delete removes the given fields; removing absent fields is not an error.
func (r *RedisSessionRepository) Delete(ctx context.Context, sid string, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.client.HDel(ctx, r.key(sid), fields...).Err(); err != nil {
		return fmt.Errorf("redis hdel session: %w", err)
	}
	return nil
}

func (r *RedisSessionRepository) claimKey(sid, name string) string {
	return r.key(sid) + ":claim:" + name
}

// Claim sets a marker key with SET NX so that only one request per session holds name at a time.
func (r *RedisSessionRepository) Claim(ctx context.Context, sid, name string, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, r.claimKey(sid, name), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx claim: %w", err)
	}
	return ok, nil
}

// Release drops the marker set by Claim.
func (r *RedisSessionRepository) Release(ctx context.Context, sid, name string) error {
	if err := r.client.Del(ctx, r.claimKey(sid, name)).Err(); err != nil {
		return fmt.Errorf("redis del claim: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (r *RedisSessionRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying Redis connection.
func (r *RedisSessionRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
