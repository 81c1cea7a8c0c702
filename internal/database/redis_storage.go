package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultStoragePrefix  = "grean:limiter:"
	defaultStorageTimeout = 2 * time.Second
	resetScanCount        = 100
)

// RedisStorage adapts a Redis client to fiber.Storage so limiter counters are
// shared between instances. Keys are namespaced with a prefix.
type RedisStorage struct {
	client  redis.UniversalClient
	prefix  string
	timeout time.Duration
}

// NewRedisStorage builds a storage over client. An empty prefix selects the
// limiter default.
func NewRedisStorage(client redis.UniversalClient, prefix string) *RedisStorage {
	if prefix == "" {
		prefix = defaultStoragePrefix
	}
	return &RedisStorage{client: client, prefix: prefix, timeout: defaultStorageTimeout}
}

func (s *RedisStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}

	ctx, cancel := s.context()
	defer cancel()

	value, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis storage get %q: %w", key, err)
	}
	return value, nil
}

// Set stores value; a zero exp keeps the key until it is deleted.
func (s *RedisStorage) Set(key string, value []byte, exp time.Duration) error {
	if key == "" || len(value) == 0 {
		return nil
	}

	ctx, cancel := s.context()
	defer cancel()

	if err := s.client.Set(ctx, s.prefix+key, value, exp).Err(); err != nil {
		return fmt.Errorf("redis storage set %q: %w", key, err)
	}
	return nil
}

func (s *RedisStorage) Delete(key string) error {
	if key == "" {
		return nil
	}

	ctx, cancel := s.context()
	defer cancel()

	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis storage delete %q: %w", key, err)
	}
	return nil
}

// Reset removes every key under the storage prefix and leaves the rest of the
// database alone.
func (s *RedisStorage) Reset() error {
	ctx, cancel := s.context()
	defer cancel()

	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", resetScanCount).Result()
		if err != nil {
			return fmt.Errorf("redis storage reset: %w", err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis storage reset: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Close is a no-op; the client is owned by whoever created it.
func (s *RedisStorage) Close() error {
	return nil
}

func (s *RedisStorage) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}
