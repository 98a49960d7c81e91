package store

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// RedisStore keeps each record as a Redis hash.
type RedisStore struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*RedisStore)

// WithTTL sets the expiration of every record. Zero keeps records forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *RedisStore) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore connects to address.
func NewRedisStore(address, password string, db int, opts ...Option) *RedisStore {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewRedisStoreFromClient(rdb, opts...)
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *backend.Client, opts ...Option) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: "vyapyaar:session:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(sessionID, key string) string {
	return s.prefix + sessionID + ":" + key
}

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Put replaces the hash under key.
func (s *RedisStore) Put(ctx context.Context, sessionID, key string, record map[string]string) error {
	k := s.key(sessionID, key)

	values := make(map[string]any, len(record))
	for field, v := range record {
		values[field] = v
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, k)
	if len(values) > 0 {
		pipe.HSet(ctx, k, values)
		if s.ttl > 0 {
			pipe.Expire(ctx, k, s.ttl)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Get returns the hash under key.
func (s *RedisStore) Get(ctx context.Context, sessionID, key string) (map[string]string, error) {
	record, err := s.client.HGetAll(ctx, s.key(sessionID, key)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	// HGETALL on a missing key yields an empty hash rather than redis.Nil.
	if len(record) == 0 {
		return nil, ErrNotFound
	}
	return record, nil
}

// Delete removes the hash under key.
func (s *RedisStore) Delete(ctx context.Context, sessionID, key string) error {
	if err := s.client.Del(ctx, s.key(sessionID, key)).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// Close closes the redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
