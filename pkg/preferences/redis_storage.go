package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps preference records as JSON documents in Redis, one key
// per user. It serves as a low-latency store in front of (or instead of) the
// relational one; a cache miss surfaces as ErrPreferenceNotFound, which the
// service layer resolves to fail-open defaults.
type RedisStorage struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

// RedisStorageOption configures a RedisStorage.
type RedisStorageOption func(*RedisStorage)

// WithKeyPrefix overrides the default "notify:pref:" key prefix.
func WithKeyPrefix(prefix string) RedisStorageOption {
	return func(s *RedisStorage) {
		if prefix != "" {
			s.keyPrefix = prefix
		}
	}
}

// WithTTL sets an expiry on stored records. Zero means no expiry.
func WithTTL(ttl time.Duration) RedisStorageOption {
	return func(s *RedisStorage) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewRedisStorage creates a Redis-backed preference storage.
func NewRedisStorage(client redis.UniversalClient, opts ...RedisStorageOption) *RedisStorage {
	s := &RedisStorage{
		client:    client,
		keyPrefix: "notify:pref:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStorage) key(userID string) string {
	return s.keyPrefix + userID
}

func (s *RedisStorage) Get(ctx context.Context, userID string) (*Preference, error) {
	data, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrPreferenceNotFound
		}
		return nil, fmt.Errorf("failed to read preference record: %w", err)
	}

	var pref Preference
	if err := json.Unmarshal(data, &pref); err != nil {
		return nil, fmt.Errorf("failed to decode preference record: %w", err)
	}
	return &pref, nil
}

func (s *RedisStorage) Upsert(ctx context.Context, pref Preference) error {
	if pref.UserID == "" {
		return ErrUserIDRequired
	}

	data, err := json.Marshal(pref)
	if err != nil {
		return fmt.Errorf("failed to encode preference record: %w", err)
	}

	if err := s.client.Set(ctx, s.key(pref.UserID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store preference record: %w", err)
	}
	return nil
}

func (s *RedisStorage) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete preference record: %w", err)
	}
	return nil
}
