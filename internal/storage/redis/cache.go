package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "safetube:cache:"

// CacheStore keeps encoded cache entries in Redis. A store without a client
// behaves as an always-empty cache.
type CacheStore struct {
	rdb       *redis.Client
	retention time.Duration
}

// Connect dials Redis. An empty URL or an unreachable server disables the
// store rather than failing startup.
func Connect(ctx context.Context, url string, retention time.Duration, logger *slog.Logger) *CacheStore {
	if url == "" {
		logger.Info("redis url not configured, video cache disabled")
		return &CacheStore{}
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		logger.Warn("invalid redis url, video cache disabled", "error", err)
		return &CacheStore{}
	}

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, video cache disabled", "error", err)
		_ = rdb.Close()
		return &CacheStore{}
	}

	logger.Info("connected to redis", "addr", opts.Addr)
	return NewCacheStore(rdb, retention)
}

func NewCacheStore(rdb *redis.Client, retention time.Duration) *CacheStore {
	return &CacheStore{rdb: rdb, retention: retention}
}

func (s *CacheStore) Enabled() bool {
	return s.rdb != nil
}

func (s *CacheStore) Load(ctx context.Context, profileID string) ([]byte, error) {
	if s.rdb == nil {
		return nil, nil
	}

	data, err := s.rdb.Get(ctx, key(profileID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key(profileID), err)
	}
	return data, nil
}

// Save keeps entries for the retention period, well past the staleness
// window, so a stale list can still be served when every fetch fails.
func (s *CacheStore) Save(ctx context.Context, profileID string, data []byte) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Set(ctx, key(profileID), data, s.retention).Err()
}

func (s *CacheStore) Delete(ctx context.Context, profileID string) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, key(profileID)).Err()
}

func (s *CacheStore) Close() error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}

func key(profileID string) string {
	return keyPrefix + profileID
}
