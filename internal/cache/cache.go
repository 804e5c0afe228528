// Package cache keeps the last fetched video list per profile.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"safetube/internal/domain"
	"safetube/internal/metrics"
)

// DefaultTTL is the staleness window of a cache entry.
const DefaultTTL = time.Hour

// EntryStore persists encoded entries. Load returns nil, nil on a miss.
type EntryStore interface {
	Load(ctx context.Context, profileID string) ([]byte, error)
	Save(ctx context.Context, profileID string, data []byte) error
	Delete(ctx context.Context, profileID string) error
}

type ProfileCache struct {
	store   EntryStore
	ttl     time.Duration
	metrics metrics.Recorder
	logger  *slog.Logger
	now     func() time.Time
}

func New(store EntryStore, ttl time.Duration, recorder metrics.Recorder, logger *slog.Logger) *ProfileCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ProfileCache{
		store:   store,
		ttl:     ttl,
		metrics: recorder,
		logger:  logger.With("component", "cache"),
		now:     time.Now,
	}
}

// Get returns the entry when it still has videos for the profile's current
// channels and is younger than the TTL. Orphaned videos are dropped before
// the age is checked.
func (c *ProfileCache) Get(ctx context.Context, profile *domain.Profile) (*domain.CacheEntry, bool) {
	entry, ok := c.load(ctx, profile)
	if ok && c.now().Sub(entry.FetchedAt) >= c.ttl {
		c.logger.Debug("cache entry stale", "profile_id", profile.ID, "age", c.now().Sub(entry.FetchedAt))
		ok = false
	}
	c.metrics.RecordCacheLookup(ok)
	if !ok {
		return nil, false
	}
	return entry, true
}

// GetStale is Get without the age check. It backs the "stale data shown"
// fallback when every channel fetch failed.
func (c *ProfileCache) GetStale(ctx context.Context, profile *domain.Profile) (*domain.CacheEntry, bool) {
	return c.load(ctx, profile)
}

// Put replaces the whole entry for the profile.
func (c *ProfileCache) Put(ctx context.Context, profileID string, videos []domain.Video) error {
	entry := domain.CacheEntry{
		ProfileID: profileID,
		FetchedAt: c.now(),
		Videos:    videos,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	if err := c.store.Save(ctx, profileID, data); err != nil {
		return fmt.Errorf("save cache entry: %w", err)
	}
	return nil
}

func (c *ProfileCache) Invalidate(ctx context.Context, profileID string) error {
	if err := c.store.Delete(ctx, profileID); err != nil {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}

func (c *ProfileCache) load(ctx context.Context, profile *domain.Profile) (*domain.CacheEntry, bool) {
	data, err := c.store.Load(ctx, profile.ID)
	if err != nil {
		c.logger.Warn("cache read failed", "profile_id", profile.ID, "error", err)
		return nil, false
	}
	if data == nil {
		return nil, false
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.logger.Warn("cache entry corrupt, ignoring", "profile_id", profile.ID, "error", err)
		return nil, false
	}

	channels := profile.ChannelIDs()
	valid := make([]domain.Video, 0, len(entry.Videos))
	for _, v := range entry.Videos {
		if _, ok := channels[v.ChannelID]; ok {
			valid = append(valid, v)
		}
	}

	if len(valid) == 0 {
		if len(entry.Videos) > 0 {
			c.logger.Info("cache entry orphaned by channel removal", "profile_id", profile.ID)
		}
		return nil, false
	}

	entry.Videos = valid
	return &entry, true
}
