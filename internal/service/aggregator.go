package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"safetube/internal/domain"
	"safetube/internal/interleave"
	"safetube/internal/metrics"
)

type Config struct {
	MaxConcurrent int
	// FetchTimeout bounds a shared fan-out, which outlives the request that started it.
	FetchTimeout time.Duration
}

// Aggregator fans out over a profile's channels with the strategy selected
// by the available credentials and merges the results into one feed.
type Aggregator struct {
	profiles  ProfileStore
	creds     CredentialProvider
	api       Fetcher
	feed      Fetcher
	thumbs    ThumbnailResolver
	cache     VideoCache
	publisher EventPublisher
	recorder  metrics.Recorder
	logger    *slog.Logger
	cfg       Config

	inflight singleflight.Group
	pages    *pageTokens
	now      func() time.Time
}

// NewAggregator wires the orchestrator. thumbs and publisher may be nil.
func NewAggregator(
	profiles ProfileStore,
	creds CredentialProvider,
	api Fetcher,
	feed Fetcher,
	thumbs ThumbnailResolver,
	cache VideoCache,
	publisher EventPublisher,
	recorder metrics.Recorder,
	logger *slog.Logger,
	cfg Config,
) *Aggregator {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 8
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 2 * time.Minute
	}
	return &Aggregator{
		profiles:  profiles,
		creds:     creds,
		api:       api,
		feed:      feed,
		thumbs:    thumbs,
		cache:     cache,
		publisher: publisher,
		recorder:  recorder,
		logger:    logger.With("component", "aggregator"),
		cfg:       cfg,
		pages:     newPageTokens(),
		now:       time.Now,
	}
}

func (a *Aggregator) strategy() Fetcher {
	if a.creds.APIKey() != "" {
		return a.api
	}
	return a.feed
}

// FetchAllForProfile returns the merged newest-first feed for a profile.
// The profile is re-read on every call so channel edits take effect
// immediately. Per-channel failures never fail the call.
func (a *Aggregator) FetchAllForProfile(ctx context.Context, profileID string, forceRefresh bool, onProgress domain.ProgressFunc) (*domain.Feed, error) {
	profile, err := a.profiles.Get(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	fetcher := a.strategy()

	if len(profile.Channels) == 0 {
		return &domain.Feed{
			ProfileID: profile.ID,
			Videos:    []domain.Video{},
			Status:    domain.StatusNoChannels,
			Source:    fetcher.Source(),
			FetchedAt: a.now().UTC(),
		}, nil
	}

	if !forceRefresh {
		if entry, ok := a.cache.Get(ctx, profile); ok {
			a.logger.Debug("serving cached feed",
				"profile_id", profile.ID,
				"videos", len(entry.Videos),
				"fetched_at", entry.FetchedAt,
			)
			return &domain.Feed{
				ProfileID: profile.ID,
				Videos:    entry.Videos,
				Status:    domain.StatusCached,
				Source:    fetcher.Source(),
				FetchedAt: entry.FetchedAt,
			}, nil
		}
	}

	// The fan-out is shared by every caller of the same profile, so it runs
	// detached from the caller that started it. Each caller only stops waiting
	// when its own context ends.
	progress := &progressRelay{fn: onProgress}
	results := a.inflight.DoChan(profile.ID, func() (any, error) {
		return a.refresh(context.WithoutCancel(ctx), profile, fetcher, progress.forward)
	})

	select {
	case <-ctx.Done():
		progress.detach()
		return nil, ctx.Err()
	case res := <-results:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			a.logger.Debug("joined in-flight fetch", "profile_id", profile.ID)
		}
		feed := *res.Val.(*domain.Feed)
		return &feed, nil
	}
}

// progressRelay stops forwarding once its caller has gone away.
type progressRelay struct {
	mu       sync.Mutex
	fn       domain.ProgressFunc
	detached bool
}

func (r *progressRelay) forward(p domain.Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fn != nil && !r.detached {
		r.fn(p)
	}
}

func (r *progressRelay) detach() {
	r.mu.Lock()
	r.detached = true
	r.mu.Unlock()
}

func (a *Aggregator) refresh(ctx context.Context, profile *domain.Profile, fetcher Fetcher, onProgress domain.ProgressFunc) (*domain.Feed, error) {
	start := a.now()
	source := fetcher.Source()
	total := len(profile.Channels)

	a.logger.Info("starting fetch",
		"profile_id", profile.ID,
		"source", source,
		"channels", total,
	)

	results := make([]*domain.ChannelResult, total)

	fanCtx, cancel := context.WithTimeout(ctx, a.cfg.FetchTimeout)
	defer cancel()

	var (
		mu        sync.Mutex
		completed int
	)

	var g errgroup.Group
	g.SetLimit(a.cfg.MaxConcurrent)

	for i, ch := range profile.Channels {
		g.Go(func() error {
			res := a.fetchChannel(fanCtx, fetcher, ch)
			results[i] = res

			// completion order and the callback stay in step; publishing does not
			mu.Lock()
			completed++
			p := domain.Progress{
				ProfileID:   profile.ID,
				ChannelID:   ch.ID,
				ChannelName: ch.Name,
				Completed:   completed,
				Total:       total,
				Videos:      videoCount(res),
				Failed:      res == nil,
			}
			if onProgress != nil {
				onProgress(p)
			}
			mu.Unlock()

			a.publish(fanCtx, p)
			return nil
		})
	}
	_ = g.Wait()

	if err := fanCtx.Err(); err != nil {
		a.logger.Warn("fetch timed out, unfinished channels count as failed",
			"profile_id", profile.ID,
			"timeout", a.cfg.FetchTimeout,
		)
	}

	if profile.IsCurrent && !a.stillCurrent(ctx, profile.ID) {
		a.logger.Info("profile switched during fetch, discarding results", "profile_id", profile.ID)
		return nil, domain.ErrProfileSwitched
	}

	feed := &domain.Feed{
		ProfileID: profile.ID,
		Videos:    []domain.Video{},
		Source:    source,
		FetchedAt: a.now().UTC(),
	}
	for _, res := range results {
		if res == nil {
			feed.Failed++
			continue
		}
		feed.Videos = append(feed.Videos, res.Videos...)
		feed.Filtered += res.Filtered
		feed.Degraded = feed.Degraded || res.Degraded
	}
	interleave.SortNewestFirst(feed.Videos)

	switch {
	case feed.Failed == total:
		a.fallback(ctx, profile, feed)
	case len(feed.Videos) == 0 && source == domain.SourceFeed:
		feed.Videos = DemoVideos(feed.FetchedAt)
		feed.Status = domain.StatusDemo
	default:
		feed.Status = domain.StatusFresh
		if err := a.cache.Put(ctx, profile.ID, feed.Videos); err != nil {
			a.logger.Warn("failed to write cache", "profile_id", profile.ID, "error", err)
		}
		if source == domain.SourceAPI {
			a.rememberPages(profile, results)
			a.persistUploads(ctx, profile, results)
			a.backfillThumbnails(ctx, profile)
		}
	}

	elapsed := a.now().Sub(start)
	a.recorder.RecordFetchLatency(string(source), elapsed)

	a.logger.Info("fetch completed",
		"profile_id", profile.ID,
		"source", source,
		"status", feed.Status,
		"channels", total,
		"failed", feed.Failed,
		"videos", len(feed.Videos),
		"filtered", feed.Filtered,
		"degraded", feed.Degraded,
		"duration", elapsed,
	)

	return feed, nil
}

func (a *Aggregator) fetchChannel(ctx context.Context, fetcher Fetcher, ch domain.Channel) *domain.ChannelResult {
	res, err := fetcher.FetchChannel(ctx, ch)
	a.recorder.RecordChannelFetch(string(fetcher.Source()), err == nil)
	if err != nil {
		a.logger.Warn("channel fetch failed",
			"channel_id", ch.ID,
			"channel_name", ch.Name,
			"error", err,
		)
		return nil
	}
	return res
}

// fallback handles a fan-out where every channel failed: a stale cache
// entry beats the demo set, which beats an empty list.
func (a *Aggregator) fallback(ctx context.Context, profile *domain.Profile, feed *domain.Feed) {
	if entry, ok := a.cache.GetStale(ctx, profile); ok {
		feed.Videos = entry.Videos
		feed.FetchedAt = entry.FetchedAt
		feed.Status = domain.StatusStale
		return
	}
	if feed.Source == domain.SourceFeed {
		feed.Videos = DemoVideos(feed.FetchedAt)
		feed.Status = domain.StatusDemo
		return
	}
	feed.Status = domain.StatusUnavailable
}

func (a *Aggregator) publish(ctx context.Context, p domain.Progress) {
	if a.publisher == nil {
		return
	}
	if err := a.publisher.PublishProgress(ctx, p); err != nil {
		a.logger.Debug("failed to publish progress", "profile_id", p.ProfileID, "error", err)
	}
}

func (a *Aggregator) stillCurrent(ctx context.Context, profileID string) bool {
	current, err := a.profiles.Current(ctx)
	if err != nil {
		a.logger.Warn("failed to re-check current profile", "profile_id", profileID, "error", err)
		return true
	}
	return current.ID == profileID
}

func (a *Aggregator) rememberPages(profile *domain.Profile, results []*domain.ChannelResult) {
	for i, res := range results {
		if res == nil {
			continue
		}
		a.pages.set(profile.ID, profile.Channels[i].ID, res.NextPageToken)
	}
}

func (a *Aggregator) persistUploads(ctx context.Context, profile *domain.Profile, results []*domain.ChannelResult) {
	for i, res := range results {
		if res == nil || res.UploadsPlaylistID == "" || res.UploadsPlaylistID == profile.Channels[i].UploadsPlaylistID {
			continue
		}
		if err := a.profiles.SetUploadsPlaylistID(ctx, profile.ID, res.ChannelID, res.UploadsPlaylistID); err != nil {
			a.logger.Warn("failed to persist uploads playlist",
				"profile_id", profile.ID,
				"channel_id", res.ChannelID,
				"error", err,
			)
		}
	}
}

// backfillThumbnails resolves icons for channels added without one.
func (a *Aggregator) backfillThumbnails(ctx context.Context, profile *domain.Profile) {
	if a.thumbs == nil {
		return
	}

	var missing []string
	for _, ch := range profile.Channels {
		if ch.ThumbnailURL == "" {
			missing = append(missing, ch.ID)
		}
	}
	if len(missing) == 0 {
		return
	}

	icons, err := a.thumbs.ChannelThumbnails(ctx, missing)
	if err != nil {
		a.logger.Warn("failed to resolve channel icons", "profile_id", profile.ID, "error", err)
	}

	for id, url := range icons {
		if err := a.profiles.SetChannelThumbnail(ctx, profile.ID, id, url); err != nil {
			a.logger.Warn("failed to persist channel icon",
				"profile_id", profile.ID,
				"channel_id", id,
				"error", err,
			)
		}
	}
}

// LoadMoreForChannel returns the next batch for one channel, continuing
// after the pages already consumed. Only the API strategy can paginate.
func (a *Aggregator) LoadMoreForChannel(ctx context.Context, profileID, channelID string) ([]domain.Video, error) {
	fetcher := a.strategy()
	if fetcher.Source() != domain.SourceAPI {
		return nil, domain.ErrLoadMoreUnsupported
	}

	profile, err := a.profiles.Get(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	ch, ok := profile.Channel(channelID)
	if !ok {
		return nil, domain.ErrChannelNotFound
	}

	res, err := fetcher.LoadMore(ctx, ch, a.pages.get(profile.ID, ch.ID))
	if err != nil {
		return nil, fmt.Errorf("load more: %w", err)
	}
	a.pages.set(profile.ID, ch.ID, res.NextPageToken)

	if res.UploadsPlaylistID != "" && res.UploadsPlaylistID != ch.UploadsPlaylistID {
		if err := a.profiles.SetUploadsPlaylistID(ctx, profile.ID, ch.ID, res.UploadsPlaylistID); err != nil {
			a.logger.Warn("failed to persist uploads playlist", "channel_id", ch.ID, "error", err)
		}
	}

	a.logger.Debug("loaded more videos",
		"profile_id", profile.ID,
		"channel_id", ch.ID,
		"videos", len(res.Videos),
		"exhausted", res.NextPageToken == "",
	)

	return interleave.SortNewestFirst(res.Videos), nil
}

// Refresh re-fetches the current profile, bypassing the cache.
func (a *Aggregator) Refresh(ctx context.Context) (*domain.FetchStats, error) {
	start := a.now()

	current, err := a.profiles.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("get current profile: %w", err)
	}

	feed, err := a.FetchAllForProfile(ctx, current.ID, true, nil)
	if errors.Is(err, domain.ErrProfileSwitched) {
		return &domain.FetchStats{ProfileID: current.ID, Duration: a.now().Sub(start)}, nil
	}
	if err != nil {
		return nil, err
	}

	return &domain.FetchStats{
		ProfileID: current.ID,
		Source:    feed.Source,
		Channels:  len(current.Channels),
		Failed:    feed.Failed,
		Videos:    len(feed.Videos),
		Filtered:  feed.Filtered,
		Duration:  a.now().Sub(start),
	}, nil
}

func videoCount(res *domain.ChannelResult) int {
	if res == nil {
		return 0
	}
	return len(res.Videos)
}
