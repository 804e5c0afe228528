// Package youtube fetches channel uploads through the YouTube Data API.
package youtube

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
	yt "google.golang.org/api/youtube/v3"

	"safetube/internal/domain"
	"safetube/internal/metrics"
	"safetube/internal/shorts"
)

const (
	SourceName = "api"

	thumbnailFallback = "https://i.ytimg.com/vi/%s/mqdefault.jpg"
)

// Config holds Data API fetcher configuration.
type Config struct {
	BaseURL           string
	PageSize          int
	MinLongVideos     int
	MaxPages          int
	RequestsPerSecond float64
	Timeout           time.Duration
	MaxAttempts       int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	ShortThreshold    int
}

type Credentials interface {
	APIKey() string
}

type FilterSettings interface {
	FilterShorts() bool
}

// Fetcher implements the API strategy of the aggregator.
type Fetcher struct {
	cfg        Config
	creds      Credentials
	filter     FilterSettings
	classifier shorts.Classifier
	limiter    *rate.Limiter
	recorder   metrics.Recorder
	logger     *slog.Logger

	mu     sync.Mutex
	svc    *yt.Service
	svcKey string
}

func New(cfg Config, creds Credentials, filter FilterSettings, recorder metrics.Recorder, logger *slog.Logger) *Fetcher {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}
	if cfg.MinLongVideos <= 0 {
		cfg.MinLongVideos = 5
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 3
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Fetcher{
		cfg:        cfg,
		creds:      creds,
		filter:     filter,
		classifier: shorts.NewClassifier(cfg.ShortThreshold),
		limiter:    rate.NewLimiter(limit, 1),
		recorder:   recorder,
		logger:     logger.With("source", SourceName),
	}
}

func (f *Fetcher) Source() domain.SourceKind {
	return domain.SourceAPI
}

// FetchChannel returns the first batch of long-form uploads for ch. The
// uploads playlist id is resolved when ch does not carry one yet.
func (f *Fetcher) FetchChannel(ctx context.Context, ch domain.Channel) (*domain.ChannelResult, error) {
	svc, err := f.service(ctx)
	if err != nil {
		return nil, err
	}

	playlistID := ch.UploadsPlaylistID
	if playlistID == "" {
		playlistID, err = f.resolveUploads(ctx, svc, ch.ID)
		if err != nil {
			return nil, fmt.Errorf("resolve uploads playlist: %w", err)
		}
	}

	return f.collect(ctx, svc, ch, playlistID, "")
}

// LoadMore continues from pageToken, the NextPageToken of the previous
// result for ch. An empty token means the channel is exhausted and yields an
// empty result.
func (f *Fetcher) LoadMore(ctx context.Context, ch domain.Channel, pageToken string) (*domain.ChannelResult, error) {
	if pageToken == "" {
		return &domain.ChannelResult{ChannelID: ch.ID, UploadsPlaylistID: ch.UploadsPlaylistID}, nil
	}

	svc, err := f.service(ctx)
	if err != nil {
		return nil, err
	}

	playlistID := ch.UploadsPlaylistID
	if playlistID == "" {
		playlistID, err = f.resolveUploads(ctx, svc, ch.ID)
		if err != nil {
			return nil, fmt.Errorf("resolve uploads playlist: %w", err)
		}
	}

	return f.collect(ctx, svc, ch, playlistID, pageToken)
}

// collect pages through the uploads playlist until enough long-form videos
// are kept, the page cap is hit, or the playlist ends.
func (f *Fetcher) collect(ctx context.Context, svc *yt.Service, ch domain.Channel, playlistID, token string) (*domain.ChannelResult, error) {
	result := &domain.ChannelResult{
		ChannelID:         ch.ID,
		UploadsPlaylistID: playlistID,
		Videos:            []domain.Video{},
	}

	for {
		page, err := call(ctx, f, "list playlist items", func(ctx context.Context) (*yt.PlaylistItemListResponse, error) {
			req := svc.PlaylistItems.List([]string{"snippet", "contentDetails"}).
				PlaylistId(playlistID).
				MaxResults(int64(f.cfg.PageSize)).
				Context(ctx)
			if token != "" {
				req = req.PageToken(token)
			}
			return req.Do()
		})
		if err != nil {
			if result.Pages == 0 {
				return nil, fmt.Errorf("fetch page %d: %w", result.Pages, err)
			}
			f.logger.Warn("stopping pagination early",
				"channel_id", ch.ID,
				"pages", result.Pages,
				"error", err,
			)
			break
		}
		result.Pages++

		videos := f.transform(page.Items, ch)
		filterEnabled := f.filter.FilterShorts()

		if filterEnabled {
			kept, filtered, degraded := f.filterPage(ctx, svc, ch.ID, videos)
			videos = kept
			result.Filtered += filtered
			result.Degraded = result.Degraded || degraded
		}
		result.Videos = append(result.Videos, videos...)

		f.logger.Debug("fetched page",
			"channel_id", ch.ID,
			"page", result.Pages,
			"items", len(page.Items),
			"kept", len(videos),
			"total", len(result.Videos),
		)

		token = page.NextPageToken
		if !filterEnabled || token == "" || len(result.Videos) >= f.cfg.MinLongVideos || result.Pages >= f.cfg.MaxPages {
			break
		}
	}

	result.NextPageToken = token
	f.recorder.RecordShortsFiltered(SourceName, result.Filtered)
	return result, nil
}

// filterPage looks up durations for one page and drops short-form videos.
// A failed lookup lets the whole page through and marks it degraded.
func (f *Fetcher) filterPage(ctx context.Context, svc *yt.Service, channelID string, videos []domain.Video) ([]domain.Video, int, bool) {
	if len(videos) == 0 {
		return videos, 0, false
	}

	durations, err := f.durations(ctx, svc, videos)
	if err != nil {
		f.logger.Warn("duration lookup failed, allowing page",
			"channel_id", channelID,
			"videos", len(videos),
			"error", err,
		)
		f.recorder.RecordDurationLookupFailure()
		return videos, 0, true
	}

	kept := make([]domain.Video, 0, len(videos))
	for _, v := range videos {
		if d, ok := durations[v.ID]; ok {
			v.DurationSeconds = &d
		}
		if f.classifier.IsShortForm(v, true) {
			continue
		}
		kept = append(kept, v)
	}
	return kept, len(videos) - len(kept), false
}

func (f *Fetcher) durations(ctx context.Context, svc *yt.Service, videos []domain.Video) (map[string]int, error) {
	ids := make([]string, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.ID)
	}

	resp, err := call(ctx, f, "list video durations", func(ctx context.Context) (*yt.VideoListResponse, error) {
		return svc.Videos.List([]string{"contentDetails"}).Id(ids...).Context(ctx).Do()
	})
	if err != nil {
		return nil, err
	}

	out := make(map[string]int, len(resp.Items))
	for _, item := range resp.Items {
		if item.ContentDetails == nil {
			continue
		}
		out[item.Id] = shorts.ParseDuration(item.ContentDetails.Duration)
	}
	return out, nil
}

func (f *Fetcher) transform(items []*yt.PlaylistItem, ch domain.Channel) []domain.Video {
	videos := make([]domain.Video, 0, len(items))

	for _, item := range items {
		if item == nil || item.Snippet == nil {
			continue
		}

		videoID := ""
		if item.Snippet.ResourceId != nil {
			videoID = item.Snippet.ResourceId.VideoId
		}
		if videoID == "" && item.ContentDetails != nil {
			videoID = item.ContentDetails.VideoId
		}
		if videoID == "" {
			continue
		}

		published := item.Snippet.PublishedAt
		if item.ContentDetails != nil && item.ContentDetails.VideoPublishedAt != "" {
			published = item.ContentDetails.VideoPublishedAt
		}
		publishedAt, err := time.Parse(time.RFC3339, published)
		if err != nil {
			f.logger.Warn("failed to parse date",
				"video_id", videoID,
				"date", published,
			)
			continue
		}

		channelTitle := item.Snippet.ChannelTitle
		if channelTitle == "" {
			channelTitle = ch.Name
		}

		videos = append(videos, domain.Video{
			ID:           videoID,
			Title:        item.Snippet.Title,
			ThumbnailURL: thumbnail(item.Snippet.Thumbnails, videoID),
			ChannelID:    ch.ID,
			ChannelTitle: channelTitle,
			PublishedAt:  publishedAt,
		})
	}

	return videos
}

func thumbnail(t *yt.ThumbnailDetails, videoID string) string {
	if t != nil {
		for _, candidate := range []*yt.Thumbnail{t.High, t.Medium, t.Default} {
			if candidate != nil && candidate.Url != "" {
				return candidate.Url
			}
		}
	}
	return fmt.Sprintf(thumbnailFallback, videoID)
}
