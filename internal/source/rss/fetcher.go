// Package rss fetches channel uploads from the public feed, without
// credentials. Feeds carry no durations, so only titles are classified.
package rss

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"safetube/internal/domain"
	"safetube/internal/metrics"
	"safetube/internal/shorts"
)

const (
	SourceName = "feed"

	thumbnailURL = "https://i.ytimg.com/vi/%s/mqdefault.jpg"
)

var ErrAllRelaysFailed = errors.New("all relays failed")

type FilterSettings interface {
	FilterShorts() bool
}

type Config struct {
	BaseURL        string
	AttemptTimeout time.Duration
}

// Fetcher implements the feed strategy of the aggregator. Transports are
// tried in order and the first well-formed document wins.
type Fetcher struct {
	cfg        Config
	transports []Transport
	filter     FilterSettings
	recorder   metrics.Recorder
	logger     *slog.Logger
}

func New(cfg Config, transports []Transport, filter FilterSettings, recorder metrics.Recorder, logger *slog.Logger) *Fetcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.youtube.com/feeds/videos.xml"
	}
	return &Fetcher{
		cfg:        cfg,
		transports: transports,
		filter:     filter,
		recorder:   recorder,
		logger:     logger.With("source", SourceName),
	}
}

func (f *Fetcher) Source() domain.SourceKind {
	return domain.SourceFeed
}

// FetchChannel returns the channel's recent uploads minus titles that look
// like short-form content. A channel no relay could reach yields an error
// which the aggregator contains.
func (f *Fetcher) FetchChannel(ctx context.Context, ch domain.Channel) (*domain.ChannelResult, error) {
	feed, err := f.fetchFeed(ctx, f.FeedURL(ch.ID))
	if err != nil {
		return nil, err
	}

	result := &domain.ChannelResult{ChannelID: ch.ID, Pages: 1, Videos: []domain.Video{}}
	filterEnabled := f.filter.FilterShorts()

	for _, item := range feed.Items {
		v, ok := f.transform(item, ch)
		if !ok {
			continue
		}
		if filterEnabled && shorts.IsShortTitle(v.Title) {
			result.Filtered++
			continue
		}
		result.Videos = append(result.Videos, v)
	}

	f.recorder.RecordShortsFiltered(SourceName, result.Filtered)
	return result, nil
}

func (f *Fetcher) LoadMore(context.Context, domain.Channel, string) (*domain.ChannelResult, error) {
	return nil, domain.ErrLoadMoreUnsupported
}

func (f *Fetcher) FeedURL(channelID string) string {
	return f.cfg.BaseURL + "?channel_id=" + url.QueryEscape(channelID)
}

func (f *Fetcher) fetchFeed(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	var errs []error

	for _, t := range f.transports {
		feed, err := f.attempt(ctx, t, feedURL)
		f.recorder.RecordRelayAttempt(t.Name(), err == nil)
		if err == nil {
			return feed, nil
		}

		f.logger.Debug("relay attempt failed",
			"relay", t.Name(),
			"feed_url", feedURL,
			"error", err,
		)
		errs = append(errs, fmt.Errorf("%s: %w", t.Name(), err))

		if ctx.Err() != nil {
			break
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrAllRelaysFailed, errors.Join(errs...))
}

// attempt gives each transport its own deadline so one slow relay cannot
// consume the budget of the next.
func (f *Fetcher) attempt(ctx context.Context, t Transport, feedURL string) (*gofeed.Feed, error) {
	attemptCtx := ctx
	if f.cfg.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, f.cfg.AttemptTimeout)
		defer cancel()
	}

	body, err := t.Fetch(attemptCtx, feedURL)
	if err != nil {
		return nil, err
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return feed, nil
}

func (f *Fetcher) transform(item *gofeed.Item, ch domain.Channel) (domain.Video, bool) {
	if item == nil {
		return domain.Video{}, false
	}

	videoID := extensionValue(item, "yt", "videoId")
	if videoID == "" {
		videoID = strings.TrimPrefix(item.GUID, "yt:video:")
	}
	title := strings.TrimSpace(item.Title)
	if videoID == "" || title == "" {
		return domain.Video{}, false
	}

	published := item.PublishedParsed
	if published == nil {
		published = item.UpdatedParsed
	}
	if published == nil {
		f.logger.Warn("failed to parse date",
			"video_id", videoID,
			"date", item.Published,
		)
		return domain.Video{}, false
	}

	return domain.Video{
		ID:           videoID,
		Title:        title,
		ThumbnailURL: fmt.Sprintf(thumbnailURL, videoID),
		ChannelID:    ch.ID,
		ChannelTitle: ch.Name,
		PublishedAt:  published.UTC(),
	}, true
}

func extensionValue(item *gofeed.Item, ns, name string) string {
	if item.Extensions == nil {
		return ""
	}
	values := item.Extensions[ns][name]
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0].Value)
}
