package domain

import "time"

type FeedStatus string

const (
	StatusFresh       FeedStatus = "fresh"
	StatusCached      FeedStatus = "cached"
	StatusStale       FeedStatus = "stale"
	StatusDemo        FeedStatus = "demo"
	StatusNoChannels  FeedStatus = "no_channels"
	StatusUnavailable FeedStatus = "unavailable"
)

type SourceKind string

const (
	SourceAPI  SourceKind = "api"
	SourceFeed SourceKind = "feed"
)

// Feed is the merged, newest-first result of fetching a profile.
type Feed struct {
	ProfileID string     `json:"profile_id"`
	Videos    []Video    `json:"videos"`
	Status    FeedStatus `json:"status"`
	Source    SourceKind `json:"source"`
	FetchedAt time.Time  `json:"fetched_at"`
	Degraded  bool       `json:"degraded"`
	Failed    int        `json:"failed_channels"`
	Filtered  int        `json:"filtered_shorts"`
}

type CacheEntry struct {
	ProfileID string    `json:"profile_id"`
	FetchedAt time.Time `json:"fetched_at"`
	Videos    []Video   `json:"videos"`
}

// Progress is emitted after each channel of a fan-out completes.
type Progress struct {
	ProfileID   string `json:"profile_id"`
	ChannelID   string `json:"channel_id"`
	ChannelName string `json:"channel_name"`
	Completed   int    `json:"completed"`
	Total       int    `json:"total"`
	Videos      int    `json:"videos"`
	Failed      bool   `json:"failed"`
}

// ProgressFunc receives one event per completed channel, in completion order.
type ProgressFunc func(Progress)

// FetchStats summarizes one fan-out for logging.
type FetchStats struct {
	ProfileID string
	Source    SourceKind
	Channels  int
	Failed    int
	Videos    int
	Filtered  int
	Duration  time.Duration
}
