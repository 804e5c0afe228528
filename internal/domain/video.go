package domain

import "time"

// Video is a normalized upload produced by a source fetcher.
// DurationSeconds is nil when the source carries no duration (RSS).
type Video struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	ChannelID       string    `json:"channel_id"`
	ChannelTitle    string    `json:"channel_title"`
	PublishedAt     time.Time `json:"published_at"`
	DurationSeconds *int      `json:"duration_seconds,omitempty"`
}

// HasDuration reports whether the duration is known and non-zero.
func (v Video) HasDuration() bool {
	return v.DurationSeconds != nil && *v.DurationSeconds > 0
}

// ChannelResult is what a fetcher returns for a single channel.
type ChannelResult struct {
	ChannelID         string
	Videos            []Video
	UploadsPlaylistID string
	NextPageToken     string
	Pages             int
	Filtered          int
	Degraded          bool
}
