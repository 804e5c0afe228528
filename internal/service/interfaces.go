package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"safetube/internal/domain"
)

type ProfileStore interface {
	Get(ctx context.Context, id string) (*domain.Profile, error)
	Current(ctx context.Context) (*domain.Profile, error)
	SetUploadsPlaylistID(ctx context.Context, profileID, channelID, playlistID string) error
	SetChannelThumbnail(ctx context.Context, profileID, channelID, url string) error
}

type CredentialProvider interface {
	APIKey() string
}

// Fetcher is one retrieval strategy: the Data API or the public feed.
type Fetcher interface {
	Source() domain.SourceKind
	FetchChannel(ctx context.Context, ch domain.Channel) (*domain.ChannelResult, error)
	LoadMore(ctx context.Context, ch domain.Channel, pageToken string) (*domain.ChannelResult, error)
}

type ThumbnailResolver interface {
	ChannelThumbnails(ctx context.Context, channelIDs []string) (map[string]string, error)
}

type VideoCache interface {
	Get(ctx context.Context, profile *domain.Profile) (*domain.CacheEntry, bool)
	GetStale(ctx context.Context, profile *domain.Profile) (*domain.CacheEntry, bool)
	Put(ctx context.Context, profileID string, videos []domain.Video) error
	Invalidate(ctx context.Context, profileID string) error
}

type EventPublisher interface {
	PublishProgress(ctx context.Context, progress domain.Progress) error
}
