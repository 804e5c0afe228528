package httpapi

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"safetube/internal/domain"
	"safetube/internal/settings"
)

type FeedService interface {
	FetchAllForProfile(ctx context.Context, profileID string, forceRefresh bool, onProgress domain.ProgressFunc) (*domain.Feed, error)
	LoadMoreForChannel(ctx context.Context, profileID, channelID string) ([]domain.Video, error)
}

type ProfileService interface {
	List(ctx context.Context) ([]domain.Profile, error)
	Get(ctx context.Context, id string) (*domain.Profile, error)
	Create(ctx context.Context, name string, dailyLimitMinutes int) (*domain.Profile, error)
	Delete(ctx context.Context, id string) error
	SetCurrent(ctx context.Context, id string) error
	AddChannel(ctx context.Context, profileID string, ch domain.Channel) error
	RemoveChannel(ctx context.Context, profileID, channelID string) error
	Save(ctx context.Context, p *domain.Profile) (bool, error)
}

type FeedCache interface {
	Invalidate(ctx context.Context, profileID string) error
}

type InterestTracker interface {
	RecordWatch(ctx context.Context, profileID string, video domain.Video) error
	Scores(ctx context.Context, profileID string) (map[string]float64, error)
}

type ChannelSearcher interface {
	SearchChannels(ctx context.Context, query string) ([]domain.ChannelMatch, error)
}

type SettingsService interface {
	Snapshot() domain.Settings
	Update(ctx context.Context, p settings.Patch) (domain.Settings, error)
}
