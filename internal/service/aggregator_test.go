package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"safetube/internal/domain"
	"safetube/internal/metrics"
	"safetube/internal/service/mocks"
	"safetube/internal/source/youtube"
	"safetube/internal/source/youtube/youtubetest"
)

type filterOn struct{}

func (filterOn) FilterShorts() bool { return true }

// slowPublisher holds every publish until released.
type slowPublisher struct {
	release chan struct{}
}

func (p slowPublisher) PublishProgress(ctx context.Context, _ domain.Progress) error {
	select {
	case <-p.release:
	case <-ctx.Done():
	}
	return nil
}

type AggregatorTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller
	ctx  context.Context

	profiles  *mocks.MockProfileStore
	creds     *mocks.MockCredentialProvider
	api       *mocks.MockFetcher
	feed      *mocks.MockFetcher
	thumbs    *mocks.MockThumbnailResolver
	cache     *mocks.MockVideoCache
	publisher *mocks.MockEventPublisher

	recorder *metrics.Collector
	logger   *slog.Logger
	now      time.Time
	service  *Aggregator
}

func (s *AggregatorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ctx = context.Background()

	s.profiles = mocks.NewMockProfileStore(s.ctrl)
	s.creds = mocks.NewMockCredentialProvider(s.ctrl)
	s.api = mocks.NewMockFetcher(s.ctrl)
	s.feed = mocks.NewMockFetcher(s.ctrl)
	s.thumbs = mocks.NewMockThumbnailResolver(s.ctrl)
	s.cache = mocks.NewMockVideoCache(s.ctrl)
	s.publisher = mocks.NewMockEventPublisher(s.ctrl)

	s.api.EXPECT().Source().Return(domain.SourceAPI).AnyTimes()
	s.feed.EXPECT().Source().Return(domain.SourceFeed).AnyTimes()
	s.publisher.EXPECT().PublishProgress(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	s.recorder = metrics.NewCollector(prometheus.NewRegistry())
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s.service = s.newAggregator(s.api)
}

func (s *AggregatorTestSuite) newAggregator(api Fetcher) *Aggregator {
	a := NewAggregator(
		s.profiles,
		s.creds,
		api,
		s.feed,
		s.thumbs,
		s.cache,
		s.publisher,
		s.recorder,
		s.logger,
		Config{MaxConcurrent: 4},
	)
	a.now = func() time.Time { return s.now }
	return a
}

func (s *AggregatorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAggregatorTestSuite(t *testing.T) {
	suite.Run(t, new(AggregatorTestSuite))
}

func (s *AggregatorTestSuite) profile(channels ...domain.Channel) *domain.Profile {
	return &domain.Profile{ID: "p1", Name: "Alice", Channels: channels, IsCurrent: true}
}

func (s *AggregatorTestSuite) video(id, channelID string, age time.Duration) domain.Video {
	return domain.Video{ID: id, Title: id, ChannelID: channelID, PublishedAt: s.now.Add(-age)}
}

func (s *AggregatorTestSuite) TestFetchAll_NoChannels() {
	s.profiles.EXPECT().Get(s.ctx, "p1").Return(s.profile(), nil)
	s.creds.EXPECT().APIKey().Return("")

	feed, err := s.service.FetchAllForProfile(s.ctx, "p1", false, nil)

	s.Require().NoError(err)
	s.Equal(domain.StatusNoChannels, feed.Status)
	s.Empty(feed.Videos)
}

func (s *AggregatorTestSuite) TestFetchAll_ProfileNotFound() {
	s.profiles.EXPECT().Get(s.ctx, "missing").Return(nil, domain.ErrProfileNotFound)

	_, err := s.service.FetchAllForProfile(s.ctx, "missing", false, nil)

	s.ErrorIs(err, domain.ErrProfileNotFound)
}

func (s *AggregatorTestSuite) TestFetchAll_CacheHit() {
	p := s.profile(domain.Channel{ID: "UC_A"})
	cached := &domain.CacheEntry{ProfileID: "p1", FetchedAt: s.now.Add(-time.Minute), Videos: []domain.Video{s.video("v1", "UC_A", time.Hour)}}

	s.profiles.EXPECT().Get(s.ctx, "p1").Return(p, nil)
	s.creds.EXPECT().APIKey().Return("key")
	s.cache.EXPECT().Get(s.ctx, p).Return(cached, true)

	feed, err := s.service.FetchAllForProfile(s.ctx, "p1", false, nil)

	s.Require().NoError(err)
	s.Equal(domain.StatusCached, feed.Status)
	s.Equal(cached.Videos, feed.Videos)
	s.Equal(domain.SourceAPI, feed.Source)
}

func (s *AggregatorTestSuite) TestFetchAll_APIScenarioDropsShortChannel() {
	server := youtubetest.NewServer(
		&youtubetest.Channel{ID: "UC_A", Title: "Long Stories", Pages: [][]youtubetest.Item{youtubetest.LongAndShortPage("a", s.now, 5, 0)}},
		&youtubetest.Channel{ID: "UC_B", Title: "Quick Clips", Pages: [][]youtubetest.Item{youtubetest.LongAndShortPage("b", s.now, 0, 5)}},
	)
	defer server.Close()

	api := youtube.New(youtube.Config{
		BaseURL:       server.BaseURL(),
		PageSize:      20,
		MinLongVideos: 5,
		MaxPages:      3,
		Timeout:       5 * time.Second,
		MaxAttempts:   1,
	}, s.creds, filterOn{}, s.recorder, s.logger)
	aggregator := s.newAggregator(api)

	p := s.profile(
		domain.Channel{ID: "UC_A", Name: "A"},
		domain.Channel{ID: "UC_B", Name: "B", ThumbnailURL: "https://example.com/b.jpg"},
	)

	s.creds.EXPECT().APIKey().Return("key").AnyTimes()
	s.profiles.EXPECT().Get(s.ctx, "p1").Return(p, nil)
	s.cache.EXPECT().Get(s.ctx, p).Return(nil, false)
	s.profiles.EXPECT().Current(gomock.Any()).Return(p, nil)
	s.cache.EXPECT().Put(gomock.Any(), "p1", gomock.Len(5)).Return(nil)
	s.profiles.EXPECT().SetUploadsPlaylistID(gomock.Any(), "p1", "UC_A", "UU_A").Return(nil)
	s.profiles.EXPECT().SetUploadsPlaylistID(gomock.Any(), "p1", "UC_B", "UU_B").Return(nil)
	s.thumbs.EXPECT().ChannelThumbnails(gomock.Any(), []string{"UC_A"}).Return(map[string]string{"UC_A": "https://example.com/a.jpg"}, nil)
	s.profiles.EXPECT().SetChannelThumbnail(gomock.Any(), "p1", "UC_A", "https://example.com/a.jpg").Return(nil)

	feed, err := aggregator.FetchAllForProfile(s.ctx, "p1", false, nil)

	s.Require().NoError(err)
	s.Equal(domain.StatusFresh, feed.Status)
	s.Require().Len(feed.Videos, 5)
	for _, v := range feed.Videos {
		s.Equal("UC_A", v.ChannelID)
	}
	s.Equal(5, feed.Filtered)
	s.Equal(0, feed.Failed)
	for i := 1; i < len(feed.Videos); i++ {
		s.False(feed.Videos[i].PublishedAt.After(feed.Videos[i-1].PublishedAt))
	}
}

func (s *AggregatorTestSuite) TestFetchAll_ProgressIsMonotonic() {
	p := s.profile(domain.Channel{ID: "UC_A"}, domain.Channel{ID: "UC_B"}, domain.Channel{ID: "UC_C"})

	s.creds.EXPECT().APIKey().Return("")
	s.profiles.EXPECT().Get(s.ctx, "p1").Return(p, nil)
	s.profiles.EXPECT().Current(gomock.Any()).Return(p, nil)
	s.feed.EXPECT().FetchChannel(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ch domain.Channel) (*domain.ChannelResult, error) {
			return &domain.ChannelResult{ChannelID: ch.ID, Videos: []domain.Video{s.video(ch.ID+"-1", ch.ID, time.Hour)}}, nil
		},
	).Times(3)
	s.cache.EXPECT().Put(gomock.Any(), "p1", gomock.Len(3)).Return(nil)

	var (
		mu     sync.Mutex
		events []domain.Progress
	)
	feed, err := s.service.FetchAllForProfile(s.ctx, "p1", true, func(p domain.Progress) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, p)
	})

	s.Require().NoError(err)
	s.Equal(domain.StatusFresh, feed.Status)
	s.Require().Len(events, 3)
	for i, e := range events {
		s.Equal(i+1, e.Completed)
		s.Equal(3, e.Total)
		s.Equal(1, e.Videos)
	}
}

func (s *AggregatorTestSuite) TestFetchAll_ChannelFailureIsContained() {
	p := s.profile(domain.Channel{ID: "UC_A"}, domain.Channel{ID: "UC_B"})

	s.creds.EXPECT().APIKey().Return("key")
	s.profiles.EXPECT().Get(s.ctx, "p1").Return(p, nil)
	s.profiles.EXPECT().Current(gomock.Any()).Return(p, nil)
	s.api.EXPECT().FetchChannel(gomock.Any(), p.Channels[0]).Return(nil, errors.New("boom"))
	s.api.EXPECT().FetchChannel(gomock.Any(), p.Channels[1]).Return(&domain.ChannelResult{
		ChannelID: "UC_B",
		Videos:    []domain.Video{s.video("b1", "UC_B", time.Hour)},
	}, nil)
	s.cache.EXPECT().Put(gomock.Any(), "p1", gomock.Len(1)).Return(nil)
	s.thumbs.EXPECT().ChannelThumbnails(gomock.Any(), []string{"UC_A", "UC_B"}).Return(nil, errors.New("quota"))

	feed, err := s.service.FetchAllForProfile(s.ctx, "p1", true, nil)

	s.Require().NoError(err)
	s.Equal(domain.StatusFresh, feed.Status)
	s.Equal(1, feed.Failed)
	s.Len(feed.Videos, 1)
}

func (s *AggregatorTestSuite) TestFetchAll_AllFailedServesStaleCache() {
	p := s.profile(domain.Channel{ID: "UC_A"})
	stale := &domain.CacheEntry{ProfileID: "p1", FetchedAt: s.now.Add(-3 * time.Hour), Videos: []domain.Video{s.video("old", "UC_A", 5*time.Hour)}}

	s.creds.EXPECT().APIKey().Return("key")
	s.profiles.EXPECT().Get(s.ctx, "p1").Return(p, nil)
	s.profiles.EXPECT().Current(gomock.Any()).Return(p, nil)
	s.api.EXPECT().FetchChannel(gomock.Any(), gomock.Any()).Return(nil, errors.New("offline"))
	s.cache.EXPECT().GetStale(gomock.Any(), p).Return(stale, true)

	feed, err := s.service.FetchAllForProfile(s.ctx, "p1", true, nil)

	s.Require().NoError(err)
	s.Equal(domain.StatusStale, feed.Status)
	s.Equal(stale.Videos, feed.Videos)
	s.Equal(stale.FetchedAt, feed.FetchedAt)
}

func (s *AggregatorTestSuite) TestFetchAll_AllFailedWithoutCache() {
	p := s.profile(domain.Channel{ID: "UC_A"})

	s.creds.EXPECT().APIKey().Return("key")
	s.profiles.EXPECT().Get(s.ctx, "p1").Return(p, nil)
	s.profiles.EXPECT().Current(gomock.Any()).Return(p, nil)
	s.api.EXPECT().FetchChannel(gomock.Any(), gomock.Any()).Return(nil, errors.New("offline"))
	s.cache.EXPECT().GetStale(gomock.Any(), p).Return(nil, false)

	feed, err := s.service.FetchAllForProfile(s.ctx, "p1", true, nil)

	s.Require().NoError(err)
	s.Equal(domain.StatusUnavailable, feed.Status)
	s.Empty(feed.Videos)
}

func (s *AggregatorTestSuite) TestFetchAll_EmptyFeedPathServesDemo() {
	p := s.profile(domain.Channel{ID: "UC_A"})

	s.creds.EXPECT().APIKey().Return("")
	s.profiles.EXPECT().Get(s.ctx, "p1").Return(p, nil)
	s.profiles.EXPECT().Current(gomock.Any()).Return(p, nil)
	s.feed.EXPECT().FetchChannel(gomock.Any(), gomock.Any()).Return(&domain.ChannelResult{ChannelID: "UC_A"}, nil)

	feed, err := s.service.FetchAllForProfile(s.ctx, "p1", true, nil)

	s.Require().NoError(err)
	s.Equal(domain.StatusDemo, feed.Status)
	s.Len(feed.Videos, 3)
	s.Equal("WRVsOCh907o", feed.Videos[0].ID)
}

func (s *AggregatorTestSuite) TestFetchAll_EmptyAPIPathIsLegitimate() {
	p := s.profile(domain.Channel{ID: "UC_A", ThumbnailURL: "https://example.com/a.jpg", UploadsPlaylistID: "UU_A"})

	s.creds.EXPECT().APIKey().Return("key")
	s.profiles.EXPECT().Get(s.ctx, "p1").Return(p, nil)
	s.profiles.EXPECT().Current(gomock.Any()).Return(p, nil)
	s.api.EXPECT().FetchChannel(gomock.Any(), gomock.Any()).Return(&domain.ChannelResult{ChannelID: "UC_A", UploadsPlaylistID: "UU_A"}, nil)
	s.cache.EXPECT().Put(gomock.Any(), "p1", gomock.Len(0)).Return(nil)

	feed, err := s.service.FetchAllForProfile(s.ctx, "p1", true, nil)

	s.Require().NoError(err)
	s.Equal(domain.StatusFresh, feed.Status)
	s.Empty(feed.Videos)
}

func (s *AggregatorTestSuite) TestFetchAll_ProfileSwitchedDiscardsResults() {
	p := s.profile(domain.Channel{ID: "UC_A"})
	other := &domain.Profile{ID: "p2", IsCurrent: true}

	s.creds.EXPECT().APIKey().Return("")
	s.profiles.EXPECT().Get(s.ctx, "p1").Return(p, nil)
	s.feed.EXPECT().FetchChannel(gomock.Any(), gomock.Any()).Return(&domain.ChannelResult{
		ChannelID: "UC_A",
		Videos:    []domain.Video{s.video("a1", "UC_A", time.Hour)},
	}, nil)
	s.profiles.EXPECT().Current(gomock.Any()).Return(other, nil)

	_, err := s.service.FetchAllForProfile(s.ctx, "p1", true, nil)

	s.ErrorIs(err, domain.ErrProfileSwitched)
}

func (s *AggregatorTestSuite) TestFetchAll_SharedFetchSurvivesFirstCallerCancel() {
	p := s.profile(domain.Channel{ID: "UC_A"})

	started := make(chan struct{})
	release := make(chan struct{})
	secondArrived := make(chan struct{})
	var gets atomic.Int32

	s.creds.EXPECT().APIKey().Return("").AnyTimes()
	s.profiles.EXPECT().Get(gomock.Any(), "p1").DoAndReturn(
		func(context.Context, string) (*domain.Profile, error) {
			if gets.Add(1) == 2 {
				close(secondArrived)
			}
			return p, nil
		},
	).Times(2)
	s.feed.EXPECT().FetchChannel(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, ch domain.Channel) (*domain.ChannelResult, error) {
			close(started)
			<-release
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return &domain.ChannelResult{ChannelID: ch.ID, Videos: []domain.Video{s.video("a1", ch.ID, time.Hour)}}, nil
		},
	).Times(1)
	s.profiles.EXPECT().Current(gomock.Any()).Return(p, nil)
	s.cache.EXPECT().Put(gomock.Any(), "p1", gomock.Len(1)).Return(nil)

	firstCtx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	firstErr := make(chan error, 1)
	go func() {
		_, err := s.service.FetchAllForProfile(firstCtx, "p1", true, nil)
		firstErr <- err
	}()
	<-started

	type outcome struct {
		feed *domain.Feed
		err  error
	}
	second := make(chan outcome, 1)
	go func() {
		feed, err := s.service.FetchAllForProfile(s.ctx, "p1", true, nil)
		second <- outcome{feed, err}
	}()
	<-secondArrived
	time.Sleep(50 * time.Millisecond)

	cancel()
	s.ErrorIs(<-firstErr, context.Canceled)

	close(release)
	got := <-second
	s.Require().NoError(got.err)
	s.Equal(domain.StatusFresh, got.feed.Status)
	s.Len(got.feed.Videos, 1)
}

func (s *AggregatorTestSuite) TestFetchAll_SlowPublisherDoesNotDelayProgress() {
	p := s.profile(domain.Channel{ID: "UC_A"}, domain.Channel{ID: "UC_B"}, domain.Channel{ID: "UC_C"})
	publisher := slowPublisher{release: make(chan struct{})}

	aggregator := NewAggregator(s.profiles, s.creds, s.api, s.feed, s.thumbs, s.cache, publisher, s.recorder, s.logger, Config{MaxConcurrent: 4})
	aggregator.now = func() time.Time { return s.now }

	s.creds.EXPECT().APIKey().Return("")
	s.profiles.EXPECT().Get(s.ctx, "p1").Return(p, nil)
	s.profiles.EXPECT().Current(gomock.Any()).Return(p, nil)
	s.feed.EXPECT().FetchChannel(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ch domain.Channel) (*domain.ChannelResult, error) {
			return &domain.ChannelResult{ChannelID: ch.ID, Videos: []domain.Video{s.video(ch.ID+"-1", ch.ID, time.Hour)}}, nil
		},
	).Times(3)
	s.cache.EXPECT().Put(gomock.Any(), "p1", gomock.Len(3)).Return(nil)

	events := make(chan domain.Progress, 3)
	done := make(chan error, 1)
	go func() {
		_, err := aggregator.FetchAllForProfile(s.ctx, "p1", true, func(p domain.Progress) {
			events <- p
		})
		done <- err
	}()

	for i := 0; i < 3; i++ {
		select {
		case <-events:
		case <-time.After(2 * time.Second):
			s.FailNow("progress blocked behind publisher", "got %d events", i)
		}
	}

	close(publisher.release)
	s.NoError(<-done)
}

func (s *AggregatorTestSuite) TestLoadMore_FeedPathUnsupported() {
	s.creds.EXPECT().APIKey().Return("")

	_, err := s.service.LoadMoreForChannel(s.ctx, "p1", "UC_A")

	s.ErrorIs(err, domain.ErrLoadMoreUnsupported)
}

func (s *AggregatorTestSuite) TestLoadMore_UnknownChannel() {
	s.creds.EXPECT().APIKey().Return("key")
	s.profiles.EXPECT().Get(s.ctx, "p1").Return(s.profile(domain.Channel{ID: "UC_A"}), nil)

	_, err := s.service.LoadMoreForChannel(s.ctx, "p1", "UC_Z")

	s.ErrorIs(err, domain.ErrChannelNotFound)
}

func (s *AggregatorTestSuite) TestLoadMore_ReturnsNewestFirst() {
	p := s.profile(domain.Channel{ID: "UC_A"})

	s.creds.EXPECT().APIKey().Return("key")
	s.profiles.EXPECT().Get(s.ctx, "p1").Return(p, nil)
	s.api.EXPECT().LoadMore(s.ctx, p.Channels[0], "").Return(&domain.ChannelResult{
		ChannelID:         "UC_A",
		UploadsPlaylistID: "UU_A",
		Videos:            []domain.Video{s.video("older", "UC_A", 48*time.Hour), s.video("newer", "UC_A", 24*time.Hour)},
	}, nil)
	s.profiles.EXPECT().SetUploadsPlaylistID(gomock.Any(), "p1", "UC_A", "UU_A").Return(nil)

	videos, err := s.service.LoadMoreForChannel(s.ctx, "p1", "UC_A")

	s.Require().NoError(err)
	s.Require().Len(videos, 2)
	s.Equal("newer", videos[0].ID)
}

func (s *AggregatorTestSuite) TestLoadMore_TokensArePerProfile() {
	ch := domain.Channel{ID: "UC_A", ThumbnailURL: "https://example.com/a.jpg", UploadsPlaylistID: "UU_A"}
	p1 := &domain.Profile{ID: "p1", Channels: []domain.Channel{ch}}
	p2 := &domain.Profile{ID: "p2", Channels: []domain.Channel{ch}}

	firstPage := func(token string) *domain.ChannelResult {
		return &domain.ChannelResult{
			ChannelID:         "UC_A",
			UploadsPlaylistID: "UU_A",
			NextPageToken:     token,
			Videos:            []domain.Video{s.video("a1", "UC_A", time.Hour)},
		}
	}

	s.creds.EXPECT().APIKey().Return("key").AnyTimes()
	s.profiles.EXPECT().Get(gomock.Any(), "p1").Return(p1, nil).AnyTimes()
	s.profiles.EXPECT().Get(gomock.Any(), "p2").Return(p2, nil).AnyTimes()
	gomock.InOrder(
		s.api.EXPECT().FetchChannel(gomock.Any(), ch).Return(firstPage("p1-next"), nil),
		s.api.EXPECT().FetchChannel(gomock.Any(), ch).Return(firstPage("p2-next"), nil),
	)
	s.cache.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Len(1)).Return(nil).Times(2)
	s.api.EXPECT().LoadMore(gomock.Any(), ch, "p1-next").Return(&domain.ChannelResult{ChannelID: "UC_A", UploadsPlaylistID: "UU_A"}, nil)
	s.api.EXPECT().LoadMore(gomock.Any(), ch, "p2-next").Return(&domain.ChannelResult{ChannelID: "UC_A", UploadsPlaylistID: "UU_A", NextPageToken: "p2-later"}, nil)

	_, err := s.service.FetchAllForProfile(s.ctx, "p1", true, nil)
	s.Require().NoError(err)
	_, err = s.service.FetchAllForProfile(s.ctx, "p2", true, nil)
	s.Require().NoError(err)

	_, err = s.service.LoadMoreForChannel(s.ctx, "p1", "UC_A")
	s.Require().NoError(err)
	_, err = s.service.LoadMoreForChannel(s.ctx, "p2", "UC_A")
	s.Require().NoError(err)

	s.Empty(s.service.pages.get("p1", "UC_A"))
	s.Equal("p2-later", s.service.pages.get("p2", "UC_A"))
}

func (s *AggregatorTestSuite) TestRefresh_ForcesCurrentProfile() {
	p := s.profile(domain.Channel{ID: "UC_A"})

	s.profiles.EXPECT().Current(gomock.Any()).Return(p, nil).Times(2)
	s.profiles.EXPECT().Get(s.ctx, "p1").Return(p, nil)
	s.creds.EXPECT().APIKey().Return("")
	s.feed.EXPECT().FetchChannel(gomock.Any(), gomock.Any()).Return(&domain.ChannelResult{
		ChannelID: "UC_A",
		Videos:    []domain.Video{s.video("a1", "UC_A", time.Hour)},
		Filtered:  2,
	}, nil)
	s.cache.EXPECT().Put(gomock.Any(), "p1", gomock.Len(1)).Return(nil)

	stats, err := s.service.Refresh(s.ctx)

	s.Require().NoError(err)
	s.Equal("p1", stats.ProfileID)
	s.Equal(domain.SourceFeed, stats.Source)
	s.Equal(1, stats.Channels)
	s.Equal(1, stats.Videos)
	s.Equal(2, stats.Filtered)
}
