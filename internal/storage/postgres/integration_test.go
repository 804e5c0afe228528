//go:build integration

package postgres

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"safetube/internal/domain"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
	tm        *TransactionManager
	profiles  *ProfileStore
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	migrationsPath, err := filepath.Abs("../../../migrations")
	s.Require().NoError(err)

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.WithInitScripts(
			filepath.Join(migrationsPath, "001_create_profiles.up.sql"),
			filepath.Join(migrationsPath, "002_create_watch_events.up.sql"),
		),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db
	s.tm = NewTransactionManager(db)
	s.profiles = NewProfileStore(db, s.tm)
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM watch_events")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM channels")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM profiles")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM app_settings")
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) TestProfileStore_FirstProfileBecomesCurrent() {
	first, err := s.profiles.Create(s.ctx, "Alice", 60)
	s.Require().NoError(err)
	s.True(first.IsCurrent)

	second, err := s.profiles.Create(s.ctx, "Bob", 0)
	s.Require().NoError(err)
	s.False(second.IsCurrent)

	current, err := s.profiles.Current(s.ctx)
	s.Require().NoError(err)
	s.Equal(first.ID, current.ID)
	s.Equal(60, current.DailyLimitMinutes)
}

func (s *PostgresIntegrationSuite) TestProfileStore_EnsureDefaultSeedsChannels() {
	p, err := s.profiles.EnsureDefault(s.ctx)
	s.Require().NoError(err)
	s.True(p.IsCurrent)
	s.Len(p.Channels, len(DefaultChannels))
	s.Equal(DefaultChannels[0].ID, p.Channels[0].ID)

	again, err := s.profiles.EnsureDefault(s.ctx)
	s.Require().NoError(err)
	s.Equal(p.ID, again.ID)
}

func (s *PostgresIntegrationSuite) TestProfileStore_GetUnknownOrMalformed() {
	_, err := s.profiles.Get(s.ctx, "not-a-uuid")
	s.ErrorIs(err, domain.ErrProfileNotFound)

	_, err = s.profiles.Get(s.ctx, "6f1c1f8e-8d0e-4c8e-9a52-0d6b4f7f1a11")
	s.ErrorIs(err, domain.ErrProfileNotFound)
}

func (s *PostgresIntegrationSuite) TestProfileStore_ChannelsKeepOrderAndIgnoreDuplicates() {
	p, err := s.profiles.Create(s.ctx, "Alice", 0)
	s.Require().NoError(err)

	s.Require().NoError(s.profiles.AddChannel(s.ctx, p.ID, domain.Channel{ID: "UC_B", Name: "B"}))
	s.Require().NoError(s.profiles.AddChannel(s.ctx, p.ID, domain.Channel{ID: "UC_A", Name: "A"}))
	s.Require().NoError(s.profiles.AddChannel(s.ctx, p.ID, domain.Channel{ID: "UC_B", Name: "B again"}))

	got, err := s.profiles.Get(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Require().Len(got.Channels, 2)
	s.Equal("UC_B", got.Channels[0].ID)
	s.Equal("B", got.Channels[0].Name)
	s.Equal("UC_A", got.Channels[1].ID)
}

func (s *PostgresIntegrationSuite) TestProfileStore_AddChannelToUnknownProfile() {
	err := s.profiles.AddChannel(s.ctx, uuid.NewString(), domain.Channel{ID: "UC_A", Name: "A"})
	s.ErrorIs(err, domain.ErrProfileNotFound)

	err = s.profiles.AddChannel(s.ctx, "not-a-uuid", domain.Channel{ID: "UC_A", Name: "A"})
	s.ErrorIs(err, domain.ErrProfileNotFound)
}

func (s *PostgresIntegrationSuite) TestProfileStore_UploadsPlaylistAndThumbnail() {
	p, err := s.profiles.Create(s.ctx, "Alice", 0)
	s.Require().NoError(err)
	s.Require().NoError(s.profiles.AddChannel(s.ctx, p.ID, domain.Channel{ID: "UC_A", Name: "A"}))

	s.Require().NoError(s.profiles.SetUploadsPlaylistID(s.ctx, p.ID, "UC_A", "UU_A"))
	s.Require().NoError(s.profiles.SetChannelThumbnail(s.ctx, p.ID, "UC_A", "https://example.com/a.jpg"))

	got, err := s.profiles.Get(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("UU_A", got.Channels[0].UploadsPlaylistID)
	s.Equal("https://example.com/a.jpg", got.Channels[0].ThumbnailURL)

	s.Require().NoError(s.profiles.RemoveChannel(s.ctx, p.ID, "UC_A"))
	err = s.profiles.RemoveChannel(s.ctx, p.ID, "UC_A")
	s.ErrorIs(err, domain.ErrChannelNotFound)
}

func (s *PostgresIntegrationSuite) TestProfileStore_DeleteReassignsCurrent() {
	first, err := s.profiles.Create(s.ctx, "Alice", 0)
	s.Require().NoError(err)
	second, err := s.profiles.Create(s.ctx, "Bob", 0)
	s.Require().NoError(err)

	s.Require().NoError(s.profiles.Delete(s.ctx, first.ID))

	current, err := s.profiles.Current(s.ctx)
	s.Require().NoError(err)
	s.Equal(second.ID, current.ID)

	err = s.profiles.Delete(s.ctx, second.ID)
	s.ErrorIs(err, domain.ErrLastProfile)
}

func (s *PostgresIntegrationSuite) TestProfileStore_SetCurrentIsExclusive() {
	first, err := s.profiles.Create(s.ctx, "Alice", 0)
	s.Require().NoError(err)
	second, err := s.profiles.Create(s.ctx, "Bob", 0)
	s.Require().NoError(err)

	s.Require().NoError(s.profiles.SetCurrent(s.ctx, second.ID))

	var count int
	s.Require().NoError(s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM profiles WHERE is_current"))
	s.Equal(1, count)

	got, err := s.profiles.Get(s.ctx, first.ID)
	s.Require().NoError(err)
	s.False(got.IsCurrent)

	err = s.profiles.SetCurrent(s.ctx, "6f1c1f8e-8d0e-4c8e-9a52-0d6b4f7f1a11")
	s.ErrorIs(err, domain.ErrProfileNotFound)
}

func (s *PostgresIntegrationSuite) TestProfileStore_SaveNewerWins() {
	p, err := s.profiles.Create(s.ctx, "Alice", 0)
	s.Require().NoError(err)
	s.Require().NoError(s.profiles.AddChannel(s.ctx, p.ID, domain.Channel{ID: "UC_A", Name: "A"}))
	s.Require().NoError(s.profiles.SetUploadsPlaylistID(s.ctx, p.ID, "UC_A", "UU_A"))

	stored, err := s.profiles.Get(s.ctx, p.ID)
	s.Require().NoError(err)

	older := *stored
	older.Name = "Stale"
	older.UpdatedAt = stored.UpdatedAt.Add(-time.Minute)
	applied, err := s.profiles.Save(s.ctx, &older)
	s.Require().NoError(err)
	s.False(applied)

	newer := *stored
	newer.Name = "Alice (tablet)"
	newer.UpdatedAt = stored.UpdatedAt.Add(time.Minute)
	newer.Channels = []domain.Channel{{ID: "UC_C", Name: "C"}, {ID: "UC_A", Name: "A"}}
	applied, err = s.profiles.Save(s.ctx, &newer)
	s.Require().NoError(err)
	s.True(applied)

	got, err := s.profiles.Get(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("Alice (tablet)", got.Name)
	s.Require().Len(got.Channels, 2)
	s.Equal("UC_C", got.Channels[0].ID)
	s.Equal("UU_A", got.Channels[1].UploadsPlaylistID)
}

func (s *PostgresIntegrationSuite) TestWatchHistoryStore_ReplaceAndLoad() {
	p, err := s.profiles.Create(s.ctx, "Alice", 0)
	s.Require().NoError(err)

	store := NewWatchHistoryStore(s.db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	err = s.tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		if _, err := store.Load(ctx, p.ID); err != nil {
			return err
		}
		return store.Replace(ctx, p.ID, []domain.WatchEvent{
			{VideoID: "v2", ChannelID: "UC_A", WatchedAt: now},
			{VideoID: "v1", ChannelID: "UC_B", WatchedAt: now.Add(-time.Hour)},
		})
	})
	s.Require().NoError(err)

	events, err := store.Load(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal("v2", events[0].VideoID)
	s.Equal("v1", events[1].VideoID)
	s.WithinDuration(now, events[0].WatchedAt, time.Millisecond)
}

func (s *PostgresIntegrationSuite) TestSettingsStore_LoadEmptyThenSave() {
	store := NewSettingsStore(s.db)

	got, err := store.Load(s.ctx)
	s.Require().NoError(err)
	s.Nil(got)

	now := time.Now().UTC().Truncate(time.Microsecond)
	s.Require().NoError(store.Save(s.ctx, domain.Settings{APIKey: "key-1", FilterShorts: false, UpdatedAt: now}))
	s.Require().NoError(store.Save(s.ctx, domain.Settings{APIKey: "", APIKeySet: true, FilterShorts: true, UpdatedAt: now}))

	got, err = store.Load(s.ctx)
	s.Require().NoError(err)
	s.Empty(got.APIKey)
	s.True(got.APIKeySet)
	s.True(got.FilterShorts)
}

func (s *PostgresIntegrationSuite) TestTransaction_Commit() {
	err := s.tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		_, err := s.profiles.Create(ctx, "Alice", 0)
		return err
	})
	s.NoError(err)

	var count int
	err = s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM profiles")
	s.NoError(err)
	s.Equal(1, count)
}

func (s *PostgresIntegrationSuite) TestTransaction_Rollback() {
	_, err := s.profiles.Create(s.ctx, "Pre-existing", 0)
	s.Require().NoError(err)

	errAbort := errors.New("abort")
	err = s.tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		if _, err := s.profiles.Create(ctx, "Should Rollback", 0); err != nil {
			return err
		}
		return errAbort
	})
	s.ErrorIs(err, errAbort)

	var count int
	err = s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM profiles")
	s.NoError(err)
	s.Equal(1, count)
}
