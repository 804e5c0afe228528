package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"safetube/internal/domain"
)

// DefaultChannels seed the first profile created on an empty database.
var DefaultChannels = []domain.Channel{
	{ID: "UCbCmjCuTUZos6Inko4u57UQ", Name: "Cocomelon - Nursery Rhymes"},
	{ID: "UC2h-ucSvsjDMg8gqE2KoVyg", Name: "Super Simple Songs"},
	{ID: "UCcdwLMPsaU2ezNSJU1nFoBQ", Name: "Pinkfong Baby Shark - Kids' Songs & Stories"},
}

type ProfileStore struct {
	db *sqlx.DB
	tx *TransactionManager
}

func NewProfileStore(db *sqlx.DB, tx *TransactionManager) *ProfileStore {
	return &ProfileStore{db: db, tx: tx}
}

const profileColumns = `id, name, daily_limit_minutes, is_current, updated_at`

func (s *ProfileStore) List(ctx context.Context) ([]domain.Profile, error) {
	var profiles []domain.Profile
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY position, created_at`

	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &profiles, query); err != nil {
		return nil, err
	}

	for i := range profiles {
		channels, err := s.channels(ctx, profiles[i].ID)
		if err != nil {
			return nil, err
		}
		profiles[i].Channels = channels
	}
	return profiles, nil
}

func (s *ProfileStore) Get(ctx context.Context, id string) (*domain.Profile, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrProfileNotFound
	}
	return s.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
}

func (s *ProfileStore) Current(ctx context.Context) (*domain.Profile, error) {
	return s.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE is_current`)
}

func (s *ProfileStore) getOne(ctx context.Context, query string, args ...any) (*domain.Profile, error) {
	var p domain.Profile
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &p, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	p.Channels, err = s.channels(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProfileStore) channels(ctx context.Context, profileID string) ([]domain.Channel, error) {
	query := `
		SELECT channel_id, name, thumbnail_url, uploads_playlist_id
		FROM channels
		WHERE profile_id = $1
		ORDER BY position, channel_id`

	channels := []domain.Channel{}
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &channels, query, profileID); err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	return channels, nil
}

// Create adds a profile. The first profile ever created becomes current.
func (s *ProfileStore) Create(ctx context.Context, name string, dailyLimitMinutes int) (*domain.Profile, error) {
	p := &domain.Profile{
		ID:                uuid.NewString(),
		Name:              name,
		DailyLimitMinutes: dailyLimitMinutes,
		Channels:          []domain.Channel{},
		UpdatedAt:         time.Now().UTC(),
	}

	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		exec := GetExecutor(txCtx, s.db)

		var count int
		if err := sqlx.GetContext(txCtx, exec, &count, `SELECT COUNT(*) FROM profiles`); err != nil {
			return err
		}
		p.IsCurrent = count == 0

		_, err := exec.ExecContext(txCtx, `
			INSERT INTO profiles (id, name, daily_limit_minutes, is_current, position, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			p.ID, p.Name, p.DailyLimitMinutes, p.IsCurrent, count, p.UpdatedAt,
		)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return p, nil
}

// EnsureDefault guarantees the profile list is never empty.
func (s *ProfileStore) EnsureDefault(ctx context.Context) (*domain.Profile, error) {
	current, err := s.Current(ctx)
	if err == nil {
		return current, nil
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}

	profiles, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(profiles) > 0 {
		if err := s.SetCurrent(ctx, profiles[0].ID); err != nil {
			return nil, err
		}
		return s.Get(ctx, profiles[0].ID)
	}

	p, err := s.Create(ctx, "Default Child", 0)
	if err != nil {
		return nil, err
	}
	for _, ch := range DefaultChannels {
		if err := s.AddChannel(ctx, p.ID, ch); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, p.ID)
}

// Delete removes a profile. Deleting the current profile hands "current" to
// the next remaining one; the last profile cannot be deleted.
func (s *ProfileStore) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrProfileNotFound
	}

	return s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		exec := GetExecutor(txCtx, s.db)

		var count int
		if err := sqlx.GetContext(txCtx, exec, &count, `SELECT COUNT(*) FROM profiles`); err != nil {
			return err
		}

		var wasCurrent bool
		err := sqlx.GetContext(txCtx, exec, &wasCurrent, `SELECT is_current FROM profiles WHERE id = $1 FOR UPDATE`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrProfileNotFound
		}
		if err != nil {
			return err
		}
		if count <= 1 {
			return domain.ErrLastProfile
		}

		if _, err := exec.ExecContext(txCtx, `DELETE FROM profiles WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}

		if wasCurrent {
			_, err := exec.ExecContext(txCtx, `
				UPDATE profiles SET is_current = TRUE, updated_at = NOW()
				WHERE id = (SELECT id FROM profiles ORDER BY position, created_at LIMIT 1)`)
			if err != nil {
				return fmt.Errorf("reassign current profile: %w", err)
			}
		}
		return nil
	})
}

func (s *ProfileStore) SetCurrent(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrProfileNotFound
	}

	return s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		exec := GetExecutor(txCtx, s.db)

		if _, err := exec.ExecContext(txCtx, `UPDATE profiles SET is_current = FALSE WHERE is_current AND id <> $1`, id); err != nil {
			return err
		}

		res, err := exec.ExecContext(txCtx, `UPDATE profiles SET is_current = TRUE WHERE id = $1`, id)
		if err != nil {
			return err
		}
		return requireRow(res, domain.ErrProfileNotFound)
	})
}

func (s *ProfileStore) AddChannel(ctx context.Context, profileID string, ch domain.Channel) error {
	if _, err := uuid.Parse(profileID); err != nil {
		return domain.ErrProfileNotFound
	}

	query := `
		INSERT INTO channels (profile_id, channel_id, name, thumbnail_url, position)
		SELECT $1, $2, $3, $4, COALESCE(MAX(position) + 1, 0)
		FROM channels WHERE profile_id = $1
		ON CONFLICT (profile_id, channel_id) DO NOTHING`

	if _, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, profileID, ch.ID, ch.Name, ch.ThumbnailURL); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProfileNotFound
		}
		return fmt.Errorf("add channel: %w", err)
	}
	return s.touch(ctx, profileID)
}

// RemoveChannel drops the row, which also forgets the resolved uploads playlist.
func (s *ProfileStore) RemoveChannel(ctx context.Context, profileID, channelID string) error {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		`DELETE FROM channels WHERE profile_id = $1 AND channel_id = $2`, profileID, channelID)
	if err != nil {
		return fmt.Errorf("remove channel: %w", err)
	}
	if err := requireRow(res, domain.ErrChannelNotFound); err != nil {
		return err
	}
	return s.touch(ctx, profileID)
}

func (s *ProfileStore) SetUploadsPlaylistID(ctx context.Context, profileID, channelID, playlistID string) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		`UPDATE channels SET uploads_playlist_id = $3 WHERE profile_id = $1 AND channel_id = $2`,
		profileID, channelID, playlistID)
	return err
}

func (s *ProfileStore) SetChannelThumbnail(ctx context.Context, profileID, channelID, url string) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		`UPDATE channels SET thumbnail_url = $3 WHERE profile_id = $1 AND channel_id = $2`,
		profileID, channelID, url)
	return err
}

// Save applies a profile snapshot coming from another device. The newer
// updated_at wins; an older snapshot is ignored and reported as not applied.
func (s *ProfileStore) Save(ctx context.Context, p *domain.Profile) (bool, error) {
	applied := false

	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		exec := GetExecutor(txCtx, s.db)

		res, err := exec.ExecContext(txCtx, `
			INSERT INTO profiles (id, name, daily_limit_minutes, updated_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				daily_limit_minutes = EXCLUDED.daily_limit_minutes,
				updated_at = EXCLUDED.updated_at
			WHERE profiles.updated_at < EXCLUDED.updated_at`,
			p.ID, p.Name, p.DailyLimitMinutes, p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("upsert profile: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil
		}
		applied = true

		// channel rows are replaced but resolved playlist ids survive for channels still present
		if _, err := exec.ExecContext(txCtx, `DELETE FROM channels WHERE profile_id = $1 AND NOT (channel_id = ANY($2))`,
			p.ID, channelIDArray(p.Channels)); err != nil {
			return fmt.Errorf("prune channels: %w", err)
		}

		for i, ch := range p.Channels {
			_, err := exec.ExecContext(txCtx, `
				INSERT INTO channels (profile_id, channel_id, name, thumbnail_url, position)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (profile_id, channel_id) DO UPDATE SET
					name = EXCLUDED.name,
					thumbnail_url = EXCLUDED.thumbnail_url,
					position = EXCLUDED.position`,
				p.ID, ch.ID, ch.Name, ch.ThumbnailURL, i,
			)
			if err != nil {
				return fmt.Errorf("upsert channel %s: %w", ch.ID, err)
			}
		}
		return nil
	})

	return applied, err
}

func (s *ProfileStore) touch(ctx context.Context, profileID string) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, `UPDATE profiles SET updated_at = NOW() WHERE id = $1`, profileID)
	return err
}

func channelIDArray(channels []domain.Channel) any {
	ids := make([]string, 0, len(channels))
	for _, ch := range channels {
		ids = append(ids, ch.ID)
	}
	return pq.Array(ids)
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
