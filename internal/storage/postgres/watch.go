package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"safetube/internal/domain"
)

type WatchHistoryStore struct {
	db *sqlx.DB
}

func NewWatchHistoryStore(db *sqlx.DB) *WatchHistoryStore {
	return &WatchHistoryStore{db: db}
}

// Load returns the profile's watch events, newest first. Inside a
// transaction the profile row is locked so concurrent writers serialize.
func (s *WatchHistoryStore) Load(ctx context.Context, profileID string) ([]domain.WatchEvent, error) {
	exec := GetExecutor(ctx, s.db)

	if GetTxFromContext(ctx) != nil {
		var id string
		if err := sqlx.GetContext(ctx, exec, &id, `SELECT id FROM profiles WHERE id = $1 FOR UPDATE`, profileID); err != nil {
			return nil, fmt.Errorf("lock profile: %w", err)
		}
	}

	query := `
		SELECT video_id, channel_id, watched_at
		FROM watch_events
		WHERE profile_id = $1
		ORDER BY watched_at DESC, id DESC`

	events := []domain.WatchEvent{}
	if err := sqlx.SelectContext(ctx, exec, &events, query, profileID); err != nil {
		return nil, fmt.Errorf("load watch history: %w", err)
	}
	return events, nil
}

// Replace swaps the stored history for events. Callers wrap Load and
// Replace in one transaction.
func (s *WatchHistoryStore) Replace(ctx context.Context, profileID string, events []domain.WatchEvent) error {
	exec := GetExecutor(ctx, s.db)

	if _, err := exec.ExecContext(ctx, `DELETE FROM watch_events WHERE profile_id = $1`, profileID); err != nil {
		return fmt.Errorf("clear watch history: %w", err)
	}

	for _, e := range events {
		_, err := exec.ExecContext(ctx, `
			INSERT INTO watch_events (profile_id, video_id, channel_id, watched_at)
			VALUES ($1, $2, $3, $4)`,
			profileID, e.VideoID, e.ChannelID, e.WatchedAt,
		)
		if err != nil {
			return fmt.Errorf("insert watch event: %w", err)
		}
	}
	return nil
}
