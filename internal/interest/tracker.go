// Package interest keeps a short, recent watch history per profile and
// derives per-channel interest scores from it.
package interest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"safetube/internal/domain"
)

const (
	MaxEvents = 50
	MaxAge    = 14 * 24 * time.Hour
)

type HistoryStore interface {
	Load(ctx context.Context, profileID string) ([]domain.WatchEvent, error)
	Replace(ctx context.Context, profileID string, events []domain.WatchEvent) error
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type WatchPublisher interface {
	PublishWatch(ctx context.Context, profileID string, event domain.WatchEvent) error
}

type Tracker struct {
	store     HistoryStore
	txManager TransactionManager
	publisher WatchPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewTracker wires the tracker. publisher may be nil.
func NewTracker(store HistoryStore, txManager TransactionManager, publisher WatchPublisher, logger *slog.Logger) *Tracker {
	return &Tracker{
		store:     store,
		txManager: txManager,
		publisher: publisher,
		logger:    logger.With("component", "interest"),
		now:       time.Now,
	}
}

// RecordWatch prepends a watch event and trims the history to the most
// recent MaxEvents within MaxAge. Load and Replace share one transaction.
func (t *Tracker) RecordWatch(ctx context.Context, profileID string, video domain.Video) error {
	now := t.now().UTC()
	event := domain.WatchEvent{
		VideoID:   video.ID,
		ChannelID: video.ChannelID,
		WatchedAt: now,
	}

	err := t.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		history, err := t.store.Load(txCtx, profileID)
		if err != nil {
			return err
		}

		history = Trim(append([]domain.WatchEvent{event}, history...), now)

		return t.store.Replace(txCtx, profileID, history)
	})
	if err != nil {
		return fmt.Errorf("record watch: %w", err)
	}

	t.logger.Debug("watch recorded",
		"profile_id", profileID,
		"video_id", video.ID,
		"channel_id", video.ChannelID,
	)

	if t.publisher != nil {
		if err := t.publisher.PublishWatch(ctx, profileID, event); err != nil {
			t.logger.Warn("failed to publish watch event",
				"profile_id", profileID,
				"error", err,
			)
		}
	}
	return nil
}

// Scores sums the recency weight of every retained event per channel.
// Channels without events are absent.
func (t *Tracker) Scores(ctx context.Context, profileID string) (map[string]float64, error) {
	history, err := t.store.Load(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("load watch history: %w", err)
	}
	now := t.now()
	return Score(Trim(history, now), now), nil
}

// Trim keeps at most MaxEvents events no older than MaxAge. events must be
// newest first.
func Trim(events []domain.WatchEvent, now time.Time) []domain.WatchEvent {
	cutoff := now.Add(-MaxAge)

	out := make([]domain.WatchEvent, 0, min(len(events), MaxEvents))
	for _, e := range events {
		if len(out) == MaxEvents {
			break
		}
		if e.WatchedAt.Before(cutoff) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Score weights an event 3 within three days, 2 within a week, 1 otherwise.
func Score(events []domain.WatchEvent, now time.Time) map[string]float64 {
	scores := make(map[string]float64)
	for _, e := range events {
		age := now.Sub(e.WatchedAt)
		switch {
		case age <= 3*24*time.Hour:
			scores[e.ChannelID] += 3
		case age <= 7*24*time.Hour:
			scores[e.ChannelID] += 2
		default:
			scores[e.ChannelID] += 1
		}
	}
	return scores
}
