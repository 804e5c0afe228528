package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"safetube/internal/domain"
)

type SettingsStore struct {
	db *sqlx.DB
}

func NewSettingsStore(db *sqlx.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Load returns nil when nothing has been saved yet.
func (s *SettingsStore) Load(ctx context.Context) (*domain.Settings, error) {
	var settings domain.Settings
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &settings,
		`SELECT api_key, api_key_set, filter_shorts, updated_at FROM app_settings WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return &settings, nil
}

func (s *SettingsStore) Save(ctx context.Context, settings domain.Settings) error {
	query := `
		INSERT INTO app_settings (id, api_key, api_key_set, filter_shorts, updated_at)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			api_key = EXCLUDED.api_key,
			api_key_set = EXCLUDED.api_key_set,
			filter_shorts = EXCLUDED.filter_shorts,
			updated_at = EXCLUDED.updated_at`

	if _, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, settings.APIKey, settings.APIKeySet, settings.FilterShorts, settings.UpdatedAt); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
