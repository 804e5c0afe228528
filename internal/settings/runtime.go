package settings

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"safetube/internal/domain"
)

type Store interface {
	Load(ctx context.Context) (*domain.Settings, error)
	Save(ctx context.Context, settings domain.Settings) error
}

// Patch holds the fields a caller wants to change; nil fields are kept.
type Patch struct {
	APIKey       *string `json:"api_key"`
	FilterShorts *bool   `json:"filter_shorts"`
}

// Runtime serves the current settings to fetchers and persists changes.
// Readers always see a complete snapshot.
type Runtime struct {
	mu      sync.RWMutex
	current domain.Settings
	store   Store
	logger  *slog.Logger
	now     func() time.Time
}

// New loads persisted settings, falling back to defaults when none exist.
func New(ctx context.Context, store Store, defaults domain.Settings, logger *slog.Logger) (*Runtime, error) {
	r := &Runtime{
		current: defaults,
		store:   store,
		logger:  logger.With("component", "settings"),
		now:     time.Now,
	}

	saved, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if saved != nil {
		r.current = *saved
		// the configured key applies until a key is chosen in the app
		if !r.current.APIKeySet {
			r.current.APIKey = defaults.APIKey
		}
	}

	r.logger.Info("settings loaded",
		"api_key", r.current.MaskedAPIKey(),
		"filter_shorts", r.current.FilterShorts,
	)
	return r, nil
}

func (r *Runtime) APIKey() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current.APIKey
}

func (r *Runtime) FilterShorts() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current.FilterShorts
}

func (r *Runtime) Snapshot() domain.Settings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Update applies p, persists the result and only then makes it visible.
func (r *Runtime) Update(ctx context.Context, p Patch) (domain.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.current
	if p.APIKey != nil {
		next.APIKey = *p.APIKey
		next.APIKeySet = true
	}
	if p.FilterShorts != nil {
		next.FilterShorts = *p.FilterShorts
	}
	next.UpdatedAt = r.now().UTC()

	persisted := next
	if !persisted.APIKeySet {
		persisted.APIKey = ""
	}
	if err := r.store.Save(ctx, persisted); err != nil {
		return r.current, fmt.Errorf("save settings: %w", err)
	}
	r.current = next

	r.logger.Info("settings updated",
		"api_key", next.MaskedAPIKey(),
		"filter_shorts", next.FilterShorts,
	)
	return next, nil
}
