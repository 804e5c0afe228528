package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"safetube/internal/domain"
)

type createProfileRequest struct {
	Name              string `json:"name"`
	DailyLimitMinutes int    `json:"daily_limit_minutes"`
}

type addChannelRequest struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// GET /api/profiles
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.List(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profiles": profiles})
}

// GET /api/profiles/{id}
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// POST /api/profiles
func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "name is required")
		return
	}
	if req.DailyLimitMinutes < 0 {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "daily_limit_minutes must not be negative")
		return
	}

	profile, err := h.profiles.Create(r.Context(), req.Name, req.DailyLimitMinutes)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

type importProfileRequest struct {
	Name              string           `json:"name"`
	DailyLimitMinutes int              `json:"daily_limit_minutes"`
	Channels          []domain.Channel `json:"channels"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// ImportProfile applies a profile snapshot from another device. The snapshot
// only replaces the stored profile when its updated_at is newer.
// PUT /api/profiles/{id}
func (h *Handler) ImportProfile(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(profileID); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "profile id must be a uuid")
		return
	}

	var req importProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.UpdatedAt.IsZero() {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "name and updated_at are required")
		return
	}
	for _, ch := range req.Channels {
		if ch.ID == "" {
			writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "every channel needs an id")
			return
		}
	}

	applied, err := h.profiles.Save(r.Context(), &domain.Profile{
		ID:                profileID,
		Name:              req.Name,
		DailyLimitMinutes: req.DailyLimitMinutes,
		Channels:          req.Channels,
		UpdatedAt:         req.UpdatedAt.UTC(),
	})
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	if applied {
		if err := h.cache.Invalidate(r.Context(), profileID); err != nil {
			h.logger.Warn("failed to drop cache", "profile_id", profileID, "error", err)
		}
	}

	stored, err := h.profiles.Get(r.Context(), profileID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"applied": applied,
		"profile": stored,
	})
}

// DELETE /api/profiles/{id}
func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "id")

	if err := h.profiles.Delete(r.Context(), profileID); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	if err := h.cache.Invalidate(r.Context(), profileID); err != nil {
		h.logger.Warn("failed to drop cache", "profile_id", profileID, "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// PUT /api/profiles/{id}/current
func (h *Handler) SetCurrentProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.profiles.SetCurrent(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/profiles/{id}/channels
func (h *Handler) AddChannel(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "id")

	var req addChannelRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.ID = strings.TrimSpace(req.ID)
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "id is required")
		return
	}
	if req.Name == "" {
		req.Name = req.ID
	}

	ch := domain.Channel{ID: req.ID, Name: req.Name, ThumbnailURL: req.ThumbnailURL}
	if err := h.profiles.AddChannel(r.Context(), profileID, ch); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	// the cached list cannot contain the new channel's uploads
	if err := h.cache.Invalidate(r.Context(), profileID); err != nil {
		h.logger.Warn("failed to drop cache", "profile_id", profileID, "error", err)
	}
	writeJSON(w, http.StatusCreated, ch)
}

// DELETE /api/profiles/{id}/channels/{channelID}
func (h *Handler) RemoveChannel(w http.ResponseWriter, r *http.Request) {
	err := h.profiles.RemoveChannel(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "channelID"))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/channels/search?q=
func (h *Handler) SearchChannels(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "q is required")
		return
	}

	matches, err := h.search.SearchChannels(r.Context(), query)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"channels": matches})
}
