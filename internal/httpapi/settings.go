package httpapi

import (
	"net/http"
	"time"

	"safetube/internal/domain"
	"safetube/internal/settings"
)

type settingsResponse struct {
	APIKey       string    `json:"api_key"`
	HasAPIKey    bool      `json:"has_api_key"`
	FilterShorts bool      `json:"filter_shorts"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toSettingsResponse(s domain.Settings) settingsResponse {
	return settingsResponse{
		APIKey:       s.MaskedAPIKey(),
		HasAPIKey:    s.APIKey != "",
		FilterShorts: s.FilterShorts,
		UpdatedAt:    s.UpdatedAt,
	}
}

// GET /api/settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toSettingsResponse(h.settings.Snapshot()))
}

// PUT /api/settings
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch settings.Patch
	if !decodeJSON(w, r, &patch) {
		return
	}

	updated, err := h.settings.Update(r.Context(), patch)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(updated))
}
