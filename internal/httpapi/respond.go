package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"safetube/internal/domain"
)

type apiErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiErrorResponse{Code: code, Message: message})
}

// handleServiceError maps domain errors onto HTTP statuses. Anything
// unexpected is logged and reported as 500 without details.
func handleServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		writeError(w, http.StatusNotFound, "PROFILE_NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrChannelNotFound):
		writeError(w, http.StatusNotFound, "CHANNEL_NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrLastProfile):
		writeError(w, http.StatusConflict, "LAST_PROFILE", err.Error())
	case errors.Is(err, domain.ErrLoadMoreUnsupported):
		writeError(w, http.StatusConflict, "LOAD_MORE_UNSUPPORTED", err.Error())
	case errors.Is(err, domain.ErrProfileSwitched):
		writeError(w, http.StatusConflict, "PROFILE_SWITCHED", err.Error())
	case errors.Is(err, domain.ErrNoAPIKey):
		writeError(w, http.StatusConflict, "NO_API_KEY", err.Error())
	default:
		logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "malformed JSON body")
		return false
	}
	return true
}
