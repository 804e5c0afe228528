package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"safetube/internal/domain"
	"safetube/internal/interleave"
)

type videosResponse struct {
	ProfileID string            `json:"profile_id"`
	Status    domain.FeedStatus `json:"status"`
	Source    domain.SourceKind `json:"source"`
	FetchedAt time.Time         `json:"fetched_at"`
	Degraded  bool              `json:"degraded"`
	Failed    int               `json:"failed_channels"`
	Filtered  int               `json:"filtered_shorts"`
	Sort      string            `json:"sort"`
	Videos    []domain.Video    `json:"videos"`
}

// ListVideos returns the profile's feed ordered for display.
// GET /api/profiles/{id}/videos?refresh=1&sort=newest|oldest|shuffle&channel=<id>
func (h *Handler) ListVideos(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "id")
	q := r.URL.Query()

	feed, err := h.feeds.FetchAllForProfile(r.Context(), profileID, isTruthy(q.Get("refresh")), nil)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, h.present(r.Context(), feed, q.Get("sort"), q.Get("channel")))
}

// StreamVideos streams per-channel progress as server-sent events, then the
// final feed.
// GET /api/profiles/{id}/videos/stream?refresh=1&sort=...
func (h *Handler) StreamVideos(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "id")
	q := r.URL.Query()
	rc := http.NewResponseController(w)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	_ = rc.Flush()

	send := func(event string, v any) {
		data, err := json.Marshal(v)
		if err != nil {
			return
		}
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		_ = rc.Flush()
	}

	feed, err := h.feeds.FetchAllForProfile(r.Context(), profileID, isTruthy(q.Get("refresh")), func(p domain.Progress) {
		send("progress", p)
	})
	if err != nil {
		h.logger.Warn("stream fetch failed", "profile_id", profileID, "error", err)
		send("error", apiErrorResponse{Code: "FETCH_FAILED", Message: err.Error()})
		return
	}

	send("feed", h.present(r.Context(), feed, q.Get("sort"), q.Get("channel")))
}

func (h *Handler) present(ctx context.Context, feed *domain.Feed, sort, channelID string) videosResponse {
	videos := feed.Videos
	if channelID != "" {
		filtered := make([]domain.Video, 0, len(videos))
		for _, v := range videos {
			if v.ChannelID == channelID {
				filtered = append(filtered, v)
			}
		}
		videos = filtered
	}

	mode := interleave.ParseSortMode(sort)

	var scores map[string]float64
	if mode == interleave.SortShuffle {
		var err error
		scores, err = h.interest.Scores(ctx, feed.ProfileID)
		if err != nil {
			h.logger.Warn("failed to load interest scores", "profile_id", feed.ProfileID, "error", err)
		}
	}

	return videosResponse{
		ProfileID: feed.ProfileID,
		Status:    feed.Status,
		Source:    feed.Source,
		FetchedAt: feed.FetchedAt,
		Degraded:  feed.Degraded,
		Failed:    feed.Failed,
		Filtered:  feed.Filtered,
		Sort:      string(mode),
		Videos:    interleave.ForDisplay(videos, mode, scores, nil),
	}
}

// LoadMore returns the next batch of one channel's uploads.
// POST /api/profiles/{id}/channels/{channelID}/more
func (h *Handler) LoadMore(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "id")
	channelID := chi.URLParam(r, "channelID")

	videos, err := h.feeds.LoadMoreForChannel(r.Context(), profileID, channelID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"channel_id": channelID,
		"videos":     videos,
	})
}

type watchRequest struct {
	VideoID   string `json:"video_id"`
	ChannelID string `json:"channel_id"`
	Title     string `json:"title"`
}

// RecordWatch accepts a watch event and records it in the background.
// POST /api/profiles/{id}/watch
func (h *Handler) RecordWatch(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "id")

	var req watchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.VideoID == "" || req.ChannelID == "" {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "video_id and channel_id are required")
		return
	}

	video := domain.Video{ID: req.VideoID, ChannelID: req.ChannelID, Title: req.Title}
	ctx := context.WithoutCancel(r.Context())

	go func() {
		if err := h.interest.RecordWatch(ctx, profileID, video); err != nil {
			h.logger.Warn("failed to record watch",
				"profile_id", profileID,
				"video_id", video.ID,
				"error", err,
			)
		}
	}()

	w.WriteHeader(http.StatusAccepted)
}

// GetInterest returns the per-channel interest scores.
// GET /api/profiles/{id}/interest
func (h *Handler) GetInterest(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "id")

	scores, err := h.interest.Scores(r.Context(), profileID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"profile_id": profileID,
		"scores":     scores,
	})
}

func isTruthy(v string) bool {
	switch v {
	case "1", "true", "yes":
		return true
	}
	return false
}
