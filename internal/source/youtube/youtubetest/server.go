// Package youtubetest provides an in-process stand-in for the subset of the
// YouTube Data API used by the fetcher.
package youtubetest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"
)

type Item struct {
	VideoID     string
	Title       string
	PublishedAt time.Time
	Duration    string // ISO-8601, e.g. "PT3M20S"
}

type Channel struct {
	ID          string
	Title       string
	UploadsID   string
	IconURL     string
	Description string
	Pages       [][]Item
}

// Server serves channels, playlistItems, videos and search from fixtures.
// Page tokens are opaque "page-N" strings.
type Server struct {
	*httptest.Server

	mu            sync.Mutex
	channels      map[string]*Channel
	byPlaylist    map[string]*Channel
	durations     map[string]string
	failDurations bool
	calls         map[string]int
	keys          map[string]int
}

func NewServer(channels ...*Channel) *Server {
	s := &Server{
		channels:   make(map[string]*Channel),
		byPlaylist: make(map[string]*Channel),
		durations:  make(map[string]string),
		calls:      make(map[string]int),
		keys:       make(map[string]int),
	}
	for _, ch := range channels {
		s.AddChannel(ch)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/youtube/v3/channels", s.handleChannels)
	mux.HandleFunc("/youtube/v3/playlistItems", s.handlePlaylistItems)
	mux.HandleFunc("/youtube/v3/videos", s.handleVideos)
	mux.HandleFunc("/youtube/v3/search", s.handleSearch)
	s.Server = httptest.NewServer(mux)
	return s
}

// BaseURL is the value to configure as the fetcher base URL.
func (s *Server) BaseURL() string {
	return s.Server.URL + "/"
}

func (s *Server) AddChannel(ch *Channel) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ch.UploadsID == "" {
		ch.UploadsID = "UU" + strings.TrimPrefix(ch.ID, "UC")
	}
	s.channels[ch.ID] = ch
	s.byPlaylist[ch.UploadsID] = ch
	for _, page := range ch.Pages {
		for _, item := range page {
			s.durations[item.VideoID] = item.Duration
		}
	}
}

// FailDurations makes every videos.list call answer with a quota error.
func (s *Server) FailDurations(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failDurations = fail
}

// Calls reports how many requests hit the named endpoint.
func (s *Server) Calls(endpoint string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[endpoint]
}

// KeyUsed reports how many requests carried the given API key.
func (s *Server) KeyUsed(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys[key]
}

func (s *Server) track(endpoint string, r *http.Request) {
	s.calls[endpoint]++
	s.keys[r.URL.Query().Get("key")]++
}

func (s *Server) handleChannels(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.track("channels", r)

	items := []map[string]any{}
	for _, id := range ids(r) {
		ch, ok := s.channels[id]
		if !ok {
			continue
		}
		items = append(items, map[string]any{
			"id": ch.ID,
			"contentDetails": map[string]any{
				"relatedPlaylists": map[string]any{"uploads": ch.UploadsID},
			},
			"snippet": map[string]any{
				"title":      ch.Title,
				"thumbnails": thumbnails(ch.IconURL),
			},
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handlePlaylistItems(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.track("playlistItems", r)

	ch, ok := s.byPlaylist[r.URL.Query().Get("playlistId")]
	if !ok {
		writeError(w, http.StatusNotFound, "playlistNotFound")
		return
	}

	page := 0
	if token := r.URL.Query().Get("pageToken"); token != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(token, "page-"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalidPageToken")
			return
		}
		page = n
	}

	items := []map[string]any{}
	if page < len(ch.Pages) {
		for _, item := range ch.Pages[page] {
			published := item.PublishedAt.UTC().Format(time.RFC3339)
			items = append(items, map[string]any{
				"snippet": map[string]any{
					"title":        item.Title,
					"publishedAt":  published,
					"channelId":    ch.ID,
					"channelTitle": ch.Title,
					"resourceId":   map[string]any{"kind": "youtube#video", "videoId": item.VideoID},
					"thumbnails":   thumbnails("https://i.ytimg.com/vi/" + item.VideoID + "/hqdefault.jpg"),
				},
				"contentDetails": map[string]any{
					"videoId":          item.VideoID,
					"videoPublishedAt": published,
				},
			})
		}
	}

	resp := map[string]any{"items": items}
	if page+1 < len(ch.Pages) {
		resp["nextPageToken"] = fmt.Sprintf("page-%d", page+1)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVideos(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.track("videos", r)

	if s.failDurations {
		writeError(w, http.StatusForbidden, "quotaExceeded")
		return
	}

	items := []map[string]any{}
	for _, id := range ids(r) {
		d, ok := s.durations[id]
		if !ok {
			continue
		}
		items = append(items, map[string]any{
			"id":             id,
			"contentDetails": map[string]any{"duration": d},
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.track("search", r)

	q := strings.ToLower(r.URL.Query().Get("q"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("maxResults"))

	items := []map[string]any{}
	for _, ch := range s.channels {
		if q != "" && !strings.Contains(strings.ToLower(ch.Title), q) {
			continue
		}
		if limit > 0 && len(items) >= limit {
			break
		}
		items = append(items, map[string]any{
			"id": map[string]any{"kind": "youtube#channel", "channelId": ch.ID},
			"snippet": map[string]any{
				"channelId":    ch.ID,
				"channelTitle": ch.Title,
				"title":        ch.Title,
				"description":  ch.Description,
				"thumbnails":   thumbnails(ch.IconURL),
			},
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// ids accepts both repeated id parameters and comma-separated lists.
func ids(r *http.Request) []string {
	var out []string
	for _, v := range r.URL.Query()["id"] {
		for _, id := range strings.Split(v, ",") {
			if id != "" {
				out = append(out, id)
			}
		}
	}
	return out
}

func thumbnails(url string) map[string]any {
	if url == "" {
		return map[string]any{}
	}
	return map[string]any{"default": map[string]any{"url": url}}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, reason string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"code":    status,
			"message": reason,
			"errors":  []map[string]any{{"reason": reason, "message": reason}},
		},
	})
}

// LongAndShortPage builds a page with long videos first, then shorts.
func LongAndShortPage(prefix string, start time.Time, long, short int) []Item {
	items := make([]Item, 0, long+short)
	for i := 0; i < long+short; i++ {
		d := "PT3M20S"
		if i >= long {
			d = "PT30S"
		}
		items = append(items, Item{
			VideoID:     fmt.Sprintf("%s-%02d", prefix, i),
			Title:       fmt.Sprintf("%s video %d", prefix, i),
			PublishedAt: start.Add(-time.Duration(i) * time.Hour),
			Duration:    d,
		})
	}
	return items
}
