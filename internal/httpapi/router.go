// Package httpapi exposes the feed pipeline to the parent and child UIs.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterDeps struct {
	Feeds    FeedService
	Profiles ProfileService
	Cache    FeedCache
	Interest InterestTracker
	Search   ChannelSearcher
	Settings SettingsService
	Metrics  http.Handler
	Logger   *slog.Logger
}

type Handler struct {
	feeds    FeedService
	profiles ProfileService
	cache    FeedCache
	interest InterestTracker
	search   ChannelSearcher
	settings SettingsService
	logger   *slog.Logger
}

func NewRouter(deps *RouterDeps) http.Handler {
	h := &Handler{
		feeds:    deps.Feeds,
		profiles: deps.Profiles,
		cache:    deps.Cache,
		interest: deps.Interest,
		search:   deps.Search,
		settings: deps.Settings,
		logger:   deps.Logger.With("component", "http"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/settings", h.GetSettings)
		r.Put("/settings", h.UpdateSettings)

		r.Get("/channels/search", h.SearchChannels)

		r.Route("/profiles", func(r chi.Router) {
			r.Get("/", h.ListProfiles)
			r.Post("/", h.CreateProfile)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetProfile)
				r.Put("/", h.ImportProfile)
				r.Delete("/", h.DeleteProfile)
				r.Put("/current", h.SetCurrentProfile)

				r.Get("/videos", h.ListVideos)
				r.Get("/videos/stream", h.StreamVideos)
				r.Post("/watch", h.RecordWatch)
				r.Get("/interest", h.GetInterest)

				r.Post("/channels", h.AddChannel)
				r.Route("/channels/{channelID}", func(r chi.Router) {
					r.Delete("/", h.RemoveChannel)
					r.Post("/more", h.LoadMore)
				})
			})
		})
	})

	return r
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Debug("request served",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
