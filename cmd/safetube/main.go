package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"safetube/internal/cache"
	"safetube/internal/config"
	"safetube/internal/domain"
	"safetube/internal/httpapi"
	"safetube/internal/interest"
	"safetube/internal/metrics"
	"safetube/internal/publisher"
	"safetube/internal/scheduler"
	"safetube/internal/service"
	"safetube/internal/settings"
	"safetube/internal/source/rss"
	"safetube/internal/source/youtube"
	"safetube/internal/storage/postgres"
	"safetube/internal/storage/redis"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	// Stores
	txManager := postgres.NewTransactionManager(db)
	profileStore := postgres.NewProfileStore(db, txManager)
	watchStore := postgres.NewWatchHistoryStore(db)
	settingsStore := postgres.NewSettingsStore(db)

	if _, err := profileStore.EnsureDefault(ctx); err != nil {
		logger.Error("failed to seed default profile", "error", err)
		os.Exit(1)
	}

	runtimeSettings, err := settings.New(ctx, settingsStore, domain.Settings{
		APIKey:       cfg.YouTube.APIKey,
		FilterShorts: cfg.FilterShorts(),
	}, logger)
	if err != nil {
		logger.Error("failed to load settings", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewCollector(registry)

	cacheStore := redis.Connect(ctx, cfg.Redis.URL, cfg.Cache.Retention, logger)
	defer cacheStore.Close()
	videoCache := cache.New(cacheStore, cfg.Cache.TTL, recorder, logger)

	// Events are optional; a nil publisher is never stored in an interface.
	var (
		progressEvents service.EventPublisher
		watchEvents    interest.WatchPublisher
	)
	if cfg.RabbitMQ.URL != "" {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:       cfg.RabbitMQ.URL,
			Exchange:  cfg.RabbitMQ.Exchange,
			QueueName: cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		progressEvents, watchEvents = rabbitMQ, rabbitMQ
	} else {
		logger.Info("rabbitmq url not configured, events disabled")
	}

	// Sources
	apiFetcher := youtube.New(youtube.Config{
		BaseURL:           cfg.YouTube.BaseURL,
		PageSize:          cfg.YouTube.PageSize,
		MinLongVideos:     cfg.YouTube.MinLongVideos,
		MaxPages:          cfg.YouTube.MaxPages,
		RequestsPerSecond: cfg.YouTube.RequestsPerSecond,
		Timeout:           cfg.YouTube.Timeout,
		MaxAttempts:       cfg.YouTube.Retry.MaxAttempts,
		InitialBackoff:    cfg.YouTube.Retry.InitialBackoff,
		MaxBackoff:        cfg.YouTube.Retry.MaxBackoff,
		ShortThreshold:    cfg.Filter.ShortThreshold,
	}, runtimeSettings, runtimeSettings, recorder, logger)

	httpClient := &http.Client{}
	transports := make([]rss.Transport, 0, len(cfg.Feed.Relays))
	for _, relay := range cfg.Feed.Relays {
		t, err := rss.NewTransport(relay.Kind, relay.URL, httpClient, cfg.Feed.MaxBodySize)
		if err != nil {
			logger.Error("invalid feed relay", "kind", relay.Kind, "error", err)
			os.Exit(1)
		}
		transports = append(transports, t)
	}
	feedFetcher := rss.New(rss.Config{
		BaseURL:        cfg.Feed.BaseURL,
		AttemptTimeout: cfg.Feed.AttemptTimeout,
	}, transports, runtimeSettings, recorder, logger)

	tracker := interest.NewTracker(watchStore, txManager, watchEvents, logger)

	aggregator := service.NewAggregator(
		profileStore,
		runtimeSettings,
		apiFetcher,
		feedFetcher,
		apiFetcher,
		videoCache,
		progressEvents,
		recorder,
		logger,
		service.Config{
			MaxConcurrent: cfg.Fetch.MaxConcurrent,
			FetchTimeout:  cfg.Fetch.Timeout,
		},
	)

	sched := scheduler.NewScheduler(aggregator, cfg.Refresh.Interval, cfg.Refresh.Timeout, logger)

	server := &http.Server{
		Addr: cfg.HTTP.Addr,
		Handler: httpapi.NewRouter(&httpapi.RouterDeps{
			Feeds:    aggregator,
			Profiles: profileStore,
			Cache:    videoCache,
			Interest: tracker,
			Search:   apiFetcher,
			Settings: runtimeSettings,
			Metrics:  metrics.Handler(registry),
			Logger:   logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	go func() {
		if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("scheduler error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
		defer done()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("starting safetube",
		"addr", cfg.HTTP.Addr,
		"source", aggregatorSource(runtimeSettings),
		"refresh_interval", cfg.Refresh.Interval,
		"filter_shorts", runtimeSettings.FilterShorts(),
	)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server error", "error", err)
		os.Exit(1)
	}
}

func aggregatorSource(creds service.CredentialProvider) domain.SourceKind {
	if creds.APIKey() != "" {
		return domain.SourceAPI
	}
	return domain.SourceFeed
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
