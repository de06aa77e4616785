package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gridironlabs/league-archive/internal/api"
	"github.com/gridironlabs/league-archive/internal/identity"
	"github.com/gridironlabs/league-archive/internal/services"
	"github.com/gridironlabs/league-archive/internal/snapshots"
	"github.com/gridironlabs/league-archive/internal/store"
	"github.com/gridironlabs/league-archive/pkg/config"
	"github.com/gridironlabs/league-archive/pkg/logger"
)

// loadTimeout bounds one full snapshot load across every category and season.
const loadTimeout = 2 * time.Minute

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.InitLogger("", cfg.IsDevelopment())
	log.Info("Starting league archive server")

	// Redis is optional: without it the service still works, it just
	// recomputes aggregates on every request.
	var cache *services.CacheService
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.WithError(err).Warn("Invalid REDIS_URL, running without cache")
		} else {
			client := redis.NewClient(opts)
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			if err := client.Ping(pingCtx).Err(); err != nil {
				log.WithError(err).Warn("Redis unreachable, running without cache")
			} else {
				cache = services.NewCacheService(client)
				log.Info("Connected to Redis")
			}
			cancel()
		}
	}

	var source snapshots.Source
	if cfg.SnapshotBaseURL != "" {
		source = snapshots.NewHTTPSource(
			cfg.SnapshotBaseURL,
			cfg.SnapshotTimeout,
			cfg.CircuitBreakerThreshold,
			cfg.SnapshotFetchRetries,
			log,
		)
		log.WithField("base_url", cfg.SnapshotBaseURL).Info("Using HTTP snapshot source")
	} else {
		source = snapshots.NewFileSource(cfg.SnapshotDir)
		log.WithField("dir", cfg.SnapshotDir).Info("Using file snapshot source")
	}

	fallback := identity.ParseFallbackSource(cfg.FallbackIDSource)
	loader := snapshots.NewLoader(source, cfg.LeagueSeasons, fallback, log)
	archiveStore := store.New()

	refreshInterval, err := time.ParseDuration(cfg.RefreshInterval)
	if err != nil {
		log.WithError(err).Warn("Invalid REFRESH_INTERVAL, using 15m")
		refreshInterval = 15 * time.Minute
	}

	refresher := services.NewRefresherService(loader, archiveStore, log, refreshInterval, loadTimeout)
	if err := refresher.Start(); err != nil {
		log.WithError(err).Fatal("Failed to start snapshot refresher")
	}
	defer refresher.Stop()

	// Watch the snapshot directory so local file drops show up without
	// waiting for the next scheduled refresh.
	if cfg.SnapshotBaseURL == "" && cfg.WatchSnapshotDir {
		watcher, err := store.NewWatcher(cfg.SnapshotDir, func() {
			refresher.Refresh()
		}, log)
		if err != nil {
			log.WithError(err).Warn("Failed to watch snapshot directory")
		} else {
			defer watcher.Close()
		}
	}

	archive := services.NewArchiveService(archiveStore, cache, cfg.AggregateCacheTTL, log)
	prefs := services.NewPreferencesService(cache)

	router := api.SetupRouter(cfg, archive, prefs, refresher)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}
	log.Info("Server exited")
}
