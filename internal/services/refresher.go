package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/gridironlabs/league-archive/internal/snapshots"
	"github.com/gridironlabs/league-archive/internal/store"
)

// RefresherService reloads the snapshot dataset on a schedule and on
// demand. Every load carries a request token; a load superseded by a newer
// request (season re-export, manual refresh) is discarded instead of
// overwriting fresher data.
type RefresherService struct {
	loader      *snapshots.Loader
	store       *store.ArchiveStore
	logger      *logrus.Logger
	cron        *cron.Cron
	interval    time.Duration
	loadTimeout time.Duration

	mu        sync.Mutex
	isRunning bool
	lastError string
	lastRun   time.Time
}

func NewRefresherService(
	loader *snapshots.Loader,
	archiveStore *store.ArchiveStore,
	logger *logrus.Logger,
	interval time.Duration,
	loadTimeout time.Duration,
) *RefresherService {
	return &RefresherService{
		loader:      loader,
		store:       archiveStore,
		logger:      logger,
		cron:        cron.New(),
		interval:    interval,
		loadTimeout: loadTimeout,
	}
}

// Start schedules periodic refreshes and kicks off the initial load.
func (s *RefresherService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("refresher is already running")
	}

	schedule := fmt.Sprintf("@every %s", s.interval.String())
	if _, err := s.cron.AddFunc(schedule, func() { s.Refresh() }); err != nil {
		return fmt.Errorf("failed to schedule refresher: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	// Initial load
	go s.Refresh()

	s.logger.Info("Snapshot refresher started")
	return nil
}

// Stop halts the scheduled refreshes.
func (s *RefresherService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.logger.Info("Snapshot refresher stopped")
}

// Refresh runs one tokened load. Returns the applied dataset, or nil when
// the load failed or arrived stale.
func (s *RefresherService) Refresh() *snapshots.Dataset {
	token := s.store.Begin()

	ctx := context.Background()
	if s.loadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.loadTimeout)
		defer cancel()
	}

	ds, err := s.loader.Load(ctx)

	s.mu.Lock()
	s.lastRun = time.Now().UTC()
	if err != nil {
		s.lastError = err.Error()
	} else {
		s.lastError = ""
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Errorf("Snapshot refresh failed: %v", err)
		return nil
	}

	if !s.store.ApplyIf(token, ds) {
		s.logger.WithField("generation", ds.Generation).Info("Discarding stale snapshot load")
		return nil
	}

	s.logger.WithField("generation", ds.Generation).Info("Snapshot dataset applied")
	return ds
}

// GetStatus returns the current refresher status.
func (s *RefresherService) GetStatus() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	nextRuns := make([]time.Time, 0, len(entries))
	for _, entry := range entries {
		nextRuns = append(nextRuns, entry.Next)
	}

	status := map[string]interface{}{
		"is_running":       s.isRunning,
		"refresh_interval": s.interval.String(),
		"next_runs":        nextRuns,
	}
	if !s.lastRun.IsZero() {
		status["last_run"] = s.lastRun
	}
	if s.lastError != "" {
		status["last_error"] = s.lastError
	}
	return status
}
