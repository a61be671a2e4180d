package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// activeWindow bounds how long a league stays in the refresh rotation
// after its last user request.
const activeWindow = 10 * time.Minute

// CacheRefresher keeps the live-week matchup cache warm for leagues that
// have seen recent traffic, so score-check bursts land on fresh cache
// entries instead of stampeding the provider.
type CacheRefresher struct {
	data   *LeagueDataService
	cron   *cron.Cron
	spec   string
	logger *logrus.Logger

	mu        sync.Mutex
	isRunning bool
	runCount  int
	lastError string
}

// NewCacheRefresher creates a refresher with the given cron spec
// (e.g. "@every 30s").
func NewCacheRefresher(data *LeagueDataService, spec string, logger *logrus.Logger) *CacheRefresher {
	cronLogger := cron.VerbosePrintfLogger(logger)
	return &CacheRefresher{
		data:   data,
		cron:   cron.New(cron.WithLogger(cronLogger)),
		spec:   spec,
		logger: logger,
	}
}

// Start schedules the refresh job and starts the scheduler.
func (r *CacheRefresher) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isRunning {
		return fmt.Errorf("cache refresher is already running")
	}

	if _, err := r.cron.AddFunc(r.spec, r.runOnce); err != nil {
		return fmt.Errorf("failed to schedule refresh job: %w", err)
	}

	r.cron.Start()
	r.isRunning = true

	r.logger.WithFields(logrus.Fields{
		"component": "refresher",
		"schedule":  r.spec,
	}).Info("Cache refresher started")
	return nil
}

func (r *CacheRefresher) runOnce() {
	log := r.logger.WithField("component", "refresher")

	defer func() {
		if rec := recover(); rec != nil {
			log.WithField("panic", rec).Error("Refresh job panicked")
			r.mu.Lock()
			r.lastError = fmt.Sprintf("panic: %v", rec)
			r.mu.Unlock()
		}
	}()

	refs := r.data.ActiveLeagues(activeWindow)
	if len(refs) == 0 {
		return
	}

	refreshed := 0
	for _, ref := range refs {
		// A failed refresh for one league must not stop the rest; the
		// next user request falls back to a normal cached fetch.
		if err := r.data.RefreshMatchups(context.Background(), ref); err != nil {
			log.WithFields(logrus.Fields{
				"league_id": ref.LeagueID,
				"season":    ref.Season,
			}).WithError(err).Warn("Failed to refresh league")
			continue
		}
		refreshed++
	}

	r.mu.Lock()
	r.runCount++
	r.mu.Unlock()

	log.WithFields(logrus.Fields{
		"active":    len(refs),
		"refreshed": refreshed,
	}).Debug("Refresh cycle completed")
}

// Status reports the refresher's run state for health endpoints.
func (r *CacheRefresher) Status() map[string]interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return map[string]interface{}{
		"is_running": r.isRunning,
		"run_count":  r.runCount,
		"last_error": r.lastError,
	}
}

// Stop stops the scheduler and waits briefly for a running job.
func (r *CacheRefresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isRunning {
		return
	}

	ctx := r.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		r.logger.WithField("component", "refresher").Warn("Refresher stop timed out")
	}
	r.isRunning = false
}
