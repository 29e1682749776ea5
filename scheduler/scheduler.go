// Package scheduler runs the background jobs of the CE assist API: idle
// session eviction, catalog gauges, and a periodic health log.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/giygas/ceassist-api/interfaces"
	"github.com/giygas/ceassist-api/logging"
	"github.com/giygas/ceassist-api/metrics"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler evicts idle sessions and monitors the service
type Scheduler struct {
	dataStore      interfaces.DataStore
	sessions       interfaces.SessionStore
	sessionTTL     time.Duration
	sweepInterval  time.Duration
	healthInterval time.Duration
	scheduler      *gocron.Scheduler

	stopOnce sync.Once
	done     chan struct{}
	now      func() time.Time
}

// NewScheduler creates a scheduler that sweeps sessions idle for longer
// than sessionTTL every sweepInterval
func NewScheduler(dataStore interfaces.DataStore, sessions interfaces.SessionStore, sessionTTL, sweepInterval time.Duration) *Scheduler {
	return &Scheduler{
		dataStore:      dataStore,
		sessions:       sessions,
		sessionTTL:     sessionTTL,
		sweepInterval:  sweepInterval,
		healthInterval: 1 * time.Hour,
		scheduler:      gocron.NewScheduler(time.Local),
		done:           make(chan struct{}),
		now:            time.Now,
	}
}

// Start publishes the catalog gauges and schedules the session sweep
func (s *Scheduler) Start() error {
	if s.sweepInterval <= 0 || s.sessionTTL <= 0 {
		return fmt.Errorf("invalid session sweep settings: ttl=%s interval=%s", s.sessionTTL, s.sweepInterval)
	}

	s.publishCatalogMetrics()

	_, err := s.scheduler.Every(s.sweepInterval).Do(s.sweepSessions)
	if err != nil {
		logging.Error("Failed to schedule session sweep", "error", err)
		return fmt.Errorf("failed to schedule session sweep: %w", err)
	}

	s.scheduler.StartAsync()

	s.startHealthMonitoring()

	logging.Info("Scheduler started",
		"session_ttl", s.sessionTTL.String(),
		"sweep_interval", s.sweepInterval.String(),
	)
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.scheduler.Stop()
		close(s.done)
	})
}

// sweepSessions evicts every session idle for longer than the TTL
func (s *Scheduler) sweepSessions() {
	cutoff := s.now().Add(-s.sessionTTL)
	evicted := s.sessions.Sweep(cutoff)
	remaining := s.sessions.Count()

	metrics.SessionsEvictedTotal.Add(float64(evicted))
	metrics.SessionsActive.Set(float64(remaining))

	if evicted > 0 {
		logging.Info("Evicted idle sessions", "evicted", evicted, "remaining", remaining)
	}
}

func (s *Scheduler) publishCatalogMetrics() {
	metrics.CatalogRecords.WithLabelValues("products").Set(float64(len(s.dataStore.GetProducts())))
	metrics.CatalogRecords.WithLabelValues("devices").Set(float64(len(s.dataStore.GetDevices())))
	metrics.CatalogRecords.WithLabelValues("reimbursement").Set(float64(len(s.dataStore.GetReimbursement())))
}

// startHealthMonitoring logs a warning while the catalog is empty
func (s *Scheduler) startHealthMonitoring() {
	go func() {
		ticker := time.NewTicker(s.healthInterval)
		defer ticker.Stop()

		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				s.checkHealth()
			}
		}
	}()
}

func (s *Scheduler) checkHealth() {
	if len(s.dataStore.GetProducts()) == 0 || len(s.dataStore.GetDevices()) == 0 {
		logging.Warn("Catalog is empty, lookups will fail")
		return
	}
	logging.Debug("Scheduler health check",
		"sessions", s.sessions.Count(),
		"uptime", time.Since(s.dataStore.GetServerStartTime()).Round(time.Second).String(),
	)
}
