// Package maintenance runs scheduled housekeeping against the database.
package maintenance

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// SessionCleaner is the storage the scheduler prunes.
type SessionCleaner interface {
	CleanExpiredSessions() (int64, error)
}

// Scheduler periodically removes expired login sessions.
type Scheduler struct {
	db       SessionCleaner
	cron     *cron.Cron
	schedule string
	mu       sync.Mutex
	running  bool
}

// NewScheduler creates a scheduler that cleans sessions on the given cron spec
// (standard five-field syntax or descriptors such as "@hourly").
func NewScheduler(db SessionCleaner, schedule string) (*Scheduler, error) {
	s := &Scheduler{
		db:       db,
		cron:     cron.New(),
		schedule: schedule,
	}
	if _, err := s.cron.AddFunc(schedule, func() { s.RunOnce() }); err != nil {
		return nil, fmt.Errorf("invalid session cleanup schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start starts the cron scheduler
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.cron.Start()
	s.running = true

	log.Info().Str("schedule", s.schedule).Msg("Session cleanup scheduled")
}

// Stop stops the scheduler and waits for a running cleanup to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
}

// RunOnce removes expired sessions immediately.
func (s *Scheduler) RunOnce() int64 {
	removed, err := s.db.CleanExpiredSessions()
	if err != nil {
		log.Error().Err(err).Msg("Failed to clean expired sessions")
		return 0
	}
	if removed > 0 {
		log.Info().Int64("removed", removed).Msg("Cleaned expired sessions")
	}
	return removed
}
