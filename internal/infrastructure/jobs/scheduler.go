// Package jobs runs the periodic background work of the portal.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const jobTimeout = 30 * time.Second

// Revalidator re-checks the logged-in user against the credential store.
type Revalidator interface {
	Revalidate(ctx context.Context) error
}

type Scheduler struct {
	cron     *cron.Cron
	sessions Revalidator
	log      zerolog.Logger
}

func NewScheduler(sessions Revalidator, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		sessions: sessions,
		log:      log,
	}
}

// Start registers the revalidation job on spec (standard cron syntax or a
// descriptor such as "@every 1m") and starts the scheduler. An empty spec
// disables the job.
func (s *Scheduler) Start(spec string) error {
	if spec == "" {
		return nil
	}
	if _, err := s.cron.AddFunc(spec, s.revalidate); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info().Str("schedule", spec).Msg("session revalidation scheduled")
	return nil
}

// Stop halts the scheduler. The returned context is done once running jobs
// have finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) revalidate() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.sessions.Revalidate(ctx); err != nil {
		s.log.Error().Err(err).Msg("session revalidation failed")
	}
}
