// Package scheduler runs the nightly horizon generation job.
package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/GrupoUS/aegiswallet-sub008/internal/logger"
	"github.com/GrupoUS/aegiswallet-sub008/internal/services"
)

// Scheduler periodically regenerates the upcoming event horizon for all
// active recurring events.
type Scheduler struct {
	cron        *cron.Cron
	generation  services.GenerationServicer
	spec        string
	horizonDays int
}

// New creates a scheduler running the given cron spec with the given horizon.
func New(generation services.GenerationServicer, spec string, horizonDays int) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		generation:  generation,
		spec:        spec,
		horizonDays: horizonDays,
	}
}

// Start registers the generation job and starts the cron loop. It also runs
// one generation immediately so a freshly deployed instance serves a full
// horizon without waiting for the first tick.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.run); err != nil {
		return err
	}
	s.cron.Start()
	logger.Get().Infow("generation scheduler started", "spec", s.spec, "horizon_days", s.horizonDays)

	go s.run()
	return nil
}

// Stop stops the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Get().Info("generation scheduler stopped")
}

func (s *Scheduler) run() {
	started := time.Now()
	if err := s.generation.GenerateHorizon(started, s.horizonDays); err != nil {
		logger.Get().Errorw("scheduled horizon generation failed", "error", err)
		return
	}
	logger.Get().Infow("scheduled horizon generation finished", "duration_ms", time.Since(started).Milliseconds())
}
