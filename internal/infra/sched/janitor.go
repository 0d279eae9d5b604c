package sched

import (
	"context"
	"fmt"
	"time"

	"travel-planner/internal/domain/model"
	"travel-planner/internal/domain/ports/repository"
	"travel-planner/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Janitor periodically fails plan jobs stranded in a non-terminal state.
// Trackers normally enforce the deadline themselves; the janitor catches
// jobs orphaned by a process restart, where no tracker goroutine survives
// to finish them.
type Janitor struct {
	interval time.Duration
	deadline time.Duration
	jobs     repository.PlanJobRepository
	log      *zerolog.Logger
}

func NewJanitor(interval, deadline time.Duration, jobs repository.PlanJobRepository, logger *zerolog.Logger) *Janitor {
	jLog := logger.With().Str("component", "Janitor").Logger()
	return &Janitor{
		interval: interval,
		deadline: deadline,
		jobs:     jobs,
		log:      &jLog,
	}
}

func (j *Janitor) Run(ctx context.Context) error {
	j.log.Info().Msg("Starting job janitor")
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.log.Info().Msg("Stopping job janitor")
			return ctx.Err()
		case <-ticker.C:
			n, err := j.sweep(ctx)
			if err != nil {
				j.log.Error().Err(err).Msg("janitor sweep error")
			}
			if n > 0 {
				j.log.Info().Int("count", n).Msg("stranded plan jobs failed")
			}
		}
	}
}

func (j *Janitor) sweep(ctx context.Context) (int, error) {
	stuck, err := j.jobs.ListStuck(ctx, int(j.deadline.Seconds()))
	if err != nil {
		return 0, err
	}
	failed := 0
	for _, job := range stuck {
		job.FailTerminal(fmt.Sprintf("no terminal state within %s", j.deadline))
		if job.State != model.StateFailed {
			// transition refused (e.g. never submitted); leave untouched
			continue
		}
		if err := j.jobs.Save(ctx, nil, job); err != nil {
			j.log.Error().Err(err).Str("plan_id", job.ID).Msg("failed to save swept job")
			continue
		}
		metrics.IncJobTimeout()
		failed++
	}
	return failed, nil
}
