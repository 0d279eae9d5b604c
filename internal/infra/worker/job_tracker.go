package worker

import (
	"context"
	"fmt"
	"time"

	"travel-planner/internal/domain/model"
	"travel-planner/internal/domain/ports/adapter"
	"travel-planner/internal/domain/ports/repository"
	"travel-planner/internal/domain/ports/usecase"
	"travel-planner/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// StatusStore receives the client-observed snapshot after every change so
// API reads stay off the database. Implemented by the redis status cache.
type StatusStore interface {
	Store(ctx context.Context, job *model.PlanJob) error
}

// EpochSource answers which submission is the current one for a user.
// A tracker whose job carries a stale epoch discards its responses and
// stops: a newer submission has replaced it. Zero means the source has
// no record of the user and the job is taken at face value.
type EpochSource interface {
	Current(userID string) uint64
}

// Tracker owns the polling loop for plan jobs. One Track call drives one
// job from polling to a terminal state; the caller runs it on the pool.
//
// The loop polls at the server-recommended interval, backs off
// exponentially while polls fail, gives up after maxPollFailures
// consecutive failures, and enforces a wall-clock deadline measured from
// submission so a job that never terminates upstream cannot poll forever.
type Tracker struct {
	planner         adapter.PlannerServiceAdapter
	jobs            repository.PlanJobRepository
	itins           repository.ItineraryRepository
	statuses        StatusStore
	epochs          EpochSource
	rewards         usecase.RewardManager
	maxPollFailures int
	deadline        time.Duration
	maxBackoff      time.Duration
	log             *zerolog.Logger
}

func NewTracker(
	planner adapter.PlannerServiceAdapter,
	jobs repository.PlanJobRepository,
	itins repository.ItineraryRepository,
	statuses StatusStore,
	epochs EpochSource,
	rewards usecase.RewardManager,
	maxPollFailures int,
	deadline time.Duration,
	logger *zerolog.Logger,
) *Tracker {
	trLog := logger.With().Str("component", "JobTracker").Logger()
	if maxPollFailures <= 0 {
		maxPollFailures = 5
	}
	if deadline <= 0 {
		deadline = 5 * time.Minute
	}
	return &Tracker{
		planner:         planner,
		jobs:            jobs,
		itins:           itins,
		statuses:        statuses,
		epochs:          epochs,
		rewards:         rewards,
		maxPollFailures: maxPollFailures,
		deadline:        deadline,
		maxBackoff:      time.Minute,
		log:             &trLog,
	}
}

// Track runs the polling loop for one job until it reaches a terminal
// state or ctx is cancelled. The job must already be in the polling state
// with a handle attached. Track is the job's only writer.
func (t *Tracker) Track(ctx context.Context, job *model.PlanJob) error {
	if job.Handle == nil || job.State != model.StatePolling {
		return fmt.Errorf("job %s is not trackable in state %s", job.ID, job.State)
	}
	log := t.log.With().Str("job_id", job.Handle.JobID).Str("user_id", job.UserID).Logger()
	log.Info().Dur("interval", job.Handle.PollInterval).Msg("tracking plan job")

	delay := job.Handle.PollInterval
	for {
		if remaining := t.deadline - time.Since(job.SubmittedAt); remaining <= 0 {
			t.failJob(ctx, job, fmt.Sprintf("no terminal state within %s", t.deadline))
			metrics.IncJobTimeout()
			log.Warn().Msg("plan job timed out client-side")
			return nil
		}

		select {
		case <-ctx.Done():
			// Shutdown mid-job: leave the record as-is, the janitor sweeps
			// it up on the next run.
			return ctx.Err()
		case <-time.After(delay):
		}

		if t.stale(job) {
			log.Info().Uint64("epoch", job.Epoch).Msg("job superseded by newer submission, abandoning")
			return nil
		}

		start := time.Now()
		st, err := t.planner.Status(ctx, job.Handle.JobID)
		latency := int(time.Since(start) / time.Millisecond)
		metrics.ObservePoll(err == nil, latency)

		if err != nil {
			n := job.NotePollFailure()
			log.Warn().Err(err).Int("consecutive_failures", n).Msg("poll failed")
			if n >= t.maxPollFailures {
				metrics.ObservePollFailureStreak(n)
				t.failJob(ctx, job, fmt.Sprintf("giving up after %d consecutive poll failures: %v", n, err))
				return nil
			}
			t.persist(ctx, job)
			delay = t.backoff(job.Handle.PollInterval, n)
			continue
		}
		if streak := job.PollFailures; streak > 0 {
			metrics.ObservePollFailureStreak(streak)
		}
		delay = job.Handle.PollInterval

		// Discard a response that resolved after a newer submission took over.
		if t.stale(job) {
			log.Info().Msg("discarding poll response for superseded job")
			return nil
		}

		if st.State == model.ServerJobCompleted {
			return t.finish(ctx, job, st, &log)
		}

		if err := job.ApplyStatus(st); err != nil {
			// Regressed or out-of-order snapshot; skip it and poll again.
			log.Warn().Err(err).Str("server_state", string(st.State)).Msg("dropped status snapshot")
			continue
		}
		t.persist(ctx, job)

		if job.State == model.StateFailed {
			metrics.ObserveJobFinished("failed", time.Since(job.SubmittedAt).Seconds())
			log.Info().Str("error", job.FailureReason).Msg("plan job failed upstream")
			return nil
		}
	}
}

// finish performs the exactly-once result fetch and the completion
// side-effects. The completed transition is applied only after the
// itinerary is in hand, so a completed job always has its document.
func (t *Tracker) finish(ctx context.Context, job *model.PlanJob, st model.JobStatus, log *zerolog.Logger) error {
	it, err := t.planner.Result(ctx, job.Handle.ItineraryUUID)
	if err != nil {
		t.failJob(ctx, job, err.Error())
		log.Error().Err(err).Msg("itinerary fetch failed after completion")
		return nil
	}
	if err := job.ApplyStatus(st); err != nil {
		log.Warn().Err(err).Msg("completed status rejected")
		return nil
	}
	if err := t.itins.Save(ctx, nil, &it); err != nil {
		log.Error().Err(err).Msg("failed to persist itinerary")
	}
	t.persist(ctx, job)
	metrics.ObserveJobFinished("completed", time.Since(job.SubmittedAt).Seconds())

	if t.rewards != nil {
		if err := t.rewards.OnPlanCompleted(ctx, job, &it); err != nil {
			log.Error().Err(err).Msg("completion rewards failed")
		}
	}
	log.Info().Int("days", it.TotalDays).Msg("plan job completed")
	return nil
}

func (t *Tracker) stale(job *model.PlanJob) bool {
	if t.epochs == nil {
		return false
	}
	cur := t.epochs.Current(job.UserID)
	return cur != 0 && cur != job.Epoch
}

func (t *Tracker) failJob(ctx context.Context, job *model.PlanJob, reason string) {
	job.FailTerminal(reason)
	t.persist(ctx, job)
	metrics.ObserveJobFinished("failed", time.Since(job.SubmittedAt).Seconds())
}

func (t *Tracker) persist(ctx context.Context, job *model.PlanJob) {
	if err := t.jobs.Save(ctx, nil, job); err != nil {
		t.log.Error().Err(err).Str("plan_id", job.ID).Msg("failed to save plan job")
	}
	if t.statuses != nil {
		if err := t.statuses.Store(ctx, job); err != nil {
			t.log.Warn().Err(err).Str("plan_id", job.ID).Msg("status cache write failed")
		}
	}
}

// backoff doubles the base interval per consecutive failure, capped.
func (t *Tracker) backoff(base time.Duration, failures int) time.Duration {
	d := base
	for i := 1; i < failures; i++ {
		d *= 2
		if d >= t.maxBackoff {
			return t.maxBackoff
		}
	}
	if d > t.maxBackoff {
		d = t.maxBackoff
	}
	return d
}
