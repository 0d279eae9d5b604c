package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"travel-planner/internal/domain"
	"travel-planner/internal/domain/model"
	"travel-planner/internal/domain/ports/adapter"
	"travel-planner/internal/domain/ports/repository"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ PlanningUseCase = (*planningUC)(nil)

// PlanningUseCase drives a plan request from submission to the point where
// the tracker takes over, and serves the read side for the API.
type PlanningUseCase interface {
	Submit(ctx context.Context, userID string, req model.PlanRequest) (*model.PlanJob, error)
	Status(ctx context.Context, userID, planID string) (*model.PlanJob, error)
	Result(ctx context.Context, itineraryUUID string) (*model.Itinerary, error)
	ListJobs(ctx context.Context, userID string, limit int) ([]*model.PlanJob, error)

	// Current implements the epoch source for the tracker: only the most
	// recent submission per user is live.
	Current(userID string) uint64
}

// StatusCache mirrors the redis status cache surface the use case needs.
type StatusCache interface {
	Store(ctx context.Context, job *model.PlanJob) error
	Get(ctx context.Context, jobID string) (*model.PlanJob, error)
}

// RateLimiter caps submissions per user before any network call.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// JobStarter hands a freshly submitted job to the tracking machinery.
// Wired in main to the worker pool; nil in tests that only exercise
// submission.
type JobStarter func(job *model.PlanJob)

type planningUC struct {
	planner  adapter.PlannerServiceAdapter
	jobs     repository.PlanJobRepository
	itins    repository.ItineraryRepository
	statuses StatusCache
	limiter  RateLimiter

	submitLimit  int
	submitWindow time.Duration

	mu      sync.Mutex
	epochs  map[string]uint64
	starter JobStarter

	log *zerolog.Logger
}

func NewPlanningUseCase(
	planner adapter.PlannerServiceAdapter,
	jobs repository.PlanJobRepository,
	itins repository.ItineraryRepository,
	statuses StatusCache,
	limiter RateLimiter,
	submitsPerHour int,
	logger *zerolog.Logger,
) *planningUC {
	ucLog := logger.With().Str("component", "PlanningUC").Logger()
	return &planningUC{
		planner:      planner,
		jobs:         jobs,
		itins:        itins,
		statuses:     statuses,
		limiter:      limiter,
		submitLimit:  submitsPerHour,
		submitWindow: time.Hour,
		epochs:       map[string]uint64{},
		log:          &ucLog,
	}
}

// SetStarter wires the tracker start function after construction; main
// composes the use case and the worker pool in either order.
func (uc *planningUC) SetStarter(s JobStarter) { uc.starter = s }

func (uc *planningUC) Submit(ctx context.Context, userID string, req model.PlanRequest) (*model.PlanJob, error) {
	// Local validation first: an invalid request makes zero network calls.
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if uc.limiter != nil && uc.submitLimit > 0 {
		key := fmt.Sprintf("rate_limit:%s:submit", userID)
		ok, err := uc.limiter.Allow(ctx, key, uc.submitLimit, uc.submitWindow)
		if err != nil {
			uc.log.Warn().Err(err).Msg("rate limiter unavailable, allowing submit")
		} else if !ok {
			return nil, domain.ErrRateLimited
		}
	}

	job := model.NewPlanJob(userID, uc.nextEpoch(userID), req)
	if err := job.BeginSubmission(); err != nil {
		return nil, err
	}
	if err := uc.jobs.Save(ctx, nil, job); err != nil {
		return nil, err
	}

	handle, err := uc.planner.Submit(ctx, req)
	if err != nil {
		job.FailSubmission(err.Error())
		if saveErr := uc.jobs.Save(ctx, nil, job); saveErr != nil {
			uc.log.Error().Err(saveErr).Str("plan_id", job.ID).Msg("failed to save failed submission")
		}
		return nil, err
	}

	if err := job.AcceptHandle(handle); err != nil {
		return nil, err
	}
	if err := uc.jobs.Save(ctx, nil, job); err != nil {
		return nil, err
	}
	if uc.statuses != nil {
		if err := uc.statuses.Store(ctx, job); err != nil {
			uc.log.Warn().Err(err).Str("plan_id", job.ID).Msg("status cache write failed")
		}
	}

	uc.log.Info().
		Str("plan_id", job.ID).
		Str("job_id", handle.JobID).
		Str("itinerary_uuid", handle.ItineraryUUID).
		Str("user_id", userID).
		Msg("plan job submitted")

	if uc.starter != nil {
		uc.starter(job)
	}
	return job, nil
}

func (uc *planningUC) Status(ctx context.Context, userID, planID string) (*model.PlanJob, error) {
	if uc.statuses != nil {
		if job, err := uc.statuses.Get(ctx, planID); err == nil && job != nil {
			if !jobVisibleTo(job, userID) {
				return nil, domain.ErrNotFound
			}
			return job, nil
		}
	}
	job, err := uc.jobs.FindByID(ctx, nil, planID)
	if err != nil {
		return nil, err
	}
	if !jobVisibleTo(job, userID) {
		return nil, domain.ErrNotFound
	}
	return job, nil
}

func (uc *planningUC) Result(ctx context.Context, itineraryUUID string) (*model.Itinerary, error) {
	return uc.itins.FindByUUID(ctx, nil, itineraryUUID)
}

func (uc *planningUC) ListJobs(ctx context.Context, userID string, limit int) ([]*model.PlanJob, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	return uc.jobs.ListByUser(ctx, userID, limit)
}

func (uc *planningUC) nextEpoch(userID string) uint64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.epochs[userID]++
	return uc.epochs[userID]
}

func (uc *planningUC) Current(userID string) uint64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if e, ok := uc.epochs[userID]; ok {
		return e
	}
	// No submission this process lifetime: jobs loaded from the store are
	// treated as current so the janitor, not the epoch guard, owns them.
	return 0
}

// Another user's job is reported as absent, not forbidden, so job ids
// cannot be probed.
func jobVisibleTo(job *model.PlanJob, userID string) bool {
	return job.UserID == userID
}
