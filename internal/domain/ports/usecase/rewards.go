package usecase

import (
	"context"

	"travel-planner/internal/domain/model"
)

// RewardManager defines the completion side-effects needed by the job
// tracker: persisting the trip built from a finished itinerary and
// unlocking any gamification achievements it earns.
type RewardManager interface {
	OnPlanCompleted(ctx context.Context, job *model.PlanJob, it *model.Itinerary) error
}
