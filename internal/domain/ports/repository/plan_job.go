package repository

import (
	"context"

	"travel-planner/internal/domain/model"
)

type PlanJobRepository interface {
	Save(ctx context.Context, tx Tx, job *model.PlanJob) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.PlanJob, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*model.PlanJob, error)
	// ListStuck returns non-terminal jobs whose submission is older than
	// the given age. The janitor fails them after restarts.
	ListStuck(ctx context.Context, olderThanSeconds int) ([]*model.PlanJob, error)
}
