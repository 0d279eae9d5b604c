package repository

import (
	"context"

	"travel-planner/internal/domain/model"
)

type AchievementRepository interface {
	// Unlock persists an achievement. A second unlock of the same
	// (user, code) pair returns domain.ErrAlreadyExists.
	Unlock(ctx context.Context, tx Tx, a *model.Achievement) error
	ListByUser(ctx context.Context, userID string) ([]*model.Achievement, error)
}
