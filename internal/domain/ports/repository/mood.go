package repository

import (
	"context"

	"travel-planner/internal/domain/model"
)

type MoodRepository interface {
	Save(ctx context.Context, tx Tx, entry *model.MoodEntry) error
	ListByTrip(ctx context.Context, tripID string) ([]*model.MoodEntry, error)
}
