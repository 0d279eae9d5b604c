package repository

import (
	"context"

	"travel-planner/internal/domain/model"
)

type ScrapbookRepository interface {
	Save(ctx context.Context, tx Tx, entry *model.ScrapbookEntry) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.ScrapbookEntry, error)
	ListByTrip(ctx context.Context, tripID string) ([]*model.ScrapbookEntry, error)
	Delete(ctx context.Context, tx Tx, id string) error
}
