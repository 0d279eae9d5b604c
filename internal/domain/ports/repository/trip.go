package repository

import (
	"context"

	"travel-planner/internal/domain/model"
)

// TripRepository is the port for trip persistence. Delete is a soft delete;
// deleted trips never come back from reads.
type TripRepository interface {
	Save(ctx context.Context, tx Tx, trip *model.Trip) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Trip, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Trip, error)
	Delete(ctx context.Context, tx Tx, id string) error
}
