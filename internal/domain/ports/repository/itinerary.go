package repository

import (
	"context"

	"travel-planner/internal/domain/model"
)

// ItineraryRepository stores fetched itineraries as immutable documents.
// Save is idempotent per UUID; re-saving an identical document is a no-op.
type ItineraryRepository interface {
	Save(ctx context.Context, tx Tx, it *model.Itinerary) error
	FindByUUID(ctx context.Context, tx Tx, uuid string) (*model.Itinerary, error)
}
