package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"travel-planner/internal/domain"
	"travel-planner/internal/domain/model"
	"travel-planner/internal/domain/ports/repository"
)

var _ repository.ItineraryRepository = (*itineraryRepo)(nil)

// itineraryRepo stores itineraries as immutable JSONB documents keyed by the
// server-assigned UUID. Save is idempotent: a re-fetch of the same itinerary
// overwrites with identical content.
type itineraryRepo struct {
	pool *pgxpool.Pool
}

func NewItineraryRepo(pool *pgxpool.Pool) *itineraryRepo {
	return &itineraryRepo{pool: pool}
}

func (r *itineraryRepo) Save(ctx context.Context, tx repository.Tx, it *model.Itinerary) error {
	daysJSON, err := json.Marshal(it.Days)
	if err != nil {
		return fmt.Errorf("marshal itinerary days: %w", err)
	}

	const q = `
INSERT INTO itineraries (uuid, title, personalization, total_days, days, fetched_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (uuid) DO UPDATE SET
  title = EXCLUDED.title,
  personalization = EXCLUDED.personalization,
  total_days = EXCLUDED.total_days,
  days = EXCLUDED.days,
  fetched_at = EXCLUDED.fetched_at;`

	_, err = execSQL(ctx, r.pool, tx, q,
		it.UUID, it.Title, it.Personalization, it.TotalDays, daysJSON, it.FetchedAt)
	if err != nil {
		return fmt.Errorf("save itinerary: %w", err)
	}
	return nil
}

func (r *itineraryRepo) FindByUUID(ctx context.Context, tx repository.Tx, uuid string) (*model.Itinerary, error) {
	const q = `
SELECT uuid, title, personalization, total_days, days, fetched_at
  FROM itineraries
 WHERE uuid = $1;`

	row, err := pickRow(ctx, r.pool, tx, q, uuid)
	if err != nil {
		return nil, err
	}
	var (
		it       model.Itinerary
		daysJSON []byte
	)
	if err := row.Scan(&it.UUID, &it.Title, &it.Personalization, &it.TotalDays, &daysJSON, &it.FetchedAt); err != nil {
		return nil, translateScanErr(err)
	}
	if err := json.Unmarshal(daysJSON, &it.Days); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return &it, nil
}
