package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"travel-planner/internal/domain/model"
	"travel-planner/internal/domain/ports/repository"
)

var _ repository.TripRepository = (*tripRepo)(nil)

type tripRepo struct {
	pool *pgxpool.Pool
}

func NewTripRepo(pool *pgxpool.Pool) *tripRepo {
	return &tripRepo{pool: pool}
}

func (r *tripRepo) Save(ctx context.Context, tx repository.Tx, trip *model.Trip) error {
	trip.UpdatedAt = time.Now()

	const q = `
INSERT INTO trips (id, user_id, title, destination, start_date, end_date,
                   status, itinerary_uuid, notes, deleted, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (id) DO UPDATE SET
  title = EXCLUDED.title,
  destination = EXCLUDED.destination,
  start_date = EXCLUDED.start_date,
  end_date = EXCLUDED.end_date,
  status = EXCLUDED.status,
  itinerary_uuid = EXCLUDED.itinerary_uuid,
  notes = EXCLUDED.notes,
  deleted = EXCLUDED.deleted,
  updated_at = EXCLUDED.updated_at;`

	_, err := execSQL(ctx, r.pool, tx, q,
		trip.ID, trip.UserID, trip.Title, trip.Destination, trip.StartDate, trip.EndDate,
		trip.Status, nullString(trip.ItineraryUUID), trip.Notes, trip.Deleted,
		trip.CreatedAt, trip.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save trip: %w", err)
	}
	return nil
}

const tripColumns = `
id, user_id, title, destination, start_date, end_date,
status, COALESCE(itinerary_uuid, ''), notes, deleted, created_at, updated_at`

func (r *tripRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1 AND NOT deleted;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanTrip(row.Scan)
}

func (r *tripRepo) ListByUser(ctx context.Context, userID string) ([]*model.Trip, error) {
	q := `SELECT ` + tripColumns + `
FROM trips
WHERE user_id = $1 AND NOT deleted
ORDER BY start_date DESC;`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	var out []*model.Trip
	for rows.Next() {
		trip, err := scanTrip(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, trip)
	}
	return out, rows.Err()
}

func (r *tripRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	const q = `UPDATE trips SET deleted = true, updated_at = now() WHERE id = $1;`
	_, err := execSQL(ctx, r.pool, tx, q, id)
	if err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}
	return nil
}

func scanTrip(scan func(dest ...interface{}) error) (*model.Trip, error) {
	var (
		trip   model.Trip
		status string
	)
	err := scan(
		&trip.ID, &trip.UserID, &trip.Title, &trip.Destination, &trip.StartDate, &trip.EndDate,
		&status, &trip.ItineraryUUID, &trip.Notes, &trip.Deleted, &trip.CreatedAt, &trip.UpdatedAt,
	)
	if err != nil {
		return nil, translateScanErr(err)
	}
	trip.Status = model.TripStatus(status)
	return &trip, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
