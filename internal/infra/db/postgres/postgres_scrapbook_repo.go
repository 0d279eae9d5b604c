package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"travel-planner/internal/domain/model"
	"travel-planner/internal/domain/ports/repository"
)

var _ repository.ScrapbookRepository = (*scrapbookRepo)(nil)

type scrapbookRepo struct {
	pool *pgxpool.Pool
}

func NewScrapbookRepo(pool *pgxpool.Pool) *scrapbookRepo {
	return &scrapbookRepo{pool: pool}
}

func (r *scrapbookRepo) Save(ctx context.Context, tx repository.Tx, entry *model.ScrapbookEntry) error {
	const q = `
INSERT INTO scrapbook_entries (id, user_id, trip_id, caption, media_url, taken_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
  caption = EXCLUDED.caption,
  media_url = EXCLUDED.media_url,
  taken_at = EXCLUDED.taken_at;`

	_, err := execSQL(ctx, r.pool, tx, q,
		entry.ID, entry.UserID, entry.TripID, entry.Caption, entry.MediaURL, entry.TakenAt, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("save scrapbook entry: %w", err)
	}
	return nil
}

func (r *scrapbookRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.ScrapbookEntry, error) {
	const q = `
SELECT id, user_id, trip_id, caption, media_url, taken_at, created_at
  FROM scrapbook_entries
 WHERE id = $1;`

	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	var e model.ScrapbookEntry
	if err := row.Scan(&e.ID, &e.UserID, &e.TripID, &e.Caption, &e.MediaURL, &e.TakenAt, &e.CreatedAt); err != nil {
		return nil, translateScanErr(err)
	}
	return &e, nil
}

func (r *scrapbookRepo) ListByTrip(ctx context.Context, tripID string) ([]*model.ScrapbookEntry, error) {
	const q = `
SELECT id, user_id, trip_id, caption, media_url, taken_at, created_at
  FROM scrapbook_entries
 WHERE trip_id = $1
 ORDER BY taken_at;`

	rows, err := r.pool.Query(ctx, q, tripID)
	if err != nil {
		return nil, fmt.Errorf("list scrapbook entries: %w", err)
	}
	defer rows.Close()

	var out []*model.ScrapbookEntry
	for rows.Next() {
		var e model.ScrapbookEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.TripID, &e.Caption, &e.MediaURL, &e.TakenAt, &e.CreatedAt); err != nil {
			return nil, translateScanErr(err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (r *scrapbookRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	const q = `DELETE FROM scrapbook_entries WHERE id = $1;`
	_, err := execSQL(ctx, r.pool, tx, q, id)
	if err != nil {
		return fmt.Errorf("delete scrapbook entry: %w", err)
	}
	return nil
}
