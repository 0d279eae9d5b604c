package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"travel-planner/internal/domain/model"
	"travel-planner/internal/domain/ports/repository"
)

var _ repository.MoodRepository = (*moodRepo)(nil)

type moodRepo struct {
	pool *pgxpool.Pool
}

func NewMoodRepo(pool *pgxpool.Pool) *moodRepo {
	return &moodRepo{pool: pool}
}

func (r *moodRepo) Save(ctx context.Context, tx repository.Tx, entry *model.MoodEntry) error {
	const q = `
INSERT INTO mood_entries (id, user_id, trip_id, mood, note, logged_at)
VALUES ($1, $2, $3, $4, $5, $6);`

	_, err := execSQL(ctx, r.pool, tx, q,
		entry.ID, entry.UserID, entry.TripID, entry.Mood, entry.Note, entry.LoggedAt)
	if err != nil {
		return fmt.Errorf("save mood entry: %w", err)
	}
	return nil
}

func (r *moodRepo) ListByTrip(ctx context.Context, tripID string) ([]*model.MoodEntry, error) {
	const q = `
SELECT id, user_id, trip_id, mood, note, logged_at
  FROM mood_entries
 WHERE trip_id = $1
 ORDER BY logged_at;`

	rows, err := r.pool.Query(ctx, q, tripID)
	if err != nil {
		return nil, fmt.Errorf("list mood entries: %w", err)
	}
	defer rows.Close()

	var out []*model.MoodEntry
	for rows.Next() {
		var e model.MoodEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.TripID, &e.Mood, &e.Note, &e.LoggedAt); err != nil {
			return nil, translateScanErr(err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
