package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"travel-planner/internal/domain"
	"travel-planner/internal/domain/model"
	"travel-planner/internal/domain/ports/repository"
)

var _ repository.AchievementRepository = (*achievementRepo)(nil)

type achievementRepo struct {
	pool *pgxpool.Pool
}

func NewAchievementRepo(pool *pgxpool.Pool) *achievementRepo {
	return &achievementRepo{pool: pool}
}

// Unlock inserts the achievement. The (user_id, code) unique constraint
// makes repeats report domain.ErrAlreadyExists.
func (r *achievementRepo) Unlock(ctx context.Context, tx repository.Tx, a *model.Achievement) error {
	const q = `
INSERT INTO achievements (id, user_id, code, title, points, unlocked_at)
VALUES ($1, $2, $3, $4, $5, $6);`

	_, err := execSQL(ctx, r.pool, tx, q, a.ID, a.UserID, a.Code, a.Title, a.Points, a.UnlockedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("unlock achievement: %w", err)
	}
	return nil
}

func (r *achievementRepo) ListByUser(ctx context.Context, userID string) ([]*model.Achievement, error) {
	const q = `
SELECT id, user_id, code, title, points, unlocked_at
  FROM achievements
 WHERE user_id = $1
 ORDER BY unlocked_at;`

	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()

	var out []*model.Achievement
	for rows.Next() {
		var a model.Achievement
		if err := rows.Scan(&a.ID, &a.UserID, &a.Code, &a.Title, &a.Points, &a.UnlockedAt); err != nil {
			return nil, translateScanErr(err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
