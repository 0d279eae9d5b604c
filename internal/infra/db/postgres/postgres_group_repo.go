package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"travel-planner/internal/domain/model"
	"travel-planner/internal/domain/ports/repository"
)

var _ repository.GroupRepository = (*groupRepo)(nil)

type groupRepo struct {
	pool *pgxpool.Pool
}

func NewGroupRepo(pool *pgxpool.Pool) *groupRepo {
	return &groupRepo{pool: pool}
}

// Save upserts the group row and inserts any members not yet present.
// Membership removal goes through RemoveMember, never through Save.
func (r *groupRepo) Save(ctx context.Context, tx repository.Tx, g *model.TravelGroup) error {
	const q = `
INSERT INTO travel_groups (id, name, owner_id, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name;`

	if _, err := execSQL(ctx, r.pool, tx, q, g.ID, g.Name, g.OwnerID, g.CreatedAt); err != nil {
		return fmt.Errorf("save group: %w", err)
	}
	for i := range g.Members {
		if err := r.AddMember(ctx, tx, &g.Members[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *groupRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.TravelGroup, error) {
	const q = `
SELECT id, name, owner_id, created_at
  FROM travel_groups
 WHERE id = $1;`

	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	var g model.TravelGroup
	if err := row.Scan(&g.ID, &g.Name, &g.OwnerID, &g.CreatedAt); err != nil {
		return nil, translateScanErr(err)
	}

	const memberQ = `
SELECT group_id, user_id, role, joined_at
  FROM group_members
 WHERE group_id = $1
 ORDER BY joined_at;`

	rows, err := queryRows(ctx, r.pool, tx, memberQ, id)
	if err != nil {
		return nil, fmt.Errorf("list group members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			m    model.GroupMember
			role string
		)
		if err := rows.Scan(&m.GroupID, &m.UserID, &role, &m.JoinedAt); err != nil {
			return nil, translateScanErr(err)
		}
		m.Role = model.GroupRole(role)
		g.Members = append(g.Members, m)
	}
	return &g, rows.Err()
}

func (r *groupRepo) AddMember(ctx context.Context, tx repository.Tx, m *model.GroupMember) error {
	const q = `
INSERT INTO group_members (group_id, user_id, role, joined_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (group_id, user_id) DO NOTHING;`

	_, err := execSQL(ctx, r.pool, tx, q, m.GroupID, m.UserID, m.Role, m.JoinedAt)
	if err != nil {
		return fmt.Errorf("add group member: %w", err)
	}
	return nil
}

func (r *groupRepo) RemoveMember(ctx context.Context, tx repository.Tx, groupID, userID string) error {
	const q = `DELETE FROM group_members WHERE group_id = $1 AND user_id = $2;`
	_, err := execSQL(ctx, r.pool, tx, q, groupID, userID)
	if err != nil {
		return fmt.Errorf("remove group member: %w", err)
	}
	return nil
}
