package repository

import (
	"context"

	"travel-planner/internal/domain/model"
)

type GroupRepository interface {
	Save(ctx context.Context, tx Tx, g *model.TravelGroup) error
	// FindByID returns the group with its membership loaded.
	FindByID(ctx context.Context, tx Tx, id string) (*model.TravelGroup, error)
	AddMember(ctx context.Context, tx Tx, m *model.GroupMember) error
	RemoveMember(ctx context.Context, tx Tx, groupID, userID string) error
}
