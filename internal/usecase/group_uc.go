package usecase

import (
	"context"
	"time"

	"travel-planner/internal/domain"
	"travel-planner/internal/domain/model"
	"travel-planner/internal/domain/ports/repository"

	"github.com/rs/zerolog"
)

var _ GroupUseCase = (*groupUC)(nil)

type GroupUseCase interface {
	Create(ctx context.Context, ownerID, name string) (*model.TravelGroup, error)
	Get(ctx context.Context, userID, groupID string) (*model.TravelGroup, error)
	AddMember(ctx context.Context, callerID, groupID, userID string) error
	RemoveMember(ctx context.Context, callerID, groupID, userID string) error
}

type groupUC struct {
	groups repository.GroupRepository
	log    *zerolog.Logger
}

func NewGroupUseCase(groups repository.GroupRepository, logger *zerolog.Logger) *groupUC {
	ucLog := logger.With().Str("component", "GroupUC").Logger()
	return &groupUC{groups: groups, log: &ucLog}
}

func (uc *groupUC) Create(ctx context.Context, ownerID, name string) (*model.TravelGroup, error) {
	g, err := model.NewTravelGroup(name, ownerID)
	if err != nil {
		return nil, err
	}
	if err := uc.groups.Save(ctx, nil, g); err != nil {
		return nil, err
	}
	uc.log.Info().Str("group_id", g.ID).Str("owner_id", ownerID).Msg("group created")
	return g, nil
}

func (uc *groupUC) Get(ctx context.Context, userID, groupID string) (*model.TravelGroup, error) {
	g, err := uc.groups.FindByID(ctx, nil, groupID)
	if err != nil {
		return nil, err
	}
	if !g.HasMember(userID) {
		return nil, domain.ErrForbidden
	}
	return g, nil
}

// AddMember is owner-only. Adding an existing member is a no-op at the
// repository level.
func (uc *groupUC) AddMember(ctx context.Context, callerID, groupID, userID string) error {
	g, err := uc.groups.FindByID(ctx, nil, groupID)
	if err != nil {
		return err
	}
	if g.OwnerID != callerID {
		return domain.ErrForbidden
	}
	if userID == "" {
		return domain.ErrInvalidArgument
	}
	m := &model.GroupMember{GroupID: groupID, UserID: userID, Role: model.RoleMember, JoinedAt: time.Now()}
	return uc.groups.AddMember(ctx, nil, m)
}

// RemoveMember allows the owner to remove anyone but themselves, and any
// member to leave on their own.
func (uc *groupUC) RemoveMember(ctx context.Context, callerID, groupID, userID string) error {
	g, err := uc.groups.FindByID(ctx, nil, groupID)
	if err != nil {
		return err
	}
	if userID == g.OwnerID {
		return domain.ErrInvalidArgument
	}
	if callerID != g.OwnerID && callerID != userID {
		return domain.ErrForbidden
	}
	if !g.HasMember(userID) {
		return domain.ErrNotFound
	}
	return uc.groups.RemoveMember(ctx, nil, groupID, userID)
}
