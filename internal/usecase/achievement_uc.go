package usecase

import (
	"context"
	"errors"

	"travel-planner/internal/domain"
	"travel-planner/internal/domain/model"
	"travel-planner/internal/domain/ports/repository"
)

var _ AchievementUseCase = (*achievementUC)(nil)

type AchievementUseCase interface {
	List(ctx context.Context, userID string) ([]*model.Achievement, error)
	Unlock(ctx context.Context, userID, code string) (*model.Achievement, error)
}

type achievementUC struct {
	achievements repository.AchievementRepository
}

func NewAchievementUseCase(achievements repository.AchievementRepository) *achievementUC {
	return &achievementUC{achievements: achievements}
}

func (uc *achievementUC) List(ctx context.Context, userID string) ([]*model.Achievement, error) {
	return uc.achievements.ListByUser(ctx, userID)
}

// Unlock grants a catalog badge to the user. A repeat unlock returns the
// already-recorded achievement rather than an error.
func (uc *achievementUC) Unlock(ctx context.Context, userID, code string) (*model.Achievement, error) {
	a, err := model.NewBadgeUnlock(userID, code)
	if err != nil {
		return nil, err
	}
	if err := uc.achievements.Unlock(ctx, nil, a); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			existing, listErr := uc.achievements.ListByUser(ctx, userID)
			if listErr != nil {
				return nil, listErr
			}
			for _, got := range existing {
				if got.Code == code {
					return got, nil
				}
			}
		}
		return nil, err
	}
	return a, nil
}
