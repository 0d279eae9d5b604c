package usecase

import (
	"context"
	"errors"
	"time"

	"travel-planner/internal/domain"
	"travel-planner/internal/domain/model"
	"travel-planner/internal/domain/ports/repository"

	"github.com/rs/zerolog"
)

var _ ScrapbookUseCase = (*scrapbookUC)(nil)

// Entries needed for the scrapbooker badge.
const scrapbookerEntries = 10

type ScrapbookUseCase interface {
	Add(ctx context.Context, userID, tripID, caption, mediaURL string, takenAt time.Time) (*model.ScrapbookEntry, error)
	ListByTrip(ctx context.Context, userID, tripID string) ([]*model.ScrapbookEntry, error)
	Delete(ctx context.Context, userID, entryID string) error
}

type scrapbookUC struct {
	entries      repository.ScrapbookRepository
	trips        repository.TripRepository
	achievements repository.AchievementRepository
	log          *zerolog.Logger
}

func NewScrapbookUseCase(
	entries repository.ScrapbookRepository,
	trips repository.TripRepository,
	achievements repository.AchievementRepository,
	logger *zerolog.Logger,
) *scrapbookUC {
	ucLog := logger.With().Str("component", "ScrapbookUC").Logger()
	return &scrapbookUC{entries: entries, trips: trips, achievements: achievements, log: &ucLog}
}

func (uc *scrapbookUC) Add(ctx context.Context, userID, tripID, caption, mediaURL string, takenAt time.Time) (*model.ScrapbookEntry, error) {
	if err := uc.checkTrip(ctx, userID, tripID); err != nil {
		return nil, err
	}
	entry, err := model.NewScrapbookEntry(userID, tripID, caption, mediaURL, takenAt)
	if err != nil {
		return nil, err
	}
	if err := uc.entries.Save(ctx, nil, entry); err != nil {
		return nil, err
	}
	uc.checkBadge(ctx, userID, tripID)
	return entry, nil
}

func (uc *scrapbookUC) ListByTrip(ctx context.Context, userID, tripID string) ([]*model.ScrapbookEntry, error) {
	if err := uc.checkTrip(ctx, userID, tripID); err != nil {
		return nil, err
	}
	return uc.entries.ListByTrip(ctx, tripID)
}

func (uc *scrapbookUC) Delete(ctx context.Context, userID, entryID string) error {
	entry, err := uc.entries.FindByID(ctx, nil, entryID)
	if err != nil {
		return err
	}
	if entry.UserID != userID {
		return domain.ErrNotFound
	}
	return uc.entries.Delete(ctx, nil, entryID)
}

func (uc *scrapbookUC) checkTrip(ctx context.Context, userID, tripID string) error {
	trip, err := uc.trips.FindByID(ctx, nil, tripID)
	if err != nil {
		return err
	}
	if !trip.OwnedBy(userID) {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *scrapbookUC) checkBadge(ctx context.Context, userID, tripID string) {
	all, err := uc.entries.ListByTrip(ctx, tripID)
	if err != nil || len(all) < scrapbookerEntries {
		return
	}
	a, err := model.NewBadgeUnlock(userID, model.AchScrapbooker)
	if err != nil {
		return
	}
	if err := uc.achievements.Unlock(ctx, nil, a); err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
		uc.log.Warn().Err(err).Str("user_id", userID).Msg("scrapbooker unlock failed")
	}
}
