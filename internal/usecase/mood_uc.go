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

var _ MoodUseCase = (*moodUC)(nil)

// Consecutive days of mood logging that unlock the streak badge.
const moodStreakDays = 3

type MoodUseCase interface {
	Log(ctx context.Context, userID, tripID string, mood int, note string) (*model.MoodEntry, error)
	ListByTrip(ctx context.Context, userID, tripID string) ([]*model.MoodEntry, error)
}

type moodUC struct {
	moods        repository.MoodRepository
	trips        repository.TripRepository
	achievements repository.AchievementRepository
	log          *zerolog.Logger
}

func NewMoodUseCase(
	moods repository.MoodRepository,
	trips repository.TripRepository,
	achievements repository.AchievementRepository,
	logger *zerolog.Logger,
) *moodUC {
	ucLog := logger.With().Str("component", "MoodUC").Logger()
	return &moodUC{moods: moods, trips: trips, achievements: achievements, log: &ucLog}
}

func (uc *moodUC) Log(ctx context.Context, userID, tripID string, mood int, note string) (*model.MoodEntry, error) {
	if err := uc.checkTrip(ctx, userID, tripID); err != nil {
		return nil, err
	}
	entry, err := model.NewMoodEntry(userID, tripID, mood, note)
	if err != nil {
		return nil, err
	}
	if err := uc.moods.Save(ctx, nil, entry); err != nil {
		return nil, err
	}
	uc.checkStreak(ctx, userID, tripID)
	return entry, nil
}

func (uc *moodUC) ListByTrip(ctx context.Context, userID, tripID string) ([]*model.MoodEntry, error) {
	if err := uc.checkTrip(ctx, userID, tripID); err != nil {
		return nil, err
	}
	return uc.moods.ListByTrip(ctx, tripID)
}

func (uc *moodUC) checkTrip(ctx context.Context, userID, tripID string) error {
	trip, err := uc.trips.FindByID(ctx, nil, tripID)
	if err != nil {
		return err
	}
	if !trip.OwnedBy(userID) {
		return domain.ErrNotFound
	}
	return nil
}

// checkStreak unlocks the streak badge after moodStreakDays consecutive
// calendar days with at least one entry. Failures are logged, never
// surfaced: a streak miss must not fail the log call.
func (uc *moodUC) checkStreak(ctx context.Context, userID, tripID string) {
	entries, err := uc.moods.ListByTrip(ctx, tripID)
	if err != nil {
		uc.log.Warn().Err(err).Str("trip_id", tripID).Msg("streak check skipped")
		return
	}
	days := map[string]bool{}
	for _, e := range entries {
		days[e.LoggedAt.Format("2006-01-02")] = true
	}
	today := time.Now()
	for i := 0; i < moodStreakDays; i++ {
		if !days[today.AddDate(0, 0, -i).Format("2006-01-02")] {
			return
		}
	}
	a, err := model.NewBadgeUnlock(userID, model.AchMoodStreak)
	if err != nil {
		return
	}
	if err := uc.achievements.Unlock(ctx, nil, a); err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
		uc.log.Warn().Err(err).Str("user_id", userID).Msg("streak unlock failed")
		return
	}
}
