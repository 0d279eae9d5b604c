package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel-planner/internal/domain"
	"travel-planner/internal/domain/model"
	"travel-planner/internal/domain/ports/repository"
	"travel-planner/internal/domain/ports/usecase"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"
)

var _ usecase.RewardManager = (*rewardUC)(nil)

// Trips needed for the globe trotter badge.
const globeTrotterTrips = 5

// rewardUC turns a completed plan job into user-visible state: a trip
// record linked to the itinerary, plus any achievements the completion
// unlocked. Trip and achievements commit in one transaction so a crash
// cannot leave a trip without its badge check.
type rewardUC struct {
	txManager    repository.TransactionManager
	trips        repository.TripRepository
	achievements repository.AchievementRepository
	log          *zerolog.Logger
}

func NewRewardUseCase(
	txManager repository.TransactionManager,
	trips repository.TripRepository,
	achievements repository.AchievementRepository,
	logger *zerolog.Logger,
) *rewardUC {
	ucLog := logger.With().Str("component", "RewardUC").Logger()
	return &rewardUC{
		txManager:    txManager,
		trips:        trips,
		achievements: achievements,
		log:          &ucLog,
	}
}

func (uc *rewardUC) OnPlanCompleted(ctx context.Context, job *model.PlanJob, it *model.Itinerary) error {
	trip, err := tripFromPlan(job, it)
	if err != nil {
		return err
	}

	// Count before the insert so the new trip is included once committed.
	existing, err := uc.trips.ListByUser(ctx, job.UserID)
	if err != nil {
		return err
	}
	tripCount := len(existing) + 1

	err = uc.txManager.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		if err := uc.trips.Save(ctx, tx, trip); err != nil {
			return err
		}
		if err := uc.unlock(ctx, tx, job.UserID, model.AchFirstTrip); err != nil {
			return err
		}
		if tripCount >= globeTrotterTrips {
			if err := uc.unlock(ctx, tx, job.UserID, model.AchGlobeTrotter); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.log.Info().
		Str("trip_id", trip.ID).
		Str("user_id", job.UserID).
		Str("itinerary_uuid", it.UUID).
		Msg("trip created from completed plan")
	return nil
}

func (uc *rewardUC) unlock(ctx context.Context, tx repository.Tx, userID, code string) error {
	a, err := model.NewBadgeUnlock(userID, code)
	if err != nil {
		return err
	}
	if err := uc.achievements.Unlock(ctx, tx, a); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil
		}
		return err
	}
	uc.log.Info().Str("user_id", userID).Str("code", code).Msg("achievement unlocked")
	return nil
}

func tripFromPlan(job *model.PlanJob, it *model.Itinerary) (*model.Trip, error) {
	title := it.Title
	if title == "" {
		title = fmt.Sprintf("Trip to %s", job.Request.ToCity)
	}
	start := job.Request.DepartureDate
	end := start
	if job.Request.ReturnDate != nil {
		end = *job.Request.ReturnDate
	} else if it.TotalDays > 1 {
		end = start.AddDate(0, 0, it.TotalDays-1)
	}
	trip, err := model.NewTrip(job.UserID, title, job.Request.ToCity, start, end)
	if err != nil {
		return nil, err
	}
	trip.Status = model.TripPlanned
	trip.ItineraryUUID = it.UUID
	trip.UpdatedAt = time.Now()
	return trip, nil
}
