package usecase

import (
	"context"
	"strings"
	"time"

	"travel-planner/internal/domain"
	"travel-planner/internal/domain/model"
	"travel-planner/internal/domain/ports/repository"

	"github.com/rs/zerolog"
)

var _ TripUseCase = (*tripUC)(nil)

// TripUpdate carries the mutable trip fields; nil means leave unchanged.
type TripUpdate struct {
	Title  *string
	Notes  *string
	Status *model.TripStatus
}

type TripUseCase interface {
	Create(ctx context.Context, userID, title, destination string, start, end time.Time) (*model.Trip, error)
	Get(ctx context.Context, userID, tripID string) (*model.Trip, error)
	List(ctx context.Context, userID string) ([]*model.Trip, error)
	Update(ctx context.Context, userID, tripID string, upd TripUpdate) (*model.Trip, error)
	Delete(ctx context.Context, userID, tripID string) error
}

type tripUC struct {
	trips repository.TripRepository
	log   *zerolog.Logger
}

func NewTripUseCase(trips repository.TripRepository, logger *zerolog.Logger) *tripUC {
	ucLog := logger.With().Str("component", "TripUC").Logger()
	return &tripUC{trips: trips, log: &ucLog}
}

func (uc *tripUC) Create(ctx context.Context, userID, title, destination string, start, end time.Time) (*model.Trip, error) {
	trip, err := model.NewTrip(userID, title, destination, start, end)
	if err != nil {
		return nil, err
	}
	if err := uc.trips.Save(ctx, nil, trip); err != nil {
		return nil, err
	}
	uc.log.Info().Str("trip_id", trip.ID).Str("user_id", userID).Msg("trip created")
	return trip, nil
}

func (uc *tripUC) Get(ctx context.Context, userID, tripID string) (*model.Trip, error) {
	return uc.owned(ctx, userID, tripID)
}

func (uc *tripUC) List(ctx context.Context, userID string) ([]*model.Trip, error) {
	return uc.trips.ListByUser(ctx, userID)
}

func (uc *tripUC) Update(ctx context.Context, userID, tripID string, upd TripUpdate) (*model.Trip, error) {
	trip, err := uc.owned(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil {
		if strings.TrimSpace(*upd.Title) == "" {
			return nil, domain.ErrInvalidArgument
		}
		trip.Title = *upd.Title
	}
	if upd.Notes != nil {
		trip.Notes = *upd.Notes
	}
	if upd.Status != nil {
		switch *upd.Status {
		case model.TripDraft, model.TripPlanned, model.TripActive, model.TripDone:
			trip.Status = *upd.Status
		default:
			return nil, domain.ErrInvalidArgument
		}
	}
	trip.UpdatedAt = time.Now()
	if err := uc.trips.Save(ctx, nil, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

func (uc *tripUC) Delete(ctx context.Context, userID, tripID string) error {
	if _, err := uc.owned(ctx, userID, tripID); err != nil {
		return err
	}
	if err := uc.trips.Delete(ctx, nil, tripID); err != nil {
		return err
	}
	uc.log.Info().Str("trip_id", tripID).Str("user_id", userID).Msg("trip deleted")
	return nil
}

// owned loads a trip and hides other users' trips behind not-found so
// trip ids cannot be probed.
func (uc *tripUC) owned(ctx context.Context, userID, tripID string) (*model.Trip, error) {
	trip, err := uc.trips.FindByID(ctx, nil, tripID)
	if err != nil {
		return nil, err
	}
	if !trip.OwnedBy(userID) {
		return nil, domain.ErrNotFound
	}
	return trip, nil
}
