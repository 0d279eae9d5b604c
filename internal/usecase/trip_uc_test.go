//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"travel-planner/internal/domain"
	"travel-planner/internal/domain/model"
	"travel-planner/internal/usecase"
)

func TestTripLifecycle(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 10)

	t.Run("create get update delete", func(t *testing.T) {
		trips := NewMockTripRepo()
		uc := usecase.NewTripUseCase(trips, newTestLogger())

		trip, err := uc.Create(ctx, "user-1", "Summer in Kyoto", "Kyoto", start, end)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}

		got, err := uc.Get(ctx, "user-1", trip.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.Destination != "Kyoto" || got.Status != model.TripDraft {
			t.Fatalf("got %+v", got)
		}

		status := model.TripActive
		notes := "packed"
		updated, err := uc.Update(ctx, "user-1", trip.ID, usecase.TripUpdate{Status: &status, Notes: &notes})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if updated.Status != model.TripActive || updated.Notes != "packed" {
			t.Fatalf("updated %+v", updated)
		}

		if err := uc.Delete(ctx, "user-1", trip.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := uc.Get(ctx, "user-1", trip.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("deleted trip err = %v, want ErrNotFound", err)
		}
	})

	t.Run("another user's trip is invisible", func(t *testing.T) {
		uc := usecase.NewTripUseCase(NewMockTripRepo(), newTestLogger())
		trip, err := uc.Create(ctx, "user-1", "Solo", "Oslo", start, end)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if _, err := uc.Get(ctx, "user-2", trip.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
		if err := uc.Delete(ctx, "user-2", trip.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("delete err = %v, want ErrNotFound", err)
		}
	})

	t.Run("invalid updates are rejected", func(t *testing.T) {
		uc := usecase.NewTripUseCase(NewMockTripRepo(), newTestLogger())
		trip, err := uc.Create(ctx, "user-1", "Valid", "Rome", start, end)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		empty := "  "
		if _, err := uc.Update(ctx, "user-1", trip.ID, usecase.TripUpdate{Title: &empty}); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("blank title err = %v", err)
		}
		bogus := model.TripStatus("teleporting")
		if _, err := uc.Update(ctx, "user-1", trip.ID, usecase.TripUpdate{Status: &bogus}); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("bogus status err = %v", err)
		}
	})

	t.Run("create validates input", func(t *testing.T) {
		uc := usecase.NewTripUseCase(NewMockTripRepo(), newTestLogger())
		if _, err := uc.Create(ctx, "user-1", "", "Rome", start, end); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("empty title err = %v", err)
		}
		if _, err := uc.Create(ctx, "user-1", "Backwards", "Rome", end, start); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("end before start err = %v", err)
		}
	})
}
