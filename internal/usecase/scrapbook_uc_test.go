//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"travel-planner/internal/domain"
	"travel-planner/internal/domain/model"
	"travel-planner/internal/usecase"
)

func TestScrapbook(t *testing.T) {
	ctx := context.Background()

	t.Run("add list delete", func(t *testing.T) {
		trips := NewMockTripRepo()
		uc := usecase.NewScrapbookUseCase(NewMockScrapbookRepo(), trips, NewMockAchievementRepo(), newTestLogger())
		trip := seedTrip(t, trips, "user-1")

		entry, err := uc.Add(ctx, "user-1", trip.ID, "sunset", "https://cdn.example/1.jpg", time.Now())
		if err != nil {
			t.Fatalf("Add: %v", err)
		}

		listed, err := uc.ListByTrip(ctx, "user-1", trip.ID)
		if err != nil {
			t.Fatalf("ListByTrip: %v", err)
		}
		if len(listed) != 1 || listed[0].Caption != "sunset" {
			t.Fatalf("listed = %+v", listed)
		}

		if err := uc.Delete(ctx, "user-1", entry.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		listed, _ = uc.ListByTrip(ctx, "user-1", trip.ID)
		if len(listed) != 0 {
			t.Fatalf("entries after delete = %d", len(listed))
		}
	})

	t.Run("media url is required", func(t *testing.T) {
		trips := NewMockTripRepo()
		uc := usecase.NewScrapbookUseCase(NewMockScrapbookRepo(), trips, NewMockAchievementRepo(), newTestLogger())
		trip := seedTrip(t, trips, "user-1")

		if _, err := uc.Add(ctx, "user-1", trip.ID, "no media", " ", time.Now()); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("err = %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("foreign entry cannot be deleted", func(t *testing.T) {
		trips := NewMockTripRepo()
		uc := usecase.NewScrapbookUseCase(NewMockScrapbookRepo(), trips, NewMockAchievementRepo(), newTestLogger())
		trip := seedTrip(t, trips, "user-1")

		entry, err := uc.Add(ctx, "user-1", trip.ID, "mine", "https://cdn.example/2.jpg", time.Now())
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		if err := uc.Delete(ctx, "user-2", entry.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("tenth entry unlocks scrapbooker", func(t *testing.T) {
		trips := NewMockTripRepo()
		achievements := NewMockAchievementRepo()
		uc := usecase.NewScrapbookUseCase(NewMockScrapbookRepo(), trips, achievements, newTestLogger())
		trip := seedTrip(t, trips, "user-1")

		for i := 0; i < 10; i++ {
			url := fmt.Sprintf("https://cdn.example/%d.jpg", i)
			if _, err := uc.Add(ctx, "user-1", trip.ID, "", url, time.Now()); err != nil {
				t.Fatalf("Add %d: %v", i, err)
			}
		}
		if !achievements.Has("user-1", model.AchScrapbooker) {
			t.Fatal("scrapbooker badge not unlocked")
		}
	})
}
