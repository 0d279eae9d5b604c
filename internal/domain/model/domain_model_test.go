//go:build !integration

package model

import (
	"errors"
	"testing"
	"time"

	"travel-planner/internal/domain"
)

// --- Trip Model Tests ---

func TestNewTrip(t *testing.T) {
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	t.Run("should create a new trip successfully", func(t *testing.T) {
		trip, err := NewTrip("user-1", "Kyoto Week", "Kyoto", start, end)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if trip.ID == "" {
			t.Error("expected a generated ID")
		}
		if trip.Status != TripDraft {
			t.Errorf("expected status %q, got %q", TripDraft, trip.Status)
		}
		if !trip.OwnedBy("user-1") {
			t.Error("expected trip to be owned by its creator")
		}
		if trip.OwnedBy("user-2") {
			t.Error("expected trip not to be owned by another user")
		}
	})

	t.Run("should reject blank title", func(t *testing.T) {
		_, err := NewTrip("user-1", "   ", "Kyoto", start, end)
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("should reject end before start", func(t *testing.T) {
		_, err := NewTrip("user-1", "Kyoto Week", "Kyoto", end, start)
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

// --- Group Model Tests ---

func TestNewTravelGroup(t *testing.T) {
	t.Run("should make the owner the first member", func(t *testing.T) {
		g, err := NewTravelGroup("Euro Trip", "owner-1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(g.Members) != 1 {
			t.Fatalf("expected 1 member, got %d", len(g.Members))
		}
		if g.Members[0].Role != RoleOwner {
			t.Errorf("expected owner role, got %q", g.Members[0].Role)
		}
		if !g.HasMember("owner-1") {
			t.Error("expected owner to be a member")
		}
		if g.HasMember("stranger") {
			t.Error("expected stranger not to be a member")
		}
	})

	t.Run("should reject blank name", func(t *testing.T) {
		_, err := NewTravelGroup("  ", "owner-1")
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

// --- Mood Model Tests ---

func TestNewMoodEntry(t *testing.T) {
	t.Run("should accept moods in range", func(t *testing.T) {
		for mood := 1; mood <= 5; mood++ {
			if _, err := NewMoodEntry("user-1", "trip-1", mood, ""); err != nil {
				t.Errorf("mood %d: expected no error, got %v", mood, err)
			}
		}
	})

	t.Run("should reject moods out of range", func(t *testing.T) {
		for _, mood := range []int{0, 6, -1} {
			if _, err := NewMoodEntry("user-1", "trip-1", mood, ""); !errors.Is(err, domain.ErrInvalidArgument) {
				t.Errorf("mood %d: expected ErrInvalidArgument, got %v", mood, err)
			}
		}
	})
}

// --- Scrapbook Model Tests ---

func TestNewScrapbookEntry(t *testing.T) {
	t.Run("should default taken_at to now", func(t *testing.T) {
		before := time.Now()
		entry, err := NewScrapbookEntry("user-1", "trip-1", "sunset", "https://cdn/img.jpg", time.Time{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if entry.TakenAt.Before(before) {
			t.Errorf("expected TakenAt to default to creation time, got %v", entry.TakenAt)
		}
	})

	t.Run("should reject missing media url", func(t *testing.T) {
		_, err := NewScrapbookEntry("user-1", "trip-1", "sunset", " ", time.Now())
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

// --- Achievement Model Tests ---

func TestNewAchievement(t *testing.T) {
	t.Run("should create an achievement", func(t *testing.T) {
		a, err := NewAchievement("user-1", AchFirstTrip, "First Trip", 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if a.Code != AchFirstTrip || a.Points != 10 {
			t.Errorf("unexpected achievement %+v", a)
		}
	})

	t.Run("should reject missing code", func(t *testing.T) {
		if _, err := NewAchievement("user-1", "", "x", 1); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}
