package model

import (
	"time"

	"travel-planner/internal/domain"

	"github.com/google/uuid"
)

// MoodEntry is one logged mood for a trip, on a 1..5 scale.
type MoodEntry struct {
	ID       string
	UserID   string
	TripID   string
	Mood     int
	Note     string
	LoggedAt time.Time
}

func NewMoodEntry(userID, tripID string, mood int, note string) (*MoodEntry, error) {
	if userID == "" || tripID == "" {
		return nil, domain.ErrInvalidArgument
	}
	if mood < 1 || mood > 5 {
		return nil, domain.ErrInvalidArgument
	}
	return &MoodEntry{
		ID:       uuid.NewString(),
		UserID:   userID,
		TripID:   tripID,
		Mood:     mood,
		Note:     note,
		LoggedAt: time.Now(),
	}, nil
}
