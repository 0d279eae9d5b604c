package model

import (
	"strings"
	"time"

	"travel-planner/internal/domain"

	"github.com/google/uuid"
)

// ScrapbookEntry is a captioned media item attached to a trip.
type ScrapbookEntry struct {
	ID        string
	UserID    string
	TripID    string
	Caption   string
	MediaURL  string
	TakenAt   time.Time
	CreatedAt time.Time
}

func NewScrapbookEntry(userID, tripID, caption, mediaURL string, takenAt time.Time) (*ScrapbookEntry, error) {
	if userID == "" || tripID == "" || strings.TrimSpace(mediaURL) == "" {
		return nil, domain.ErrInvalidArgument
	}
	if takenAt.IsZero() {
		takenAt = time.Now()
	}
	return &ScrapbookEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		TripID:    tripID,
		Caption:   caption,
		MediaURL:  mediaURL,
		TakenAt:   takenAt,
		CreatedAt: time.Now(),
	}, nil
}
